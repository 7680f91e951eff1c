package audio

// ApplyCounters compares the audio[N_sound] counters read back from the
// host block against the last-seen counters and triggers one playback per
// sound whose counter differs from its last-seen value (§4.7 step 9). The
// frame scheduler zeroes the counters after every read-back and passes
// all-zero last-seen values, so each read-back triggers exactly the sounds
// whose counter is above zero.
func (m *Mixer) ApplyCounters(counters []uint32, last []uint32) {
	for i, c := range counters {
		if i >= len(last) {
			break
		}
		if c != last[i] {
			m.Trigger(i)
		}
	}
}
