package audio

import (
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/nullrefgames/wgslhost/internal/hostlog"
)

var log = hostlog.With("audio")

// voice is one in-flight playback instance of a clip.
type voice struct {
	clip   *Clip
	frame  int // current frame index into clip.Samples, advancing by Channels
	volume float32
}

// Mixer owns one oto.Context and sums every active voice into its output
// stream each Read callback, per the oto player pattern of handing the
// context a single io.Reader and doing the mixing host-side (§4.7's "one
// buffer per sound, a last-seen trigger counter per sound" implies
// multiple overlapping one-shots of the same sound must be able to play
// concurrently).
type Mixer struct {
	mu     sync.Mutex
	clips  []*Clip // indexed by manifest sound order
	voices []*voice

	ctx    *oto.Context
	player *oto.Player
}

// NewMixer decodes every registered sound's raw bytes once and starts the
// oto output stream. A sound that fails to decode aborts construction with
// its AudioDecode error, since every registered sound is referenced by
// name. A nil entry in raw leaves a nil clip at its index; triggering it is
// a silent no-op.
func NewMixer(paths []string, raw [][]byte) (*Mixer, error) {
	clips := make([]*Clip, len(raw))
	for i, data := range raw {
		if data == nil {
			continue
		}
		clip, err := Decode(paths[i], data)
		if err != nil {
			return nil, err
		}
		clips[i] = clip
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   outputSampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   0,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	m := &Mixer{ctx: ctx, clips: clips}
	m.player = ctx.NewPlayer(m)
	m.player.Play()
	return m, nil
}

// Trigger starts one new overlapping playback of the sound at index i, the
// action the frame scheduler takes for each nonzero audio counter (§4.7
// step 9). Out-of-range or undecoded indices are a no-op.
func (m *Mixer) Trigger(index int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if index < 0 || index >= len(m.clips) || m.clips[index] == nil {
		return
	}
	m.voices = append(m.voices, &voice{clip: m.clips[index], volume: 1})
}

// Close stops output and releases the oto player.
func (m *Mixer) Close() {
	if m.player != nil {
		m.player.Close()
	}
}

// Read implements io.Reader for oto's player: it mixes every active voice
// into p (interleaved stereo float32) and drops voices that have finished.
func (m *Mixer) Read(p []byte) (int, error) {
	samples := len(p) / 4 // 4 bytes per float32
	out := make([]float32, samples)

	m.mu.Lock()
	live := m.voices[:0]
	for _, v := range m.voices {
		mixVoice(out, v)
		if v.frame < len(v.clip.Samples) {
			live = append(live, v)
		}
	}
	m.voices = live
	m.mu.Unlock()

	for i, s := range out {
		bits := math.Float32bits(s)
		p[i*4+0] = byte(bits)
		p[i*4+1] = byte(bits >> 8)
		p[i*4+2] = byte(bits >> 16)
		p[i*4+3] = byte(bits >> 24)
	}
	return len(p), nil
}

// mixVoice adds up to len(out) stereo samples of v into out, advancing
// v.frame, and returns the number of output samples written.
func mixVoice(out []float32, v *voice) int {
	clip := v.clip
	written := 0
	for i := 0; i+1 < len(out) && v.frame < len(clip.Samples); i += 2 {
		if clip.Channels == 1 {
			s := clip.Samples[v.frame] * v.volume
			out[i] += s
			out[i+1] += s
			v.frame++
		} else {
			out[i] += clip.Samples[v.frame] * v.volume
			out[i+1] += clip.Samples[v.frame+1] * v.volume
			v.frame += 2
		}
		written += 2
	}
	return written
}
