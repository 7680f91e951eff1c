package hostblock

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/nullrefgames/wgslhost/engine/wgsl"
)

func TestRegionOffsets(t *testing.T) {
	m := &wgsl.Manifest{GameStateSize: 24, Sounds: []string{"bump.ogg"}}
	if got := m.HostBlockSize(); got != 1152 {
		t.Fatalf("host block size = %d, want 1152", got)
	}

	b := New(m)
	if len(b.Bytes()) != 1152 {
		t.Fatalf("buffer len = %d, want 1152", len(b.Bytes()))
	}
	if len(b.AudioRegion()) != 4 {
		t.Errorf("audio region len = %d, want 4", len(b.AudioRegion()))
	}
	if len(b.OSCRegion()) != 256 {
		t.Errorf("osc region len = %d, want 256", len(b.OSCRegion()))
	}
	if len(b.KeysRegion()) != 4*194 {
		t.Errorf("keys region len = %d, want %d", len(b.KeysRegion()), 4*194)
	}
}

func TestWriteTimingRoundTrip(t *testing.T) {
	m := &wgsl.Manifest{GameStateSize: 16}
	b := New(m)
	b.WriteTiming(1.5, 0.016, 800, 600)

	if got := math.Float32frombits(binary.LittleEndian.Uint32(b.Bytes()[48:])); got != 1.5 {
		t.Errorf("time = %v, want 1.5", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(b.Bytes()[60:])); got != 600 {
		t.Errorf("screen_height = %v, want 600", got)
	}
}

func TestAudioCounterResetsToZero(t *testing.T) {
	m := &wgsl.Manifest{GameStateSize: 16, Sounds: []string{"a.ogg", "b.ogg"}}
	b := New(m)
	region := b.AudioRegion()
	binary.LittleEndian.PutUint32(region[0:], 3)
	binary.LittleEndian.PutUint32(region[4:], 7)

	counters := b.ReadAudioCounters()
	if counters[0] != 3 || counters[1] != 7 {
		t.Fatalf("counters = %v, want [3 7]", counters)
	}

	b.ResetAudioCounters()
	for _, c := range b.ReadAudioCounters() {
		if c != 0 {
			t.Errorf("counter after reset = %d, want 0", c)
		}
	}
}
