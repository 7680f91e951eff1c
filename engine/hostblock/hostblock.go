// Package hostblock implements the Host Block Writer (§4.6): the CPU-side
// staging buffer and per-region write logic for the single GPU storage
// buffer shared between the compute and fragment stages (§3). Offsets are
// always derived symbolically from a *wgsl.Manifest, never hardcoded, so a
// shader's GameState size can change without touching this package.
package hostblock

import (
	"encoding/binary"
	"math"

	"github.com/nullrefgames/wgslhost/engine/wgsl"
)

// ButtonCount is the fixed width of the buttons[12] region (§3).
const ButtonCount = 12

// OSCSlotCount is the fixed width of the osc[64] region (§3).
const OSCSlotCount = 64

// KeyCount is the fixed width of the keys[194] region (§3), mirroring
// engine/window.KeyCount.
const KeyCount = 194

// Block is the CPU-side mirror of the GPU host block: one contiguous byte
// slice laid out exactly per §3, plus the offsets needed to write each
// region independently.
type Block struct {
	manifest *wgsl.Manifest
	bytes    []byte
}

// New allocates a zeroed Block sized per the manifest's HostBlockSize. No
// GameState defaults are written: the whole buffer, GameState included,
// starts at zero.
func New(m *wgsl.Manifest) *Block {
	return &Block{
		manifest: m,
		bytes:    make([]byte, m.HostBlockSize()),
	}
}

// Bytes returns the full backing buffer, suitable for an initial full-block
// GPU write on shader load.
func (b *Block) Bytes() []byte { return b.bytes }

// VolatilePrefix returns the buttons/time/delta_time/screen_width/
// screen_height/mouse region (offset 0, 80 bytes), written once per frame
// ahead of the compute dispatch (§4.7 step 4).
func (b *Block) VolatilePrefix() []byte { return b.bytes[0:80] }

// OSCRegion returns the osc[64] region, located symbolically via the
// manifest's GameStateSize so it never drifts when GameState grows.
func (b *Block) OSCRegion() []byte {
	off := b.manifest.OSCOffset()
	return b.bytes[off : off+256]
}

// KeysRegion returns the keys[194] region.
func (b *Block) KeysRegion() []byte {
	off := b.manifest.KeysOffset()
	return b.bytes[off : off+4*KeyCount]
}

// AudioRegion returns the audio[N_sound] counter region, read back by the
// scheduler after each compute dispatch (§4.7 step 6/9).
func (b *Block) AudioRegion() []byte {
	off := b.manifest.AudioOffset()
	return b.bytes[off : off+uint64(4*len(b.manifest.Sounds))]
}

// WriteButtons writes the 12 button states (0 or 1) as signed 32-bit
// integers at offset 0.
func (b *Block) WriteButtons(pressed [ButtonCount]bool) {
	for i, p := range pressed {
		v := int32(0)
		if p {
			v = 1
		}
		binary.LittleEndian.PutUint32(b.bytes[i*4:], uint32(v))
	}
}

// WriteTiming writes time, delta_time, screen_width, and screen_height at
// their fixed offsets (48, 52, 56, 60).
func (b *Block) WriteTiming(timeSeconds, deltaSeconds, screenWidth, screenHeight float32) {
	binary.LittleEndian.PutUint32(b.bytes[48:], math.Float32bits(timeSeconds))
	binary.LittleEndian.PutUint32(b.bytes[52:], math.Float32bits(deltaSeconds))
	binary.LittleEndian.PutUint32(b.bytes[56:], math.Float32bits(screenWidth))
	binary.LittleEndian.PutUint32(b.bytes[60:], math.Float32bits(screenHeight))
}

// WriteMouse writes mouse.xy (current pixel position) and mouse.zw
// (last-click position, negated once the button releases) at offset 64.
func (b *Block) WriteMouse(x, y, clickX, clickY float32) {
	binary.LittleEndian.PutUint32(b.bytes[64:], math.Float32bits(x))
	binary.LittleEndian.PutUint32(b.bytes[68:], math.Float32bits(y))
	binary.LittleEndian.PutUint32(b.bytes[72:], math.Float32bits(clickX))
	binary.LittleEndian.PutUint32(b.bytes[76:], math.Float32bits(clickY))
}

// WriteOSC writes a single OSC slot value by index (0 <= index < 64).
func (b *Block) WriteOSC(index int, value float32) {
	region := b.OSCRegion()
	binary.LittleEndian.PutUint32(region[index*4:], math.Float32bits(value))
}

// WriteKeys writes all 194 raw key states (0 or 1) as signed 32-bit
// integers into the keys region.
func (b *Block) WriteKeys(down [KeyCount]bool) {
	region := b.KeysRegion()
	for i, d := range down {
		v := int32(0)
		if d {
			v = 1
		}
		binary.LittleEndian.PutUint32(region[i*4:], uint32(v))
	}
}

// ReadAudioCounters decodes the audio[N_sound] region into a slice of
// uint32 counters, one per registered sound, in manifest order.
func (b *Block) ReadAudioCounters() []uint32 {
	region := b.AudioRegion()
	counters := make([]uint32, len(b.manifest.Sounds))
	for i := range counters {
		counters[i] = binary.LittleEndian.Uint32(region[i*4:])
	}
	return counters
}

// ResetAudioCounters zeroes the audio[N_sound] region in the CPU-side
// mirror; the caller is responsible for writing the zeroed bytes back to
// the GPU buffer (§4.7 step 9).
func (b *Block) ResetAudioCounters() {
	region := b.AudioRegion()
	for i := range region {
		region[i] = 0
	}
}
