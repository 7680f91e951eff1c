// Package wgsl implements the extended WGSL dialect: a directive scanner,
// a std430 layout calculator for the user's GameState struct, and a
// preprocessor that resolves imports, assigns binding numbers, and rewrites
// directives into plain WGSL. The output is a Manifest plus a generated
// source string that the renderer compiles and binds against directly.
package wgsl

// Manifest is the preprocessor's structured output: every asset the shader
// references, in first-occurrence order, the computed GameState layout, and
// the final rewritten WGSL text. Binding numbers for any given asset are
// purely a function of its position in these slices.
type Manifest struct {
	// Title and Width/Height come from @set_title / @set_size, or the
	// defaults ("untitled", 800x600) if those directives are absent or
	// malformed.
	Title  string
	Width  uint32
	Height uint32

	// Textures, Videos, Cameras together occupy group 0 bindings 1..N in
	// that order, each run contiguous. Cameras holds device indices, not
	// paths.
	Textures []string
	Videos   []string
	Cameras  []int

	// Sounds is the ordered list of distinct sound paths; index is also the
	// slot into the host block's audio[N_sound] region.
	Sounds []string

	// Models is the ordered list of distinct OBJ paths; model i occupies
	// group 2 bindings 1+2i (positions) and 2+2i (normals).
	Models []string

	// OSCParams is the ordered list of named OSC parameters discovered via
	// @osc("name"); index is the slot into osc[64]. Capped at 64 entries;
	// the 65th and later alias slot 63 with a load-time warning.
	OSCParams []string

	// GameStateSize and GameStateAlignment are the Layout Calculator's
	// output (§4.3): byte size after std430 rounding (≥16) and the
	// alignment requirement (4, 8, or 16).
	GameStateSize      uint64
	GameStateAlignment uint64

	// GeneratedWGSL is the fully rewritten shader source: imports inlined,
	// directives replaced, and the generated header prepended.
	GeneratedWGSL string
}

// HostBlockSize returns the total byte size of the host block for this
// manifest: the fixed 80-byte volatile region, GameStateSize, the audio
// region (4 bytes per sound), the fixed 256-byte OSC region (64 floats),
// and the fixed 776-byte key region (194 ints), rounded up to a multiple
// of 16 per §3.
func (m *Manifest) HostBlockSize() uint64 {
	total := uint64(80) + m.GameStateSize + uint64(4*len(m.Sounds)) + 256 + 4*194
	return roundUp(16, total)
}

// AudioOffset, OSCOffset, and KeysOffset return the byte offsets of the
// three regions that follow GameState, symbolically derived from
// GameStateSize rather than hardcoded, per §3's tolerance requirement.
func (m *Manifest) AudioOffset() uint64 { return 80 + m.GameStateSize }
func (m *Manifest) OSCOffset() uint64   { return m.AudioOffset() + uint64(4*len(m.Sounds)) }
func (m *Manifest) KeysOffset() uint64  { return m.OSCOffset() + 256 }
