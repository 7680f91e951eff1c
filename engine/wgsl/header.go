package wgsl

import (
	"fmt"
	"strings"

	"github.com/nullrefgames/wgslhost/engine/window"
)

// Generated identifier names. These are fixed across every compiled shader;
// user source never spells them directly (they only appear through directive
// rewrites), so collisions with user identifiers are not a concern in
// practice, matching §9's "textual rewriting is a deliberate simplification".
const (
	samplerVarName   = "_sampler"
	hostBlockVarName = "_host"
)

func textureVarName(i int) string { return fmt.Sprintf("_texture_%d", i) }
func videoVarName(i int) string   { return fmt.Sprintf("_video_%d", i) }
func cameraVarName(i int) string  { return fmt.Sprintf("_camera_%d", i) }
func modelPositionsVarName(i int) string { return fmt.Sprintf("_model_positions_%d", i) }
func modelNormalsVarName(i int) string   { return fmt.Sprintf("_model_normals_%d", i) }

// TextureBinding, VideoBinding, and CameraBinding return the group-0 binding
// index for the i-th entry of each asset class, per §4.5: textures first,
// then videos, then cameras, all contiguous after the sampler at binding 0.
func (m *Manifest) TextureBinding(i int) int { return 1 + i }
func (m *Manifest) VideoBinding(i int) int   { return 1 + len(m.Textures) + i }
func (m *Manifest) CameraBinding(i int) int  { return 1 + len(m.Textures) + len(m.Videos) + i }

// ModelPositionsBinding and ModelNormalsBinding return the group-2 binding
// indices for model i, per §4.5: 1+2i and 2+2i.
func ModelPositionsBinding(i int) int { return 1 + 2*i }
func ModelNormalsBinding(i int) int   { return 2 + 2*i }

// buildHeader emits the generated WGSL prelude: the (optionally re-emitted)
// GameState struct, the GameEngineHost struct with the exact §3 field order,
// named KEY_*/BUTTON_* constants, the sampler and per-asset texture
// bindings, the host-block storage binding, and per-model storage bindings.
// This text is prepended to the rewritten body.
func buildHeader(m *Manifest, gameStateRaw string, hasGameState bool) string {
	var b strings.Builder

	if hasGameState {
		fmt.Fprintf(&b, "%s\n\n", gameStateRaw)
	}

	b.WriteString("struct GameEngineHost {\n")
	b.WriteString("  buttons: array<i32,12>,\n")
	b.WriteString("  time: f32,\n")
	b.WriteString("  delta_time: f32,\n")
	b.WriteString("  screen_width: f32,\n")
	b.WriteString("  screen_height: f32,\n")
	b.WriteString("  mouse: vec4<f32>,\n")
	if hasGameState {
		b.WriteString("  state: GameState,\n")
	} else {
		// Reserves the 80-96 byte region even with no GameState struct, so
		// the compiled layout still matches ComputeGameStateLayout's 16-byte
		// sentinel and audio/osc/keys land where the host writes them.
		b.WriteString("  _state_reserved: vec4<f32>,\n")
	}
	if n := len(m.Sounds); n > 0 {
		fmt.Fprintf(&b, "  audio: array<u32,%d>,\n", n)
	}
	b.WriteString("  osc: array<f32,64>,\n")
	b.WriteString("  keys: array<i32,194>,\n")
	b.WriteString("}\n\n")

	writeButtonConstants(&b)
	writeKeyConstants(&b)

	fmt.Fprintf(&b, "@group(0) @binding(0) var %s: sampler;\n", samplerVarName)
	for i := range m.Textures {
		fmt.Fprintf(&b, "@group(0) @binding(%d) var %s: texture_2d<f32>;\n", m.TextureBinding(i), textureVarName(i))
	}
	for i := range m.Videos {
		fmt.Fprintf(&b, "@group(0) @binding(%d) var %s: texture_2d<f32>;\n", m.VideoBinding(i), videoVarName(i))
	}
	for i := range m.Cameras {
		fmt.Fprintf(&b, "@group(0) @binding(%d) var %s: texture_2d<f32>;\n", m.CameraBinding(i), cameraVarName(i))
	}

	fmt.Fprintf(&b, "@group(1) @binding(0) var<storage, read_write> %s: GameEngineHost;\n", hostBlockVarName)

	for i := range m.Models {
		fmt.Fprintf(&b, "@group(2) @binding(%d) var<storage, read> %s: array<vec4<f32>>;\n", ModelPositionsBinding(i), modelPositionsVarName(i))
		fmt.Fprintf(&b, "@group(2) @binding(%d) var<storage, read> %s: array<vec4<f32>>;\n", ModelNormalsBinding(i), modelNormalsVarName(i))
	}

	b.WriteString("\n")
	return b.String()
}

// buttonNames is the fixed name order for the host block's buttons[12]
// array, matching engine/window's ButtonUp..ButtonSelect ordering exactly.
var buttonNames = []string{
	"UP", "DOWN", "LEFT", "RIGHT", "A", "B", "X", "Y", "L", "R", "START", "SELECT",
}

func writeButtonConstants(b *strings.Builder) {
	for i, name := range buttonNames {
		fmt.Fprintf(b, "const BUTTON_%s: u32 = %du;\n", name, i)
	}
	b.WriteString("\n")
}

// writeKeyConstants emits one const per key index that has a name in
// engine/window's key table, reusing window.KeyNameByIndex so the emitted
// constant names and values
// can never drift from the host's own key-event mapping (§6.3's "must agree
// exactly" requirement).
func writeKeyConstants(b *strings.Builder) {
	for i := 0; i < window.KeyCount; i++ {
		name := window.KeyNameByIndex(i)
		if name == "" {
			continue
		}
		fmt.Fprintf(b, "const KEY_%s: u32 = %du;\n", strings.ToUpper(name), i)
	}
	b.WriteString("\n")
}
