package wgsl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nullrefgames/wgslhost/engine/resolver"
)

func writeFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	full := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestPreprocessBobDemo(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "helpers.wgsl", "fn helper() -> f32 { return 1.0; }\n")
	writeFile(t, dir, "main.wgsl", `
@set_title("Bob-Bonker")
@set_size(800,600)
@import("helpers.wgsl")

struct GameState {
  player_pos: vec2f,
  player_vel: vec2f,
  at_edge: u32,
}

@compute @workgroup_size(1,1,1)
fn update() {
  if (@engine.buttons[BUTTON_RIGHT] == 1) {
    @engine.state.player_vel.x = 200.0;
  }
  @engine.state.player_pos = @engine.state.player_pos + @engine.state.player_vel * @engine.delta_time;
}

@fragment
fn fs_render() -> @location(0) vec4f {
  let c = textureSample(@texture("player.png"), _sampler, vec2f(0.0, 0.0));
  @sound("bump.ogg").play();
  return c;
}
`)

	r := resolver.NewDirectoryResolver(dir)
	m, err := Preprocess(r, "main.wgsl")
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}

	if m.Title != "Bob-Bonker" {
		t.Errorf("title = %q, want Bob-Bonker", m.Title)
	}
	if m.Width != 800 || m.Height != 600 {
		t.Errorf("size = %dx%d, want 800x600", m.Width, m.Height)
	}
	if m.GameStateSize != 24 {
		t.Errorf("game state size = %d, want 24", m.GameStateSize)
	}
	if len(m.Textures) != 1 || m.Textures[0] != "player.png" {
		t.Errorf("textures = %v, want [player.png]", m.Textures)
	}
	if len(m.Sounds) != 1 || m.Sounds[0] != "bump.ogg" {
		t.Errorf("sounds = %v, want [bump.ogg]", m.Sounds)
	}
	if got := m.HostBlockSize(); got != 1152 {
		t.Errorf("host block size = %d, want 1152", got)
	}
	if !strings.Contains(m.GeneratedWGSL, "fn helper()") {
		t.Error("expected imported helper function to be inlined")
	}
	if !strings.Contains(m.GeneratedWGSL, "const KEY_A: u32 = 19u;") {
		t.Error("expected KEY_A constant at index 19")
	}
	if strings.Contains(m.GeneratedWGSL, "@set_title") || strings.Contains(m.GeneratedWGSL, "@set_size") {
		t.Error("expected @set_title/@set_size to be erased")
	}
	if strings.Contains(m.GeneratedWGSL, "@texture(") {
		t.Error("expected @texture() to be rewritten")
	}
}

func TestPreprocessNoGameState(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.wgsl", `
@fragment
fn fs_render() -> @location(0) vec4f {
  return vec4f(@engine.time, 0.0, 0.0, 1.0);
}
`)

	r := resolver.NewDirectoryResolver(dir)
	m, err := Preprocess(r, "main.wgsl")
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if m.GameStateSize != 16 {
		t.Errorf("game state size = %d, want sentinel 16", m.GameStateSize)
	}
	if m.Title != defaultTitle || m.Width != defaultWidth || m.Height != defaultHeight {
		t.Errorf("expected defaults, got %q %dx%d", m.Title, m.Width, m.Height)
	}
}

// TestPreprocessNoGameStateWithSound guards against a GameState-less shader
// having its audio/osc/keys regions land 16 bytes off from where the
// generated struct actually places them: a shader with no GameState struct
// still reserves the §4.3 16-byte sentinel, so the host-block offsets must
// account for it even though `state` is never named.
func TestPreprocessNoGameStateWithSound(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.wgsl", `
@fragment
fn fs_render() -> @location(0) vec4f {
  @sound("beep.wav").play();
  return vec4f(@osc("knob"), 0.0, 0.0, 1.0);
}
`)

	r := resolver.NewDirectoryResolver(dir)
	m, err := Preprocess(r, "main.wgsl")
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}

	if m.GameStateSize != 16 {
		t.Fatalf("game state size = %d, want sentinel 16", m.GameStateSize)
	}
	if want := uint64(96); m.AudioOffset() != want {
		t.Errorf("audio offset = %d, want %d", m.AudioOffset(), want)
	}
	if !strings.Contains(m.GeneratedWGSL, "_state_reserved: vec4<f32>,") {
		t.Error("expected _state_reserved placeholder field when GameState is absent")
	}
}

func TestPreprocessImportCycle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.wgsl", `@import("b.wgsl")
fn a() {}
`)
	writeFile(t, dir, "b.wgsl", `@import("a.wgsl")
fn b() {}
`)
	writeFile(t, dir, "main.wgsl", `@import("a.wgsl")
@import("a.wgsl")
fn main_fn() {}
`)

	r := resolver.NewDirectoryResolver(dir)
	m, err := Preprocess(r, "main.wgsl")
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if strings.Count(m.GeneratedWGSL, "fn a()") != 1 {
		t.Errorf("expected fn a() inlined exactly once, got %d", strings.Count(m.GeneratedWGSL, "fn a()"))
	}
	if strings.Count(m.GeneratedWGSL, "fn b()") != 1 {
		t.Errorf("expected fn b() inlined exactly once, got %d", strings.Count(m.GeneratedWGSL, "fn b()"))
	}
}
