package binding

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/nullrefgames/wgslhost/engine/wgsl"
)

func TestBuildGroup0OrderingSamplerThenTexturesThenVideosThenCameras(t *testing.T) {
	m := &wgsl.Manifest{
		Textures: []string{"a.png", "b.png"},
		Videos:   []string{"v.mp4"},
		Cameras:  []int{0},
	}
	plan := Build(m)
	entries := plan.Groups[0].Entries
	if len(entries) != 5 {
		t.Fatalf("got %d entries, want 5", len(entries))
	}
	if entries[0].Binding != 0 || entries[0].Sampler.Type != wgpu.SamplerBindingTypeFiltering {
		t.Fatalf("entry 0 = %+v, want sampler at binding 0", entries[0])
	}
	wantBindings := []uint32{0, 1, 2, 3, 4}
	for i, e := range entries {
		if e.Binding != wantBindings[i] {
			t.Errorf("entry %d binding = %d, want %d", i, e.Binding, wantBindings[i])
		}
	}
}

func TestBuildGroup1IsHostBlockReadWriteStorage(t *testing.T) {
	m := &wgsl.Manifest{GameStateSize: 16}
	plan := Build(m)
	entries := plan.Groups[1].Entries
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	want := wgpu.ShaderStageFragment | wgpu.ShaderStageCompute
	if entries[0].Visibility != want {
		t.Errorf("visibility = %v, want fragment|compute", entries[0].Visibility)
	}
	if entries[0].Buffer.Type != wgpu.BufferBindingTypeStorage {
		t.Errorf("buffer type = %v, want storage (read_write)", entries[0].Buffer.Type)
	}
}

func TestBuildGroup2AbsentWithoutModels(t *testing.T) {
	m := &wgsl.Manifest{}
	plan := Build(m)
	if _, ok := plan.Groups[2]; ok {
		t.Fatal("group 2 present with no models, want absent")
	}
}

func TestBuildGroup2TwoEntriesPerModel(t *testing.T) {
	m := &wgsl.Manifest{Models: []string{"a.obj", "b.obj"}}
	plan := Build(m)
	entries := plan.Groups[2].Entries
	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4 (2 models x positions+normals)", len(entries))
	}
	wantBindings := []uint32{1, 2, 3, 4}
	for i, e := range entries {
		if e.Binding != wantBindings[i] {
			t.Errorf("entry %d binding = %d, want %d", i, e.Binding, wantBindings[i])
		}
	}
}
