// Package binding implements the Binding Planner (§4.5): it turns a
// *wgsl.Manifest into the concrete wgpu.BindGroupLayoutDescriptor values for
// groups 0, 1, and (when models are present) 2, in the exact layout the
// generated WGSL header (engine/wgsl/header.go) declares. The entry
// population mirrors the teacher's wgsl_parser_backend.go classifyResource,
// which derives the same wgpu.BindGroupLayoutEntry fields from a WGSL
// resource declaration; here the declarations are known in advance from the
// manifest rather than recovered by re-parsing generated text.
package binding

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/nullrefgames/wgslhost/engine/wgsl"
)

// Plan is the set of bind group layout descriptors a manifest requires,
// keyed by group index. Group 2 is absent (no entry) when the manifest has
// no models.
type Plan struct {
	Groups map[int]wgpu.BindGroupLayoutDescriptor
}

// Build builds the layout descriptors for every group §4.5 defines.
// Group 0 is fragment-only; group 1 is fragment+compute; group 2 (if
// present) is vertex+fragment.
func Build(m *wgsl.Manifest) *Plan {
	p := &Plan{Groups: make(map[int]wgpu.BindGroupLayoutDescriptor)}

	p.Groups[0] = wgpu.BindGroupLayoutDescriptor{Entries: group0Entries(m)}
	p.Groups[1] = wgpu.BindGroupLayoutDescriptor{Entries: group1Entries(m)}
	if len(m.Models) > 0 {
		p.Groups[2] = wgpu.BindGroupLayoutDescriptor{Entries: group2Entries(m)}
	}

	return p
}

// group0Entries lays out the sampler at binding 0 followed by textures,
// videos, and cameras contiguously, matching Manifest.TextureBinding /
// VideoBinding / CameraBinding exactly.
func group0Entries(m *wgsl.Manifest) []wgpu.BindGroupLayoutEntry {
	entries := make([]wgpu.BindGroupLayoutEntry, 0, 1+len(m.Textures)+len(m.Videos)+len(m.Cameras))

	entries = append(entries, wgpu.BindGroupLayoutEntry{
		Binding:    0,
		Visibility: wgpu.ShaderStageFragment,
		Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering},
	})

	for i := range m.Textures {
		entries = append(entries, sampledTextureEntry(uint32(m.TextureBinding(i))))
	}
	for i := range m.Videos {
		entries = append(entries, sampledTextureEntry(uint32(m.VideoBinding(i))))
	}
	for i := range m.Cameras {
		entries = append(entries, sampledTextureEntry(uint32(m.CameraBinding(i))))
	}

	return entries
}

func sampledTextureEntry(binding uint32) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: wgpu.ShaderStageFragment,
		Texture: wgpu.TextureBindingLayout{
			SampleType:    wgpu.TextureSampleTypeFloat,
			ViewDimension: wgpu.TextureViewDimension2D,
		},
	}
}

// group1Entries is the single host block storage buffer, read_write from
// both the compute update pass and the fragment render pass (§3, §4.5).
func group1Entries(m *wgsl.Manifest) []wgpu.BindGroupLayoutEntry {
	return []wgpu.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: wgpu.ShaderStageFragment | wgpu.ShaderStageCompute,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeStorage,
				MinBindingSize: m.HostBlockSize(),
			},
		},
	}
}

// group2Entries lays out two read-only storage buffers per model (positions
// then normals), visible to both the vertex and fragment stages since the
// dialect allows either to index into model data.
func group2Entries(m *wgsl.Manifest) []wgpu.BindGroupLayoutEntry {
	entries := make([]wgpu.BindGroupLayoutEntry, 0, 2*len(m.Models))
	for i := range m.Models {
		entries = append(entries,
			wgpu.BindGroupLayoutEntry{
				Binding:    uint32(wgsl.ModelPositionsBinding(i)),
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeReadOnlyStorage},
			},
			wgpu.BindGroupLayoutEntry{
				Binding:    uint32(wgsl.ModelNormalsBinding(i)),
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeReadOnlyStorage},
			},
		)
	}
	return entries
}
