// Package shader wraps a compiled WGSL module and the metadata pipeline
// construction needs from it: bind group layouts, vertex buffer layouts, and
// the entry point name. Layout and entry-point decisions are no longer
// parsed back out of the WGSL text here; they come from the preprocessor's
// Manifest (engine/wgsl) and the Binding Planner (engine/binding), which
// know them precisely because they generated the source in the first place.
package shader

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies whether a shader is a render shader or a compute shader.
type ShaderType int

const (
	// ShaderTypeCompute indicates a shader containing a @compute entry point.
	ShaderTypeCompute ShaderType = iota

	// ShaderTypeVertex is the vertex shader type, used for vertex processing in render pipelines.
	ShaderTypeVertex

	// ShaderTypeFragment is the fragment shader type, used for fragment processing in pair with a vertex shader.
	ShaderTypeFragment
)

// shader is the implementation of the Shader interface.
type shader struct {
	key                        string
	source                     string
	shaderType                 ShaderType
	entryPoint                 string
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	vertexLayouts              map[int][]wgpu.VertexBufferLayout
	module                     *wgpu.ShaderModuleDescriptor
}

// Shader defines the interface for a compiled WGSL module. It exposes the
// shader's unique key, source code, entry point, bind group layout
// descriptors, and vertex buffer layouts needed for pipeline creation.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for caching and lookups.
	Key() string

	// Source retrieves the WGSL shader source code.
	Source() string

	// BindGroupLayoutDescriptor retrieves the bind group layout descriptor for a specific group index.
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors retrieves all bind group layout descriptors, keyed by group index.
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// VertexLayout retrieves the vertex buffer layout for a specific key.
	VertexLayout(key int) []wgpu.VertexBufferLayout

	// VertexLayouts retrieves all vertex buffer layouts associated with this shader.
	VertexLayouts() map[int][]wgpu.VertexBufferLayout

	// EntryPoint returns the entry point function name for this shader (e.g. "update", "vs_main", "fs_render").
	EntryPoint() string

	// Module returns the wgpu.ShaderModuleDescriptor for this shader.
	Module() *wgpu.ShaderModuleDescriptor

	// ShaderType returns the type of the shader (vertex, fragment, or compute).
	ShaderType() ShaderType
}

var _ Shader = &shader{}

// NewShader wraps already-generated WGSL source with the layout metadata the
// caller (the Binding Planner) already knows precisely, rather than
// recovering it by parsing the text back out.
func NewShader(
	key string,
	shaderType ShaderType,
	source string,
	entryPoint string,
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor,
	vertexLayouts map[int][]wgpu.VertexBufferLayout,
) Shader {
	s := &shader{
		key:                        key,
		shaderType:                 shaderType,
		source:                     source,
		entryPoint:                 entryPoint,
		bindGroupLayoutDescriptors: bindGroupLayoutDescriptors,
		vertexLayouts:              vertexLayouts,
	}
	if s.bindGroupLayoutDescriptors == nil {
		s.bindGroupLayoutDescriptors = make(map[int]wgpu.BindGroupLayoutDescriptor)
	}
	if s.vertexLayouts == nil {
		s.vertexLayouts = make(map[int][]wgpu.VertexBufferLayout)
	}
	s.module = &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
	return s
}

func (s *shader) Key() string      { return s.key }
func (s *shader) Source() string   { return s.source }
func (s *shader) EntryPoint() string { return s.entryPoint }
func (s *shader) Module() *wgpu.ShaderModuleDescriptor { return s.module }
func (s *shader) ShaderType() ShaderType               { return s.shaderType }

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) VertexLayout(key int) []wgpu.VertexBufferLayout {
	return s.vertexLayouts[key]
}

func (s *shader) VertexLayouts() map[int][]wgpu.VertexBufferLayout {
	return s.vertexLayouts
}
