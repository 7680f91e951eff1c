package renderer

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend. It is the
	// only backend wgslhost implements; the type exists so a future backend
	// (e.g. a software rasterizer for headless testing) has somewhere to go.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync caps the frame rate to the monitor's refresh rate and
	// eliminates tearing. The default for `wgslhost run`.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents as fast as the compute/render passes
	// allow; `wgslhost run --uncapped` selects this for benchmarking a shader.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing.
// WebGPU guarantees 1 (off) and 4; higher counts are adapter-dependent.
type MSAASampleCount uint32

const (
	MSAAOff  MSAASampleCount = 1
	MSAA4x   MSAASampleCount = 4
	MSAA8x   MSAASampleCount = 8
	MSAA16x  MSAASampleCount = 16
)

// RendererBackend is the top-level backend interface for the Renderer.
type RendererBackend interface {
	wgpuRendererBackend
}
