// Package scheduler implements the Frame Scheduler (§4.7): the fixed
// nine-step per-frame loop, and the Controller runtime-control surface
// (§6.6) an embedder or CLI drives it with. It is modeled on the teacher's
// Engine interface (engine/engine.go), which exposes a similarly narrow
// control surface over an internally goroutine-driven render loop.
package scheduler

import (
	"fmt"
	"math"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/nullrefgames/wgslhost/common"
	"github.com/nullrefgames/wgslhost/engine/assets"
	"github.com/nullrefgames/wgslhost/engine/audio"
	"github.com/nullrefgames/wgslhost/engine/binding"
	"github.com/nullrefgames/wgslhost/engine/hostblock"
	"github.com/nullrefgames/wgslhost/engine/osc"
	"github.com/nullrefgames/wgslhost/engine/profiler"
	"github.com/nullrefgames/wgslhost/engine/renderer"
	"github.com/nullrefgames/wgslhost/engine/renderer/bind_group_provider"
	"github.com/nullrefgames/wgslhost/engine/renderer/pipeline"
	"github.com/nullrefgames/wgslhost/engine/renderer/shader"
	"github.com/nullrefgames/wgslhost/engine/resolver"
	"github.com/nullrefgames/wgslhost/engine/window"
	"github.com/nullrefgames/wgslhost/engine/wgsl"
	"github.com/nullrefgames/wgslhost/internal/hostlog"
)

var log = hostlog.With("scheduler")

const (
	computePipelineKey = "update"
	renderPipelineKey  = "render"
)

// Program is one fully loaded, GPU-resident shader: its manifest, bind
// group providers, host block mirror, decoded assets, and audio mixer.
// Reload (§6.6, §4.7 "Cancellation/timeouts") replaces this wholesale.
type Program struct {
	manifest *wgsl.Manifest
	block    *hostblock.Block

	group0, group1 bind_group_provider.BindGroupProvider
	group2         bind_group_provider.BindGroupProvider // nil if no models

	loaded *assets.LoadedAssets
	mixer  *audio.Mixer

	lastAudioCounters []uint32
	readbackPending   bool
}

// Scheduler owns the GPU renderer, window, OSC listener, and the currently
// loaded Program, and drives the per-frame loop described in §4.7.
type Scheduler struct {
	win      window.Window
	r        renderer.Renderer
	resolver resolver.Resolver
	oscAddr  string
	listener *osc.Listener

	videoOpen  assets.VideoOpener
	cameraOpen assets.CameraOpener

	program   *Program
	startPath string
	prof      *profiler.Profiler
}

// Options configures a Scheduler at construction time.
type Options struct {
	Resolver   resolver.Resolver
	Window     window.Window
	Renderer   renderer.Renderer
	OSCAddr    string // e.g. ":9000"; empty disables the OSC listener
	VideoOpen  assets.VideoOpener
	CameraOpen assets.CameraOpener
}

// New constructs a Scheduler and loads entryPath as the initial program.
func New(opts Options, entryPath string) (*Scheduler, error) {
	s := &Scheduler{
		win:        opts.Window,
		r:          opts.Renderer,
		resolver:   opts.Resolver,
		oscAddr:    opts.OSCAddr,
		videoOpen:  opts.VideoOpen,
		cameraOpen: opts.CameraOpen,
		prof:       profiler.NewProfiler(),
	}

	if s.oscAddr != "" {
		l, err := osc.Listen(s.oscAddr)
		if err != nil {
			return nil, fmt.Errorf("starting OSC listener: %w", err)
		}
		s.listener = l
	}

	if err := s.LoadShader(entryPath); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadShader preprocesses and loads a new program, replacing whatever was
// previously running. Per §4.7's cancellation policy this only ever happens
// between frames, never mid-frame.
func (s *Scheduler) LoadShader(path string) error {
	manifest, err := wgsl.Preprocess(s.resolver, path)
	if err != nil {
		return err
	}

	loaded, err := assets.Load(s.resolver, manifest, s.videoOpen, s.cameraOpen)
	if err != nil {
		return err
	}

	mixer, err := audio.NewMixer(manifest.Sounds, loaded.Sounds)
	if err != nil {
		return fmt.Errorf("starting audio mixer: %w", err)
	}

	program, err := s.buildProgram(manifest, loaded, mixer)
	if err != nil {
		mixer.Close()
		return err
	}

	if s.program != nil {
		s.program.mixer.Close()
	}
	s.program = program
	s.startPath = path
	s.r.Resize(int(manifest.Width), int(manifest.Height))
	log.Info().Str("path", path).Str("title", manifest.Title).Msg("shader loaded")
	return nil
}

// Reload reloads the currently running program from its original path, per
// §6.6's "reload the current shader" control.
func (s *Scheduler) Reload() error {
	return s.LoadShader(s.startPath)
}

// Close releases the OSC listener and the current program's audio mixer.
// Callers should invoke this once after the window's message loop returns.
func (s *Scheduler) Close() error {
	if s.program != nil {
		s.program.mixer.Close()
	}
	if s.listener != nil {
		return s.listener.Close()
	}
	return nil
}

// buildProgram wires a preprocessed manifest into GPU resources: bind group
// layouts from the Binding Planner, buffers/textures/samplers via the
// Renderer, and the compute + render pipelines.
func (s *Scheduler) buildProgram(m *wgsl.Manifest, loaded *assets.LoadedAssets, mixer *audio.Mixer) (*Program, error) {
	plan := binding.Build(m)

	group0 := bind_group_provider.NewBindGroupProvider("group0")
	group1 := bind_group_provider.NewBindGroupProvider("group1")
	var group2 bind_group_provider.BindGroupProvider

	if err := s.initGroup0(group0, plan, m, loaded); err != nil {
		return nil, err
	}

	// The host block buffer needs CopySrc in addition to the planner's
	// storage|read_write usage, so the audio counter region can be copied out
	// for map-read at §4.7 steps 6/9.
	if err := s.r.InitBindGroup(group1, plan.Groups[1], map[int]wgpu.BufferUsage{0: wgpu.BufferUsageCopySrc}, nil); err != nil {
		return nil, err
	}

	if len(m.Models) > 0 {
		group2 = bind_group_provider.NewBindGroupProvider("group2")
		if err := s.initGroup2(group2, plan, m, loaded); err != nil {
			return nil, err
		}
	}

	if err := s.registerPipelines(m, plan); err != nil {
		return nil, err
	}

	return &Program{
		manifest:          m,
		block:             hostblock.New(m),
		group0:            group0,
		group1:            group1,
		group2:            group2,
		loaded:            loaded,
		mixer:             mixer,
		lastAudioCounters: make([]uint32, len(m.Sounds)),
	}, nil
}

func (s *Scheduler) initGroup0(provider bind_group_provider.BindGroupProvider, plan *binding.Plan, m *wgsl.Manifest, loaded *assets.LoadedAssets) error {
	if err := s.r.InitSampler(provider, 0, defaultSampler()); err != nil {
		return err
	}
	for i, tex := range loaded.Textures {
		if err := s.r.InitTextureView(provider, m.TextureBinding(i), tex); err != nil {
			return err
		}
	}
	for i, src := range loaded.Videos {
		pixels, w, h, _ := src.CurrentFrame()
		if err := s.r.InitTextureView(provider, m.VideoBinding(i), common.TextureStagingData{Pixels: pixels, Width: w, Height: h}); err != nil {
			return err
		}
	}
	for i, src := range loaded.Cameras {
		pixels, w, h, _ := src.CurrentFrame()
		if err := s.r.InitTextureView(provider, m.CameraBinding(i), common.TextureStagingData{Pixels: pixels, Width: w, Height: h}); err != nil {
			return err
		}
	}
	return s.r.InitBindGroup(provider, plan.Groups[0], nil, nil)
}

func (s *Scheduler) initGroup2(provider bind_group_provider.BindGroupProvider, plan *binding.Plan, m *wgsl.Manifest, loaded *assets.LoadedAssets) error {
	if err := s.r.InitBindGroup(provider, plan.Groups[2], nil, modelBufferSizes(loaded)); err != nil {
		return err
	}

	writes := make([]bind_group_provider.BufferWrite, 0, 2*len(loaded.Models))
	for i, model := range loaded.Models {
		writes = append(writes,
			bind_group_provider.BufferWrite{Provider: provider, Binding: wgsl.ModelPositionsBinding(i), Data: float32ToBytes(model.Positions)},
			bind_group_provider.BufferWrite{Provider: provider, Binding: wgsl.ModelNormalsBinding(i), Data: float32ToBytes(model.Normals)},
		)
	}
	s.r.WriteBuffers(writes)
	return nil
}

func modelBufferSizes(loaded *assets.LoadedAssets) map[int]uint64 {
	sizes := make(map[int]uint64, 2*len(loaded.Models))
	for i, model := range loaded.Models {
		byteLen := uint64(len(model.Positions) * 4)
		sizes[wgsl.ModelPositionsBinding(i)] = byteLen
		sizes[wgsl.ModelNormalsBinding(i)] = byteLen
	}
	return sizes
}

// defaultSampler is the single nearest-filter clamp-to-edge sampler every
// group-0 texture binding shares, per §4.4's exact per-texel sampling
// requirement and §4.5's single sampler at binding 0.
func defaultSampler() common.SamplerStagingData {
	return common.SamplerStagingData{
		AddressModeU: wgpu.AddressModeClampToEdge,
		AddressModeV: wgpu.AddressModeClampToEdge,
		AddressModeW: wgpu.AddressModeClampToEdge,
		MagFilter:    wgpu.FilterModeNearest,
		MinFilter:    wgpu.FilterModeNearest,
		MipmapFilter: wgpu.MipmapFilterModeNearest,
		LodMaxClamp:  32,
	}
}

func (s *Scheduler) registerPipelines(m *wgsl.Manifest, plan *binding.Plan) error {
	renderLayouts := map[int]wgpu.BindGroupLayoutDescriptor{0: plan.Groups[0], 1: plan.Groups[1]}
	if g2, ok := plan.Groups[2]; ok {
		renderLayouts[2] = g2
	}
	computeLayouts := map[int]wgpu.BindGroupLayoutDescriptor{0: plan.Groups[0], 1: plan.Groups[1]}

	vertexShader := shader.NewShader(renderPipelineKey+"_vs", shader.ShaderTypeVertex, m.GeneratedWGSL, "vs_main", renderLayouts, nil)
	fragmentShader := shader.NewShader(renderPipelineKey+"_fs", shader.ShaderTypeFragment, m.GeneratedWGSL, "fs_render", renderLayouts, nil)
	computeShader := shader.NewShader(computePipelineKey, shader.ShaderTypeCompute, m.GeneratedWGSL, "update", computeLayouts, nil)

	renderPipeline := pipeline.NewPipeline(renderPipelineKey, pipeline.PipelineTypeRender,
		pipeline.WithVertexShader(vertexShader),
		pipeline.WithFragmentShader(fragmentShader),
	)
	computePipeline := pipeline.NewPipeline(computePipelineKey, pipeline.PipelineTypeCompute,
		pipeline.WithComputeShader(computeShader),
	)

	// RegisterPipelines skips keys that are already cached, so drop the
	// previous program's pipelines first; a reload then compiles the new
	// generated source instead of keeping the old shader.
	s.r.SetPipelines(make(map[string]pipeline.Pipeline))
	return s.r.RegisterPipelines(renderPipeline, computePipeline)
}

func float32ToBytes(f []float32) []byte {
	out := make([]byte, len(f)*4)
	for i, v := range f {
		bits := math.Float32bits(v)
		out[i*4+0] = byte(bits)
		out[i*4+1] = byte(bits >> 8)
		out[i*4+2] = byte(bits >> 16)
		out[i*4+3] = byte(bits >> 24)
	}
	return out
}
