package scheduler

import (
	"github.com/nullrefgames/wgslhost/common"
	"github.com/nullrefgames/wgslhost/engine/hostblock"
	"github.com/nullrefgames/wgslhost/engine/renderer/bind_group_provider"
	"github.com/nullrefgames/wgslhost/engine/window"
)

// Frame runs the fixed nine-step per-frame contract (§4.7) once: snapshot
// input, drain OSC, upload changed video/camera frames, upload the volatile
// host-block regions, dispatch the compute pass, kick off the (non-blocking)
// audio counter read-back, render, and present.
func (s *Scheduler) Frame(input *window.InputState, deltaSeconds float32, totalSeconds float32) error {
	s.prof.Tick()

	p := s.program
	block := p.block

	// Step 1: snapshot input.
	var buttonsI32 [hostblock.ButtonCount]int32
	var keysI32 [hostblock.KeyCount]int32
	mx, my, mz, mw := input.Snapshot(buttonsI32[:], keysI32[:])

	var buttons [hostblock.ButtonCount]bool
	for i := 0; i < hostblock.ButtonCount; i++ {
		buttons[i] = buttonsI32[i] != 0
	}
	var keys [hostblock.KeyCount]bool
	for i := 0; i < hostblock.KeyCount; i++ {
		keys[i] = keysI32[i] != 0
	}

	block.WriteButtons(buttons)
	block.WriteTiming(totalSeconds, deltaSeconds, float32(p.manifest.Width), float32(p.manifest.Height))
	block.WriteMouse(mx, my, mz, mw)
	block.WriteKeys(keys)

	// Step 2: drain OSC updates into the osc[64] region, by name or direct index.
	if s.listener != nil {
		for _, upd := range s.listener.Drain() {
			idx := upd.Index
			if upd.Name != "" {
				idx = -1
				for i, name := range p.manifest.OSCParams {
					if name == upd.Name {
						idx = i
						break
					}
				}
			}
			if idx < 0 || idx >= hostblock.OSCSlotCount {
				continue
			}
			block.WriteOSC(idx, upd.Value)
		}
	}

	// Step 3: upload changed video/camera frames.
	for i, src := range p.loaded.Videos {
		pixels, w, h, changed := src.CurrentFrame()
		if !changed {
			continue
		}
		if err := s.r.InitTextureView(p.group0, p.manifest.VideoBinding(i), common.TextureStagingData{Pixels: pixels, Width: w, Height: h}); err != nil {
			return err
		}
	}
	for i, src := range p.loaded.Cameras {
		pixels, w, h, changed := src.CurrentFrame()
		if !changed {
			continue
		}
		if err := s.r.InitTextureView(p.group0, p.manifest.CameraBinding(i), common.TextureStagingData{Pixels: pixels, Width: w, Height: h}); err != nil {
			return err
		}
	}

	// Step 4: upload the volatile prefix, OSC, and keys regions.
	s.r.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: p.group1, Binding: 0, Offset: 0, Data: block.VolatilePrefix()},
		{Provider: p.group1, Binding: 0, Offset: p.manifest.OSCOffset(), Data: block.OSCRegion()},
		{Provider: p.group1, Binding: 0, Offset: p.manifest.KeysOffset(), Data: block.KeysRegion()},
	})

	// Step 5: dispatch the compute update pass.
	if err := s.r.BeginComputeFrame(); err != nil {
		return err
	}
	s.r.DispatchCompute(computePipelineKey, p.group1, [3]uint32{1, 1, 1})
	s.r.EndComputeFrame()

	// Step 6: kick off the audio counter read-back, skipped if a previous
	// mapping is still pending (§5: only one in-flight mapping at a time).
	if !p.readbackPending {
		p.readbackPending = true
		off := p.manifest.AudioOffset()
		size := uint64(4 * len(p.manifest.Sounds))
		if size > 0 {
			err := s.r.ReadStorageRegionAsync(p.group1, 0, off, size, func(data []byte, err error) {
				p.readbackPending = false
				if err != nil {
					log.Warn().Err(err).Msg("audio counter read-back failed")
					return
				}
				s.applyAudioReadback(p, data)
			})
			if err != nil {
				p.readbackPending = false
				log.Warn().Err(err).Msg("audio counter read-back could not be started")
			}
		} else {
			p.readbackPending = false
		}
	}

	// Step 7: render.
	if err := s.r.BeginFrame(); err != nil {
		return err
	}
	providers := []bind_group_provider.BindGroupProvider{p.group0, p.group1}
	if p.group2 != nil {
		providers = append(providers, p.group2)
	}
	vertexCount := uint32(3)
	if len(p.loaded.Models) > 0 {
		vertexCount = uint32(p.loaded.Models[0].VertexCount)
	}
	if err := s.r.Draw(renderPipelineKey, providers, vertexCount); err != nil {
		return err
	}
	s.r.EndFrame()

	// Step 8: submit/present.
	s.r.Present()

	// Drive pending MapAsync callbacks (step 9 fires from inside here once
	// the GPU driver completes the mapping).
	s.r.Poll()

	return nil
}

// applyAudioReadback implements step 9: triggers playback for every sound
// whose counter is above zero, then zeroes the CPU-side mirror and
// schedules the zeroed bytes to be written back to the GPU.
func (s *Scheduler) applyAudioReadback(p *Program, data []byte) {
	counters := make([]uint32, len(p.manifest.Sounds))
	for i := range counters {
		counters[i] = leUint32(data[i*4:])
	}

	p.mixer.ApplyCounters(counters, p.lastAudioCounters)
	// The GPU counters are zeroed below, so the last-seen value of every
	// sound is zero again for the next read-back.
	for i := range p.lastAudioCounters {
		p.lastAudioCounters[i] = 0
	}

	p.block.ResetAudioCounters()
	s.r.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: p.group1, Binding: 0, Offset: p.manifest.AudioOffset(), Data: p.block.AudioRegion()},
	})
}

func leUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
