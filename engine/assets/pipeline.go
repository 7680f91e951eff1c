// Package assets implements the Asset Pipeline (§4.4): given a *wgsl.Manifest,
// it loads every referenced texture and model once at load time, opens the
// video/camera and sound collaborators the frame scheduler polls each
// frame, and decodes nothing per-frame itself. Texture and model decode run
// in parallel across a bounded worker pool since neither depends on the
// other; a failed required asset aborts the whole load, a failed optional
// one (camera, video) degrades to a placeholder.
package assets

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/nullrefgames/wgslhost/common"
	"github.com/nullrefgames/wgslhost/engine/resolver"
	"github.com/nullrefgames/wgslhost/engine/wgsl"
	"github.com/nullrefgames/wgslhost/internal/hosterr"
	"github.com/nullrefgames/wgslhost/internal/hostlog"
)

var log = hostlog.With("assets")

// LoadedAssets collects every decoded asset a manifest references, indexed
// to match the manifest's own ordering so the Binding Planner can zip them
// directly onto binding numbers.
type LoadedAssets struct {
	Textures []common.TextureStagingData
	Models   []*ModelData
	Sounds   [][]byte // raw encoded bytes; engine/audio owns decoding
	Videos   []VideoSource
	Cameras  []CameraSource
}

// decodeWorkerCount bounds the asset-decode worker pool. Load time is
// dominated by image/OBJ decode, which parallelizes well across a handful
// of workers without saturating disk I/O.
const decodeWorkerCount = 4

// Load runs the full asset pipeline for a preprocessed manifest: textures
// and models decode in parallel across a worker pool (§5 "may run in
// parallel worker tasks but must complete before the first frame is
// submitted"), sounds are read as raw bytes for engine/audio to decode, and
// video/camera sources are opened via the provided factories.
func Load(r resolver.Resolver, m *wgsl.Manifest, videoOpen VideoOpener, cameraOpen CameraOpener) (*LoadedAssets, error) {
	pool := worker.NewDynamicWorkerPool(decodeWorkerCount, 256, time.Second)

	out := &LoadedAssets{
		Textures: make([]common.TextureStagingData, len(m.Textures)),
		Models:   make([]*ModelData, len(m.Models)),
		Sounds:   make([][]byte, len(m.Sounds)),
	}

	var wg sync.WaitGroup
	errs := make([]error, 0, len(m.Textures)+len(m.Models)+len(m.Sounds))
	var errMu sync.Mutex
	reportErr := func(err error) {
		errMu.Lock()
		errs = append(errs, err)
		errMu.Unlock()
	}

	taskID := 0
	nextID := func() int { id := taskID; taskID++; return id }

	for i, path := range m.Textures {
		i, path := i, path
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: nextID(),
			Do: func() (any, error) {
				defer wg.Done()
				staging, err := loadTexture(r, path)
				if err != nil {
					reportErr(err)
					return nil, err
				}
				out.Textures[i] = staging
				return nil, nil
			},
		})
	}

	for i, path := range m.Models {
		i, path := i, path
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: nextID(),
			Do: func() (any, error) {
				defer wg.Done()
				data, err := r.ReadBytes(path)
				if err != nil {
					reportErr(err)
					return nil, err
				}
				model, err := ParseOBJ(path, data)
				if err != nil {
					reportErr(err)
					return nil, err
				}
				out.Models[i] = model
				return nil, nil
			},
		})
	}

	for i, path := range m.Sounds {
		i, path := i, path
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: nextID(),
			Do: func() (any, error) {
				defer wg.Done()
				data, err := r.ReadBytes(path)
				if err != nil {
					reportErr(hosterr.NewPath(hosterr.AssetNotFound, path, err))
					return nil, err
				}
				out.Sounds[i] = data
				return nil, nil
			},
		})
	}

	wg.Wait()
	if len(errs) > 0 {
		return nil, errs[0]
	}

	for _, path := range m.Videos {
		src, err := videoOpen(path)
		if err != nil {
			log.Warn().Str("path", path).Err(err).Msg("video source failed to open, substituting black frame")
			src = &blackFrameSource{width: 1, height: 1}
		}
		out.Videos = append(out.Videos, src)
	}

	for _, device := range m.Cameras {
		src, err := cameraOpen(device)
		if err != nil {
			log.Warn().Int("device", device).Err(err).Msg("camera failed to open, substituting black frame")
			src = &blackFrameSource{width: 1, height: 1}
		}
		out.Cameras = append(out.Cameras, src)
	}

	return out, nil
}

func loadTexture(r resolver.Resolver, path string) (common.TextureStagingData, error) {
	data, err := r.ReadBytes(path)
	if err != nil {
		return common.TextureStagingData{}, hosterr.NewPath(hosterr.AssetNotFound, path, err)
	}

	tex := &common.ImportedTexture{Path: path, Data: data}
	pixels, width, height, err := tex.Decode()
	if err != nil {
		return common.TextureStagingData{}, hosterr.NewPath(hosterr.ImageDecode, path, err)
	}
	return common.TextureStagingData{Pixels: pixels, Width: width, Height: height}, nil
}
