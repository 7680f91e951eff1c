package scheduler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/nullrefgames/wgslhost/engine/hostblock"
)

// SetOSC writes an OSC parameter directly, bypassing the network listener.
// Used by an embedder or CLI flag to drive a named or indexed OSC slot
// without standing up a UDP sender (§6.6's runtime control surface).
func (s *Scheduler) SetOSC(name string, value float32) error {
	p := s.program
	idx := -1
	for i, n := range p.manifest.OSCParams {
		if n == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		if n, err := strconv.Atoi(name); err == nil && n >= 0 && n < hostblock.OSCSlotCount {
			idx = n
		}
	}
	if idx < 0 {
		return fmt.Errorf("unknown OSC parameter %q", name)
	}
	p.block.WriteOSC(idx, value)
	return nil
}

// VideoAction identifies a transport command for VideoControl.
type VideoAction int

const (
	VideoPlay VideoAction = iota
	VideoPause
	VideoStop
	VideoSeek
)

// VideoControl drives a registered video's transport (§6.6), e.g. restarting
// a looping background video or seeking to a cue point.
func (s *Scheduler) VideoControl(index int, action VideoAction, seekTo time.Duration) error {
	videos := s.program.loaded.Videos
	if index < 0 || index >= len(videos) {
		return fmt.Errorf("video index %d out of range (have %d)", index, len(videos))
	}
	src := videos[index]
	switch action {
	case VideoPlay:
		src.Play()
	case VideoPause:
		src.Pause()
	case VideoStop:
		src.Stop()
	case VideoSeek:
		src.Seek(seekTo)
	default:
		return fmt.Errorf("unknown video action %d", action)
	}
	return nil
}

// VideoStatus is a point-in-time readout of a video's transport state.
type VideoStatus struct {
	CurrentTime time.Duration
	Duration    time.Duration
	Paused      bool
}

// VideoQuery reports a registered video's current transport state.
func (s *Scheduler) VideoQuery(index int) (VideoStatus, error) {
	videos := s.program.loaded.Videos
	if index < 0 || index >= len(videos) {
		return VideoStatus{}, fmt.Errorf("video index %d out of range (have %d)", index, len(videos))
	}
	src := videos[index]
	return VideoStatus{
		CurrentTime: src.CurrentTime(),
		Duration:    src.Duration(),
		Paused:      src.Paused(),
	}, nil
}
