package scheduler

import (
	"math"
	"testing"
	"time"

	"github.com/nullrefgames/wgslhost/engine/assets"
	"github.com/nullrefgames/wgslhost/engine/hostblock"
	"github.com/nullrefgames/wgslhost/engine/wgsl"
)

// fakeVideo is a minimal assets.VideoSource double for exercising
// VideoControl/VideoQuery without a real demuxer.
type fakeVideo struct {
	playCalls, pauseCalls, stopCalls int
	seekTo                           time.Duration
	current, duration                time.Duration
	paused                           bool
}

func (f *fakeVideo) CurrentFrame() ([]byte, uint32, uint32, bool) { return nil, 0, 0, false }
func (f *fakeVideo) Play()                                        { f.playCalls++; f.paused = false }
func (f *fakeVideo) Pause()                                       { f.pauseCalls++; f.paused = true }
func (f *fakeVideo) Stop()                                        { f.stopCalls++ }
func (f *fakeVideo) Seek(t time.Duration)                         { f.seekTo = t }
func (f *fakeVideo) CurrentTime() time.Duration                   { return f.current }
func (f *fakeVideo) Duration() time.Duration                      { return f.duration }
func (f *fakeVideo) Paused() bool                                 { return f.paused }

func newTestScheduler(m *wgsl.Manifest, videos []assets.VideoSource) *Scheduler {
	return &Scheduler{
		program: &Program{
			manifest: m,
			block:    hostblock.New(m),
			loaded:   &assets.LoadedAssets{Videos: videos},
		},
	}
}

func TestSetOSCWritesNamedSlot(t *testing.T) {
	m := &wgsl.Manifest{OSCParams: []string{"bass", "treble"}}
	s := newTestScheduler(m, nil)

	if err := s.SetOSC("treble", 0.5); err != nil {
		t.Fatalf("SetOSC: %v", err)
	}

	region := s.program.block.OSCRegion()
	got := leUint32(region[4:])
	want := math.Float32bits(0.5)
	if got != want {
		t.Errorf("osc slot 1 = %#x, want %#x", got, want)
	}
}

func TestSetOSCUnknownNameErrors(t *testing.T) {
	m := &wgsl.Manifest{OSCParams: []string{"bass"}}
	s := newTestScheduler(m, nil)

	if err := s.SetOSC("missing", 1); err == nil {
		t.Fatal("expected error for unknown OSC parameter")
	}
}

func TestVideoControlDispatchesToSource(t *testing.T) {
	v := &fakeVideo{}
	s := newTestScheduler(&wgsl.Manifest{}, []assets.VideoSource{v})

	if err := s.VideoControl(0, VideoPlay, 0); err != nil {
		t.Fatalf("VideoControl play: %v", err)
	}
	if v.playCalls != 1 {
		t.Errorf("playCalls = %d, want 1", v.playCalls)
	}

	if err := s.VideoControl(0, VideoSeek, 2*time.Second); err != nil {
		t.Fatalf("VideoControl seek: %v", err)
	}
	if v.seekTo != 2*time.Second {
		t.Errorf("seekTo = %v, want 2s", v.seekTo)
	}
}

func TestVideoControlOutOfRangeErrors(t *testing.T) {
	s := newTestScheduler(&wgsl.Manifest{}, nil)
	if err := s.VideoControl(0, VideoPlay, 0); err == nil {
		t.Fatal("expected error for out-of-range video index")
	}
}

func TestVideoQueryReportsSourceState(t *testing.T) {
	v := &fakeVideo{current: time.Second, duration: 10 * time.Second, paused: true}
	s := newTestScheduler(&wgsl.Manifest{}, []assets.VideoSource{v})

	status, err := s.VideoQuery(0)
	if err != nil {
		t.Fatalf("VideoQuery: %v", err)
	}
	if status.CurrentTime != time.Second || status.Duration != 10*time.Second || !status.Paused {
		t.Errorf("status = %+v, want {1s 10s true}", status)
	}
}
