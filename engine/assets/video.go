package assets

import "time"

// VideoSource produces RGBA frames from a video file, decoded and demuxed
// externally (§1's "deliberately out of scope" list). The scheduler polls
// CurrentFrame once per frame (§4.7 step 3) and only re-uploads the GPU
// texture when changed is true.
type VideoSource interface {
	// CurrentFrame returns the most recently decoded frame. changed is
	// false if no new frame has been produced since the last call.
	CurrentFrame() (pixels []byte, width, height uint32, changed bool)

	Play()
	Pause()
	Stop()
	Seek(t time.Duration)

	CurrentTime() time.Duration
	Duration() time.Duration
	Paused() bool
}

// CameraSource produces RGBA frames from a camera device at its native
// size. Cameras have no playback controls; they simply stream.
type CameraSource interface {
	CurrentFrame() (pixels []byte, width, height uint32, changed bool)
}

// VideoOpener opens a video source for an asset path; the caller (the
// embedder/CLI) supplies the actual demuxer implementation, per §1's scope
// boundary.
type VideoOpener func(path string) (VideoSource, error)

// CameraOpener opens a camera device by index.
type CameraOpener func(device int) (CameraSource, error)

// blackFrameSource is the §4.4 fallback for a camera or video that failed
// to open: a single opaque black pixel, reported changed on the first call
// only so the scheduler uploads it once and then leaves it alone.
type blackFrameSource struct {
	width, height uint32
	delivered     bool
}

func (b *blackFrameSource) CurrentFrame() ([]byte, uint32, uint32, bool) {
	changed := !b.delivered
	b.delivered = true
	return []byte{0, 0, 0, 255}, b.width, b.height, changed
}
func (b *blackFrameSource) Play()                      {}
func (b *blackFrameSource) Pause()                     {}
func (b *blackFrameSource) Stop()                      {}
func (b *blackFrameSource) Seek(_ time.Duration)       {}
func (b *blackFrameSource) CurrentTime() time.Duration { return 0 }
func (b *blackFrameSource) Duration() time.Duration    { return 0 }
func (b *blackFrameSource) Paused() bool               { return true }
