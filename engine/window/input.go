package window

import "sync"

// Button indices for the host block's buttons[12] array. The dialect leaves
// the mapping open; this host follows the common small-engine convention of
// four d-pad directions, four face buttons, two shoulder buttons, and
// start/select, each backed by a keyboard key so the runtime works without a
// gamepad.
const (
	ButtonUp = iota
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonA
	ButtonB
	ButtonX
	ButtonY
	ButtonL
	ButtonR
	ButtonStart
	ButtonSelect
	ButtonCount
)

// InputState accumulates raw OS input events into the frame-stable snapshot
// the Frame Scheduler reads at the start of every frame (§4.7 step 1). All
// methods are safe for concurrent use; the wgslhost CLI delivers GLFW
// callbacks and runs the scheduler's Frame on the same main-loop thread.
type InputState struct {
	mu sync.Mutex

	buttons [ButtonCount]int32
	keys    [KeyCount]int32

	mouseX, mouseY         float32 // current pixel position
	mouseClickX, mouseClickY float32 // last press position; negated once released
	mouseDown              bool
}

// NewInputState creates a zeroed InputState.
func NewInputState() *InputState {
	return &InputState{}
}

// keyToButton maps a physical key index to a virtual button index, or -1 if
// the key is not bound to any button.
func keyToButton(keyIdx int) int {
	switch keyIdx {
	case KeyArrowUp, KeyW:
		return ButtonUp
	case KeyArrowDown, KeyS:
		return ButtonDown
	case KeyArrowLeft, KeyA:
		return ButtonLeft
	case KeyArrowRight, KeyD:
		return ButtonRight
	case KeyZ:
		return ButtonA
	case KeyX:
		return ButtonB
	case KeyC:
		return ButtonX
	case KeyV:
		return ButtonY
	case KeyQ:
		return ButtonL
	case KeyE:
		return ButtonR
	case KeyEnter:
		return ButtonStart
	case KeyShiftLeft, KeyShiftRight:
		return ButtonSelect
	default:
		return -1
	}
}

// OnKeyDown records a physical key press by its fixed keys[194] index.
func (s *InputState) OnKeyDown(keyIdx int) {
	if keyIdx < 0 || keyIdx >= KeyCount {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[keyIdx] = 1
	if b := keyToButton(keyIdx); b >= 0 {
		s.buttons[b] = 1
	}
}

// OnKeyUp records a physical key release by its fixed keys[194] index.
func (s *InputState) OnKeyUp(keyIdx int) {
	if keyIdx < 0 || keyIdx >= KeyCount {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[keyIdx] = 0
	if b := keyToButton(keyIdx); b >= 0 {
		s.buttons[b] = 0
	}
}

// OnMouseMove records the current mouse pixel position.
func (s *InputState) OnMouseMove(x, y float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mouseX, s.mouseY = x, y
	if s.mouseDown {
		s.mouseClickX, s.mouseClickY = x, y
	}
}

// OnMouseDown records a left-button press at the given position as the new
// "last click" position (mouse.zw, unnegated while held).
func (s *InputState) OnMouseDown(x, y float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mouseDown = true
	s.mouseClickX, s.mouseClickY = x, y
}

// OnMouseUp negates the stored click position, encoding "button released" in
// the sign of mouse.zw per §3's host-block contract.
func (s *InputState) OnMouseUp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mouseDown = false
	s.mouseClickX, s.mouseClickY = -absf(s.mouseClickX), -absf(s.mouseClickY)
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// Snapshot copies the current buttons, keys, and mouse state into caller-
// supplied buffers so the Frame Scheduler can upload them without touching
// InputState's lock again. buttons must have length >= ButtonCount and keys
// must have length >= KeyCount.
func (s *InputState) Snapshot(buttons []int32, keys []int32) (mouseX, mouseY, mouseZ, mouseW float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy(buttons, s.buttons[:])
	copy(keys, s.keys[:])
	return s.mouseX, s.mouseY, s.mouseClickX, s.mouseClickY
}
