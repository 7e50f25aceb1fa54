package terminal

import (
	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrochip8/internal/keypad"
)

// holdTracker emulates key releases. Terminals only report key presses, so a
// key counts as held for a number of frames after its last press event.
type holdTracker struct {
	frames    int
	remaining [keypad.Keys]int
}

func newHoldTracker(frames int) *holdTracker {
	return &holdTracker{frames: frames}
}

// press marks the key as held and returns whether it was released before.
func (h *holdTracker) press(key byte) bool {
	released := h.remaining[key] == 0
	h.remaining[key] = h.frames
	return released
}

// advance counts down one frame and returns release events for all keys
// whose hold time expired.
func (h *holdTracker) advance() []host.KeyEvent {
	var events []host.KeyEvent
	for key, remaining := range h.remaining {
		if remaining == 0 {
			continue
		}
		h.remaining[key]--
		if h.remaining[key] == 0 {
			events = append(events, host.KeyEvent{Key: byte(key)})
		}
	}
	return events
}
