// Package terminal implements a termbox based frontend that renders the
// display in a text terminal and reads the keypad from the keyboard.
package terminal

import (
	"fmt"

	"github.com/nsf/termbox-go"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/host"
)

const (
	cellWidth = 2 // terminal cells per pixel
	eventBuf  = 64

	statusLine = "Esc: quit  keys: 1234 qwer asdf zxcv"
	soundLabel = "  [BEEP]"
)

// Terminal is a host.Frontend drawing into the terminal.
type Terminal struct {
	events  chan termbox.Event
	done    chan struct{}
	stopped chan struct{}
	hold    *holdTracker

	poll      func() termbox.Event
	interrupt func()

	screen display.Surface // last presented surface, redrawn on resize
	sound  bool
}

// New initializes the terminal. Key presses are reported as held for
// holdFrames frames. Close must be called to restore the terminal.
func New(holdFrames int) (*Terminal, error) {
	if err := termbox.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}
	termbox.SetInputMode(termbox.InputEsc)

	t := newTerminal(holdFrames)
	go t.pollEvents()
	return t, nil
}

func newTerminal(holdFrames int) *Terminal {
	return &Terminal{
		events:    make(chan termbox.Event, eventBuf),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
		hold:      newHoldTracker(holdFrames),
		poll:      termbox.PollEvent,
		interrupt: termbox.Interrupt,
	}
}

// pollEvents forwards the blocking termbox event polling into the event
// channel. It only returns on the interrupt event, events received after
// stop are dropped.
func (t *Terminal) pollEvents() {
	defer close(t.stopped)

	for {
		event := t.poll()
		if event.Type == termbox.EventInterrupt {
			return
		}

		select {
		case t.events <- event:
		case <-t.done:
		}
	}
}

// stop ends the event polling and waits for the polling goroutine to return.
func (t *Terminal) stop() {
	close(t.done)
	t.interrupt()
	<-t.stopped
}

// Close stops the event polling and restores the terminal.
func (t *Terminal) Close() {
	t.stop()
	termbox.Close()
}

// Poll returns key events received since the last frame, including the
// emulated releases of keys whose hold time expired.
func (t *Terminal) Poll() ([]host.KeyEvent, bool, error) {
	events := t.hold.advance()

	for {
		select {
		case event := <-t.events:
			switch event.Type {
			case termbox.EventKey:
				if event.Key == termbox.KeyEsc || event.Key == termbox.KeyCtrlC {
					return events, true, nil
				}
				key, ok := KeyIndex(event.Ch)
				if ok && t.hold.press(key) {
					events = append(events, host.KeyEvent{Key: key, Pressed: true})
				}

			case termbox.EventResize:
				if t.screen != nil {
					if err := t.Present(t.screen, t.sound); err != nil {
						return events, false, err
					}
				}

			case termbox.EventError:
				return events, false, fmt.Errorf("terminal event: %w", event.Err)
			}

		default:
			return events, false, nil
		}
	}
}

// Present draws the display surface followed by a status line.
func (t *Terminal) Present(screen display.Surface, sound bool) error {
	t.screen = screen
	t.sound = sound

	if err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		return fmt.Errorf("clearing terminal: %w", err)
	}

	frame := screen.Frame()
	for y, row := range frame {
		for x, pixel := range row {
			color := termbox.ColorDefault
			if pixel {
				color = termbox.ColorWhite
			}
			for i := range cellWidth {
				termbox.SetCell(x*cellWidth+i, y, ' ', termbox.ColorDefault, color)
			}
		}
	}

	status := statusLine
	if sound {
		status += soundLabel
	}
	for i, ch := range []rune(status) {
		termbox.SetCell(i, display.Height, ch, termbox.ColorDefault, termbox.ColorDefault)
	}

	if err := termbox.Flush(); err != nil {
		return fmt.Errorf("flushing terminal: %w", err)
	}
	return nil
}
