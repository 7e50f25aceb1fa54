package host

import (
	"bufio"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/display"
)

const (
	pixelOn  = '#'
	pixelOff = '.'
)

// Headless is a frontend without input that discards all frames.
type Headless struct{}

// Poll returns no events.
func (Headless) Poll() ([]KeyEvent, bool, error) {
	return nil, false, nil
}

// Present does nothing.
func (Headless) Present(display.Surface, bool) error {
	return nil
}

// WriteFrame writes the display surface as text, one line per row.
func WriteFrame(w io.Writer, screen display.Surface) error {
	buf := bufio.NewWriter(w)
	frame := screen.Frame()
	for _, row := range frame {
		for _, pixel := range row {
			c := byte(pixelOff)
			if pixel {
				c = pixelOn
			}
			if err := buf.WriteByte(c); err != nil {
				return fmt.Errorf("writing pixel: %w", err)
			}
		}
		if err := buf.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing line end: %w", err)
		}
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("flushing frame: %w", err)
	}
	return nil
}
