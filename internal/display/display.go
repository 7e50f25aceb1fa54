// Package display implements the 64x32 monochrome CHIP-8 display surface.
package display

const (
	// Width is the number of pixel columns.
	Width = 64
	// Height is the number of pixel rows.
	Height = 32
)

// Frame is a copy of the pixel matrix, indexed by row and then column.
type Frame [Height][Width]bool

// Surface is the read-only view of the display handed to presentation layers.
type Surface interface {
	// Pixel returns whether the pixel at the given coordinates is set.
	// Coordinates outside the surface wrap around.
	Pixel(x, y int) bool
	// Frame returns a copy of the current pixel matrix.
	Frame() Frame
	// Generation returns a counter that changes whenever the surface is mutated.
	Generation() uint64
}

var _ Surface = (*Display)(nil)

// Display is the pixel matrix, mutated only by the clear and draw instructions.
type Display struct {
	pixels     Frame
	generation uint64
}

// New returns a cleared display.
func New() *Display {
	return &Display{}
}

// Clear unsets all pixels.
func (d *Display) Clear() {
	d.pixels = Frame{}
	d.generation++
}

// DrawSprite XORs the sprite rows onto the surface with the top left corner at x, y.
// Each byte is one row of 8 pixels, most significant bit leftmost. Pixels that
// fall outside the surface wrap around to the opposite edge.
// The returned collision flag is set if any pixel changed from set to unset.
func (d *Display) DrawSprite(x, y byte, sprite []byte) bool {
	collision := false

	for row, bits := range sprite {
		py := (int(y) + row) % Height
		for col := range 8 {
			if bits&(0x80>>col) == 0 {
				continue
			}

			px := (int(x) + col) % Width
			if d.pixels[py][px] {
				collision = true
			}
			d.pixels[py][px] = !d.pixels[py][px]
		}
	}

	d.generation++
	return collision
}

// Pixel returns whether the pixel at the given coordinates is set.
func (d *Display) Pixel(x, y int) bool {
	return d.pixels[wrap(y, Height)][wrap(x, Width)]
}

// Frame returns a copy of the current pixel matrix.
func (d *Display) Frame() Frame {
	return d.pixels
}

// Generation returns a counter that changes whenever the surface is mutated.
func (d *Display) Generation() uint64 {
	return d.generation
}

func wrap(value, size int) int {
	value %= size
	if value < 0 {
		value += size
	}
	return value
}
