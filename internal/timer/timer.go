// Package timer implements the CHIP-8 delay and sound countdown timers.
package timer

// Rate is the frequency in Hz that Tick is intended to be called at.
const Rate = 60

// Timers holds the delay and sound counters.
// They are decremented only by Tick, independent of the instruction rate.
type Timers struct {
	delay uint8
	sound uint8
}

// Tick decrements both timers by one, stopping at zero.
func (t *Timers) Tick() {
	if t.delay > 0 {
		t.delay--
	}
	if t.sound > 0 {
		t.sound--
	}
}

// Delay returns the delay timer value.
func (t *Timers) Delay() uint8 {
	return t.delay
}

// SetDelay sets the delay timer value.
func (t *Timers) SetDelay(value uint8) {
	t.delay = value
}

// Sound returns the sound timer value.
func (t *Timers) Sound() uint8 {
	return t.sound
}

// SetSound sets the sound timer value.
func (t *Timers) SetSound(value uint8) {
	t.sound = value
}

// SoundActive returns whether a tone should currently be played.
func (t *Timers) SoundActive() bool {
	return t.sound > 0
}

// Reset sets both timers to zero.
func (t *Timers) Reset() {
	t.delay = 0
	t.sound = 0
}
