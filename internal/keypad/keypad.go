// Package keypad implements the state of the 16 key hexadecimal CHIP-8 keypad.
package keypad

import (
	"errors"
	"fmt"
)

// Keys is the number of logical keys, indexed 0x0-0xF.
const Keys = 16

// ErrInvalidKey is returned for key indexes above 0xF.
var ErrInvalidKey = errors.New("invalid key index")

// Keypad holds the pressed state of every logical key. It is written by the
// input layer and read by the key instructions.
type Keypad struct {
	pressed [Keys]bool
}

// SetKey sets the pressed state of a key.
func (k *Keypad) SetKey(index byte, pressed bool) error {
	if index >= Keys {
		return fmt.Errorf("setting key %d: %w", index, ErrInvalidKey)
	}
	k.pressed[index] = pressed
	return nil
}

// IsPressed returns whether the key is pressed, unknown keys are never pressed.
func (k *Keypad) IsPressed(index byte) bool {
	if index >= Keys {
		return false
	}
	return k.pressed[index]
}

// FirstPressed returns the lowest index of all pressed keys.
func (k *Keypad) FirstPressed() (byte, bool) {
	for i, pressed := range k.pressed {
		if pressed {
			return byte(i), true
		}
	}
	return 0, false
}

// Reset releases all keys.
func (k *Keypad) Reset() {
	k.pressed = [Keys]bool{}
}
