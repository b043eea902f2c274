package chip8

import "sync/atomic"

const KeyCount = 16

// Keypad holds the state of the 16 hex keys. Hosts write it from their input
// goroutine; the processor only reads it.
type Keypad struct {
	keys [KeyCount]atomic.Bool
}

// Set records key as pressed or released. Only the low nibble of key is used.
func (k *Keypad) Set(key uint8, pressed bool) {
	k.keys[key&0x0F].Store(pressed)
}

func (k *Keypad) Pressed(key uint8) bool {
	return k.keys[key&0x0F].Load()
}

// First returns the lowest-numbered pressed key.
func (k *Keypad) First() (uint8, bool) {
	for i := range uint8(KeyCount) {
		if k.keys[i].Load() {
			return i, true
		}
	}
	return 0, false
}

// Release marks every key as released.
func (k *Keypad) Release() {
	for i := range k.keys {
		k.keys[i].Store(false)
	}
}
