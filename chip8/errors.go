package chip8

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownOpcode     = errors.New("unknown opcode")
	ErrStackOverflow     = errors.New("stack overflow")
	ErrStackUnderflow    = errors.New("stack underflow")
	ErrAddressOutOfRange = errors.New("address out of range")
	ErrProgramTooLarge   = errors.New("program too large")
	ErrHalted            = errors.New("processor halted")
)

// OpcodeError reports a word that does not decode to any instruction.
type OpcodeError struct {
	Opcode Opcode
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("opcode 0x%04X: %v", uint16(e.Opcode), ErrUnknownOpcode)
}

func (e *OpcodeError) Unwrap() error {
	return ErrUnknownOpcode
}

// Fault is the condition that halted the processor. PC is the address of
// the instruction that was being executed.
type Fault struct {
	PC     uint16
	Opcode Opcode
	Err    error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("fault at 0x%03X (0x%04X): %v", f.PC, uint16(f.Opcode), f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// rangeError wraps ErrAddressOutOfRange with the offending address.
func rangeError(addr int) error {
	return fmt.Errorf("%w: 0x%X", ErrAddressOutOfRange, addr)
}

func programTooLarge(size int) error {
	return fmt.Errorf("%w: %d bytes, at most %d", ErrProgramTooLarge, size, MaxProgramSize)
}
