package emul8

import (
	"bufio"
	"fmt"
	"io"

	"github.com/senojj/emul8/byteconv"
	"github.com/senojj/emul8/chip8"
)

// Disassemble writes a listing of program as loaded at the program start
// address, one instruction word per line. A trailing odd byte is listed as
// data.
func Disassemble(w io.Writer, program []byte) error {
	bw := bufio.NewWriter(w)

	for offset := 0; offset < len(program); offset += 2 {
		addr := chip8.ProgramStartAddress + offset

		if offset+1 >= len(program) {
			fmt.Fprintf(bw, "%03X: %02X    DB %02X\n", addr, program[offset], program[offset])
			break
		}

		op := chip8.Opcode(byteconv.Word(program[offset], program[offset+1]))
		fmt.Fprintf(bw, "%03X: %04X  %s\n", addr, uint16(op), op)
	}

	return bw.Flush()
}
