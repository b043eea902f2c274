/*
 * Copyright 2026 Joshua Jones <joshua.jones.software@gmail.com>
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      www.apache.org
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package chip8

import "github.com/senojj/emul8/byteconv"

// Opcode is a 16bit instruction word, high byte first in memory.
type Opcode uint16

func (o Opcode) kind() uint8 {
	return uint8((uint16(o) & 0xF000) >> 12)
}

func (o Opcode) x() uint8 {
	return uint8((uint16(o) & 0x0F00) >> 8)
}

func (o Opcode) y() uint8 {
	return uint8((uint16(o) & 0x00F0) >> 4)
}

func (o Opcode) n() uint8 {
	return uint8(uint16(o) & 0x000F)
}

func (o Opcode) nn() uint8 {
	return uint8(uint16(o) & 0x00FF)
}

func (o Opcode) nnn() uint16 {
	return uint16(o) & 0x0FFF
}

func u16toh(i uint16, n int) string {
	return byteconv.Hex(i, n)
}

func u8toh(i uint8, n int) string {
	return byteconv.Hex(uint16(i), n)
}

func vx(in Instruction) string {
	return "V" + u8toh(in.X, 1)
}

func vy(in Instruction) string {
	return "V" + u8toh(in.Y, 1)
}

// String returns the mnemonic form of the opcode. Words that do not decode
// are rendered as data.
func (op Opcode) String() string {
	in, err := Decode(op)
	if err != nil {
		return "DW " + u16toh(uint16(op), 4)
	}

	switch in.Kind {
	case KindSys:
		return "SYS " + u16toh(in.NNN, 3)
	case KindCls:
		return "CLS"
	case KindRet:
		return "RET"
	case KindJump:
		return "JP " + u16toh(in.NNN, 3)
	case KindCall:
		return "CALL " + u16toh(in.NNN, 3)
	case KindSkipEqNN:
		return "SE " + vx(in) + ", " + u8toh(in.NN, 2)
	case KindSkipNeNN:
		return "SNE " + vx(in) + ", " + u8toh(in.NN, 2)
	case KindSkipEqY:
		return "SE " + vx(in) + ", " + vy(in)
	case KindLoadNN:
		return "LD " + vx(in) + ", " + u8toh(in.NN, 2)
	case KindAddNN:
		return "ADD " + vx(in) + ", " + u8toh(in.NN, 2)
	case KindLoadY:
		return "LD " + vx(in) + ", " + vy(in)
	case KindOr:
		return "OR " + vx(in) + ", " + vy(in)
	case KindAnd:
		return "AND " + vx(in) + ", " + vy(in)
	case KindXor:
		return "XOR " + vx(in) + ", " + vy(in)
	case KindAddY:
		return "ADD " + vx(in) + ", " + vy(in)
	case KindSub:
		return "SUB " + vx(in) + ", " + vy(in)
	case KindShr:
		return "SHR " + vx(in)
	case KindSubn:
		return "SUBN " + vx(in) + ", " + vy(in)
	case KindShl:
		return "SHL " + vx(in)
	case KindSkipNeY:
		return "SNE " + vx(in) + ", " + vy(in)
	case KindLoadI:
		return "LD I, " + u16toh(in.NNN, 3)
	case KindJumpV0:
		return "JP V0, " + u16toh(in.NNN, 3)
	case KindRnd:
		return "RND " + vx(in) + ", " + u8toh(in.NN, 2)
	case KindDraw:
		return "DRW " + vx(in) + ", " + vy(in) + ", " + u8toh(in.N, 1)
	case KindSkipKey:
		return "SKP " + vx(in)
	case KindSkipNoKey:
		return "SKNP " + vx(in)
	case KindLoadDelay:
		return "LD " + vx(in) + ", DT"
	case KindWaitKey:
		return "LD " + vx(in) + ", K"
	case KindSetDelay:
		return "LD DT, " + vx(in)
	case KindSetSound:
		return "LD ST, " + vx(in)
	case KindAddI:
		return "ADD I, " + vx(in)
	case KindGlyph:
		return "LD F, " + vx(in)
	case KindBCD:
		return "LD B, " + vx(in)
	case KindStore:
		return "LD [I], " + vx(in)
	case KindRestore:
		return "LD " + vx(in) + ", [I]"
	}
	return "DW " + u16toh(uint16(op), 4)
}
