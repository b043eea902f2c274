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

// Kind identifies a single instruction of the CHIP-8 set.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindSys          // 0NNN
	KindCls          // 00E0
	KindRet          // 00EE
	KindJump         // 1NNN
	KindCall         // 2NNN
	KindSkipEqNN     // 3XNN
	KindSkipNeNN     // 4XNN
	KindSkipEqY      // 5XY0
	KindLoadNN       // 6XNN
	KindAddNN        // 7XNN
	KindLoadY        // 8XY0
	KindOr           // 8XY1
	KindAnd          // 8XY2
	KindXor          // 8XY3
	KindAddY         // 8XY4
	KindSub          // 8XY5
	KindShr          // 8XY6
	KindSubn         // 8XY7
	KindShl          // 8XYE
	KindSkipNeY      // 9XY0
	KindLoadI        // ANNN
	KindJumpV0       // BNNN
	KindRnd          // CXNN
	KindDraw         // DXYN
	KindSkipKey      // EX9E
	KindSkipNoKey    // EXA1
	KindLoadDelay    // FX07
	KindWaitKey      // FX0A
	KindSetDelay     // FX15
	KindSetSound     // FX18
	KindAddI         // FX1E
	KindGlyph        // FX29
	KindBCD          // FX33
	KindStore        // FX55
	KindRestore      // FX65

	kindCount
)

// Instruction is a decoded opcode: its kind plus every operand field.
type Instruction struct {
	Kind Kind
	X    uint8
	Y    uint8
	N    uint8
	NN   uint8
	NNN  uint16
}

// families decodes by the top nibble of the opcode. Families with a single
// member map straight to their kind.
var families = [16]func(Opcode) Kind{
	0x0: decodeSystem,
	0x1: only(KindJump),
	0x2: only(KindCall),
	0x3: only(KindSkipEqNN),
	0x4: only(KindSkipNeNN),
	0x5: lowNibbleZero(KindSkipEqY),
	0x6: only(KindLoadNN),
	0x7: only(KindAddNN),
	0x8: decodeALU,
	0x9: lowNibbleZero(KindSkipNeY),
	0xA: only(KindLoadI),
	0xB: only(KindJumpV0),
	0xC: only(KindRnd),
	0xD: only(KindDraw),
	0xE: byLowByte(map[uint8]Kind{
		0x9E: KindSkipKey,
		0xA1: KindSkipNoKey,
	}),
	0xF: byLowByte(map[uint8]Kind{
		0x07: KindLoadDelay,
		0x0A: KindWaitKey,
		0x15: KindSetDelay,
		0x18: KindSetSound,
		0x1E: KindAddI,
		0x29: KindGlyph,
		0x33: KindBCD,
		0x55: KindStore,
		0x65: KindRestore,
	}),
}

var aluKinds = [16]Kind{
	0x0: KindLoadY,
	0x1: KindOr,
	0x2: KindAnd,
	0x3: KindXor,
	0x4: KindAddY,
	0x5: KindSub,
	0x6: KindShr,
	0x7: KindSubn,
	0xE: KindShl,
}

func only(k Kind) func(Opcode) Kind {
	return func(Opcode) Kind { return k }
}

func lowNibbleZero(k Kind) func(Opcode) Kind {
	return func(o Opcode) Kind {
		if o.n() != 0 {
			return KindInvalid
		}
		return k
	}
}

func byLowByte(kinds map[uint8]Kind) func(Opcode) Kind {
	return func(o Opcode) Kind {
		return kinds[o.nn()] // missing entries yield KindInvalid
	}
}

func decodeSystem(o Opcode) Kind {
	switch uint16(o) {
	case 0x00E0:
		return KindCls
	case 0x00EE:
		return KindRet
	default:
		return KindSys
	}
}

func decodeALU(o Opcode) Kind {
	return aluKinds[o.n()]
}

// Decode classifies an opcode and extracts its operand fields. It does not
// touch any processor state.
func Decode(o Opcode) (Instruction, error) {
	kind := families[o.kind()](o)
	if kind == KindInvalid {
		return Instruction{}, &OpcodeError{Opcode: o}
	}

	return Instruction{
		Kind: kind,
		X:    o.x(),
		Y:    o.y(),
		N:    o.n(),
		NN:   o.nn(),
		NNN:  o.nnn(),
	}, nil
}
