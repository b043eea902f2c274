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

// handler executes one decoded instruction. A handler either completes and
// leaves the program counter on the next instruction, or returns an error
// without having changed any state.
type handler func(p *Processor, in Instruction, info *uint8) error

var handlers = [kindCount]handler{
	KindSys:       noOperation,
	KindCls:       clearScreen,
	KindRet:       returnFromSubroutine,
	KindJump:      jumpToLocation,
	KindCall:      callSubroutine,
	KindSkipEqNN:  stepIfXEqualsNN,
	KindSkipNeNN:  stepIfXNotEqualsNN,
	KindSkipEqY:   stepIfXEqualsY,
	KindLoadNN:    setXToNN,
	KindAddNN:     addNNToX,
	KindLoadY:     setXToY,
	KindOr:        orXY,
	KindAnd:       andXY,
	KindXor:       xorXY,
	KindAddY:      addXY,
	KindSub:       subtractYFromX,
	KindShr:       shiftRightX,
	KindSubn:      subtractXFromY,
	KindShl:       shiftLeftX,
	KindSkipNeY:   stepIfXNotEqualsY,
	KindLoadI:     setIToNNN,
	KindJumpV0:    jumpWithOffset,
	KindRnd:       setXToRandom,
	KindDraw:      drawSprite,
	KindSkipKey:   stepIfKeyDown,
	KindSkipNoKey: stepIfKeyUp,
	KindLoadDelay: setXToDelay,
	KindWaitKey:   pauseUntilKeyPressed,
	KindSetDelay:  setDelayToX,
	KindSetSound:  setSoundToX,
	KindAddI:      addXToI,
	KindGlyph:     setIToSymbol,
	KindBCD:       binaryCodedDecimal,
	KindStore:     setRegistersToMemory,
	KindRestore:   setMemoryToRegisters,
}

const instructionSize = 2

func (p *Processor) next() {
	p.pc += instructionSize
}

func (p *Processor) skipIf(cond bool) {
	if cond {
		p.pc += instructionSize
	}
	p.pc += instructionSize
}

func noOperation(p *Processor, _ Instruction, _ *uint8) error {
	// 0NNN called native routines on the COSMAC VIP; there are none here.
	p.next()
	return nil
}

func clearScreen(p *Processor, _ Instruction, info *uint8) error {
	p.display.clear()
	*info |= Redraw
	p.next()
	return nil
}

func callSubroutine(p *Processor, in Instruction, _ *uint8) error {
	if p.sp >= len(p.stack) {
		return ErrStackOverflow
	}
	p.stack[p.sp] = p.pc
	p.sp++
	p.pc = in.NNN
	return nil
}

func returnFromSubroutine(p *Processor, _ Instruction, _ *uint8) error {
	if p.sp == 0 {
		return ErrStackUnderflow
	}
	p.sp--
	p.pc = p.stack[p.sp]
	p.next()
	return nil
}

func jumpToLocation(p *Processor, in Instruction, _ *uint8) error {
	p.pc = in.NNN
	return nil
}

func jumpWithOffset(p *Processor, in Instruction, _ *uint8) error {
	p.pc = in.NNN + uint16(p.v[0x0])
	return nil
}

func stepIfXEqualsNN(p *Processor, in Instruction, _ *uint8) error {
	p.skipIf(p.v[in.X] == in.NN)
	return nil
}

func stepIfXNotEqualsNN(p *Processor, in Instruction, _ *uint8) error {
	p.skipIf(p.v[in.X] != in.NN)
	return nil
}

func stepIfXEqualsY(p *Processor, in Instruction, _ *uint8) error {
	p.skipIf(p.v[in.X] == p.v[in.Y])
	return nil
}

func stepIfXNotEqualsY(p *Processor, in Instruction, _ *uint8) error {
	p.skipIf(p.v[in.X] != p.v[in.Y])
	return nil
}

func setXToNN(p *Processor, in Instruction, _ *uint8) error {
	p.v[in.X] = in.NN
	p.next()
	return nil
}

func addNNToX(p *Processor, in Instruction, _ *uint8) error {
	// Wraps; the carry flag is left alone.
	p.v[in.X] += in.NN
	p.next()
	return nil
}

func setXToY(p *Processor, in Instruction, _ *uint8) error {
	p.v[in.X] = p.v[in.Y]
	p.next()
	return nil
}

func orXY(p *Processor, in Instruction, _ *uint8) error {
	p.v[in.X] |= p.v[in.Y]
	p.next()
	return nil
}

func andXY(p *Processor, in Instruction, _ *uint8) error {
	p.v[in.X] &= p.v[in.Y]
	p.next()
	return nil
}

func xorXY(p *Processor, in Instruction, _ *uint8) error {
	p.v[in.X] ^= p.v[in.Y]
	p.next()
	return nil
}

// The arithmetic and shift handlers compute both results from the operands
// as read, then write VF before VX. When X is F the result wins over the flag.

func addXY(p *Processor, in Instruction, _ *uint8) error {
	sum := uint16(p.v[in.X]) + uint16(p.v[in.Y])
	p.v[CarryFlag] = flag(sum > 0xFF)
	p.v[in.X] = byte(sum)
	p.next()
	return nil
}

func subtractYFromX(p *Processor, in Instruction, _ *uint8) error {
	x, y := p.v[in.X], p.v[in.Y]
	p.v[CarryFlag] = flag(x >= y)
	p.v[in.X] = x - y
	p.next()
	return nil
}

func subtractXFromY(p *Processor, in Instruction, _ *uint8) error {
	x, y := p.v[in.X], p.v[in.Y]
	p.v[CarryFlag] = flag(x <= y)
	p.v[in.X] = y - x
	p.next()
	return nil
}

func shiftRightX(p *Processor, in Instruction, _ *uint8) error {
	x := p.v[in.X]
	p.v[CarryFlag] = x & 0x1
	p.v[in.X] = x >> 1
	p.next()
	return nil
}

func shiftLeftX(p *Processor, in Instruction, _ *uint8) error {
	x := p.v[in.X]
	p.v[CarryFlag] = (x & 0x80) >> 7
	p.v[in.X] = x << 1
	p.next()
	return nil
}

func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func setIToNNN(p *Processor, in Instruction, _ *uint8) error {
	p.i = in.NNN
	p.next()
	return nil
}

func setXToRandom(p *Processor, in Instruction, _ *uint8) error {
	// The random byte is never zero.
	randomByte := byte(p.rand.UintN(0xFF) + 1)
	p.v[in.X] = randomByte & in.NN
	p.next()
	return nil
}

func drawSprite(p *Processor, in Instruction, info *uint8) error {
	sprite, err := p.span(p.i, int(in.N))
	if err != nil {
		return err
	}

	collision := p.display.draw(p.v[in.X], p.v[in.Y], sprite)
	p.v[CarryFlag] = flag(collision)
	*info |= Redraw
	p.next()
	return nil
}

func stepIfKeyDown(p *Processor, in Instruction, _ *uint8) error {
	p.skipIf(p.keypad.Pressed(p.v[in.X]))
	return nil
}

func stepIfKeyUp(p *Processor, in Instruction, _ *uint8) error {
	p.skipIf(!p.keypad.Pressed(p.v[in.X]))
	return nil
}

func setXToDelay(p *Processor, in Instruction, _ *uint8) error {
	p.v[in.X] = p.delay
	p.next()
	return nil
}

func pauseUntilKeyPressed(p *Processor, in Instruction, _ *uint8) error {
	// The program counter stays on this instruction until a key arrives.
	p.state = AwaitingKey
	p.target = in.X
	return nil
}

func setDelayToX(p *Processor, in Instruction, _ *uint8) error {
	p.delay = p.v[in.X]
	p.next()
	return nil
}

func setSoundToX(p *Processor, in Instruction, _ *uint8) error {
	p.sound = p.v[in.X]
	p.next()
	return nil
}

func addXToI(p *Processor, in Instruction, _ *uint8) error {
	// No wrapping to the address space; an out of range I faults on use.
	p.i += uint16(p.v[in.X])
	p.next()
	return nil
}

func setIToSymbol(p *Processor, in Instruction, _ *uint8) error {
	digit := uint16(p.v[in.X] & 0x0F)
	p.i = FontStartAddress + digit*glyphHeight
	p.next()
	return nil
}

func binaryCodedDecimal(p *Processor, in Instruction, _ *uint8) error {
	dst, err := p.span(p.i, 3)
	if err != nil {
		return err
	}

	val := p.v[in.X]
	dst[0] = val / 100       // Hundreds
	dst[1] = (val / 10) % 10 // Tens
	dst[2] = val % 10        // Ones
	p.next()
	return nil
}

func setRegistersToMemory(p *Processor, in Instruction, _ *uint8) error {
	dst, err := p.span(p.i, int(in.X)+1)
	if err != nil {
		return err
	}
	copy(dst, p.v[:int(in.X)+1])
	p.next()
	return nil
}

func setMemoryToRegisters(p *Processor, in Instruction, _ *uint8) error {
	src, err := p.span(p.i, int(in.X)+1)
	if err != nil {
		return err
	}
	copy(p.v[:int(in.X)+1], src)
	p.next()
	return nil
}
