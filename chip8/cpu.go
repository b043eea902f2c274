package chip8

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/retroenv/retrogolib/log"
	"github.com/senojj/emul8/byteconv"
)

const (
	RegisterCount       = 16
	MemorySize          = 4096
	FontStartAddress    = 0x50
	ProgramStartAddress = 0x200
	MaxProgramSize      = MemorySize - ProgramStartAddress
	CarryFlag           = 0xF
	DefaultStackDepth   = 16

	TimerRate time.Duration = time.Second / 60 // 60hz

	glyphHeight = 5
)

// Step info flags.
const (
	Delay uint8 = 1 << iota
	Sound
	Redraw
)

// State is the execution state of the processor.
type State uint8

const (
	Running State = iota
	AwaitingKey
	Halted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case AwaitingKey:
		return "awaiting key"
	case Halted:
		return "halted"
	default:
		return "unknown"
	}
}

var fontSet = []byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Processor is a complete CHIP-8 machine. It is driven from a single
// goroutine; only the keypad may be written concurrently.
type Processor struct {
	memory  [MemorySize]byte
	v       [RegisterCount]byte
	keypad  Keypad
	display Display
	stack   []uint16
	sp      int
	pc      uint16
	i       uint16
	delay   uint8
	sound   uint8

	state  State
	target uint8 // register receiving the key while AwaitingKey
	fault  *Fault

	rand   *rand.Rand
	logger *log.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithStackDepth bounds the call stack. Calls beyond depth halt the
// processor with ErrStackOverflow.
func WithStackDepth(depth int) Option {
	return func(p *Processor) {
		if depth > 0 {
			p.stack = make([]uint16, depth)
		}
	}
}

// WithRand sets the source used by the random number instruction.
func WithRand(r *rand.Rand) Option {
	return func(p *Processor) {
		p.rand = r
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// New returns a reset processor with the font loaded and an empty program.
func New(opts ...Option) *Processor {
	p := &Processor{}
	for _, opt := range opts {
		opt(p)
	}

	if p.stack == nil {
		p.stack = make([]uint16, DefaultStackDepth)
	}
	if p.rand == nil {
		p.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	p.Reset()
	return p
}

// Reset clears memory, registers, stack, timers, display and keypad, reloads
// the font and points the program counter at the program start.
func (p *Processor) Reset() {
	p.memory = [MemorySize]byte{}
	p.v = [RegisterCount]byte{}
	p.keypad.Release()
	p.display = Display{}

	for i := range p.stack {
		p.stack[i] = 0
	}
	p.sp = 0
	p.pc = ProgramStartAddress
	p.i = 0
	p.delay = 0
	p.sound = 0

	p.state = Running
	p.target = 0
	p.fault = nil

	copy(p.memory[FontStartAddress:], fontSet)
}

// Load resets the processor and copies the program to the program start
// address. A program that does not fit leaves the processor untouched.
func (p *Processor) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return programTooLarge(len(program))
	}

	p.Reset()
	copy(p.memory[ProgramStartAddress:], program)

	// Hosts paint the blank screen of the new program.
	p.display.dirty = true

	if p.logger != nil {
		p.logger.Debug("Program loaded", log.Int("size", len(program)))
	}
	return nil
}

func (p *Processor) Display() *Display {
	return &p.display
}

func (p *Processor) Keypad() *Keypad {
	return &p.keypad
}

// SetKey is shorthand for p.Keypad().Set(key, value).
func (p *Processor) SetKey(key uint8, value bool) {
	p.keypad.Set(key, value)
}

func (p *Processor) ProgramCounter() uint16 {
	return p.pc
}

func (p *Processor) Index() uint16 {
	return p.i
}

func (p *Processor) Register(n uint8) byte {
	return p.v[n&0x0F]
}

func (p *Processor) StackDepth() int {
	return p.sp
}

func (p *Processor) Delay() uint8 {
	return p.delay
}

func (p *Processor) Sound() uint8 {
	return p.sound
}

func (p *Processor) State() State {
	return p.state
}

// Fault returns the condition that halted the processor, or nil.
func (p *Processor) Fault() *Fault {
	return p.fault
}

// Read copies memory starting at loc into data and returns the number of
// bytes copied.
func (p *Processor) Read(loc uint16, data []byte) int {
	if int(loc) >= MemorySize {
		return 0
	}
	return copy(data, p.memory[loc:])
}

// span returns memory[addr:addr+n] or an error when any byte of it lies
// outside of memory.
func (p *Processor) span(addr uint16, n int) ([]byte, error) {
	end := int(addr) + n
	if end > MemorySize {
		return nil, rangeError(end - 1)
	}
	return p.memory[addr:end], nil
}

// OpcodeAt returns the instruction word stored at offset.
func (p *Processor) OpcodeAt(offset uint16) (Opcode, error) {
	b, err := p.span(offset, instructionSize)
	if err != nil {
		return 0, err
	}

	// big endian: the high-order byte comes first
	return Opcode(byteconv.Word(b[0], b[1])), nil
}

// Step executes a single instruction, or polls the keypad when the
// processor is waiting for a key. The returned flags report a display update
// and which timers are active.
//
// Any error halts the processor; later steps fail with ErrHalted until the
// next Load or Reset.
func (p *Processor) Step() (uint8, error) {
	var info uint8

	switch p.state {
	case Halted:
		return 0, errors.Join(ErrHalted, p.fault)

	case AwaitingKey:
		if key, ok := p.keypad.First(); ok {
			p.v[p.target] = key
			p.state = Running
			p.next()
		}

	default:
		opcode, err := p.OpcodeAt(p.pc)
		if err != nil {
			return 0, p.halt(opcode, err)
		}

		in, err := Decode(opcode)
		if err != nil {
			return 0, p.halt(opcode, err)
		}

		if err := handlers[in.Kind](p, in, &info); err != nil {
			return 0, p.halt(opcode, err)
		}
	}

	if p.sound > 0 {
		info |= Sound
	}

	if p.delay > 0 {
		info |= Delay
	}
	return info, nil
}

func (p *Processor) halt(opcode Opcode, err error) error {
	p.state = Halted
	p.fault = &Fault{PC: p.pc, Opcode: opcode, Err: err}

	if p.logger != nil {
		p.logger.Error("Processor halted",
			log.String("pc", u16toh(p.pc, 3)),
			log.String("opcode", u16toh(uint16(opcode), 4)),
			log.Err(err))
	}
	return p.fault
}

// Batch summarizes a run of steps.
type Batch struct {
	Steps int
	Info  uint8 // flags of all executed steps combined
}

// StepBatch runs up to limit steps. It stops early after the first step that
// touched the display, so the host can present the frame promptly, and on
// the first error. A display left dirty by an earlier call does not hold the
// batch back; hosts present at the end of every frame.
func (p *Processor) StepBatch(limit int) (Batch, error) {
	var b Batch

	for b.Steps < limit {
		info, err := p.Step()
		if err != nil {
			return b, err
		}
		b.Steps++
		b.Info |= info

		if info&Redraw != 0 {
			break
		}
	}
	return b, nil
}

// TickTimers decrements the delay and sound timers once. It reports true
// when the sound timer reached zero on this tick.
func (p *Processor) TickTimers() bool {
	if p.delay > 0 {
		p.delay--
	}

	if p.sound > 0 {
		p.sound--
		return p.sound == 0
	}
	return false
}
