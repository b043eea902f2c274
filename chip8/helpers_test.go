package chip8

import (
	"math/rand/v2"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/senojj/emul8/byteconv"
)

// load returns a processor running the given instruction words.
func load(t *testing.T, words ...uint16) *Processor {
	t.Helper()

	p := New(WithRand(rand.New(rand.NewPCG(1, 2))))
	program := make([]byte, 0, len(words)*2)
	for _, w := range words {
		hi, lo := byteconv.Split(w)
		program = append(program, hi, lo)
	}
	assert.NoError(t, p.Load(program))
	return p
}

// run executes n steps that must all succeed and returns the combined flags.
func run(t *testing.T, p *Processor, n int) uint8 {
	t.Helper()

	var info uint8
	for range n {
		i, err := p.Step()
		assert.NoError(t, err)
		info |= i
	}
	return info
}
