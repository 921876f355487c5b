package paging

import (
	"github.com/oslab-sim/ossim/mem/physmem"
	"github.com/oslab-sim/ossim/mem/replacement"
	"github.com/oslab-sim/ossim/mem/vm"
	"github.com/oslab-sim/ossim/proc"
	"github.com/oslab-sim/ossim/sim"
)

// A Builder can build paging engines.
type Builder struct {
	totalFrames  int
	kind         replacement.Kind
	log2PageSize uint64
}

// MakeBuilder creates a builder with default parameters: 16 frames, FIFO
// replacement, 4 KiB pages.
func MakeBuilder() Builder {
	return Builder{
		totalFrames:  16,
		kind:         replacement.FIFO,
		log2PageSize: vm.DefaultLog2PageSize,
	}
}

// WithTotalFrames sets the size of the physical frame pool.
func (b Builder) WithTotalFrames(n int) Builder {
	b.totalFrames = n
	return b
}

// WithReplacementPolicy sets the policy that picks eviction victims.
func (b Builder) WithReplacementPolicy(kind replacement.Kind) Builder {
	b.kind = kind
	return b
}

// WithLog2PageSize sets the page size that the engine translates with, as a
// power of two.
func (b Builder) WithLog2PageSize(n uint64) Builder {
	b.log2PageSize = n
	return b
}

// Build returns a newly created paging engine.
func (b Builder) Build(name string) *Comp {
	c := new(Comp)
	c.ComponentBase = sim.NewComponentBase(name)

	c.memory = physmem.New(b.totalFrames)
	c.kind = b.kind
	c.policy = replacement.New(b.kind)
	c.log2PageSize = b.log2PageSize
	c.processes = make(map[vm.PID]*proc.Process)

	return c
}
