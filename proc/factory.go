package proc

import (
	"fmt"
	"math/rand"

	"github.com/oslab-sim/ossim/mem/vm"
	"github.com/oslab-sim/ossim/sim"
)

// A Factory builds processes with consistent IDs, a consistent page size,
// and deterministic synthetic reference sequences. The zero seed of
// MakeFactory makes two identically-configured factories produce identical
// processes.
type Factory struct {
	idGen        sim.IDGenerator
	log2PageSize uint64
	rng          *rand.Rand
}

// MakeFactory creates a Factory with default parameters.
func MakeFactory() Factory {
	return Factory{
		idGen:        sim.NewSequentialIDGenerator(),
		log2PageSize: vm.DefaultLog2PageSize,
		rng:          rand.New(rand.NewSource(1)),
	}
}

// WithIDGenerator sets the generator that assigns process IDs.
func (f Factory) WithIDGenerator(g sim.IDGenerator) Factory {
	f.idGen = g
	return f
}

// WithLog2PageSize sets the page size, as a power of two.
func (f Factory) WithLog2PageSize(n uint64) Factory {
	f.log2PageSize = n
	return f
}

// WithSeed reseeds the source of synthetic reference sequences.
func (f Factory) WithSeed(seed int64) Factory {
	f.rng = rand.New(rand.NewSource(seed))
	return f
}

// New creates a process with a synthetic reference sequence: one reference
// per burst unit, walking the memory image with a preference for staying on
// nearby pages.
func (f Factory) New(name string, burstUnits, sizeKB int) (*Process, error) {
	p, err := f.newBare(name, burstUnits, sizeKB)
	if err != nil {
		return nil, err
	}

	p.refs = f.synthesize(p.numPages, burstUnits)

	return p, nil
}

// NewWithPageRefs creates a process that touches the given pages in order,
// at offset zero of each page.
func (f Factory) NewWithPageRefs(
	name string,
	burstUnits, sizeKB int,
	pageRefs []uint64,
) (*Process, error) {
	p, err := f.newBare(name, burstUnits, sizeKB)
	if err != nil {
		return nil, err
	}

	addrs := make([]uint64, 0, len(pageRefs))
	for _, page := range pageRefs {
		if page >= p.numPages {
			return nil, &sim.ConfigError{
				Param:  "page reference",
				Value:  fmt.Sprintf("%d", page),
				Reason: fmt.Sprintf("process %s has %d pages", name, p.numPages),
			}
		}
		addrs = append(addrs, page<<f.log2PageSize)
	}
	p.refs = addrs

	return p, nil
}

// NewWithAddrRefs creates a process that touches the given virtual
// addresses in order.
func (f Factory) NewWithAddrRefs(
	name string,
	burstUnits, sizeKB int,
	addrs []uint64,
) (*Process, error) {
	p, err := f.newBare(name, burstUnits, sizeKB)
	if err != nil {
		return nil, err
	}

	for _, addr := range addrs {
		if vm.PageNumOf(addr, f.log2PageSize) >= p.numPages {
			return nil, &sim.ConfigError{
				Param:  "address reference",
				Value:  vm.FormatAddress(addr),
				Reason: fmt.Sprintf("process %s has %d pages", name, p.numPages),
			}
		}
	}
	p.refs = append([]uint64(nil), addrs...)

	return p, nil
}

// NewFromInstructions creates a process whose burst is one unit per named
// instruction, with a synthetic reference sequence of matching length.
func (f Factory) NewFromInstructions(
	name string,
	sizeKB int,
	instructions []string,
) (*Process, error) {
	p, err := f.New(name, len(instructions), sizeKB)
	if err != nil {
		return nil, err
	}

	p.instructions = append([]string(nil), instructions...)

	return p, nil
}

func (f Factory) newBare(name string, burstUnits, sizeKB int) (*Process, error) {
	if burstUnits <= 0 {
		return nil, &sim.ConfigError{
			Param:  "burst",
			Value:  fmt.Sprintf("%d", burstUnits),
			Reason: "must be at least 1 time unit",
		}
	}

	if sizeKB <= 0 {
		return nil, &sim.ConfigError{
			Param:  "process size",
			Value:  fmt.Sprintf("%d", sizeKB),
			Reason: "must be at least 1 KB",
		}
	}

	p := &Process{
		id:           vm.PID("P" + f.idGen.Generate()),
		name:         name,
		burstTotal:   burstUnits,
		remaining:    burstUnits,
		sizeKB:       sizeKB,
		numPages:     vm.NumPagesFor(uint64(sizeKB)*1024, f.log2PageSize),
		log2PageSize: f.log2PageSize,
		pageTable:    vm.NewPageTable(),
		state:        Ready,
	}

	return p, nil
}

// Reference sequences favor locality: roughly seven out of ten references
// stay within one page of the previous one.
func (f Factory) synthesize(numPages uint64, n int) []uint64 {
	refs := make([]uint64, 0, n)
	pageSize := uint64(1) << f.log2PageSize

	page := uint64(f.rng.Intn(int(numPages)))
	for i := 0; i < n; i++ {
		if i > 0 {
			if f.rng.Float64() < 0.7 {
				next := int64(page) + int64(f.rng.Intn(3)-1)
				if next < 0 {
					next = 0
				}
				if next >= int64(numPages) {
					next = int64(numPages) - 1
				}
				page = uint64(next)
			} else {
				page = uint64(f.rng.Intn(int(numPages)))
			}
		}

		offset := uint64(f.rng.Intn(int(pageSize)))
		refs = append(refs, page<<f.log2PageSize|offset)
	}

	return refs
}
