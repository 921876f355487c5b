// Package replacement provides the victim-selection policies of the paging
// engine.
package replacement

import (
	"strings"

	"github.com/oslab-sim/ossim/mem/vm"
	"github.com/oslab-sim/ossim/sim"
)

// Kind enumerates the built-in policies.
type Kind int

// The policies available from configuration.
const (
	FIFO Kind = iota
	LRU
)

func (k Kind) String() string {
	switch k {
	case FIFO:
		return "FIFO"
	case LRU:
		return "LRU"
	}

	return "unknown"
}

// ParseKind resolves a policy name coming from configuration.
func ParseKind(name string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "FIFO":
		return FIFO, nil
	case "LRU":
		return LRU, nil
	}

	return FIFO, &sim.ConfigError{
		Param:  "replacement policy",
		Value:  name,
		Reason: `want "FIFO" or "LRU"`,
	}
}

// A Policy ranks resident frames for eviction. Policies see frame lifecycle
// notifications only; the paging engine owns the page tables and the frame
// pool.
type Policy interface {
	// Loaded tells the policy that a fresh page was loaded into the frame.
	// A frame is reported at most once per residency.
	Loaded(frame vm.FrameID)

	// Touched tells the policy that the page in the frame was hit.
	Touched(frame vm.FrameID)

	// Forget drops the frame from consideration. Forgetting an untracked
	// frame is a no-op.
	Forget(frame vm.FrameID)

	// SelectVictim removes and returns the next frame to evict. The bool
	// return value is false when no frame is tracked.
	SelectVictim() (vm.FrameID, bool)

	// Len returns the number of frames tracked.
	Len() int
}

// New creates a policy of the given kind.
func New(kind Kind) Policy {
	switch kind {
	case FIFO:
		return NewFIFO()
	case LRU:
		return NewLRU()
	}

	panic("unknown replacement policy kind")
}
