package sched

import (
	"github.com/oslab-sim/ossim/mem/paging"
	"github.com/oslab-sim/ossim/proc"
)

// A MemorySystem resolves the memory references that executed units make.
// The paging engine is the real implementation.
type MemorySystem interface {
	Register(p *proc.Process)
	AccessAddress(p *proc.Process, vAddr uint64) paging.AddressAccessResult
	DeallocateProcess(p *proc.Process)
}
