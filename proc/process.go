// Package proc defines the simulated processes that the scheduler runs and
// the paging engine serves.
package proc

import (
	"errors"

	"github.com/oslab-sim/ossim/mem/vm"
	"github.com/oslab-sim/ossim/sim"
)

// State tracks where a process is in its lifecycle.
type State int

// A process rests in the ready queue, runs on the simulated CPU, or is done.
const (
	Ready State = iota
	Running
	Terminated
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	}

	return "unknown"
}

// ErrNoMoreReferences is reported by NextReference once the reference
// sequence is used up.
var ErrNoMoreReferences = errors.New("reference sequence exhausted")

// A Process is one simulated program: a CPU burst plus the memory image it
// touches while executing. Processes are built by a Factory.
//
// The tick loop is the only writer of a process.
type Process struct {
	id   vm.PID
	name string

	burstTotal int
	remaining  int

	sizeKB       int
	numPages     uint64
	log2PageSize uint64

	pageTable vm.PageTable

	refs         []uint64
	instructions []string
	cursor       int

	state State

	hits   uint64
	faults uint64

	// Per-run accounting, filled in by the scheduler.
	Arrival    sim.VTime
	Completion sim.VTime
	Turnaround sim.VTime
	Waiting    sim.VTime
}

// ID returns the process ID.
func (p *Process) ID() vm.PID {
	return p.id
}

// Name returns the human-readable name of the process.
func (p *Process) Name() string {
	return p.name
}

// BurstTotal returns the full CPU demand of the process, in time units.
func (p *Process) BurstTotal() int {
	return p.burstTotal
}

// Remaining returns how many units of burst are still to execute.
func (p *Process) Remaining() int {
	return p.remaining
}

// Executed returns how many units of burst have been executed so far.
func (p *Process) Executed() int {
	return p.burstTotal - p.remaining
}

// SizeKB returns the size of the memory image in kilobytes.
func (p *Process) SizeKB() int {
	return p.sizeKB
}

// NumPages returns the number of pages of the memory image.
func (p *Process) NumPages() uint64 {
	return p.numPages
}

// Log2PageSize returns the page size the process was built for.
func (p *Process) Log2PageSize() uint64 {
	return p.log2PageSize
}

// PageTable returns the page table of the process. The paging engine is the
// only writer of the table.
func (p *Process) PageTable() vm.PageTable {
	return p.pageTable
}

// State returns the scheduling state.
func (p *Process) State() State {
	return p.state
}

// SetState moves the process to another scheduling state.
func (p *Process) SetState(s State) {
	p.state = s
}

// NextReference consumes and returns the next virtual address the process
// touches. Nothing changes when the sequence is exhausted.
func (p *Process) NextReference() (uint64, error) {
	if p.cursor >= len(p.refs) {
		return 0, ErrNoMoreReferences
	}

	addr := p.refs[p.cursor]
	p.cursor++

	return addr, nil
}

// RefsRemaining returns how many references are left to consume.
func (p *Process) RefsRemaining() int {
	return len(p.refs) - p.cursor
}

// InstructionAt returns the label of the i-th burst unit, or an empty
// string when the process carries no labels.
func (p *Process) InstructionAt(i int) string {
	if i >= 0 && i < len(p.instructions) {
		return p.instructions[i]
	}

	return ""
}

// ExecuteOneUnit consumes one unit of burst. Remaining burst never drops
// below zero.
func (p *Process) ExecuteOneUnit() {
	if p.remaining > 0 {
		p.remaining--
	}
}

// Translate splits a virtual address into the page number and the in-page
// offset. Translation is pure; faults are the paging engine's business.
func (p *Process) Translate(vAddr uint64) (pageNum, offset uint64) {
	return vm.PageNumOf(vAddr, p.log2PageSize), vm.OffsetOf(vAddr, p.log2PageSize)
}

// RecordHit tallies a page hit against this process.
func (p *Process) RecordHit() {
	p.hits++
}

// RecordFault tallies a page fault against this process.
func (p *Process) RecordFault() {
	p.faults++
}

// Hits returns the page hits of this process so far.
func (p *Process) Hits() uint64 {
	return p.hits
}

// Faults returns the page faults of this process so far.
func (p *Process) Faults() uint64 {
	return p.faults
}

// HitRatio returns hits over total accesses, or 0 before any access.
func (p *Process) HitRatio() float64 {
	total := p.hits + p.faults
	if total == 0 {
		return 0
	}

	return float64(p.hits) / float64(total)
}

// ResetForNewRun restores the process so it can go through another run:
// full burst, references from the start, tallies and accounting cleared.
// Release the frames through the paging engine before resetting, as the
// page table forgets its mappings here.
func (p *Process) ResetForNewRun() {
	p.remaining = p.burstTotal
	p.cursor = 0
	p.hits = 0
	p.faults = 0
	p.state = Ready
	p.pageTable.Clear()
	p.Arrival = 0
	p.Completion = 0
	p.Turnaround = 0
	p.Waiting = 0
}
