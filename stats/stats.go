// Package stats aggregates what a simulation run produced.
package stats

import (
	"github.com/oslab-sim/ossim/mem/vm"
	"github.com/oslab-sim/ossim/sim"
)

// A CompletionRecord captures one process reaching the end of its burst.
type CompletionRecord struct {
	PID        vm.PID
	Name       string
	Completion sim.VTime
	Turnaround sim.VTime
	Waiting    sim.VTime
	Hits       uint64
	Faults     uint64
}

// A Run aggregates the numbers of one simulation run. The tick loop is the
// only writer; read the aggregate after the run, or between ticks.
type Run struct {
	records         []CompletionRecord
	totalTurnaround sim.VTime
	totalWaiting    sim.VTime
	hits            uint64
	faults          uint64
	contextSwitches int
}

// NewRun creates an empty aggregate.
func NewRun() *Run {
	return &Run{}
}

// RecordCompletion adds one finished process to the aggregate.
func (r *Run) RecordCompletion(rec CompletionRecord) {
	r.records = append(r.records, rec)
	r.totalTurnaround += rec.Turnaround
	r.totalWaiting += rec.Waiting
	r.hits += rec.Hits
	r.faults += rec.Faults
}

// RecordContextSwitch counts one preemption.
func (r *Run) RecordContextSwitch() {
	r.contextSwitches++
}

// Completed returns how many processes finished so far.
func (r *Run) Completed() int {
	return len(r.records)
}

// Records returns the completions in completion order.
func (r *Run) Records() []CompletionRecord {
	return append([]CompletionRecord(nil), r.records...)
}

// AverageTurnaround returns the mean turnaround over the completed
// processes, or 0 when nothing completed.
func (r *Run) AverageTurnaround() float64 {
	if len(r.records) == 0 {
		return 0
	}

	return float64(r.totalTurnaround) / float64(len(r.records))
}

// AverageWaiting returns the mean waiting time over the completed
// processes, or 0 when nothing completed.
func (r *Run) AverageWaiting() float64 {
	if len(r.records) == 0 {
		return 0
	}

	return float64(r.totalWaiting) / float64(len(r.records))
}

// OverallHitRatio returns hits over all recorded accesses, or 0 when the
// run made no memory accesses.
func (r *Run) OverallHitRatio() float64 {
	total := r.hits + r.faults
	if total == 0 {
		return 0
	}

	return float64(r.hits) / float64(total)
}

// ContextSwitches returns how many preemptions the run counted.
func (r *Run) ContextSwitches() int {
	return r.contextSwitches
}

// Reset empties the aggregate for another run.
func (r *Run) Reset() {
	*r = Run{}
}
