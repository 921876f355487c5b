package sched

import (
	"github.com/oslab-sim/ossim/mem/paging"
	"github.com/oslab-sim/ossim/mem/vm"
	"github.com/oslab-sim/ossim/sim"
)

// HookPosTick marks the end of one tick, idle or not.
var HookPosTick = &sim.HookPos{Name: "Tick"}

// HookPosDispatch marks a process moving from the ready queue to the CPU.
var HookPosDispatch = &sim.HookPos{Name: "Dispatch"}

// HookPosPreempt marks a quantum expiry returning a process to the queue.
var HookPosPreempt = &sim.HookPos{Name: "Preempt"}

// HookPosComplete marks a process retiring.
var HookPosComplete = &sim.HookPos{Name: "Complete"}

// A TickEvent describes one tick of CPU time. Time is the value of the
// clock after the tick, so the first tick of a run carries Time 1.
type TickEvent struct {
	Time        sim.VTime
	PID         vm.PID
	ProcessName string
	Instruction string
	Remaining   int

	// QuantumLeft counts the units left in the current quantum after
	// the tick, or -1 when the algorithm does not preempt.
	QuantumLeft int

	// Access is the memory access the executed unit made, nil on idle
	// ticks and on runs without a memory system.
	Access *paging.AddressAccessResult
}

// Idle reports whether the tick executed no process.
func (e TickEvent) Idle() bool {
	return e.PID == ""
}

// A DispatchEvent describes a process taking the CPU at time Time.
type DispatchEvent struct {
	Time        sim.VTime
	PID         vm.PID
	ProcessName string
	Remaining   int
}

// A PreemptEvent describes a quantum expiry at time Time.
type PreemptEvent struct {
	Time        sim.VTime
	PID         vm.PID
	ProcessName string
	Remaining   int
}
