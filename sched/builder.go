package sched

import (
	"log"
	"time"

	"github.com/oslab-sim/ossim/sim"
	"github.com/oslab-sim/ossim/stats"
)

// A Builder configures and creates schedulers.
type Builder struct {
	algorithm   Algorithm
	timeQuantum int
	memory      MemorySystem
	runStats    *stats.Run
	ctrl        *sim.Controller
	tickDelay   time.Duration
}

// MakeBuilder returns a Builder with FCFS defaults.
func MakeBuilder() Builder {
	return Builder{
		algorithm:   FCFS,
		timeQuantum: 3,
	}
}

// WithAlgorithm sets the scheduling algorithm.
func (b Builder) WithAlgorithm(a Algorithm) Builder {
	b.algorithm = a
	return b
}

// WithTimeQuantum sets the quantum, in ticks, used under RoundRobin.
func (b Builder) WithTimeQuantum(q int) Builder {
	b.timeQuantum = q
	return b
}

// WithMemorySystem attaches the memory system that resolves one
// reference per executed tick. Without one, ticks touch no memory.
func (b Builder) WithMemorySystem(m MemorySystem) Builder {
	b.memory = m
	return b
}

// WithStatistics shares an existing aggregate instead of the scheduler
// creating its own.
func (b Builder) WithStatistics(r *stats.Run) Builder {
	b.runStats = r
	return b
}

// WithController shares an existing controller, so that other parties,
// the monitor for one, can gate the run loop.
func (b Builder) WithController(c *sim.Controller) Builder {
	b.ctrl = c
	return b
}

// WithTickDelay slows the run loop by sleeping after every tick, for
// watching a simulation live.
func (b Builder) WithTickDelay(d time.Duration) Builder {
	b.tickDelay = d
	return b
}

// Build creates the scheduler.
func (b Builder) Build(name string) *Comp {
	if b.algorithm == RoundRobin && b.timeQuantum <= 0 {
		log.Panicf("time quantum %d must be positive", b.timeQuantum)
	}

	s := &Comp{
		ComponentBase: sim.NewComponentBase(name),
		algorithm:     b.algorithm,
		timeQuantum:   b.timeQuantum,
		queue:         &readyQueue{},
		memory:        b.memory,
		runStats:      b.runStats,
		ctrl:          b.ctrl,
		tickDelay:     b.tickDelay,
	}

	if s.runStats == nil {
		s.runStats = stats.NewRun()
	}

	if s.ctrl == nil {
		s.ctrl = sim.NewController()
	}

	return s
}
