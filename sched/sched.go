// Package sched implements the CPU scheduler that drives the simulation.
//
// The scheduler owns the clock. Each tick selects a process, lets it make
// one memory reference when a memory system is attached, consumes one unit
// of its burst, and advances the clock. A process retires at the end of
// the tick that consumed its last unit, and completion always takes
// priority over a simultaneous quantum expiry.
package sched

import (
	"sync"
	"time"

	"github.com/oslab-sim/ossim/mem/paging"
	"github.com/oslab-sim/ossim/proc"
	"github.com/oslab-sim/ossim/sim"
	"github.com/oslab-sim/ossim/stats"
)

// Comp is the scheduler. It implements sim.Engine: Run drains the ready
// queue tick by tick, and the attached controller can pause, step, and
// stop the loop at tick boundaries.
//
// The run loop is the only writer of scheduler state. Read state through
// the accessors, after pausing when the loop is live.
type Comp struct {
	*sim.ComponentBase

	algorithm   Algorithm
	timeQuantum int

	queue       *readyQueue
	current     *proc.Process
	quantumLeft int

	clockLock sync.RWMutex
	clock     sim.VTime

	memory   MemorySystem
	runStats *stats.Run
	ctrl     *sim.Controller

	tickDelay time.Duration
	runLock   sync.Mutex

	simulationEndHandlers []sim.SimulationEndHandler
}

// Add admits a process to the tail of the ready queue. The process
// arrives at the current clock and is registered with the memory system
// when one is attached.
func (s *Comp) Add(p *proc.Process) {
	p.Arrival = s.CurrentTime()
	p.SetState(proc.Ready)

	if s.memory != nil {
		s.memory.Register(p)
	}

	s.queue.Push(p)
}

// Done reports whether no running or ready work remains.
func (s *Comp) Done() bool {
	return s.current == nil && s.queue.Len() == 0
}

// Tick advances the simulation by one unit of CPU time. With nothing to
// run the tick is idle and only the clock moves.
func (s *Comp) Tick() {
	s.selectProcess()

	if s.current == nil {
		now := s.advanceClock()
		s.invokeTickHook(TickEvent{Time: now, QuantumLeft: -1})

		return
	}

	evt := TickEvent{
		PID:         s.current.ID(),
		ProcessName: s.current.Name(),
		Instruction: s.current.InstructionAt(s.current.Executed()),
	}

	if s.memory != nil {
		evt.Access = s.reference()
	}

	s.current.ExecuteOneUnit()
	if s.algorithm == RoundRobin {
		s.quantumLeft--
	}

	evt.Time = s.advanceClock()
	evt.Remaining = s.current.Remaining()
	evt.QuantumLeft = s.quantumLeft
	s.invokeTickHook(evt)

	if s.shouldRetire() {
		s.retire()
	}
}

// selectProcess decides who runs this tick. A completed process never
// reaches this point, so a quantum expiry seen here is always a real
// preemption.
func (s *Comp) selectProcess() {
	if s.current != nil {
		if s.algorithm != RoundRobin || s.quantumLeft > 0 {
			return
		}

		s.preempt()
	}

	next := s.queue.Pop()
	if next == nil {
		return
	}

	s.dispatch(next)
}

func (s *Comp) preempt() {
	p := s.current

	p.SetState(proc.Ready)
	s.queue.Push(p)
	s.current = nil
	s.runStats.RecordContextSwitch()

	if s.NumHooks() > 0 {
		s.InvokeHook(sim.HookCtx{
			Domain: s,
			Pos:    HookPosPreempt,
			Item: PreemptEvent{
				Time:        s.CurrentTime(),
				PID:         p.ID(),
				ProcessName: p.Name(),
				Remaining:   p.Remaining(),
			},
		})
	}
}

func (s *Comp) dispatch(p *proc.Process) {
	p.SetState(proc.Running)
	s.current = p

	s.quantumLeft = -1
	if s.algorithm == RoundRobin {
		s.quantumLeft = s.timeQuantum
	}

	if s.NumHooks() > 0 {
		s.InvokeHook(sim.HookCtx{
			Domain: s,
			Pos:    HookPosDispatch,
			Item: DispatchEvent{
				Time:        s.CurrentTime(),
				PID:         p.ID(),
				ProcessName: p.Name(),
				Remaining:   p.Remaining(),
			},
		})
	}
}

// reference consumes the current process's next address and resolves it
// through the memory system. A process that ran out of references makes
// no access.
func (s *Comp) reference() *paging.AddressAccessResult {
	vAddr, err := s.current.NextReference()
	if err != nil {
		return nil
	}

	access := s.memory.AccessAddress(s.current, vAddr)

	return &access
}

func (s *Comp) shouldRetire() bool {
	if s.current.Remaining() == 0 {
		return true
	}

	return s.memory != nil && s.current.RefsRemaining() == 0
}

// retire finishes the current process: it leaves the CPU in state
// Terminated, its timing is sealed, its frames go back to the memory
// system, and the completion lands in the statistics.
func (s *Comp) retire() {
	p := s.current
	now := s.CurrentTime()

	p.SetState(proc.Terminated)
	p.Completion = now
	p.Turnaround = now - p.Arrival
	p.Waiting = p.Turnaround - sim.VTime(p.Executed())

	rec := stats.CompletionRecord{
		PID:        p.ID(),
		Name:       p.Name(),
		Completion: p.Completion,
		Turnaround: p.Turnaround,
		Waiting:    p.Waiting,
		Hits:       p.Hits(),
		Faults:     p.Faults(),
	}
	s.runStats.RecordCompletion(rec)

	if s.memory != nil {
		s.memory.DeallocateProcess(p)
	}

	s.current = nil

	if s.NumHooks() > 0 {
		s.InvokeHook(sim.HookCtx{
			Domain: s,
			Pos:    HookPosComplete,
			Item:   rec,
		})
	}
}

func (s *Comp) invokeTickHook(evt TickEvent) {
	if s.NumHooks() == 0 {
		return
	}

	s.InvokeHook(sim.HookCtx{
		Domain: s,
		Pos:    HookPosTick,
		Item:   evt,
	})
}

// Run drives ticks until no work remains or the controller stops the
// simulation. Pausing blocks the loop between ticks.
func (s *Comp) Run() error {
	s.runLock.Lock()
	defer s.runLock.Unlock()

	for !s.Done() {
		if !s.ctrl.AllowTick() {
			return nil
		}

		s.Tick()

		if s.tickDelay > 0 {
			time.Sleep(s.tickDelay)
		}
	}

	return nil
}

// Pause stops the run loop at the next tick boundary.
func (s *Comp) Pause() {
	s.ctrl.Pause()
}

// Continue resumes a paused run loop.
func (s *Comp) Continue() {
	s.ctrl.Continue()
}

// CurrentTime returns the clock, the number of ticks run so far.
func (s *Comp) CurrentTime() sim.VTime {
	s.clockLock.RLock()
	t := s.clock
	s.clockLock.RUnlock()

	return t
}

func (s *Comp) advanceClock() sim.VTime {
	s.clockLock.Lock()
	s.clock++
	t := s.clock
	s.clockLock.Unlock()

	return t
}

// RegisterSimulationEndHandler registers a handler to run when the
// simulation declares itself finished.
func (s *Comp) RegisterSimulationEndHandler(handler sim.SimulationEndHandler) {
	s.simulationEndHandlers = append(s.simulationEndHandlers, handler)
}

// Finished should be called after the simulation ends. It calls all the
// registered SimulationEndHandlers.
func (s *Comp) Finished() {
	now := s.CurrentTime()
	for _, h := range s.simulationEndHandlers {
		h.Handle(now)
	}
}

// Algorithm returns the configured scheduling algorithm.
func (s *Comp) Algorithm() Algorithm {
	return s.algorithm
}

// TimeQuantum returns the configured quantum, meaningful under
// RoundRobin only.
func (s *Comp) TimeQuantum() int {
	return s.timeQuantum
}

// Current returns the process on the CPU, or nil.
func (s *Comp) Current() *proc.Process {
	return s.current
}

// ReadyProcesses returns the ready queue content, head first.
func (s *Comp) ReadyProcesses() []*proc.Process {
	return s.queue.Processes()
}

// Statistics returns the aggregate the scheduler records into.
func (s *Comp) Statistics() *stats.Run {
	return s.runStats
}

// Controller returns the controller gating the run loop.
func (s *Comp) Controller() *sim.Controller {
	return s.ctrl
}

// Reset returns the scheduler to an empty, time-zero state and empties
// the statistics. Processes and the memory system are not touched; reset
// them separately when reusing them.
func (s *Comp) Reset() {
	s.queue.Clear()
	s.current = nil
	s.quantumLeft = 0

	s.clockLock.Lock()
	s.clock = 0
	s.clockLock.Unlock()

	s.runStats.Reset()
}
