// Package simulation assembles the scheduler, the memory manager, recording,
// tracing, and monitoring into one runnable system.
package simulation

import (
	"github.com/oslab-sim/ossim/datarecording"
	"github.com/oslab-sim/ossim/mem/paging"
	"github.com/oslab-sim/ossim/monitoring"
	"github.com/oslab-sim/ossim/sched"
	"github.com/oslab-sim/ossim/sim"
	"github.com/oslab-sim/ossim/tracing"
)

// A Simulation provides the services required to define a simulation.
type Simulation struct {
	id string

	scheduler *sched.Comp
	memory    *paging.Comp

	dataRecorder datarecording.DataRecorder
	execLogger   *datarecording.ExecLogger
	monitor      *monitoring.Monitor
	dbTracer     *tracing.DBTracer

	components    []sim.Component
	compNameIndex map[string]int

	terminated bool
}

// ID returns the unique ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// GetEngine returns the engine that drives the simulation.
func (s *Simulation) GetEngine() sim.Engine {
	return s.scheduler
}

// GetScheduler returns the CPU scheduler of the simulation.
func (s *Simulation) GetScheduler() *sched.Comp {
	return s.scheduler
}

// GetMemory returns the memory manager of the simulation.
func (s *Simulation) GetMemory() *paging.Comp {
	return s.memory
}

// GetDataRecorder returns the data recorder used in the simulation.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// GetMonitor returns the monitor used in the simulation. It is nil when
// monitoring is disabled.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// GetDBTracer returns the tracer that records the run into the database.
func (s *Simulation) GetDBTracer() *tracing.DBTracer {
	return s.dbTracer
}

// RegisterComponent registers a component with the simulation.
func (s *Simulation) RegisterComponent(c sim.Component) {
	compName := c.Name()
	if _, ok := s.compNameIndex[compName]; ok {
		panic("component " + compName + " already registered")
	}

	s.components = append(s.components, c)
	s.compNameIndex[compName] = len(s.components) - 1

	if s.monitor != nil {
		s.monitor.RegisterComponent(c)
	}
}

// Components returns all the components registered with the simulation.
func (s *Simulation) Components() []sim.Component {
	return s.components
}

// GetComponentByName returns the component with the given name.
func (s *Simulation) GetComponentByName(name string) sim.Component {
	return s.components[s.compNameIndex[name]]
}

// Terminate invokes the end-of-simulation handlers, seals the execution
// log, and closes the recorder. Terminating twice is a no-op.
func (s *Simulation) Terminate() {
	if s.terminated {
		return
	}
	s.terminated = true

	s.scheduler.Finished()
	s.execLogger.End()
	s.dataRecorder.Close()
}
