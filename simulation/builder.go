package simulation

import (
	"time"

	"github.com/rs/xid"

	"github.com/oslab-sim/ossim/datarecording"
	"github.com/oslab-sim/ossim/mem/paging"
	"github.com/oslab-sim/ossim/mem/replacement"
	"github.com/oslab-sim/ossim/mem/vm"
	"github.com/oslab-sim/ossim/monitoring"
	"github.com/oslab-sim/ossim/sched"
	"github.com/oslab-sim/ossim/sim"
	"github.com/oslab-sim/ossim/tracing"
)

// Builder can be used to build a simulation.
type Builder struct {
	algorithm    sched.Algorithm
	timeQuantum  int
	totalFrames  int
	policy       replacement.Kind
	log2PageSize uint64
	tickDelay    time.Duration

	monitorOn      bool
	monitorPort    int
	browserOn      bool
	outputFileName string
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		algorithm:    sched.FCFS,
		timeQuantum:  3,
		totalFrames:  16,
		policy:       replacement.FIFO,
		log2PageSize: vm.DefaultLog2PageSize,
		monitorOn:    true,
	}
}

// WithAlgorithm sets the scheduling algorithm of the simulation.
func (b Builder) WithAlgorithm(a sched.Algorithm) Builder {
	b.algorithm = a
	return b
}

// WithTimeQuantum sets the time quantum used by round-robin scheduling.
func (b Builder) WithTimeQuantum(q int) Builder {
	b.timeQuantum = q
	return b
}

// WithTotalFrames sets the number of physical frames.
func (b Builder) WithTotalFrames(n int) Builder {
	b.totalFrames = n
	return b
}

// WithReplacementPolicy sets the page replacement policy.
func (b Builder) WithReplacementPolicy(kind replacement.Kind) Builder {
	b.policy = kind
	return b
}

// WithLog2PageSize sets the page size of the simulated memory.
func (b Builder) WithLog2PageSize(n uint64) Builder {
	b.log2PageSize = n
	return b
}

// WithTickDelay inserts a real-time delay after every tick, for watching a
// run live.
func (b Builder) WithTickDelay(d time.Duration) Builder {
	b.tickDelay = d
	return b
}

// WithoutMonitoring sets the simulation to not use monitoring.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithBrowserLaunch makes the monitor open the monitoring page in the
// default browser.
func (b Builder) WithBrowserLaunch() Builder {
	b.browserOn = true
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.monitorOn && b.browserOn {
		panic("browser launch requires monitoring")
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		compNameIndex: make(map[string]int),
	}

	s.id = xid.New().String()

	outputPath := b.outputFileName
	if outputPath == "" {
		outputPath = "ossim_" + s.id
	}
	s.dataRecorder = datarecording.New(outputPath)
	s.execLogger = datarecording.NewExecLogger(s.dataRecorder)
	s.execLogger.Start()

	ctrl := sim.NewController()

	s.memory = paging.MakeBuilder().
		WithTotalFrames(b.totalFrames).
		WithReplacementPolicy(b.policy).
		WithLog2PageSize(b.log2PageSize).
		Build("MemoryManager")

	s.scheduler = sched.MakeBuilder().
		WithAlgorithm(b.algorithm).
		WithTimeQuantum(b.timeQuantum).
		WithMemorySystem(s.memory).
		WithTickDelay(b.tickDelay).
		WithController(ctrl).
		Build("Scheduler")

	s.dbTracer = tracing.NewDBTracer(s.scheduler, s.dataRecorder)
	tracing.CollectTrace(s.scheduler, s.dbTracer)
	tracing.CollectTrace(s.memory, s.dbTracer)

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}
		if b.browserOn {
			s.monitor.WithBrowserLaunch()
		}

		s.monitor.RegisterEngine(s.scheduler)
		s.monitor.RegisterController(ctrl)
		s.monitor.RegisterScheduler(s.scheduler)
		s.monitor.RegisterMemory(s.memory)
		s.monitor.StartServer()
	}

	s.RegisterComponent(s.scheduler)
	s.RegisterComponent(s.memory)

	return s
}
