package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/oslab-sim/ossim/mem/replacement"
	"github.com/oslab-sim/ossim/monitoring"
	"github.com/oslab-sim/ossim/proc"
	"github.com/oslab-sim/ossim/sched"
	"github.com/oslab-sim/ossim/sim"
	"github.com/oslab-sim/ossim/simulation"
	"github.com/oslab-sim/ossim/tracing"
)

var (
	runAlgo     string
	runQuantum  int
	runFrames   int
	runPolicy   string
	runPageLog2 uint64
	runProcs    []string
	runRefs     string
	runSeed     int64
	runDelay    time.Duration
	runMonitor  bool
	runPort     int
	runOpen     bool
	runOutput   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a free-form workload",
	Long: `Run a workload described on the command line. Every process is
given as name:burst:sizeKB; with a single process, an explicit page
reference string can replace the synthetic one. The run is always
recorded into a SQLite database.`,
	Example: `  ossim run --proc editor:12:16 --proc compiler:20:32
  ossim run --algo RR --quantum 2 --proc a:9:8 --proc b:7:8
  ossim run --proc walker:6:16 --refs 0,1,2,0,3,1 --frames 4 --policy LRU`,
	Run: func(cmd *cobra.Command, _ []string) {
		if !cmd.Flags().Changed("port") {
			runPort = monitorPortFromEnv()
		}

		runWorkload()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runAlgo, "algo", "FCFS",
		"scheduling algorithm, FCFS or RR")
	runCmd.Flags().IntVar(&runQuantum, "quantum", 3,
		"time quantum for RR")
	runCmd.Flags().IntVar(&runFrames, "frames", 16,
		"number of physical frames")
	runCmd.Flags().StringVar(&runPolicy, "policy", "FIFO",
		"page replacement policy, FIFO or LRU")
	runCmd.Flags().Uint64Var(&runPageLog2, "page-size-log2", 12,
		"page size as a power of two")
	runCmd.Flags().StringArrayVar(&runProcs, "proc", nil,
		"process as name:burst:sizeKB, repeatable")
	runCmd.Flags().StringVar(&runRefs, "refs", "",
		"page reference string, e.g. 0,1,2,0,3,1 (single process only)")
	runCmd.Flags().Int64Var(&runSeed, "seed", 1,
		"seed for synthetic reference sequences")
	runCmd.Flags().DurationVar(&runDelay, "delay", 0,
		"real-time delay per tick")
	runCmd.Flags().BoolVar(&runMonitor, "monitor", false,
		"serve the live state over HTTP")
	runCmd.Flags().IntVar(&runPort, "port", 0,
		"monitoring server port (0 picks a free port)")
	runCmd.Flags().BoolVar(&runOpen, "open", false,
		"open the monitoring page in the default browser")
	runCmd.Flags().StringVar(&runOutput, "db", "",
		"recording database name, without extension")
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func runWorkload() {
	algo, err := sched.ParseAlgorithm(runAlgo)
	if err != nil {
		fail(err)
	}

	kind, err := replacement.ParseKind(runPolicy)
	if err != nil {
		fail(err)
	}

	if algo == sched.RoundRobin {
		if err := validateQuantum(runQuantum); err != nil {
			fail(err)
		}
	}

	if err := validateFrames(runFrames); err != nil {
		fail(err)
	}

	if err := validateLog2PageSize(runPageLog2); err != nil {
		fail(err)
	}

	if err := validateProcCount(len(runProcs)); err != nil {
		fail(err)
	}

	specs := make([]procSpec, 0, len(runProcs))
	for _, raw := range runProcs {
		spec, err := parseProcSpec(raw)
		if err != nil {
			fail(err)
		}

		specs = append(specs, spec)
	}

	refs, err := parseRefs(runRefs)
	if err != nil {
		fail(err)
	}

	if refs != nil && len(specs) != 1 {
		fail(&sim.ConfigError{
			Param:  "refs",
			Value:  runRefs,
			Reason: "an explicit reference string needs exactly one process",
		})
	}

	builder := simulation.MakeBuilder().
		WithAlgorithm(algo).
		WithTimeQuantum(runQuantum).
		WithTotalFrames(runFrames).
		WithReplacementPolicy(kind).
		WithLog2PageSize(runPageLog2).
		WithTickDelay(runDelay)

	if runMonitor {
		if runPort > 0 {
			builder = builder.WithMonitorPort(runPort)
		}
		if runOpen {
			builder = builder.WithBrowserLaunch()
		}
	} else {
		builder = builder.WithoutMonitoring()
	}

	if runOutput != "" {
		builder = builder.WithOutputFileName(runOutput)
	}

	s := builder.Build()

	tracer := tracing.NewLogTracer(log.New(os.Stdout, "", 0))
	tracing.CollectTrace(s.GetScheduler(), tracer)
	tracing.CollectTrace(s.GetMemory(), tracer)

	factory := proc.MakeFactory().
		WithSeed(runSeed).
		WithLog2PageSize(runPageLog2)

	scheduler := s.GetScheduler()
	procs := make([]*proc.Process, 0, len(specs))
	for _, spec := range specs {
		var p *proc.Process
		var err error

		if refs != nil {
			p, err = factory.NewWithPageRefs(
				spec.name, spec.burst, spec.sizeKB, refs)
		} else {
			p, err = factory.New(spec.name, spec.burst, spec.sizeKB)
		}
		if err != nil {
			fail(err)
		}

		procs = append(procs, p)
		scheduler.Add(p)
	}

	var bar *monitoring.ProgressBar
	if mon := s.GetMonitor(); mon != nil {
		total := uint64(0)
		for _, p := range procs {
			total += uint64(p.BurstTotal())
		}

		bar = mon.CreateProgressBar("Burst units executed", total)
		scheduler.AcceptHook(&burstProgressHook{bar: bar})
	}

	printProcesses(os.Stdout, procs)
	fmt.Println("\nTick trace:")

	if err := scheduler.Run(); err != nil {
		fail(err)
	}

	if bar != nil {
		s.GetMonitor().CompleteProgressBar(bar)
	}

	printSummary(os.Stdout, scheduler.Statistics())
	printMemoryStatus(os.Stdout, s.GetMemory())

	s.Terminate()
}
