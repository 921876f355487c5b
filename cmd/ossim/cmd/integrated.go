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
	integratedDelay     time.Duration
	integratedNoMonitor bool
	integratedPort      int
	integratedOpen      bool
	integratedOutput    string
)

var integratedCmd = &cobra.Command{
	Use:   "integrated",
	Short: "Run the full system: scheduling, paging, monitor, recording",
	Long: `Two instruction-labelled processes run under round-robin
scheduling with demand paging, while the monitor serves the live state
over HTTP and every tick is recorded into a SQLite database.`,
	Run: func(cmd *cobra.Command, _ []string) {
		if !cmd.Flags().Changed("port") {
			integratedPort = monitorPortFromEnv()
		}

		runIntegratedDemo()
	},
}

func init() {
	rootCmd.AddCommand(integratedCmd)
	integratedCmd.Flags().DurationVar(&integratedDelay, "delay",
		200*time.Millisecond, "real-time delay per tick")
	integratedCmd.Flags().BoolVar(&integratedNoMonitor, "no-monitor",
		false, "disable the monitoring server")
	integratedCmd.Flags().IntVar(&integratedPort, "port", 0,
		"monitoring server port (0 picks a free port)")
	integratedCmd.Flags().BoolVar(&integratedOpen, "open", false,
		"open the monitoring page in the default browser")
	integratedCmd.Flags().StringVar(&integratedOutput, "db", "",
		"recording database name, without extension")
}

func runIntegratedDemo() {
	printBanner(os.Stdout, "INTEGRATED SYSTEM DEMONSTRATION")

	builder := simulation.MakeBuilder().
		WithAlgorithm(sched.RoundRobin).
		WithTimeQuantum(3).
		WithTotalFrames(8).
		WithReplacementPolicy(replacement.FIFO).
		WithTickDelay(integratedDelay)

	if integratedNoMonitor {
		builder = builder.WithoutMonitoring()
	} else {
		if integratedPort > 0 {
			builder = builder.WithMonitorPort(integratedPort)
		}
		if integratedOpen {
			builder = builder.WithBrowserLaunch()
		}
	}

	if integratedOutput != "" {
		builder = builder.WithOutputFileName(integratedOutput)
	}

	s := builder.Build()

	tracer := tracing.NewLogTracer(log.New(os.Stdout, "", 0))
	tracing.CollectTrace(s.GetScheduler(), tracer)
	tracing.CollectTrace(s.GetMemory(), tracer)

	factory := proc.MakeFactory()

	processA, err := factory.NewFromInstructions("Process_A", 8, []string{
		"Initialize variables",
		"Load data from memory",
		"Perform calculations",
		"Process data array",
		"Update counters",
		"Check conditions",
		"Write results",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	processB, err := factory.NewFromInstructions("Process_B", 6, []string{
		"Open input file",
		"Read file contents",
		"Parse data",
		"Transform data",
		"Generate output",
		"Close file",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	scheduler := s.GetScheduler()
	scheduler.Add(processA)
	scheduler.Add(processB)

	var bar *monitoring.ProgressBar
	if mon := s.GetMonitor(); mon != nil {
		total := uint64(processA.BurstTotal() + processB.BurstTotal())
		bar = mon.CreateProgressBar("Burst units executed", total)
		scheduler.AcceptHook(&burstProgressHook{bar: bar})
	}

	printProcesses(os.Stdout, []*proc.Process{processA, processB})
	fmt.Println("\nTick trace:")

	if err := scheduler.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if bar != nil {
		s.GetMonitor().CompleteProgressBar(bar)
	}

	printSummary(os.Stdout, scheduler.Statistics())
	printMemoryStatus(os.Stdout, s.GetMemory())

	s.Terminate()
}

// A burstProgressHook advances a monitor progress bar by one for every tick
// that executed a process.
type burstProgressHook struct {
	bar *monitoring.ProgressBar
}

func (h *burstProgressHook) Func(ctx sim.HookCtx) {
	if ctx.Pos != sched.HookPosTick {
		return
	}

	if evt := ctx.Item.(sched.TickEvent); !evt.Idle() {
		h.bar.Increment(1)
	}
}
