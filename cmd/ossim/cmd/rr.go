package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/oslab-sim/ossim/mem/paging"
	"github.com/oslab-sim/ossim/mem/replacement"
	"github.com/oslab-sim/ossim/proc"
	"github.com/oslab-sim/ossim/sched"
	"github.com/oslab-sim/ossim/tracing"
)

var rrDelay time.Duration

var rrCmd = &cobra.Command{
	Use:   "rr",
	Short: "Run the canned round-robin scenario",
	Long: `Process_A (20 units, 8 KB) and Process_B (17 units, 6 KB)
share the CPU under round-robin scheduling with a time quantum of 3,
backed by 8 physical frames under FIFO replacement. The run takes 37
ticks and counts 11 context switches.`,
	Run: func(_ *cobra.Command, _ []string) {
		runRRDemo()
	},
}

func init() {
	rootCmd.AddCommand(rrCmd)
	rrCmd.Flags().DurationVar(&rrDelay, "delay", 0,
		"real-time delay per tick, for watching the run live")
}

func runRRDemo() {
	printBanner(os.Stdout, "ROUND ROBIN SCHEDULING DEMONSTRATION")

	memory := paging.MakeBuilder().
		WithTotalFrames(8).
		WithReplacementPolicy(replacement.FIFO).
		Build("MemoryManager")

	scheduler := sched.MakeBuilder().
		WithAlgorithm(sched.RoundRobin).
		WithTimeQuantum(3).
		WithMemorySystem(memory).
		WithTickDelay(rrDelay).
		Build("Scheduler")

	tracer := tracing.NewLogTracer(log.New(os.Stdout, "", 0))
	tracing.CollectTrace(scheduler, tracer)
	tracing.CollectTrace(memory, tracer)

	factory := proc.MakeFactory()
	specs := []procSpec{
		{name: "Process_A", burst: 20, sizeKB: 8},
		{name: "Process_B", burst: 17, sizeKB: 6},
	}

	procs := make([]*proc.Process, 0, len(specs))
	for _, spec := range specs {
		p, err := factory.New(spec.name, spec.burst, spec.sizeKB)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		procs = append(procs, p)
		scheduler.Add(p)
	}

	printProcesses(os.Stdout, procs)
	fmt.Println("\nExpected pattern: A and B alternate every 3 ticks" +
		" until B finishes at tick 35 and A at tick 37.")
	fmt.Println("\nTick trace:")

	if err := scheduler.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	printSummary(os.Stdout, scheduler.Statistics())
	printMemoryStatus(os.Stdout, memory)
}
