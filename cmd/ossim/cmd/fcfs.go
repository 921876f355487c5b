package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/oslab-sim/ossim/proc"
	"github.com/oslab-sim/ossim/sched"
	"github.com/oslab-sim/ossim/tracing"
)

var fcfsCmd = &cobra.Command{
	Use:   "fcfs",
	Short: "Run the canned first-come-first-served scenario",
	Long: `Three processes with bursts of 3, 4, and 2 time units run in
arrival order on an FCFS scheduler, without memory. Each process runs
to completion before the next one is dispatched, so no context switch
is ever counted.`,
	Run: func(_ *cobra.Command, _ []string) {
		runFCFSDemo()
	},
}

func init() {
	rootCmd.AddCommand(fcfsCmd)
}

func runFCFSDemo() {
	printBanner(os.Stdout, "FCFS SCHEDULING DEMONSTRATION")

	factory := proc.MakeFactory()
	specs := []procSpec{
		{name: "Process_A", burst: 3, sizeKB: 4},
		{name: "Process_B", burst: 4, sizeKB: 4},
		{name: "Process_C", burst: 2, sizeKB: 4},
	}

	scheduler := sched.MakeBuilder().
		WithAlgorithm(sched.FCFS).
		Build("Scheduler")

	tracer := tracing.NewLogTracer(log.New(os.Stdout, "", 0))
	tracing.CollectTrace(scheduler, tracer)

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
	fmt.Println("\nTick trace:")

	if err := scheduler.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	printSummary(os.Stdout, scheduler.Statistics())
}
