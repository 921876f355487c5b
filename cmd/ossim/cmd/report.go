package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/oslab-sim/ossim/mem/paging"
	"github.com/oslab-sim/ossim/proc"
	"github.com/oslab-sim/ossim/stats"
)

func printBanner(out io.Writer, title string) {
	line := strings.Repeat("=", 60)
	fmt.Fprintln(out, line)
	fmt.Fprintf(out, "    %s\n", title)
	fmt.Fprintln(out, line)
}

func printProcesses(out io.Writer, procs []*proc.Process) {
	for _, p := range procs {
		fmt.Fprintf(out, "%s %s: burst %d units, %d KB (%d pages)\n",
			p.ID(), p.Name(), p.BurstTotal(), p.SizeKB(), p.NumPages())
	}
}

func printSummary(out io.Writer, runStats *stats.Run) {
	fmt.Fprintln(out, "\nPer-process results:")
	fmt.Fprintf(out, "%-4s %-14s %10s %10s %10s %6s %7s\n",
		"PID", "Name", "Completion", "Turnaround", "Waiting",
		"Hits", "Faults")

	var accesses uint64
	for _, rec := range runStats.Records() {
		fmt.Fprintf(out, "%-4s %-14s %10d %10d %10d %6d %7d\n",
			rec.PID, rec.Name, rec.Completion, rec.Turnaround,
			rec.Waiting, rec.Hits, rec.Faults)
		accesses += rec.Hits + rec.Faults
	}

	fmt.Fprintf(out, "\nAverage turnaround time: %.2f\n",
		runStats.AverageTurnaround())
	fmt.Fprintf(out, "Average waiting time:    %.2f\n",
		runStats.AverageWaiting())
	fmt.Fprintf(out, "Context switches:        %d\n",
		runStats.ContextSwitches())

	if accesses > 0 {
		fmt.Fprintf(out, "Memory hit ratio:        %.2f%%\n",
			runStats.OverallHitRatio()*100)
	}
}

func printMemoryStatus(out io.Writer, mem *paging.Comp) {
	usage := mem.Usage()
	accessStats := mem.Stats()

	fmt.Fprintf(out, "\nMemory status (%s):\n", mem.ReplacementPolicy())
	fmt.Fprintf(out, "  Total frames: %d\n", usage.TotalFrames)
	fmt.Fprintf(out, "  Used frames:  %d\n", usage.UsedFrames)
	fmt.Fprintf(out, "  Free frames:  %d\n", usage.FreeFrames)

	if accessStats.Accesses > 0 {
		fmt.Fprintf(out, "  Accesses:     %d\n", accessStats.Accesses)
		fmt.Fprintf(out, "  Hits:         %d\n", accessStats.Hits)
		fmt.Fprintf(out, "  Faults:       %d\n", accessStats.Faults)
		fmt.Fprintf(out, "  Hit ratio:    %.2f%%\n",
			accessStats.HitRatio*100)
	}

	fmt.Fprintln(out, "Frame allocation:")
	for _, f := range mem.FrameTable() {
		if f.Free {
			fmt.Fprintf(out, "  Frame %d: [FREE]\n", f.Frame)
			continue
		}

		fmt.Fprintf(out, "  Frame %d: %s, page %d\n",
			f.Frame, f.Owner, f.PageNum)
	}
}
