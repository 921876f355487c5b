package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oslab-sim/ossim/mem/paging"
	"github.com/oslab-sim/ossim/mem/replacement"
	"github.com/oslab-sim/ossim/proc"
)

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Compare FIFO and LRU page replacement",
	Long: `A single 16 KB process touches the page sequence 0,1,2,0,3,1
against 3 physical frames, once under FIFO and once under LRU. The
two policies first diverge on the fifth access: FIFO pushes out the
oldest loaded page while LRU pushes out the least recently touched
one, which costs LRU an extra fault on the final access.`,
	Run: func(_ *cobra.Command, _ []string) {
		runMemoryDemo()
	},
}

func init() {
	rootCmd.AddCommand(memoryCmd)
}

func runMemoryDemo() {
	printBanner(os.Stdout, "PAGE REPLACEMENT ALGORITHMS COMPARISON")

	refs := []uint64{0, 1, 2, 0, 3, 1}

	fmt.Println("Test scenario:")
	fmt.Println("  Process pages: 4 (numbered 0-3)")
	fmt.Println("  Memory frames: 3")
	fmt.Printf("  Reference string: %v\n", refs)

	results := map[replacement.Kind][]paging.AccessStatus{}
	for _, kind := range []replacement.Kind{
		replacement.FIFO,
		replacement.LRU,
	} {
		fmt.Printf("\n--- %s ---\n", kind)
		results[kind] = runReplacementPass(kind, refs)
	}

	fmt.Println("\n--- COMPARISON ---")
	fmt.Printf("Reference string: %v\n", refs)
	fmt.Printf("FIFO results:     %v\n", results[replacement.FIFO])
	fmt.Printf("LRU results:      %v\n", results[replacement.LRU])
}

func runReplacementPass(
	kind replacement.Kind,
	refs []uint64,
) []paging.AccessStatus {
	memory := paging.MakeBuilder().
		WithTotalFrames(3).
		WithReplacementPolicy(kind).
		Build("MemoryManager")

	factory := proc.MakeFactory()
	p, err := factory.NewWithPageRefs("TestProcess", len(refs), 16, refs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	memory.Register(p)

	statuses := make([]paging.AccessStatus, 0, len(refs))
	for i, page := range refs {
		result := memory.Access(p, page)
		statuses = append(statuses, result.Status)

		fmt.Printf("Access %2d: page %d -> %-5s", i+1, page, result.Status)
		if result.Evicted != nil {
			fmt.Printf(" (evicted page %d from frame %d)",
				result.Evicted.PageNum, result.Evicted.Frame)
		}
		fmt.Printf(" | frames: %s\n", frameSketch(memory))
	}

	accessStats := memory.Stats()
	fmt.Printf("\n%s results: hits %d, faults %d, hit ratio %.2f%%\n",
		kind, accessStats.Hits, accessStats.Faults,
		accessStats.HitRatio*100)

	return statuses
}

// frameSketch renders the resident page of every frame, "-" for free ones.
func frameSketch(memory *paging.Comp) string {
	sketch := "["
	for i, f := range memory.FrameTable() {
		if i > 0 {
			sketch += " "
		}

		if f.Free {
			sketch += "-"
			continue
		}

		sketch += fmt.Sprintf("%d", f.PageNum)
	}

	return sketch + "]"
}
