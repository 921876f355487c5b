package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listScenariosCmd = &cobra.Command{
	Use:   "list-scenarios",
	Short: "List the canned demonstration scenarios",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println("Canned scenarios:")
		fmt.Println("  fcfs        three processes (bursts 3/4/2) in arrival order")
		fmt.Println("  rr          Process_A and Process_B under round robin, quantum 3")
		fmt.Println("  memory      FIFO and LRU replacement over the string 0,1,2,0,3,1")
		fmt.Println("  integrated  round robin with paging, monitoring, and recording")
		fmt.Println()
		fmt.Println("Use \"ossim run\" for a free-form workload.")
	},
}

func init() {
	rootCmd.AddCommand(listScenariosCmd)
}
