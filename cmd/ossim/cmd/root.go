// Package cmd provides the command-line interface of the simulator.
package cmd

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "ossim",
	Short: "ossim simulates CPU scheduling coupled with demand-paged " +
		"virtual memory.",
	Long: `ossim runs discrete tick-driven simulations of an operating
system kernel: FCFS and round-robin CPU scheduling on one core, and
demand paging with FIFO or LRU replacement over a fixed pool of
physical frames. Canned scenarios demonstrate each subsystem; the run
command accepts a free-form workload.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	// A missing .env file is fine; flags win over the environment.
	_ = godotenv.Load()

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// monitorPortFromEnv reads OSSIM_MONITOR_PORT, returning 0 when it is
// absent or malformed.
func monitorPortFromEnv() int {
	v := os.Getenv("OSSIM_MONITOR_PORT")
	if v == "" {
		return 0
	}

	port, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}

	return port
}
