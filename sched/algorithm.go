package sched

import (
	"strings"

	"github.com/oslab-sim/ossim/sim"
)

// Algorithm selects which ready process runs next.
type Algorithm int

const (
	// FCFS runs each process to completion in arrival order.
	FCFS Algorithm = iota

	// RoundRobin rotates through ready processes with a fixed time
	// quantum.
	RoundRobin
)

func (a Algorithm) String() string {
	switch a {
	case FCFS:
		return "FCFS"
	case RoundRobin:
		return "RR"
	}

	return "Unknown"
}

// ParseAlgorithm converts a configuration string into an Algorithm. It
// accepts "FCFS", "RR" and "RoundRobin", ignoring case.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "FCFS":
		return FCFS, nil
	case "RR", "ROUNDROBIN":
		return RoundRobin, nil
	}

	return 0, &sim.ConfigError{
		Param:  "scheduling algorithm",
		Value:  name,
		Reason: `want "FCFS" or "RR"`,
	}
}
