package cmd

import (
	"strconv"
	"strings"

	"github.com/oslab-sim/ossim/sim"
)

// Workload limits, matching the interactive ranges of the simulator. The
// canned demos may construct tighter setups directly.
const (
	maxProcesses = 10

	minBurst = 1
	maxBurst = 30

	minSizeKB = 1
	maxSizeKB = 32

	minFrames = 4
	maxFrames = 32

	minQuantum = 1
	maxQuantum = 10
)

// A procSpec describes one process of a free-form workload.
type procSpec struct {
	name   string
	burst  int
	sizeKB int
}

// parseProcSpec parses a "name:burst:sizeKB" argument.
func parseProcSpec(s string) (procSpec, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 || parts[0] == "" {
		return procSpec{}, &sim.ConfigError{
			Param:  "proc",
			Value:  s,
			Reason: `want "name:burst:sizeKB"`,
		}
	}

	burst, err := strconv.Atoi(parts[1])
	if err != nil || burst < minBurst || burst > maxBurst {
		return procSpec{}, &sim.ConfigError{
			Param:  "burst",
			Value:  parts[1],
			Reason: "must be an integer between 1 and 30",
		}
	}

	sizeKB, err := strconv.Atoi(parts[2])
	if err != nil || sizeKB < minSizeKB || sizeKB > maxSizeKB {
		return procSpec{}, &sim.ConfigError{
			Param:  "process size",
			Value:  parts[2],
			Reason: "must be an integer between 1 and 32 KB",
		}
	}

	return procSpec{name: parts[0], burst: burst, sizeKB: sizeKB}, nil
}

// parseRefs parses a comma-separated page reference string such as
// "0,1,2,0,3,1".
func parseRefs(s string) ([]uint64, error) {
	if s == "" {
		return nil, nil
	}

	fields := strings.Split(s, ",")
	refs := make([]uint64, 0, len(fields))
	for _, f := range fields {
		page, err := strconv.ParseUint(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, &sim.ConfigError{
				Param:  "refs",
				Value:  f,
				Reason: "must be a non-negative page number",
			}
		}

		refs = append(refs, page)
	}

	return refs, nil
}

func validateProcCount(n int) error {
	if n < 1 || n > maxProcesses {
		return &sim.ConfigError{
			Param:  "processes",
			Value:  strconv.Itoa(n),
			Reason: "need between 1 and 10 processes",
		}
	}

	return nil
}

func validateFrames(n int) error {
	if n < minFrames || n > maxFrames {
		return &sim.ConfigError{
			Param:  "frames",
			Value:  strconv.Itoa(n),
			Reason: "must be between 4 and 32",
		}
	}

	return nil
}

func validateQuantum(q int) error {
	if q < minQuantum || q > maxQuantum {
		return &sim.ConfigError{
			Param:  "time quantum",
			Value:  strconv.Itoa(q),
			Reason: "must be between 1 and 10",
		}
	}

	return nil
}

func validateLog2PageSize(n uint64) error {
	if n < 9 || n > 16 {
		return &sim.ConfigError{
			Param:  "page size",
			Value:  strconv.FormatUint(n, 10),
			Reason: "log2 page size must be between 9 (512 B) and 16 (64 KB)",
		}
	}

	return nil
}
