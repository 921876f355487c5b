package sim

import "fmt"

// A ConfigError reports a user-supplied configuration value that cannot be
// used to build a simulation. Configuration is validated before any engine
// is constructed, so a run either starts complete or not at all.
type ConfigError struct {
	Param  string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid %s %q", e.Param, e.Value)
	}

	return fmt.Sprintf("invalid %s %q: %s", e.Param, e.Value, e.Reason)
}
