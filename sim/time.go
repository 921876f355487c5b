package sim

// VTime is a moment on the simulated clock, counted in whole time units
// since the start of a run. The clock advances by exactly one per tick.
type VTime int64

// TimeTeller can be used to get the current time.
type TimeTeller interface {
	CurrentTime() VTime
}
