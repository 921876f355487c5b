package sim

// A SimulationEndHandler is a handler that is called after the simulation
// ends.
type SimulationEndHandler interface {
	Handle(now VTime)
}

// An Engine is a unit that keeps a tick-driven simulation running.
type Engine interface {
	Hookable
	TimeTeller

	// Run processes ticks until no runnable work remains, or until an
	// attached controller stops the loop.
	Run() error

	// Pause requests the run loop to hold at the next tick boundary.
	Pause()

	// Continue releases a paused run loop.
	Continue()

	// RegisterSimulationEndHandler registers a handler that performs some
	// actions after the simulation is finished.
	RegisterSimulationEndHandler(handler SimulationEndHandler)

	// Finished invokes all the registered SimulationEndHandlers.
	Finished()
}
