package sim

type controlCmd int

const (
	cmdPause controlCmd = iota
	cmdContinue
	cmdStep
	cmdStop
)

// A Controller delivers pause, continue, step, and stop requests to a run
// loop. Commands queue up and take effect at the next tick boundary, so a
// controller never interrupts a tick that is in flight.
//
// The command methods can be called from any goroutine. The loop-side
// methods must only be called from the goroutine that runs the loop.
type Controller struct {
	commands chan controlCmd

	// Owned by the run-loop goroutine.
	paused   bool
	stepped  bool
	stopping bool
}

// NewController creates a controller with room for queued commands.
func NewController() *Controller {
	c := new(Controller)
	c.commands = make(chan controlCmd, 64)
	return c
}

// Pause requests the run loop to hold before the next tick.
func (c *Controller) Pause() {
	c.commands <- cmdPause
}

// Continue releases a paused run loop.
func (c *Controller) Continue() {
	c.commands <- cmdContinue
}

// Step lets a paused run loop execute exactly one tick. Stepping a loop that
// is not paused has no effect.
func (c *Controller) Step() {
	c.commands <- cmdStep
}

// Stop ends the run loop at the next tick boundary.
func (c *Controller) Stop() {
	c.commands <- cmdStop
}

// AllowTick is called by the run loop once per tick boundary. It applies all
// queued commands, blocks for as long as the loop is paused, and reports
// whether the loop may execute another tick.
func (c *Controller) AllowTick() bool {
	c.drain()

	for c.paused && !c.stepped && !c.stopping {
		c.apply(<-c.commands)
	}

	if c.stopping {
		return false
	}

	c.stepped = false

	return true
}

func (c *Controller) drain() {
	for {
		select {
		case cmd := <-c.commands:
			c.apply(cmd)
		default:
			return
		}
	}
}

func (c *Controller) apply(cmd controlCmd) {
	switch cmd {
	case cmdPause:
		c.paused = true
	case cmdContinue:
		c.paused = false
		c.stepped = false
	case cmdStep:
		c.stepped = true
	case cmdStop:
		c.stopping = true
	}
}
