package sim

// Named is a unit that has a name. The name should follow the convention of
// using lower-case letters and underscores, and should be unique within a
// simulation.
type Named interface {
	Name() string
}

// A Component is a named, hookable part of the simulated system.
type Component interface {
	Named
	Hookable
}

// ComponentBase provides the common fields and bookkeeping of components.
type ComponentBase struct {
	HookableBase

	name string
}

// NewComponentBase creates a new ComponentBase.
func NewComponentBase(name string) *ComponentBase {
	c := new(ComponentBase)
	c.name = name
	return c
}

// Name returns the name of the component.
func (c *ComponentBase) Name() string {
	return c.name
}
