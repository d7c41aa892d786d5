package data

import (
	"errors"
	"fmt"
	"sort"

	"github.com/exploringlines/entitysystem/internal/component"
	"github.com/exploringlines/entitysystem/internal/core/ecs"
)

var (
	ErrUnknownComponent = errors.New("unknown component")
	ErrUnknownTemplate  = errors.New("unknown template")
)

// Factory builds a zero-valued component. It is the parameterless
// construction path every component type must offer.
type Factory func() ecs.Component

// Catalog maps stable component names (as written in YAML and Lua) to
// factories and back from component type to name.
type Catalog struct {
	factories map[string]Factory
	types     map[string]ecs.ComponentType
	names     map[ecs.ComponentType]string
}

func NewCatalog() *Catalog {
	return &Catalog{
		factories: make(map[string]Factory),
		types:     make(map[string]ecs.ComponentType),
		names:     make(map[ecs.ComponentType]string),
	}
}

// NewDefaultCatalog returns a catalog holding the stock components.
func NewDefaultCatalog() *Catalog {
	c := NewCatalog()
	c.mustRegister("position", func() ecs.Component { return &component.Position{} })
	c.mustRegister("velocity", func() ecs.Component { return &component.Velocity{} })
	c.mustRegister("health", func() ecs.Component { return &component.Health{} })
	c.mustRegister("label", func() ecs.Component { return &component.Label{} })
	return c
}

// Register adds a named factory. Names and component types must both be
// unique within a catalog.
func (c *Catalog) Register(name string, f Factory) error {
	if name == "" {
		return errors.New("component name is empty")
	}
	if f == nil {
		return fmt.Errorf("component %q: nil factory", name)
	}
	if _, ok := c.factories[name]; ok {
		return fmt.Errorf("component %q already registered", name)
	}
	sample := f()
	if sample == nil {
		return fmt.Errorf("component %q: factory returned nil", name)
	}
	t := ecs.TypeOf(sample)
	if prev, ok := c.names[t]; ok {
		return fmt.Errorf("component %q: type %s already registered as %q", name, t, prev)
	}
	c.factories[name] = f
	c.types[name] = t
	c.names[t] = name
	return nil
}

func (c *Catalog) mustRegister(name string, f Factory) {
	if err := c.Register(name, f); err != nil {
		panic(err)
	}
}

// New builds a fresh component by name.
func (c *Catalog) New(name string) (ecs.Component, error) {
	f, ok := c.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, name)
	}
	return f(), nil
}

// Type returns the component type registered under name.
func (c *Catalog) Type(name string) (ecs.ComponentType, bool) {
	t, ok := c.types[name]
	return t, ok
}

// Name returns the name a component type was registered under.
func (c *Catalog) Name(t ecs.ComponentType) (string, bool) {
	n, ok := c.names[t]
	return n, ok
}

// Names returns all registered names, sorted.
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.factories))
	for n := range c.factories {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) Count() int {
	return len(c.factories)
}
