package component

import "github.com/exploringlines/entitysystem/internal/core/ecs"

// Health stores hit points. RegenPerSecond may be fractional; RegenSystem
// keeps the remainder between ticks.
type Health struct {
	Current        int     `yaml:"current"`
	Max            int     `yaml:"max"`
	RegenPerSecond float64 `yaml:"regen_per_second"`
}

func (h *Health) Copy() ecs.Component {
	c := *h
	return &c
}

// Alive reports whether Current is above zero.
func (h *Health) Alive() bool { return h.Current > 0 }
