package component

import "github.com/exploringlines/entitysystem/internal/core/ecs"

// Position is a 2D world position.
type Position struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (p *Position) Copy() ecs.Component {
	c := *p
	return &c
}

// Velocity is a displacement per second, integrated by MovementSystem.
type Velocity struct {
	DX float64 `yaml:"dx"`
	DY float64 `yaml:"dy"`
}

func (v *Velocity) Copy() ecs.Component {
	c := *v
	return &c
}
