package system

import (
	"time"

	"github.com/exploringlines/entitysystem/internal/component"
	"github.com/exploringlines/entitysystem/internal/core/ecs"
	coresys "github.com/exploringlines/entitysystem/internal/core/system"
)

// MovementSystem integrates Velocity into Position for every moving entity.
// Phase 2 (Update). Entities with a Velocity but no Position are skipped.
type MovementSystem struct {
	coresys.Base
	reg *ecs.Registry
}

func NewMovementSystem(reg *ecs.Registry) *MovementSystem {
	return &MovementSystem{reg: reg}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *MovementSystem) Update(dt time.Duration) {
	sec := dt.Seconds()
	ecs.Each(s.reg, func(e *ecs.Entity, v *component.Velocity) {
		if v.DX == 0 && v.DY == 0 {
			return
		}
		pos, ok := ecs.Get[*component.Position](s.reg, e)
		if !ok {
			return
		}
		pos.X += v.DX * sec
		pos.Y += v.DY * sec
		// re-set so the Position set records the change
		ecs.Set(s.reg, e, pos)
	})
}
