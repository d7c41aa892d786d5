package system

import (
	"time"

	"github.com/exploringlines/entitysystem/internal/core/ecs"
	coresys "github.com/exploringlines/entitysystem/internal/core/system"
)

// FlushSystem clears every cached set's deltas and the removed-entity
// snapshots at tick end. Phase 4 (Cleanup).
type FlushSystem struct {
	coresys.Base
	reg *ecs.Registry
}

func NewFlushSystem(reg *ecs.Registry) *FlushSystem {
	return &FlushSystem{reg: reg}
}

func (s *FlushSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *FlushSystem) Update(_ time.Duration) {
	s.reg.FlushSetChanges()
}
