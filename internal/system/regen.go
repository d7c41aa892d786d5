package system

import (
	"time"

	"github.com/exploringlines/entitysystem/internal/component"
	"github.com/exploringlines/entitysystem/internal/core/ecs"
	coresys "github.com/exploringlines/entitysystem/internal/core/system"
)

// RegenSystem regenerates Health toward Max for every living entity.
// Phase 3 (PostUpdate). Runs every tick; per-entity accumulators carry the
// fractional part of RegenPerSecond between ticks.
//
// Health is set back (and so reported as changed) only on ticks where the
// integer Current value actually moves.
type RegenSystem struct {
	coresys.Base
	reg *ecs.Registry
	acc map[*ecs.Entity]float64
}

func NewRegenSystem(reg *ecs.Registry) *RegenSystem {
	return &RegenSystem{reg: reg, acc: make(map[*ecs.Entity]float64)}
}

func (s *RegenSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *RegenSystem) Update(dt time.Duration) {
	set := ecs.SetOf[*component.Health](s.reg)
	for _, e := range set.Removed() {
		delete(s.acc, e)
	}

	sec := dt.Seconds()
	ecs.Each(s.reg, func(e *ecs.Entity, h *component.Health) {
		s.tick(e, h, sec)
	})
}

func (s *RegenSystem) tick(e *ecs.Entity, h *component.Health, sec float64) {
	// dead entities and full health do not bank regen
	if !h.Alive() || h.Current >= h.Max || h.RegenPerSecond <= 0 {
		delete(s.acc, e)
		return
	}

	acc := s.acc[e] + h.RegenPerSecond*sec
	whole := int(acc)
	s.acc[e] = acc - float64(whole)
	if whole == 0 {
		return
	}

	h.Current = min(h.Current+whole, h.Max)
	if h.Current == h.Max {
		delete(s.acc, e)
	}
	ecs.Set(s.reg, e, h)
}

// Pending returns the banked fractional regen for e.
func (s *RegenSystem) Pending(e *ecs.Entity) float64 { return s.acc[e] }
