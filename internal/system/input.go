package system

import (
	"time"

	"github.com/exploringlines/entitysystem/internal/core/event"
	coresys "github.com/exploringlines/entitysystem/internal/core/system"
)

// EventDispatchSystem delivers last tick's registry events to subscribers.
// Phase 0 (Input).
type EventDispatchSystem struct {
	coresys.Base
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
