package event

import "github.com/exploringlines/entitysystem/internal/core/ecs"

var _ ecs.Observer = (*Bridge)(nil)

// Bridge forwards registry notifications onto a Bus. Install it with
// ecs.WithObserver(event.NewBridge(bus)).
type Bridge struct {
	bus *Bus
}

func NewBridge(bus *Bus) *Bridge {
	return &Bridge{bus: bus}
}

func (b *Bridge) EntityCreated(e *ecs.Entity) {
	Emit(b.bus, EntityCreated{Entity: e})
}

func (b *Bridge) EntityRemoved(e *ecs.Entity) {
	Emit(b.bus, EntityRemoved{Entity: e})
}

func (b *Bridge) ComponentSet(e *ecs.Entity, t ecs.ComponentType, replaced bool) {
	Emit(b.bus, ComponentSet{Entity: e, Type: t, Replaced: replaced})
}

func (b *Bridge) ComponentRemoved(e *ecs.Entity, t ecs.ComponentType) {
	Emit(b.bus, ComponentRemoved{Entity: e, Type: t})
}

func (b *Bridge) ChangesFlushed() {
	Emit(b.bus, ChangesFlushed{})
}
