package event

import "github.com/exploringlines/entitysystem/internal/core/ecs"

// Registry lifecycle events, emitted by Bridge.

type EntityCreated struct {
	Entity *ecs.Entity
}

type EntityRemoved struct {
	Entity *ecs.Entity
}

type ComponentSet struct {
	Entity   *ecs.Entity
	Type     ecs.ComponentType
	Replaced bool
}

type ComponentRemoved struct {
	Entity *ecs.Entity
	Type   ecs.ComponentType
}

type ChangesFlushed struct{}
