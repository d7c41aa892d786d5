package ecs

// Observer is notified synchronously after the Registry changes state.
// Observers must not call back into the Registry from these methods.
type Observer interface {
	EntityCreated(e *Entity)
	EntityRemoved(e *Entity)
	// ComponentSet reports a SetComponent call; replaced is true when the
	// entity already held a component of that exact type.
	ComponentSet(e *Entity, t ComponentType, replaced bool)
	ComponentRemoved(e *Entity, t ComponentType)
	ChangesFlushed()
}
