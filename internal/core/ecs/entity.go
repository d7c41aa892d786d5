package ecs

import "strconv"

// EntityID is the sequential number assigned to an entity at creation.
// IDs start at 0 and are never reused, even after the entity is removed.
type EntityID uint64

// Entity is an identity-compared handle. Two *Entity values refer to the same
// entity only if they are the same pointer; ID and name are informational.
// Entities carry no component data, all of it lives in the Registry.
type Entity struct {
	id      EntityID
	name    string
	hasName bool
}

// ID returns the entity's id. A nil entity reports 0.
func (e *Entity) ID() EntityID {
	if e == nil {
		return 0
	}
	return e.id
}

// Name returns the optional human-readable name. A nil entity is unnamed.
func (e *Entity) Name() (string, bool) {
	if e == nil {
		return "", false
	}
	return e.name, e.hasName
}

func (e *Entity) String() string {
	if e == nil {
		return "Entity{nil}"
	}
	if e.hasName {
		return "Entity{id=" + strconv.FormatUint(uint64(e.id), 10) + ", name=" + strconv.Quote(e.name) + "}"
	}
	return "Entity{id=" + strconv.FormatUint(uint64(e.id), 10) + "}"
}

// idCounter hands out entity ids. The Registry is its only writer.
type idCounter struct {
	next EntityID
}

func (c *idCounter) allocate() EntityID {
	id := c.next
	c.next++
	return id
}
