package ecs

import "reflect"

// Component is a plain data value attached to an entity. Implementations
// should be pointer types so that the stored instance can be mutated in place
// by systems; Copy must return an independent value of the same concrete type.
type Component interface {
	Copy() Component
}

// ComponentType identifies a component by its exact dynamic type. *Position
// and Position are different types, and an interface type never matches a
// stored concrete component.
type ComponentType = reflect.Type

// TypeOf returns the ComponentType under which c is stored.
func TypeOf(c Component) ComponentType {
	return reflect.TypeOf(c)
}

// TypeFor returns the ComponentType for the type parameter T.
func TypeFor[T Component]() ComponentType {
	return reflect.TypeFor[T]()
}

// componentMap is the per-entity association: one instance per exact type.
type componentMap map[ComponentType]Component

func (m componentMap) get(t ComponentType) (Component, bool) {
	c, ok := m[t]
	return c, ok
}

func (m componentMap) has(t ComponentType) bool {
	_, ok := m[t]
	return ok
}
