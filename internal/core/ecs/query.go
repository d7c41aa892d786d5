package ecs

// Typed wrappers over the Registry. T is the exact stored type, usually a
// pointer such as *component.Position.

// Get returns the T attached to e, following the same live-then-retained
// lookup as Registry.Component.
func Get[T Component](r *Registry, e *Entity) (T, bool) {
	var zero T
	c, ok := r.Component(e, TypeFor[T]())
	if !ok {
		return zero, false
	}
	v, ok := c.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// Set attaches c to e and returns it.
func Set[T Component](r *Registry, e *Entity, c T) T {
	r.SetComponent(e, c)
	return c
}

func Has[T Component](r *Registry, e *Entity) bool {
	return r.HasComponent(e, TypeFor[T]())
}

func Remove[T Component](r *Registry, e *Entity) {
	r.RemoveComponent(e, TypeFor[T]())
}

// SetOf returns the cached EntitySet for T.
func SetOf[T Component](r *Registry) *EntitySet {
	return r.Entities(TypeFor[T]())
}

// ComponentsOf returns every live T across all entities, order unspecified.
func ComponentsOf[T Component](r *Registry) []T {
	all := r.ComponentsOfType(TypeFor[T]())
	out := make([]T, 0, len(all))
	for _, c := range all {
		if v, ok := c.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// Each calls fn for every member of the T set together with its T.
// fn may set components on the visited entity but must not add or remove
// members of the same set.
func Each[T Component](r *Registry, fn func(*Entity, T)) {
	set := SetOf[T](r)
	for _, e := range set.Members() {
		if c, ok := Get[T](r, e); ok {
			fn(e, c)
		}
	}
}
