package ecs

import (
	"go.uber.org/zap"
)

// Registry owns entity allocation, the entity -> component association and
// the cached EntitySets keyed by component type.
//
// A Registry is not safe for concurrent use. It is meant to be driven by a
// single owner, typically the game loop, which creates, mutates and flushes
// strictly in sequence.
type Registry struct {
	ids      idCounter
	entities []*Entity
	live     map[*Entity]struct{}

	components map[*Entity]componentMap
	// retained keeps the last component map of fully removed entities until
	// the next FlushSetChanges.
	retained map[*Entity]componentMap

	sets map[ComponentType]*EntitySet

	observers []Observer
	log       *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for lifecycle debug output.
func WithLogger(log *zap.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// WithObserver registers an observer notified after every state change.
func WithObserver(obs Observer) Option {
	return func(r *Registry) {
		if obs != nil {
			r.observers = append(r.observers, obs)
		}
	}
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		entities:   make([]*Entity, 0, 64),
		live:       make(map[*Entity]struct{}, 64),
		components: make(map[*Entity]componentMap, 64),
		retained:   make(map[*Entity]componentMap),
		sets:       make(map[ComponentType]*EntitySet),
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ── Entities ──────────────────────────────────────────────────────

// CreateEntity allocates and registers an unnamed entity.
func (r *Registry) CreateEntity() *Entity {
	return r.register(&Entity{id: r.ids.allocate()})
}

// CreateNamedEntity allocates and registers an entity carrying name.
// Names are not required to be unique.
func (r *Registry) CreateNamedEntity(name string) *Entity {
	return r.register(&Entity{id: r.ids.allocate(), name: name, hasName: true})
}

func (r *Registry) register(e *Entity) *Entity {
	r.entities = append(r.entities, e)
	r.live[e] = struct{}{}
	r.log.Debug("entity created", zap.Uint64("id", uint64(e.id)), zap.String("name", e.name))
	for _, obs := range r.observers {
		obs.EntityCreated(e)
	}
	return e
}

// HasEntity reports whether e is currently registered.
func (r *Registry) HasEntity(e *Entity) bool {
	_, ok := r.live[e]
	return ok
}

// EntityByID returns the first registered entity with the given id.
// Removed entities are never returned.
func (r *Registry) EntityByID(id EntityID) (*Entity, bool) {
	for _, e := range r.entities {
		if e.id == id {
			return e, true
		}
	}
	return nil, false
}

// EntityByName returns the first registered entity with the given name.
// Unnamed entities never match, not even for "".
func (r *Registry) EntityByName(name string) (*Entity, bool) {
	for _, e := range r.entities {
		if e.hasName && e.name == name {
			return e, true
		}
	}
	return nil, false
}

// EntityCount returns the number of registered entities.
func (r *Registry) EntityCount() int { return len(r.entities) }

// LiveEntities returns a copy of the registered entities in creation order.
func (r *Registry) LiveEntities() []*Entity {
	out := make([]*Entity, len(r.entities))
	copy(out, r.entities)
	return out
}

// RemoveEntity unregisters e. Its components stay readable through Component
// until the next FlushSetChanges, and every cached set records the removal.
// Removing an entity that is not registered is a no-op.
func (r *Registry) RemoveEntity(e *Entity) {
	if _, ok := r.live[e]; !ok {
		return
	}
	delete(r.live, e)
	for i, cur := range r.entities {
		if cur == e {
			r.entities = append(r.entities[:i], r.entities[i+1:]...)
			break
		}
	}

	// The map moves by reference; nothing is copied.
	if comps, ok := r.components[e]; ok {
		r.retained[e] = comps
		delete(r.components, e)
	}

	for _, set := range r.sets {
		set.Remove(e)
	}

	r.log.Debug("entity removed", zap.Uint64("id", uint64(e.id)))
	for _, obs := range r.observers {
		obs.EntityRemoved(e)
	}
}

// ── Components ────────────────────────────────────────────────────

// Component returns the component of exactly type t attached to e. The live
// association wins; a removed entity's retained snapshot is consulted only
// when e has no live association.
func (r *Registry) Component(e *Entity, t ComponentType) (Component, bool) {
	if comps, ok := r.components[e]; ok {
		return comps.get(t)
	}
	if comps, ok := r.retained[e]; ok {
		return comps.get(t)
	}
	return nil, false
}

// HasComponent reports whether Component(e, t) would find a value.
func (r *Registry) HasComponent(e *Entity, t ComponentType) bool {
	_, ok := r.Component(e, t)
	return ok
}

// SetComponent stores c on e under its exact dynamic type, replacing any
// previous instance of that type, and returns c. If a set is cached for the
// type, e is recorded as added on first attach and as changed on overwrite.
// A nil entity or component is ignored.
func (r *Registry) SetComponent(e *Entity, c Component) Component {
	if e == nil || c == nil {
		return c
	}
	comps, ok := r.components[e]
	if !ok {
		comps = make(componentMap, 4)
		r.components[e] = comps
	}

	t := TypeOf(c)
	// Classify before overwriting.
	replaced := comps.has(t)
	if set, ok := r.sets[t]; ok {
		if replaced {
			set.MarkChanged(e)
		} else {
			set.Add(e)
		}
	}
	comps[t] = c

	for _, obs := range r.observers {
		obs.ComponentSet(e, t, replaced)
	}
	return c
}

// RemoveComponent detaches the component of type t from e's live
// association. The cached set for t, if any, records e as removed.
func (r *Registry) RemoveComponent(e *Entity, t ComponentType) {
	comps, ok := r.components[e]
	if !ok {
		return
	}
	_, had := comps[t]
	delete(comps, t)

	if set, ok := r.sets[t]; ok {
		set.Remove(e)
	}

	if had {
		for _, obs := range r.observers {
			obs.ComponentRemoved(e, t)
		}
	}
}

// ComponentsOfType returns every live component stored under exactly type t,
// across all entities. Order is unspecified.
func (r *Registry) ComponentsOfType(t ComponentType) []Component {
	var out []Component
	for _, comps := range r.components {
		if c, ok := comps[t]; ok {
			out = append(out, c)
		}
	}
	return out
}

// ── Sets ──────────────────────────────────────────────────────────

// Entities returns the cached set for type t. On first request the set is
// built from every registered entity holding t, and those entities start out
// in its Added buffer. Later calls return the same instance.
func (r *Registry) Entities(t ComponentType) *EntitySet {
	if set, ok := r.sets[t]; ok {
		return set
	}
	set := NewEntitySet()
	for _, e := range r.entities {
		if r.HasComponent(e, t) {
			set.Add(e)
		}
	}
	r.sets[t] = set
	r.log.Debug("entity set created", zap.Stringer("type", t), zap.Int("members", set.Len()))
	return set
}

// FlushSetChanges clears the delta buffers of every cached set and discards
// the retained components of removed entities.
func (r *Registry) FlushSetChanges() {
	for _, set := range r.sets {
		set.FlushChanges()
	}
	r.log.Debug("set changes flushed", zap.Int("sets", len(r.sets)), zap.Int("retained", len(r.retained)))
	clear(r.retained)
	for _, obs := range r.observers {
		obs.ChangesFlushed()
	}
}
