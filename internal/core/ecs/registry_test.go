package ecs

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type sample struct {
	Val string
}

func (p *sample) Copy() Component {
	c := *p
	return &c
}

type counter struct {
	N int
}

func (c *counter) Copy() Component {
	n := *c
	return &n
}

// newFixture mirrors the usual starting point: an unnamed entity 0 and an
// entity "Test" (id 1) holding a sample, with all deltas flushed.
func newFixture(t *testing.T) (*Registry, *Entity) {
	t.Helper()
	r := NewRegistry()
	r.CreateEntity()
	named := r.CreateNamedEntity("Test")
	r.SetComponent(named, &sample{Val: "A String"})
	r.FlushSetChanges()
	return r, named
}

func TestCreateEntity(t *testing.T) {
	r, _ := newFixture(t)

	e := r.CreateEntity()
	require.NotNil(t, e)
	assert.Equal(t, EntityID(2), e.ID())
	_, named := e.Name()
	assert.False(t, named)

	e = r.CreateNamedEntity("Test")
	assert.Equal(t, EntityID(3), e.ID())
	name, named := e.Name()
	assert.True(t, named)
	assert.Equal(t, "Test", name)
}

func TestCreateEntityIDsNeverReused(t *testing.T) {
	r := NewRegistry()
	var last *Entity
	for i := 0; i < 10; i++ {
		var e *Entity
		if i%3 == 0 {
			e = r.CreateNamedEntity("n")
		} else {
			e = r.CreateEntity()
		}
		assert.Equal(t, EntityID(i), e.ID())
		if last != nil && i%2 == 0 {
			r.RemoveEntity(last)
		}
		last = e
	}
	assert.Equal(t, EntityID(10), r.CreateEntity().ID())
}

func TestGetEntity(t *testing.T) {
	r, _ := newFixture(t)

	e, ok := r.EntityByID(0)
	assert.True(t, ok)
	assert.NotNil(t, e)
	_, ok = r.EntityByID(2)
	assert.False(t, ok)

	e, ok = r.EntityByName("Test")
	assert.True(t, ok)
	assert.NotNil(t, e)
	_, ok = r.EntityByName("None")
	assert.False(t, ok)
}

func TestGetEntityByNameReturnsFirstMatch(t *testing.T) {
	r := NewRegistry()
	first := r.CreateNamedEntity("dup")
	r.CreateNamedEntity("dup")

	e, ok := r.EntityByName("dup")
	require.True(t, ok)
	assert.Same(t, first, e)

	_, ok = r.EntityByName("")
	assert.False(t, ok, "unnamed entities never match")
}

func TestHasEntity(t *testing.T) {
	r := NewRegistry()
	e := r.CreateEntity()
	assert.True(t, r.HasEntity(e))
	assert.False(t, r.HasEntity(&Entity{id: e.ID()}), "lookalike handle is a different entity")

	r.RemoveEntity(e)
	assert.False(t, r.HasEntity(e))
}

func TestRemoveEntity(t *testing.T) {
	r, named := newFixture(t)
	set := SetOf[*sample](r)
	set.FlushChanges()

	r.RemoveEntity(named)
	_, ok := r.EntityByName("Test")
	assert.False(t, ok)
	_, ok = r.EntityByID(named.ID())
	assert.False(t, ok)

	require.Len(t, set.Removed(), 1)
	assert.Empty(t, set.Added())
	assert.Empty(t, set.Changed())

	// components stay readable until the next flush
	assert.True(t, r.HasComponent(set.Removed()[0], TypeFor[*sample]()))
	p, ok := Get[*sample](r, named)
	require.True(t, ok)
	assert.Equal(t, "A String", p.Val)

	r.FlushSetChanges()
	_, ok = Get[*sample](r, named)
	assert.False(t, ok)
}

func TestRemoveEntityTwice(t *testing.T) {
	r, named := newFixture(t)
	set := SetOf[*sample](r)
	set.FlushChanges()

	r.RemoveEntity(named)
	r.RemoveEntity(named)

	assert.Len(t, set.Removed(), 1)
	assert.Equal(t, 1, r.EntityCount())
}

func TestRemoveEntityMovesMapByReference(t *testing.T) {
	r, named := newFixture(t)
	p, _ := Get[*sample](r, named)

	r.RemoveEntity(named)
	got, ok := Get[*sample](r, named)
	require.True(t, ok)
	assert.Same(t, p, got)
}

func TestRemoveUnregisteredEntity(t *testing.T) {
	r, _ := newFixture(t)
	set := SetOf[*sample](r)
	set.FlushChanges()

	r.RemoveEntity(&Entity{id: 1, name: "Test", hasName: true})
	r.RemoveEntity(nil)

	assert.Equal(t, 2, r.EntityCount())
	assert.Empty(t, set.Removed())
}

func TestGetComponent(t *testing.T) {
	r, named := newFixture(t)

	c, ok := r.Component(named, TypeFor[*sample]())
	require.True(t, ok)
	assert.Equal(t, "A String", c.(*sample).Val)

	_, ok = r.Component(named, TypeFor[Component]())
	assert.False(t, ok, "interface types never match a concrete component")

	_, ok = r.Component(named, TypeFor[*counter]())
	assert.False(t, ok)

	_, ok = r.Component(&Entity{}, TypeFor[*sample]())
	assert.False(t, ok)
}

func TestGetComponentExactType(t *testing.T) {
	r := NewRegistry()
	e := r.CreateEntity()
	r.SetComponent(e, &sample{Val: "ptr"})

	assert.False(t, r.HasComponent(e, reflect.TypeFor[sample]()), "value type differs from pointer type")
	assert.True(t, r.HasComponent(e, TypeFor[*sample]()))
}

func TestSetComponent(t *testing.T) {
	r, named := newFixture(t)
	set := SetOf[*counter](r)
	set.FlushChanges()

	r.SetComponent(named, &counter{N: 50})
	n, ok := Get[*counter](r, named)
	require.True(t, ok)
	assert.Equal(t, 50, n.N)
	p, ok := Get[*sample](r, named)
	require.True(t, ok)
	assert.Equal(t, "A String", p.Val)

	assert.Empty(t, set.Removed())
	assert.Len(t, set.Added(), 1)
	assert.Empty(t, set.Changed())

	r.SetComponent(named, &counter{N: 51})
	r.SetComponent(named, &counter{N: 52})
	assert.Empty(t, set.Removed())
	assert.Len(t, set.Added(), 1, "overwrite is never re-reported as added")
	assert.Len(t, set.Changed(), 2)
}

func TestSetComponentReturnsStoredInstance(t *testing.T) {
	r := NewRegistry()
	e := r.CreateEntity()
	c := &sample{Val: "x"}

	assert.Same(t, c, r.SetComponent(e, c))
	got, ok := r.Component(e, TypeOf(c))
	require.True(t, ok)
	assert.Same(t, c, got)

	replacement := &sample{Val: "y"}
	r.SetComponent(e, replacement)
	got, _ = r.Component(e, TypeOf(c))
	assert.Same(t, replacement, got)
}

func TestSetComponentIgnoresNil(t *testing.T) {
	r := NewRegistry()
	e := r.CreateEntity()

	assert.Nil(t, r.SetComponent(e, nil))
	r.SetComponent(nil, &sample{})
	assert.Empty(t, r.ComponentsOfType(TypeFor[*sample]()))
}

func TestHasComponent(t *testing.T) {
	r, named := newFixture(t)
	assert.True(t, Has[*sample](r, named))
	assert.False(t, Has[*counter](r, named))
}

func TestRemoveComponent(t *testing.T) {
	r, named := newFixture(t)
	set := SetOf[*sample](r)
	set.FlushChanges()

	Remove[*sample](r, named)
	_, ok := Get[*sample](r, named)
	assert.False(t, ok)

	assert.Len(t, set.Removed(), 1)
	assert.Empty(t, set.Added())
	assert.Empty(t, set.Changed())
}

func TestRemoveComponentMissingIsNoop(t *testing.T) {
	r, named := newFixture(t)
	set := SetOf[*counter](r)

	Remove[*counter](r, named)
	Remove[*counter](r, r.CreateEntity())
	assert.Empty(t, set.Removed())
	assert.True(t, Has[*sample](r, named))
}

func TestGetEntities(t *testing.T) {
	r, named := newFixture(t)
	set := SetOf[*sample](r)
	assert.True(t, set.Contains(named))

	Remove[*sample](r, named)
	assert.False(t, set.Contains(named))
}

func TestGetEntitiesBackfillStartsDirty(t *testing.T) {
	r := NewRegistry()
	a := r.CreateEntity()
	b := r.CreateEntity()
	r.CreateEntity()
	r.SetComponent(a, &sample{})
	r.SetComponent(b, &sample{})

	set := SetOf[*sample](r)
	assert.Equal(t, []*Entity{a, b}, set.Members())
	assert.Equal(t, []*Entity{a, b}, set.Added())
	assert.Empty(t, set.Changed())

	assert.Same(t, set, r.Entities(TypeFor[*sample]()), "sets are cached per type")
}

func TestGetEntitiesSkipsRemovedEntities(t *testing.T) {
	r := NewRegistry()
	gone := r.CreateEntity()
	r.SetComponent(gone, &sample{})
	r.RemoveEntity(gone)

	set := SetOf[*sample](r)
	assert.False(t, set.Contains(gone))
}

func TestGetComponentsOfType(t *testing.T) {
	r, _ := newFixture(t)
	assert.Len(t, ComponentsOf[*sample](r), 1)
	assert.Empty(t, ComponentsOf[*counter](r))
}

func TestGetComponentsOfTypeAcrossEntities(t *testing.T) {
	r := NewRegistry()
	a, b, c := r.CreateEntity(), r.CreateEntity(), r.CreateEntity()
	pa := &sample{Val: "a"}
	pb := &sample{Val: "b"}
	r.SetComponent(a, pa)
	r.SetComponent(a, &counter{N: 1})
	r.SetComponent(b, pb)
	r.SetComponent(c, &counter{N: 2})

	got := ComponentsOf[*sample](r)
	assert.ElementsMatch(t, []*sample{pa, pb}, got)
	assert.Len(t, r.ComponentsOfType(TypeFor[*counter]()), 2)
}

func TestFlushSetChanges(t *testing.T) {
	r := NewRegistry()
	e := r.CreateEntity()
	ps := SetOf[*sample](r)
	cs := SetOf[*counter](r)
	r.SetComponent(e, &sample{})
	r.SetComponent(e, &counter{})
	r.RemoveEntity(e)

	r.FlushSetChanges()
	for _, set := range []*EntitySet{ps, cs} {
		assert.Empty(t, set.Added())
		assert.Empty(t, set.Changed())
		assert.Empty(t, set.Removed())
	}
	assert.False(t, Has[*sample](r, e))
	assert.False(t, Has[*counter](r, e))
}

func TestScenarioDeltaLifecycle(t *testing.T) {
	r := NewRegistry()
	a := r.CreateEntity()
	b := r.CreateNamedEntity("Test")
	require.Equal(t, EntityID(0), a.ID())
	require.Equal(t, EntityID(1), b.ID())

	set := SetOf[*sample](r)
	assert.Equal(t, 0, set.Len())

	r.SetComponent(b, &sample{Val: "x"})
	assert.Equal(t, []*Entity{b}, set.Added())

	r.FlushSetChanges()
	assert.Empty(t, set.Added())
	assert.True(t, set.Contains(b))

	r.SetComponent(b, &sample{Val: "x"})
	assert.Empty(t, set.Added())
	assert.Equal(t, []*Entity{b}, set.Changed())

	Remove[*sample](r, b)
	assert.Equal(t, []*Entity{b}, set.Removed())
	assert.False(t, Has[*sample](r, b))
}

func TestRemovedEntityCanBeSetAgain(t *testing.T) {
	r := NewRegistry()
	e := r.CreateEntity()
	r.SetComponent(e, &sample{Val: "old"})
	r.RemoveEntity(e)

	fresh := &counter{N: 9}
	r.SetComponent(e, fresh)

	// the new live association shadows the retained snapshot
	assert.False(t, Has[*sample](r, e))
	got, ok := Get[*counter](r, e)
	require.True(t, ok)
	assert.Same(t, fresh, got)
	assert.False(t, r.HasEntity(e))
}

func TestEachVisitsMembers(t *testing.T) {
	r := NewRegistry()
	a, b := r.CreateEntity(), r.CreateEntity()
	r.SetComponent(a, &counter{N: 1})
	r.SetComponent(b, &counter{N: 2})
	r.SetComponent(r.CreateEntity(), &sample{})

	sum := 0
	var seen []*Entity
	Each(r, func(e *Entity, c *counter) {
		sum += c.N
		seen = append(seen, e)
	})
	assert.Equal(t, 3, sum)
	assert.Equal(t, []*Entity{a, b}, seen)
}

func TestLiveEntitiesIsACopy(t *testing.T) {
	r := NewRegistry()
	r.CreateEntity()
	r.CreateEntity()

	list := r.LiveEntities()
	list[0] = nil
	assert.NotNil(t, r.LiveEntities()[0])
	assert.Equal(t, 2, r.EntityCount())
}

func TestEntityString(t *testing.T) {
	assert.Equal(t, "Entity{id=4}", (&Entity{id: 4}).String())
	assert.Equal(t, `Entity{id=1, name="Test"}`, (&Entity{id: 1, name: "Test", hasName: true}).String())
}

func TestNilEntityAccessors(t *testing.T) {
	var e *Entity
	assert.Equal(t, "Entity{nil}", e.String())
	assert.Equal(t, EntityID(0), e.ID())
	name, named := e.Name()
	assert.Empty(t, name)
	assert.False(t, named)
}

func TestFlushSetChangesLogs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := NewRegistry(WithLogger(zap.New(core)))
	e := r.CreateEntity()
	r.SetComponent(e, &sample{})
	r.Entities(TypeFor[*sample]())
	r.RemoveEntity(e)

	r.FlushSetChanges()

	flushed := logs.FilterMessage("set changes flushed").All()
	require.Len(t, flushed, 1)
	fields := flushed[0].ContextMap()
	assert.EqualValues(t, 1, fields["sets"])
	assert.EqualValues(t, 1, fields["retained"])
}
