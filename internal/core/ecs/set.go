package ecs

// EntitySet is the cached answer to "which entities carry component type X".
// Besides membership it buffers the entities added, changed and removed since
// the last flush so per-frame systems can react only to what moved.
//
// Slices returned by Members, Added, Changed and Removed alias internal state:
// callers must not modify them, and they are only valid until the next
// mutation of the set.
type EntitySet struct {
	members []*Entity
	index   map[*Entity]int

	added   []*Entity
	changed []*Entity
	removed []*Entity
}

// NewEntitySet creates an empty set. Sets owned by a Registry are created by
// Registry.Entities; standalone sets are mostly useful in tests.
func NewEntitySet() *EntitySet {
	return &EntitySet{
		index: make(map[*Entity]int),
	}
}

// Add inserts e if it is not already a member and records it as added.
// It reports whether e was inserted.
func (s *EntitySet) Add(e *Entity) bool {
	if e == nil {
		return false
	}
	if _, ok := s.index[e]; ok {
		return false
	}
	s.index[e] = len(s.members)
	s.members = append(s.members, e)
	s.added = append(s.added, e)
	return true
}

// MarkChanged records e as changed. Membership is not checked; the Registry
// only calls this for entities it knows are members.
func (s *EntitySet) MarkChanged(e *Entity) {
	if e == nil {
		return
	}
	s.changed = append(s.changed, e)
}

// Remove drops e from the set and records it as removed. Removing a
// non-member is a no-op, so the removed buffer never holds duplicates from
// repeated removals. It reports whether e was a member.
func (s *EntitySet) Remove(e *Entity) bool {
	i, ok := s.index[e]
	if !ok {
		return false
	}
	delete(s.index, e)
	copy(s.members[i:], s.members[i+1:])
	s.members[len(s.members)-1] = nil
	s.members = s.members[:len(s.members)-1]
	for j := i; j < len(s.members); j++ {
		s.index[s.members[j]] = j
	}
	s.removed = append(s.removed, e)
	return true
}

func (s *EntitySet) Contains(e *Entity) bool {
	_, ok := s.index[e]
	return ok
}

// Len returns the number of members.
func (s *EntitySet) Len() int { return len(s.members) }

// Members returns the current members in insertion order.
func (s *EntitySet) Members() []*Entity { return s.members }

// Added returns entities that became members since the last flush.
func (s *EntitySet) Added() []*Entity { return s.added }

// Changed returns entities whose component was overwritten since the last
// flush, once per overwrite. A first-time add is never reported here.
func (s *EntitySet) Changed() []*Entity { return s.changed }

// Removed returns entities that left the set since the last flush.
func (s *EntitySet) Removed() []*Entity { return s.removed }

// FlushChanges clears the delta buffers and leaves membership untouched.
func (s *EntitySet) FlushChanges() {
	s.added = nil
	s.changed = nil
	s.removed = nil
}

// Clear empties membership and every delta buffer.
func (s *EntitySet) Clear() {
	s.members = nil
	s.index = make(map[*Entity]int)
	s.FlushChanges()
}
