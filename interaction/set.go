package interaction

// Match selects how Set lookups compare a key against stored elements.
type Match int

const (
	// MatchIdentity compares the element itself.
	MatchIdentity Match = iota
	// MatchOwner compares the element's Owner() against a Positioned key.
	// Elements that are not Owned never match.
	MatchOwner
)

// Set is an unordered collection holding each element at most once.
// Removal swaps with the last element, so order is not stable.
type Set[T comparable] struct {
	items []T
}

// Push appends v without checking for duplicates.
func (s *Set[T]) Push(v T) {
	s.items = append(s.items, v)
}

// Add appends v if it is not already present and reports whether it did.
func (s *Set[T]) Add(v T) bool {
	if s.FindIndex(v) >= 0 {
		return false
	}
	s.items = append(s.items, v)
	return true
}

// FindIndex returns the index of v, or -1.
func (s *Set[T]) FindIndex(v T) int {
	for i, item := range s.items {
		if item == v {
			return i
		}
	}
	return -1
}

// Find returns the stored element equal to v.
func (s *Set[T]) Find(v T) (T, bool) {
	return s.at(s.FindIndex(v))
}

// Contains reports whether v is present.
func (s *Set[T]) Contains(v T) bool {
	return s.FindIndex(v) >= 0
}

// Remove deletes v and reports whether it was present.
func (s *Set[T]) Remove(v T) bool {
	return s.RemoveAt(s.FindIndex(v))
}

// FindIndexBy returns the index of the first element matching key under m.
func (s *Set[T]) FindIndexBy(m Match, key any) int {
	for i, item := range s.items {
		if matches(item, m, key) {
			return i
		}
	}
	return -1
}

// FindBy returns the first element matching key under m.
func (s *Set[T]) FindBy(m Match, key any) (T, bool) {
	return s.at(s.FindIndexBy(m, key))
}

// RemoveBy deletes the first element matching key under m.
func (s *Set[T]) RemoveBy(m Match, key any) bool {
	return s.RemoveAt(s.FindIndexBy(m, key))
}

// RemoveAt swaps index i with the last element and shrinks the set.
func (s *Set[T]) RemoveAt(i int) bool {
	if i < 0 || i >= len(s.items) {
		return false
	}
	last := len(s.items) - 1
	s.items[i] = s.items[last]
	var zero T
	s.items[last] = zero
	s.items = s.items[:last]
	return true
}

// Clear empties the set, keeping its capacity.
func (s *Set[T]) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}

func (s *Set[T]) Len() int      { return len(s.items) }
func (s *Set[T]) IsEmpty() bool { return len(s.items) == 0 }

// Items returns the backing slice. Callers must not modify it.
func (s *Set[T]) Items() []T {
	return s.items
}

// Snapshot returns a copy of the elements, safe to iterate while the set
// is modified.
func (s *Set[T]) Snapshot() []T {
	if len(s.items) == 0 {
		return nil
	}
	return append([]T(nil), s.items...)
}

func (s *Set[T]) at(i int) (T, bool) {
	if i < 0 {
		var zero T
		return zero, false
	}
	return s.items[i], true
}

func matches[T comparable](item T, m Match, key any) bool {
	switch m {
	case MatchOwner:
		owner, ok := key.(Positioned)
		if !ok || owner == nil {
			return false
		}
		o, ok := any(item).(Owned)
		return ok && o.Owner() == owner
	default:
		k, ok := key.(T)
		return ok && k == item
	}
}
