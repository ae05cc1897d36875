package hashtable

import "github.com/joshuapare/tierkit/record"

// Table is a hash table whose slots live in primary memory.
type Table[K comparable, V any] struct {
	c core[K, V]
}

// NewTable allocates a table with capacity slots.
func NewTable[K comparable, V any](capacity int, hash record.Hasher[K]) (*Table[K, V], error) {
	if err := checkArgs(capacity, hash); err != nil {
		return nil, err
	}
	return &Table[K, V]{c: newCore[K, V](newLocalSlots[K, V](capacity), hash, true)}, nil
}

// Find returns the slot holding key, or Invalid when it is absent.
func (t *Table[K, V]) Find(key K) (int, error) {
	i, _, err := t.c.find(key)
	return i, err
}

// Get returns the item stored under key and whether key was found.
func (t *Table[K, V]) Get(key K) (V, bool, error) {
	i, v, err := t.c.find(key)
	return v, i != Invalid, err
}

// Insert stores item under key, replacing the item of an existing key.
// ErrFull when no empty or deleted slot is left.
func (t *Table[K, V]) Insert(key K, item V) error { return t.c.insert(key, item) }

// Remove marks the slot of key deleted. ErrNotFound when key is absent.
func (t *Table[K, V]) Remove(key K) error { return t.c.remove(key) }

// IsOccupied reports whether slot i holds a live entry.
func (t *Table[K, V]) IsOccupied(i int) (bool, error) { return t.c.isOccupied(i) }

// Size counts the occupied slots.
func (t *Table[K, V]) Size() (int, error) { return t.c.size() }

// Clear marks every slot empty.
func (t *Table[K, V]) Clear() error { return t.c.clear() }

// First starts an iteration in slot order. ok is false for an empty table.
func (t *Table[K, V]) First() (Entry[K, V], bool, error) { return t.c.first() }

// Next continues the iteration begun by First.
func (t *Table[K, V]) Next() (Entry[K, V], bool, error) { return t.c.next() }

// Capacity returns the number of slots.
func (t *Table[K, V]) Capacity() int { return t.c.slots.capacity() }

// HashSet is a hash set whose slots live in primary memory.
type HashSet[K comparable] struct {
	c core[K, struct{}]
}

// NewSet allocates a set with capacity slots.
func NewSet[K comparable](capacity int, hash record.Hasher[K]) (*HashSet[K], error) {
	if err := checkArgs(capacity, hash); err != nil {
		return nil, err
	}
	return &HashSet[K]{c: newCore[K, struct{}](newLocalSlots[K, struct{}](capacity), hash, false)}, nil
}

// Find returns the slot holding key, or Invalid when it is absent.
func (s *HashSet[K]) Find(key K) (int, error) {
	i, _, err := s.c.find(key)
	return i, err
}

// Contains reports whether key is in the set.
func (s *HashSet[K]) Contains(key K) (bool, error) {
	i, _, err := s.c.find(key)
	return i != Invalid, err
}

// Insert adds key. Inserting a present key is a no-op.
func (s *HashSet[K]) Insert(key K) error { return s.c.insert(key, struct{}{}) }

// Remove marks the slot of key deleted. ErrNotFound when key is absent.
func (s *HashSet[K]) Remove(key K) error { return s.c.remove(key) }

func (s *HashSet[K]) IsOccupied(i int) (bool, error) { return s.c.isOccupied(i) }

// Size counts the occupied slots.
func (s *HashSet[K]) Size() (int, error) { return s.c.size() }

// Clear marks every slot empty.
func (s *HashSet[K]) Clear() error { return s.c.clear() }

func (s *HashSet[K]) Capacity() int { return s.c.slots.capacity() }

// First starts an iteration in slot order. ok is false for an empty set.
func (s *HashSet[K]) First() (K, bool, error) {
	e, ok, err := s.c.first()
	return e.Key, ok, err
}

// Next continues the iteration begun by First.
func (s *HashSet[K]) Next() (K, bool, error) {
	e, ok, err := s.c.next()
	return e.Key, ok, err
}
