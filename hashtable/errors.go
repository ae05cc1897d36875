package hashtable

import "errors"

var (
	// ErrFull indicates an insert found no empty slot and no tombstone to reuse.
	ErrFull = errors.New("hashtable: no free slot")

	// ErrNotFound indicates Remove was called for an absent key.
	ErrNotFound = errors.New("hashtable: key not found")

	// ErrCapacity indicates a non-positive capacity or a missing hash function.
	ErrCapacity = errors.New("hashtable: capacity must be positive and a hash function set")
)
