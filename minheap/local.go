package minheap

import (
	"cmp"

	"github.com/joshuapare/tierkit/record"
)

type localArray[P cmp.Ordered, T any] []record.Item[P, T]

func (a localArray[P, T]) capacity() int                           { return len(a) }
func (a localArray[P, T]) priority(i int) (P, error)               { return a[i].Priority, nil }
func (a localArray[P, T]) load(i int) (record.Item[P, T], error)   { return a[i], nil }
func (a localArray[P, T]) store(i int, it record.Item[P, T]) error { a[i] = it; return nil }
func (a localArray[P, T]) move(dst, src int) error                 { a[dst] = a[src]; return nil }

// Local is a min-heap whose array lives in primary memory.
type Local[P cmp.Ordered, T any] struct {
	h core[P, T]
}

// NewLocal allocates a heap holding at most capacity items.
func NewLocal[P cmp.Ordered, T any](capacity int) (*Local[P, T], error) {
	if capacity <= 0 {
		return nil, ErrCapacity
	}
	return &Local[P, T]{h: core[P, T]{a: make(localArray[P, T], capacity)}}, nil
}

// Push adds it. ErrFull when the heap holds Capacity items.
func (l *Local[P, T]) Push(it record.Item[P, T]) error { return l.h.push(it) }

// Pop removes and returns the item with the smallest priority.
func (l *Local[P, T]) Pop() (record.Item[P, T], error) { return l.h.pop() }

// PopInto is Pop writing into dst.
func (l *Local[P, T]) PopInto(dst *record.Item[P, T]) error { return l.h.popInto(dst) }

// Peek returns the item with the smallest priority without removing it.
func (l *Local[P, T]) Peek() (record.Item[P, T], error) { return l.h.peek() }

// Init replaces the contents with items and heapifies them in linear time.
// ErrFull when len(items) exceeds Capacity.
func (l *Local[P, T]) Init(items []record.Item[P, T]) error { return l.h.init(items) }

// Size returns the number of items held.
func (l *Local[P, T]) Size() int { return l.h.size }

// Clear empties the heap.
func (l *Local[P, T]) Clear() { l.h.size = 0 }

func (l *Local[P, T]) Capacity() int { return l.h.a.capacity() }
