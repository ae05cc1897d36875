package queue

import (
	"fmt"

	"github.com/joshuapare/tierkit/internal/slab"
	"github.com/joshuapare/tierkit/record"
	"github.com/joshuapare/tierkit/tier"
)

// Queue is the operation surface shared by Local and Tiered.
type Queue[T any] interface {
	// Push appends v at the back.
	Push(v T) error
	// Pop removes the front record.
	Pop() (T, error)
	// PopBack removes the most recently pushed record.
	PopBack() (T, error)
	Peek() (T, error)
	// PeekBack returns the record PopBack would remove.
	PeekBack() (T, error)
	Size() int
	Clear()
	Capacity() int
}

var (
	_ Queue[int] = (*Local[int])(nil)
	_ Queue[int] = (*Tiered[int])(nil)
)

// ring is a queue over any record array. back is the slot the next push
// writes.
type ring[T any] struct {
	a                  slab.Array[T]
	front, back, count int
}

func (q *ring[T]) wrapDec(i int) int {
	if i == 0 {
		return q.a.Len() - 1
	}
	return i - 1
}

func (q *ring[T]) wrapInc(i int) int {
	if i++; i == q.a.Len() {
		return 0
	}
	return i
}

func (q *ring[T]) push(v T) error {
	if q.count == q.a.Len() {
		return fmt.Errorf("%w: capacity %d", ErrFull, q.count)
	}
	if err := q.a.Store(q.back, v); err != nil {
		return fmt.Errorf("queue: push: %w", err)
	}
	q.back = q.wrapInc(q.back)
	q.count++
	return nil
}

func (q *ring[T]) pop() (T, error) {
	v, err := q.peek()
	if err != nil {
		return v, err
	}
	q.front = q.wrapInc(q.front)
	q.count--
	return v, nil
}

func (q *ring[T]) popBack() (T, error) {
	v, err := q.peekBack()
	if err != nil {
		return v, err
	}
	q.back = q.wrapDec(q.back)
	q.count--
	return v, nil
}

func (q *ring[T]) peek() (T, error) {
	return q.load(q.front)
}

func (q *ring[T]) peekBack() (T, error) {
	return q.load(q.wrapDec(q.back))
}

func (q *ring[T]) load(i int) (T, error) {
	if q.count == 0 {
		var zero T
		return zero, ErrEmpty
	}
	v, err := q.a.Load(i)
	if err != nil {
		return v, fmt.Errorf("queue: %w", err)
	}
	return v, nil
}

func (q *ring[T]) clear() {
	q.front, q.back, q.count = 0, 0, 0
}

// Local is a queue in primary memory.
type Local[T any] struct {
	q ring[T]
}

// NewLocal allocates a queue of capacity records.
func NewLocal[T any](capacity int) (*Local[T], error) {
	if capacity <= 0 {
		return nil, ErrCapacity
	}
	return &Local[T]{q: ring[T]{a: make(slab.Local[T], capacity)}}, nil
}

// Push appends v at the back. ErrFull when the ring is full.
func (l *Local[T]) Push(v T) error { return l.q.push(v) }

// Pop removes and returns the front record. ErrEmpty on an empty queue.
func (l *Local[T]) Pop() (T, error) { return l.q.pop() }

// PopBack removes and returns the most recently pushed record.
func (l *Local[T]) PopBack() (T, error) { return l.q.popBack() }

// Peek returns the front record without removing it.
func (l *Local[T]) Peek() (T, error) { return l.q.peek() }

// PeekBack returns the back record without removing it.
func (l *Local[T]) PeekBack() (T, error) { return l.q.peekBack() }

// Size returns the number of queued records.
func (l *Local[T]) Size() int { return l.q.count }

// Clear empties the queue and rewinds both ends to record 0.
func (l *Local[T]) Clear() { l.q.clear() }

func (l *Local[T]) Capacity() int { return l.q.a.Len() }

// Tiered is a queue whose ring lives in a tier.
type Tiered[T any] struct {
	q ring[T]
	a *slab.Tiered[T]
}

// NewTiered lays out a ring of capacity records at base. The range is not
// cleared.
func NewTiered[T any](ch *tier.Channel, base tier.Addr, capacity int, codec record.Codec[T]) (*Tiered[T], error) {
	if capacity <= 0 {
		return nil, ErrCapacity
	}
	a, err := slab.NewTiered(ch, base, capacity, codec)
	if err != nil {
		return nil, fmt.Errorf("queue: %w", err)
	}
	return &Tiered[T]{q: ring[T]{a: a}, a: a}, nil
}

func (t *Tiered[T]) Push(v T) error       { return t.q.push(v) }
func (t *Tiered[T]) Pop() (T, error)      { return t.q.pop() }
func (t *Tiered[T]) PopBack() (T, error)  { return t.q.popBack() }
func (t *Tiered[T]) Peek() (T, error)     { return t.q.peek() }
func (t *Tiered[T]) PeekBack() (T, error) { return t.q.peekBack() }
func (t *Tiered[T]) Size() int            { return t.q.count }
func (t *Tiered[T]) Clear()               { t.q.clear() }
func (t *Tiered[T]) Capacity() int        { return t.a.Len() }

// Handle returns the tier range owned by the queue.
func (t *Tiered[T]) Handle() tier.Handle { return t.a.Handle() }
