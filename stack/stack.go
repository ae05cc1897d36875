package stack

import (
	"fmt"

	"github.com/joshuapare/tierkit/internal/slab"
	"github.com/joshuapare/tierkit/record"
	"github.com/joshuapare/tierkit/tier"
)

// Stack is the operation surface shared by Local and Tiered.
type Stack[T any] interface {
	Push(v T) error
	Pop() (T, error)
	PopInto(dst *T) error
	Peek() (T, error)
	// Get returns record i counted from the bottom.
	Get(i int) (T, error)
	Size() int
	Clear()
	Capacity() int
}

var (
	_ Stack[int] = (*Local[int])(nil)
	_ Stack[int] = (*Tiered[int])(nil)
)

// core is a stack over any record array. sp is the number of records held.
type core[T any] struct {
	a  slab.Array[T]
	sp int
}

func (s *core[T]) push(v T) error {
	if s.sp == s.a.Len() {
		return fmt.Errorf("%w: capacity %d", ErrFull, s.sp)
	}
	if err := s.a.Store(s.sp, v); err != nil {
		return fmt.Errorf("stack: push: %w", err)
	}
	s.sp++
	return nil
}

func (s *core[T]) popInto(dst *T) error {
	if s.sp == 0 {
		return ErrEmpty
	}
	v, err := s.a.Load(s.sp - 1)
	if err != nil {
		return fmt.Errorf("stack: pop: %w", err)
	}
	s.sp--
	*dst = v
	return nil
}

func (s *core[T]) pop() (T, error) {
	var v T
	err := s.popInto(&v)
	return v, err
}

func (s *core[T]) peek() (T, error) {
	if s.sp == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return s.get(s.sp - 1)
}

func (s *core[T]) get(i int) (T, error) {
	if i < 0 || i >= s.sp {
		var zero T
		return zero, fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, s.sp)
	}
	v, err := s.a.Load(i)
	if err != nil {
		return v, fmt.Errorf("stack: get: %w", err)
	}
	return v, nil
}

// Local is a stack in primary memory.
type Local[T any] struct {
	s core[T]
}

// NewLocal allocates a stack of capacity records.
func NewLocal[T any](capacity int) (*Local[T], error) {
	if capacity <= 0 {
		return nil, ErrCapacity
	}
	return &Local[T]{s: core[T]{a: make(slab.Local[T], capacity)}}, nil
}

// Push puts v on top. ErrFull when the stack holds Capacity records.
func (l *Local[T]) Push(v T) error { return l.s.push(v) }

// Pop removes and returns the top record. ErrEmpty on an empty stack.
func (l *Local[T]) Pop() (T, error) { return l.s.pop() }

// PopInto is Pop writing into dst.
func (l *Local[T]) PopInto(dst *T) error { return l.s.popInto(dst) }

// Peek returns the top record without removing it.
func (l *Local[T]) Peek() (T, error) { return l.s.peek() }

// Get returns record i counted from the bottom.
func (l *Local[T]) Get(i int) (T, error) { return l.s.get(i) }

func (l *Local[T]) Size() int     { return l.s.sp }
func (l *Local[T]) Clear()        { l.s.sp = 0 }
func (l *Local[T]) Capacity() int { return l.s.a.Len() }

// Tiered is a stack whose records live in a tier.
type Tiered[T any] struct {
	s core[T]
	a *slab.Tiered[T]
}

// NewTiered lays out capacity records at base. The range is not cleared.
func NewTiered[T any](ch *tier.Channel, base tier.Addr, capacity int, codec record.Codec[T]) (*Tiered[T], error) {
	if capacity <= 0 {
		return nil, ErrCapacity
	}
	a, err := slab.NewTiered(ch, base, capacity, codec)
	if err != nil {
		return nil, fmt.Errorf("stack: %w", err)
	}
	return &Tiered[T]{s: core[T]{a: a}, a: a}, nil
}

func (t *Tiered[T]) Push(v T) error       { return t.s.push(v) }
func (t *Tiered[T]) Pop() (T, error)      { return t.s.pop() }
func (t *Tiered[T]) PopInto(dst *T) error { return t.s.popInto(dst) }
func (t *Tiered[T]) Peek() (T, error)     { return t.s.peek() }
func (t *Tiered[T]) Get(i int) (T, error) { return t.s.get(i) }
func (t *Tiered[T]) Size() int            { return t.s.sp }
func (t *Tiered[T]) Clear()               { t.s.sp = 0 }
func (t *Tiered[T]) Capacity() int        { return t.a.Len() }

// Handle returns the tier range owned by the stack.
func (t *Tiered[T]) Handle() tier.Handle { return t.a.Handle() }
