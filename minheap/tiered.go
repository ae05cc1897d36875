package minheap

import (
	"cmp"
	"fmt"

	"github.com/joshuapare/tierkit/record"
	"github.com/joshuapare/tierkit/tier"
)

// tierArray keeps records in a tier. It stages at most one record.
type tierArray[P cmp.Ordered, T any] struct {
	ch      *tier.Channel
	h       tier.Handle
	codec   record.ItemCodec[P, T]
	prio    record.Codec[P]
	staging []byte
}

func (a *tierArray[P, T]) capacity() int { return a.h.Capacity }

func (a *tierArray[P, T]) priority(i int) (P, error) {
	b := a.staging[:a.prio.Size()]
	if err := a.ch.Read(b, a.h.Addr(i)); err != nil {
		var zero P
		return zero, fmt.Errorf("minheap: read priority %d: %w", i, err)
	}
	return a.prio.Get(b), nil
}

func (a *tierArray[P, T]) load(i int) (record.Item[P, T], error) {
	if err := a.ch.Read(a.staging, a.h.Addr(i)); err != nil {
		return record.Item[P, T]{}, fmt.Errorf("minheap: read record %d: %w", i, err)
	}
	return a.codec.Get(a.staging), nil
}

func (a *tierArray[P, T]) store(i int, it record.Item[P, T]) error {
	a.codec.Put(a.staging, it)
	if err := a.ch.Write(a.staging, a.h.Addr(i)); err != nil {
		return fmt.Errorf("minheap: write record %d: %w", i, err)
	}
	return nil
}

func (a *tierArray[P, T]) move(dst, src int) error {
	if err := a.ch.Read(a.staging, a.h.Addr(src)); err != nil {
		return fmt.Errorf("minheap: read record %d: %w", src, err)
	}
	if err := a.ch.Write(a.staging, a.h.Addr(dst)); err != nil {
		return fmt.Errorf("minheap: write record %d: %w", dst, err)
	}
	return nil
}

// Tiered is a min-heap whose array lives in a tier. Records are laid out as
// [priority][value] starting at the handle base.
type Tiered[P cmp.Ordered, T any] struct {
	h core[P, T]
	a *tierArray[P, T]
}

// NewTiered lays out capacity records at base. The range is not cleared;
// records beyond Size are never read.
func NewTiered[P cmp.Ordered, T any](
	ch *tier.Channel,
	base tier.Addr,
	capacity int,
	codec record.ItemCodec[P, T],
) (*Tiered[P, T], error) {
	if capacity <= 0 {
		return nil, ErrCapacity
	}
	size := codec.Size()
	if size > tier.BankSize || codec.PriorityCodec().Size() == 0 {
		return nil, fmt.Errorf("minheap: unusable record of %d bytes", size)
	}
	h, err := tier.NewHandle(base, capacity, size)
	if err != nil {
		return nil, fmt.Errorf("minheap: %w", err)
	}
	a := &tierArray[P, T]{
		ch:      ch,
		h:       h,
		codec:   codec,
		prio:    codec.PriorityCodec(),
		staging: make([]byte, size),
	}
	return &Tiered[P, T]{h: core[P, T]{a: a}, a: a}, nil
}

// Push adds it. ErrFull when the heap holds Capacity items.
func (t *Tiered[P, T]) Push(it record.Item[P, T]) error { return t.h.push(it) }

// Pop removes and returns the item with the smallest priority.
func (t *Tiered[P, T]) Pop() (record.Item[P, T], error) { return t.h.pop() }

// PopInto is Pop writing into dst.
func (t *Tiered[P, T]) PopInto(dst *record.Item[P, T]) error { return t.h.popInto(dst) }

// Peek returns the item with the smallest priority without removing it.
func (t *Tiered[P, T]) Peek() (record.Item[P, T], error) { return t.h.peek() }

// Init writes items into the tier one record per transfer, then heapifies.
func (t *Tiered[P, T]) Init(items []record.Item[P, T]) error { return t.h.init(items) }

// Size returns the number of items held.
func (t *Tiered[P, T]) Size() int { return t.h.size }

// Clear empties the heap without touching the tier.
func (t *Tiered[P, T]) Clear() { t.h.size = 0 }

func (t *Tiered[P, T]) Capacity() int { return t.a.capacity() }

// Handle returns the tier range owned by the heap.
func (t *Tiered[P, T]) Handle() tier.Handle { return t.a.h }
