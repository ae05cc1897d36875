package minheap

import (
	"cmp"
	"fmt"

	"github.com/joshuapare/tierkit/record"
)

// Heap is the operation surface shared by Local and Tiered.
type Heap[P cmp.Ordered, T any] interface {
	Push(item record.Item[P, T]) error
	Pop() (record.Item[P, T], error)
	PopInto(dst *record.Item[P, T]) error
	Peek() (record.Item[P, T], error)
	// Init replaces the contents with items and heapifies them.
	Init(items []record.Item[P, T]) error
	Size() int
	Clear()
	Capacity() int
}

var (
	_ Heap[int, int] = (*Local[int, int])(nil)
	_ Heap[int, int] = (*Tiered[int, int])(nil)
)

// array is the record array behind a heap.
type array[P cmp.Ordered, T any] interface {
	capacity() int
	priority(i int) (P, error)
	load(i int) (record.Item[P, T], error)
	store(i int, it record.Item[P, T]) error
	// move copies record src over record dst.
	move(dst, src int) error
}

// core holds the sift logic. Elements occupy slots [0, size).
type core[P cmp.Ordered, T any] struct {
	a    array[P, T]
	size int
}

func parent(i int) int { return (i - 1) / 2 }

// push counts it only once siftUp has stored it. As with popInto, a failure
// after records have moved leaves the contents undefined until Clear or Init.
func (h *core[P, T]) push(it record.Item[P, T]) error {
	if h.size == h.a.capacity() {
		return fmt.Errorf("%w: capacity %d", ErrFull, h.size)
	}
	if err := h.siftUp(h.size, it); err != nil {
		return err
	}
	h.size++
	return nil
}

// siftUp places it at hole i or above, moving larger parents down.
func (h *core[P, T]) siftUp(i int, it record.Item[P, T]) error {
	for i > 0 {
		p := parent(i)
		pp, err := h.a.priority(p)
		if err != nil {
			return err
		}
		if !(it.Priority < pp) {
			break
		}
		if err := h.a.move(i, p); err != nil {
			return err
		}
		i = p
	}
	return h.a.store(i, it)
}

// siftDown places it at hole i or below, moving smaller children up.
func (h *core[P, T]) siftDown(i int, it record.Item[P, T]) error {
	for {
		c := 2*i + 1
		if c >= h.size {
			break
		}
		cp, err := h.a.priority(c)
		if err != nil {
			return err
		}
		if r := c + 1; r < h.size {
			rp, err := h.a.priority(r)
			if err != nil {
				return err
			}
			if rp < cp {
				c, cp = r, rp
			}
		}
		if !(cp < it.Priority) {
			break
		}
		if err := h.a.move(i, c); err != nil {
			return err
		}
		i = c
	}
	return h.a.store(i, it)
}

func (h *core[P, T]) peek() (record.Item[P, T], error) {
	if h.size == 0 {
		return record.Item[P, T]{}, ErrEmpty
	}
	return h.a.load(0)
}

// popInto leaves Size unchanged when it fails. A failure after siftDown has
// moved records leaves the contents undefined until Clear or Init.
func (h *core[P, T]) popInto(dst *record.Item[P, T]) error {
	if h.size == 0 {
		return ErrEmpty
	}
	root, err := h.a.load(0)
	if err != nil {
		return err
	}
	n := h.size - 1
	if n > 0 {
		last, err := h.a.load(n)
		if err != nil {
			return err
		}
		h.size = n
		if err := h.siftDown(0, last); err != nil {
			h.size = n + 1
			return err
		}
	}
	h.size = n
	*dst = root
	return nil
}

func (h *core[P, T]) pop() (record.Item[P, T], error) {
	var it record.Item[P, T]
	err := h.popInto(&it)
	return it, err
}

// init stores items as they are and heapifies from the last internal node up.
func (h *core[P, T]) init(items []record.Item[P, T]) error {
	if len(items) > h.a.capacity() {
		return fmt.Errorf("%w: %d items, capacity %d", ErrFull, len(items), h.a.capacity())
	}
	h.size = 0
	for i, it := range items {
		if err := h.a.store(i, it); err != nil {
			return err
		}
	}
	h.size = len(items)
	for i := h.size/2 - 1; i >= 0; i-- {
		it := items[i]
		if err := h.siftDown(i, it); err != nil {
			return err
		}
	}
	return nil
}
