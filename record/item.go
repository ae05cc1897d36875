package record

import "cmp"

// Item is a heap record: an ordered priority followed by a payload.
type Item[P cmp.Ordered, T any] struct {
	Priority P
	Value    T
}

// ItemCodec lays out an Item as [priority][value].
type ItemCodec[P cmp.Ordered, T any] struct {
	priority Codec[P]
	value    Codec[T]
}

// NewItemCodec combines a priority codec and a payload codec.
func NewItemCodec[P cmp.Ordered, T any](priority Codec[P], value Codec[T]) ItemCodec[P, T] {
	return ItemCodec[P, T]{priority: priority, value: value}
}

// PriorityCodec returns the codec of the leading priority field. Reading
// PriorityCodec().Size() bytes at a record's address yields its priority.
func (c ItemCodec[P, T]) PriorityCodec() Codec[P] { return c.priority }

func (c ItemCodec[P, T]) Size() int { return c.priority.Size() + c.value.Size() }

func (c ItemCodec[P, T]) Put(dst []byte, it Item[P, T]) {
	n := c.priority.Size()
	c.priority.Put(dst[:n], it.Priority)
	c.value.Put(dst[n:], it.Value)
}

func (c ItemCodec[P, T]) Get(src []byte) Item[P, T] {
	n := c.priority.Size()
	return Item[P, T]{
		Priority: c.priority.Get(src[:n]),
		Value:    c.value.Get(src[n:]),
	}
}
