// Package slab provides fixed-size record arrays, either as a Go slice or as
// a range of a tier, addressed purely by index.
package slab

import (
	"fmt"

	"github.com/joshuapare/tierkit/record"
	"github.com/joshuapare/tierkit/tier"
)

// Array is an indexed record array. Indices must be in [0, Len()).
type Array[T any] interface {
	Len() int
	Load(i int) (T, error)
	Store(i int, v T) error
}

// Local is an Array in primary memory.
type Local[T any] []T

func (a Local[T]) Len() int               { return len(a) }
func (a Local[T]) Load(i int) (T, error)  { return a[i], nil }
func (a Local[T]) Store(i int, v T) error { a[i] = v; return nil }

// Tiered is an Array whose records live in a tier. Each Load is one read
// transfer and each Store one write transfer.
type Tiered[T any] struct {
	ch      *tier.Channel
	h       tier.Handle
	codec   record.Codec[T]
	staging []byte
}

// NewTiered lays out capacity records of codec.Size() bytes at base.
func NewTiered[T any](ch *tier.Channel, base tier.Addr, capacity int, codec record.Codec[T]) (*Tiered[T], error) {
	size := codec.Size()
	if size > tier.BankSize {
		return nil, fmt.Errorf("%w: record of %d bytes", tier.ErrLength, size)
	}
	h, err := tier.NewHandle(base, capacity, size)
	if err != nil {
		return nil, err
	}
	return &Tiered[T]{ch: ch, h: h, codec: codec, staging: make([]byte, size)}, nil
}

func (a *Tiered[T]) Len() int { return a.h.Capacity }

// Handle returns the tier range of the array.
func (a *Tiered[T]) Handle() tier.Handle { return a.h }

func (a *Tiered[T]) Load(i int) (T, error) {
	if err := a.ch.Read(a.staging, a.h.Addr(i)); err != nil {
		var zero T
		return zero, fmt.Errorf("read record %d: %w", i, err)
	}
	return a.codec.Get(a.staging), nil
}

func (a *Tiered[T]) Store(i int, v T) error {
	a.codec.Put(a.staging, v)
	if err := a.ch.Write(a.staging, a.h.Addr(i)); err != nil {
		return fmt.Errorf("write record %d: %w", i, err)
	}
	return nil
}
