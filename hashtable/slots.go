package hashtable

import (
	"fmt"

	"github.com/joshuapare/tierkit/record"
	"github.com/joshuapare/tierkit/tier"
)

// slots is the slot array behind a table. Indices are always in [0, capacity).
type slots[K comparable, V any] interface {
	capacity() int

	// load reads the whole record of slot i.
	load(i int) (record.Marker, K, V, error)

	// marker reads only the marker of slot i.
	marker(i int) (record.Marker, error)

	// store writes a full record with key and item into slot i.
	store(i int, key K, item V) error

	// setMarker writes only the marker of slot i.
	setMarker(i int, m record.Marker) error

	// clear marks every slot empty.
	clear() error
}

// localSlots keeps the slot array in primary memory.
type localSlots[K comparable, V any] struct {
	markers []record.Marker
	keys    []K
	items   []V
}

func newLocalSlots[K comparable, V any](capacity int) *localSlots[K, V] {
	return &localSlots[K, V]{
		markers: make([]record.Marker, capacity),
		keys:    make([]K, capacity),
		items:   make([]V, capacity),
	}
}

func (s *localSlots[K, V]) capacity() int { return len(s.markers) }

func (s *localSlots[K, V]) load(i int) (record.Marker, K, V, error) {
	return s.markers[i], s.keys[i], s.items[i], nil
}

func (s *localSlots[K, V]) marker(i int) (record.Marker, error) {
	return s.markers[i], nil
}

func (s *localSlots[K, V]) store(i int, key K, item V) error {
	s.markers[i] = record.Full
	s.keys[i] = key
	s.items[i] = item
	return nil
}

func (s *localSlots[K, V]) setMarker(i int, m record.Marker) error {
	s.markers[i] = m
	return nil
}

func (s *localSlots[K, V]) clear() error {
	var zeroK K
	var zeroV V
	for i := range s.markers {
		s.markers[i] = record.Empty
		s.keys[i] = zeroK
		s.items[i] = zeroV
	}
	return nil
}

// tierSlots keeps the slot array in a tier. Records are laid out as
// [marker][key][item] starting at the handle base.
type tierSlots[K comparable, V any] struct {
	ch      *tier.Channel
	h       tier.Handle
	keys    record.Codec[K]
	items   record.Codec[V]
	staging []byte // one record
}

func newTierSlots[K comparable, V any](
	ch *tier.Channel,
	base tier.Addr,
	capacity int,
	keys record.Codec[K],
	items record.Codec[V],
) (*tierSlots[K, V], error) {
	size := record.MarkerSize + keys.Size() + items.Size()
	if size > tier.BankSize {
		return nil, fmt.Errorf("hashtable: record of %d bytes exceeds one transfer", size)
	}
	h, err := tier.NewHandle(base, capacity, size)
	if err != nil {
		return nil, fmt.Errorf("hashtable: %w", err)
	}
	return &tierSlots[K, V]{
		ch:      ch,
		h:       h,
		keys:    keys,
		items:   items,
		staging: make([]byte, size),
	}, nil
}

func (s *tierSlots[K, V]) capacity() int { return s.h.Capacity }

func (s *tierSlots[K, V]) load(i int) (record.Marker, K, V, error) {
	var key K
	var item V
	if err := s.ch.Read(s.staging, s.h.Addr(i)); err != nil {
		return record.Empty, key, item, fmt.Errorf("hashtable: read slot %d: %w", i, err)
	}
	k := record.MarkerSize + s.keys.Size()
	key = s.keys.Get(s.staging[record.MarkerSize:k])
	item = s.items.Get(s.staging[k:])
	return record.Marker(s.staging[0]), key, item, nil
}

func (s *tierSlots[K, V]) marker(i int) (record.Marker, error) {
	if err := s.ch.Read(s.staging[:record.MarkerSize], s.h.Addr(i)); err != nil {
		return record.Empty, fmt.Errorf("hashtable: read marker %d: %w", i, err)
	}
	return record.Marker(s.staging[0]), nil
}

func (s *tierSlots[K, V]) store(i int, key K, item V) error {
	k := record.MarkerSize + s.keys.Size()
	s.staging[0] = byte(record.Full)
	s.keys.Put(s.staging[record.MarkerSize:k], key)
	s.items.Put(s.staging[k:], item)
	if err := s.ch.Write(s.staging, s.h.Addr(i)); err != nil {
		return fmt.Errorf("hashtable: write slot %d: %w", i, err)
	}
	return nil
}

func (s *tierSlots[K, V]) setMarker(i int, m record.Marker) error {
	s.staging[0] = byte(m)
	if err := s.ch.Write(s.staging[:record.MarkerSize], s.h.Addr(i)); err != nil {
		return fmt.Errorf("hashtable: write marker %d: %w", i, err)
	}
	return nil
}

func (s *tierSlots[K, V]) clear() error {
	return s.h.Clear(s.ch)
}
