package hashtable

import (
	"github.com/joshuapare/tierkit/record"
	"github.com/joshuapare/tierkit/tier"
)

// TieredTable is a Table whose slots live in a tier. It owns the range
// described by Handle.
type TieredTable[K comparable, V any] struct {
	Table[K, V]
	slots *tierSlots[K, V]
}

// NewTieredTable lays out capacity records of [marker][key][item] at base and
// clears them.
func NewTieredTable[K comparable, V any](
	ch *tier.Channel,
	base tier.Addr,
	capacity int,
	hash record.Hasher[K],
	keys record.Codec[K],
	items record.Codec[V],
) (*TieredTable[K, V], error) {
	if err := checkArgs(capacity, hash); err != nil {
		return nil, err
	}
	s, err := newTierSlots(ch, base, capacity, keys, items)
	if err != nil {
		return nil, err
	}
	if err := s.clear(); err != nil {
		return nil, err
	}
	return &TieredTable[K, V]{
		Table: Table[K, V]{c: newCore[K, V](s, hash, true)},
		slots: s,
	}, nil
}

// Handle returns the tier range owned by the table.
func (t *TieredTable[K, V]) Handle() tier.Handle { return t.slots.h }

// TieredSet is a HashSet whose slots live in a tier.
type TieredSet[K comparable] struct {
	HashSet[K]
	slots *tierSlots[K, struct{}]
}

// NewTieredSet lays out capacity records of [marker][key] at base and clears
// them.
func NewTieredSet[K comparable](
	ch *tier.Channel,
	base tier.Addr,
	capacity int,
	hash record.Hasher[K],
	keys record.Codec[K],
) (*TieredSet[K], error) {
	if err := checkArgs(capacity, hash); err != nil {
		return nil, err
	}
	s, err := newTierSlots[K, struct{}](ch, base, capacity, keys, record.None{})
	if err != nil {
		return nil, err
	}
	if err := s.clear(); err != nil {
		return nil, err
	}
	return &TieredSet[K]{
		HashSet: HashSet[K]{c: newCore[K, struct{}](s, hash, false)},
		slots:   s,
	}, nil
}

// Handle returns the tier range owned by the set.
func (s *TieredSet[K]) Handle() tier.Handle { return s.slots.h }
