package hashtable

import (
	"fmt"

	"github.com/joshuapare/tierkit/record"
)

// Invalid is the index Find returns for an absent key.
const Invalid = -1

// Entry is one full slot produced by iteration.
type Entry[K comparable, V any] struct {
	Index int
	Key   K
	Value V
}

// core is the probe logic shared by every table and set.
type core[K comparable, V any] struct {
	slots slots[K, V]
	hash  record.Hasher[K]
	// overwrite makes Insert rewrite the item of an existing key. Sets have no
	// item and skip the write.
	overwrite bool
	iter      int
}

func newCore[K comparable, V any](s slots[K, V], hash record.Hasher[K], overwrite bool) core[K, V] {
	return core[K, V]{slots: s, hash: hash, overwrite: overwrite, iter: Invalid}
}

func checkArgs[K any](capacity int, hash record.Hasher[K]) error {
	if capacity <= 0 || hash == nil {
		return fmt.Errorf("%w: capacity=%d", ErrCapacity, capacity)
	}
	return nil
}

func (c *core[K, V]) home(key K) int {
	return int(c.hash(key) % uint32(c.slots.capacity()))
}

// find returns the slot of key and its item, or Invalid.
func (c *core[K, V]) find(key K) (int, V, error) {
	var zero V
	n := c.slots.capacity()
	i0 := c.home(key)
	i := i0
	for {
		m, k, v, err := c.slots.load(i)
		if err != nil {
			return Invalid, zero, err
		}
		if m == record.Full && k == key {
			return i, v, nil
		}
		if m == record.Empty {
			return Invalid, zero, nil
		}
		if i++; i == n {
			i = 0
		}
		if i == i0 {
			return Invalid, zero, nil
		}
	}
}

// insert stores key (and item), preferring the first tombstone on the probe
// path over the empty slot that ends it.
func (c *core[K, V]) insert(key K, item V) error {
	n := c.slots.capacity()
	i0 := c.home(key)
	i := i0
	tombstone := Invalid
	for {
		m, k, _, err := c.slots.load(i)
		if err != nil {
			return err
		}
		if m == record.Empty {
			break
		}
		if m == record.Full && k == key {
			if !c.overwrite {
				return nil
			}
			return c.slots.store(i, key, item)
		}
		if m == record.Tombstone && tombstone == Invalid {
			tombstone = i
		}
		if i++; i == n {
			i = 0
		}
		if i == i0 {
			if tombstone == Invalid {
				return fmt.Errorf("%w: capacity %d", ErrFull, n)
			}
			break
		}
	}
	if tombstone != Invalid {
		i = tombstone
	}
	return c.slots.store(i, key, item)
}

func (c *core[K, V]) remove(key K) error {
	i, _, err := c.find(key)
	if err != nil {
		return err
	}
	if i == Invalid {
		return ErrNotFound
	}
	return c.slots.setMarker(i, record.Tombstone)
}

func (c *core[K, V]) size() (int, error) {
	count := 0
	for i := range c.slots.capacity() {
		m, err := c.slots.marker(i)
		if err != nil {
			return 0, err
		}
		if m == record.Full {
			count++
		}
	}
	return count, nil
}

func (c *core[K, V]) isOccupied(i int) (bool, error) {
	if i < 0 || i >= c.slots.capacity() {
		return false, nil
	}
	m, err := c.slots.marker(i)
	return m == record.Full, err
}

func (c *core[K, V]) clear() error {
	c.iter = Invalid
	return c.slots.clear()
}

func (c *core[K, V]) first() (Entry[K, V], bool, error) {
	c.iter = -1
	return c.next()
}

// next continues from the cursor. After the last entry it keeps returning
// false until First restarts it.
func (c *core[K, V]) next() (Entry[K, V], bool, error) {
	n := c.slots.capacity()
	if c.iter >= n {
		return Entry[K, V]{}, false, nil
	}
	for c.iter++; c.iter < n; c.iter++ {
		m, k, v, err := c.slots.load(c.iter)
		if err != nil {
			return Entry[K, V]{}, false, err
		}
		if m == record.Full {
			return Entry[K, V]{Index: c.iter, Key: k, Value: v}, true, nil
		}
	}
	return Entry[K, V]{}, false, nil
}
