package hashtable

// Map is the operation surface shared by Table and TieredTable.
type Map[K comparable, V any] interface {
	// Find returns the slot holding key, or Invalid.
	Find(key K) (int, error)
	// Get returns the item stored for key.
	Get(key K) (V, bool, error)
	// Insert stores item under key, overwriting an existing item.
	Insert(key K, item V) error
	// Remove tombstones the slot of key. ErrNotFound when absent.
	Remove(key K) error
	IsOccupied(i int) (bool, error)
	Size() (int, error)
	Clear() error
	First() (Entry[K, V], bool, error)
	Next() (Entry[K, V], bool, error)
	Capacity() int
}

// Set is the operation surface shared by HashSet and TieredSet.
type Set[K comparable] interface {
	Find(key K) (int, error)
	Contains(key K) (bool, error)
	Insert(key K) error
	Remove(key K) error
	IsOccupied(i int) (bool, error)
	Size() (int, error)
	Clear() error
	First() (K, bool, error)
	Next() (K, bool, error)
	Capacity() int
}

var (
	_ Map[int, int] = (*Table[int, int])(nil)
	_ Map[int, int] = (*TieredTable[int, int])(nil)
	_ Set[int]      = (*HashSet[int])(nil)
	_ Set[int]      = (*TieredSet[int])(nil)
)

// Range calls fn for every entry of m in slot order until fn returns false.
// It restarts the iteration cursor of m.
func Range[K comparable, V any](m Map[K, V], fn func(K, V) bool) error {
	e, ok, err := m.First()
	for ; ok && err == nil; e, ok, err = m.Next() {
		if !fn(e.Key, e.Value) {
			return nil
		}
	}
	return err
}

// RangeSet calls fn for every key of s in slot order until fn returns false.
func RangeSet[K comparable](s Set[K], fn func(K) bool) error {
	k, ok, err := s.First()
	for ; ok && err == nil; k, ok, err = s.Next() {
		if !fn(k) {
			return nil
		}
	}
	return err
}

// Keys collects every key of s.
func Keys[K comparable](s Set[K]) ([]K, error) {
	var keys []K
	err := RangeSet(s, func(k K) bool {
		keys = append(keys, k)
		return true
	})
	return keys, err
}
