package record

// FNV-1a constants for 32-bit hash.
const (
	fnvBasis32 uint32 = 2166136261
	fnvPrime32 uint32 = 16777619
)

// Hasher maps a key to a 32-bit hash. Tables reduce it modulo their capacity
// to get the first probe slot.
type Hasher[K any] func(K) uint32

// Integer is the set of integer key types HashInt accepts.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// HashInt hashes an integer key to itself (truncated to 32 bits). Small dense
// keys then land in consecutive slots, which keeps probe chains predictable.
func HashInt[K Integer](k K) uint32 { return uint32(k) }

// FNV32 computes the FNV-1a hash of b.
func FNV32(b []byte) uint32 {
	h := fnvBasis32
	for _, c := range b {
		h ^= uint32(c)
		h *= fnvPrime32
	}
	return h
}

// HashString computes the FNV-1a hash of s without converting it to []byte.
func HashString(s string) uint32 {
	h := fnvBasis32
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime32
	}
	return h
}

// HashBinary returns a Hasher that FNV-1a hashes the encoded form of a key.
// The returned function reuses one scratch buffer and is not safe for
// concurrent use.
func HashBinary[K any](c Codec[K]) Hasher[K] {
	scratch := make([]byte, c.Size())
	return func(k K) uint32 {
		c.Put(scratch, k)
		return FNV32(scratch)
	}
}
