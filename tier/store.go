package tier

import (
	"fmt"

	"github.com/joshuapare/tierkit/internal/buf"
)

const (
	// BankSize is the size of one addressable bank (64KB).
	BankSize = 0x10000

	// MaxBanks is the number of banks in the 24-bit address space.
	MaxBanks = 256

	// AddrSpace is the size of the 24-bit tier address space (16MB).
	AddrSpace = MaxBanks * BankSize

	// AddrMask masks a value down to a 24-bit tier address.
	AddrMask = AddrSpace - 1
)

//go:generate mockgen -destination=../internal/tiertest/mock_store.go -package=tiertest github.com/joshuapare/tierkit/tier Store

// Store is the byte container behind a tier. Offsets are physical: the Channel
// has already folded the 24-bit tier address onto [0, Size()).
//
// Implementations must reject ranges that extend past Size() with ErrOutOfRange
// (wrapped is fine) instead of returning short counts.
type Store interface {
	ReadAt(p []byte, off int64) (int, error)
	WriteAt(p []byte, off int64) (int, error)

	// Fill writes n copies of value starting at off.
	Fill(off int64, value byte, n int) error

	// Size returns the number of installed bytes.
	Size() int64
}

// CheckRange validates [off, off+n) against a store of the given size.
// Store implementations share it so they all fail the same way.
func CheckRange(size, off int64, n int) error {
	if off < 0 || n < 0 {
		return fmt.Errorf("%w: off=%d n=%d", ErrOutOfRange, off, n)
	}
	if _, err := buf.CheckRecordRange(int(size), int(off), n, 1); err != nil {
		return fmt.Errorf("%w: %v", ErrOutOfRange, err)
	}
	return nil
}

// MemStore keeps the tier in a byte slice. It is the reference store used by
// tests and by callers that only need the transfer cost model.
type MemStore struct {
	data []byte
}

// NewMemStore creates a zero-filled store of banks × 64KB.
func NewMemStore(banks int) (*MemStore, error) {
	if banks < 0 || banks > MaxBanks {
		return nil, fmt.Errorf("%w: %d", ErrBanks, banks)
	}
	return &MemStore{data: make([]byte, banks*BankSize)}, nil
}

// ReadAt implements Store.
func (m *MemStore) ReadAt(p []byte, off int64) (int, error) {
	if err := CheckRange(m.Size(), off, len(p)); err != nil {
		return 0, err
	}
	return copy(p, m.data[off:]), nil
}

// WriteAt implements Store.
func (m *MemStore) WriteAt(p []byte, off int64) (int, error) {
	if err := CheckRange(m.Size(), off, len(p)); err != nil {
		return 0, err
	}
	return copy(m.data[off:], p), nil
}

// Fill implements Store.
func (m *MemStore) Fill(off int64, value byte, n int) error {
	if err := CheckRange(m.Size(), off, n); err != nil {
		return err
	}
	region := m.data[off : off+int64(n)]
	for i := range region {
		region[i] = value
	}
	return nil
}

// Size implements Store.
func (m *MemStore) Size() int64 { return int64(len(m.data)) }

// Bytes exposes the backing slice (for tests and debugging).
func (m *MemStore) Bytes() []byte { return m.data }
