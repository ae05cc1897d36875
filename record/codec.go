package record

import (
	"encoding/binary"
	"fmt"

	"github.com/joshuapare/tierkit/internal/buf"
)

// Codec encodes values of T into exactly Size() bytes.
//
// Put and Get are given slices of at least Size() bytes; the containers
// guarantee this, so codecs do not check.
type Codec[T any] interface {
	Size() int
	Put(dst []byte, v T)
	Get(src []byte) T
}

// Uint8 is the one-byte codec for uint8.
type Uint8 struct{}

func (Uint8) Size() int               { return 1 }
func (Uint8) Put(dst []byte, v uint8) { dst[0] = v }
func (Uint8) Get(src []byte) uint8    { return src[0] }

// Int8 is the one-byte codec for int8.
type Int8 struct{}

func (Int8) Size() int              { return 1 }
func (Int8) Put(dst []byte, v int8) { dst[0] = byte(v) }
func (Int8) Get(src []byte) int8    { return int8(src[0]) }

// Uint16 is the little-endian codec for uint16.
type Uint16 struct{}

func (Uint16) Size() int                { return 2 }
func (Uint16) Put(dst []byte, v uint16) { buf.PutU16LE(dst, v) }
func (Uint16) Get(src []byte) uint16    { return buf.U16LE(src) }

// Int16 is the little-endian codec for int16.
type Int16 struct{}

func (Int16) Size() int               { return 2 }
func (Int16) Put(dst []byte, v int16) { buf.PutU16LE(dst, uint16(v)) }
func (Int16) Get(src []byte) int16    { return int16(buf.U16LE(src)) }

// Uint32 is the little-endian codec for uint32.
type Uint32 struct{}

func (Uint32) Size() int                { return 4 }
func (Uint32) Put(dst []byte, v uint32) { buf.PutU32LE(dst, v) }
func (Uint32) Get(src []byte) uint32    { return buf.U32LE(src) }

// Int32 is the little-endian codec for int32.
type Int32 struct{}

func (Int32) Size() int               { return 4 }
func (Int32) Put(dst []byte, v int32) { buf.PutU32LE(dst, uint32(v)) }
func (Int32) Get(src []byte) int32    { return int32(buf.U32LE(src)) }

// Uint64 is the little-endian codec for uint64.
type Uint64 struct{}

func (Uint64) Size() int                { return 8 }
func (Uint64) Put(dst []byte, v uint64) { buf.PutU64LE(dst, v) }
func (Uint64) Get(src []byte) uint64    { return buf.U64LE(src) }

// Int64 is the little-endian codec for int64.
type Int64 struct{}

func (Int64) Size() int               { return 8 }
func (Int64) Put(dst []byte, v int64) { buf.PutU64LE(dst, uint64(v)) }
func (Int64) Get(src []byte) int64    { return int64(buf.U64LE(src)) }

// None is the zero-width codec. Hash sets use it for their missing item.
type None struct{}

func (None) Size() int            { return 0 }
func (None) Put([]byte, struct{}) {}
func (None) Get([]byte) struct{}  { return struct{}{} }

// Binary encodes fixed-size values (structs and arrays of fixed-width fields)
// with encoding/binary in little-endian order.
type Binary[T any] struct {
	size int
}

// NewBinary returns a codec for T, or an error when T has no fixed encoded size.
func NewBinary[T any]() (Binary[T], error) {
	var zero T
	n := binary.Size(zero)
	if n < 0 {
		return Binary[T]{}, fmt.Errorf("record: %T has no fixed binary size", zero)
	}
	return Binary[T]{size: n}, nil
}

// MustBinary is NewBinary for package-level codec variables; it panics on error.
func MustBinary[T any]() Binary[T] {
	c, err := NewBinary[T]()
	if err != nil {
		panic(err)
	}
	return c
}

func (c Binary[T]) Size() int { return c.size }

func (c Binary[T]) Put(dst []byte, v T) {
	// Size was validated in NewBinary, so encoding cannot fail.
	_, _ = binary.Encode(dst[:c.size], binary.LittleEndian, v)
}

func (c Binary[T]) Get(src []byte) T {
	var v T
	_, _ = binary.Decode(src[:c.size], binary.LittleEndian, &v)
	return v
}
