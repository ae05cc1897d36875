package buf

import (
	"fmt"
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies two non-negative ints, returning ok = false on overflow
// or when either operand is negative. Record counts and record sizes are never
// negative, so a negative operand is treated as a caller bug rather than a value.
func MulOverflowSafe(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// CheckRecordRange validates that count records of recordSize bytes, starting at
// base, end at or before limit. It returns the exclusive end offset.
//
// This is how tier handles are validated before any transfer touches them:
//
//	end, err := buf.CheckRecordRange(1<<24, base, capacity, recordSize)
//	if err != nil {
//	    return fmt.Errorf("handle: %w", err)
//	}
func CheckRecordRange(limit, base, count, recordSize int) (int, error) {
	if base < 0 {
		return 0, fmt.Errorf("negative base: %d", base)
	}
	if count < 0 {
		return 0, fmt.Errorf("negative count: %d", count)
	}
	if recordSize < 0 {
		return 0, fmt.Errorf("negative record size: %d", recordSize)
	}

	total, ok := MulOverflowSafe(count, recordSize)
	if !ok {
		return 0, fmt.Errorf("overflow: count=%d * recordSize=%d", count, recordSize)
	}

	end, ok := AddOverflowSafe(base, total)
	if !ok {
		return 0, fmt.Errorf("overflow: base=%d + size=%d", base, total)
	}

	if end > limit {
		return 0, fmt.Errorf("bounds: end=%d > limit=%d", end, limit)
	}

	return end, nil
}
