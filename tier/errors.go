package tier

import "errors"

var (
	// ErrModeActive indicates a transfer was issued while the address control
	// register held a fixed-address mode, or a second mode scope was opened.
	ErrModeActive = errors.New("tier: fixed-address mode is active")

	// ErrShortBuffer indicates the local buffer is smaller than the transfer needs.
	ErrShortBuffer = errors.New("tier: local buffer shorter than transfer")

	// ErrOutOfRange indicates an offset or range outside the store or the 24-bit space.
	ErrOutOfRange = errors.New("tier: range outside the tier")

	// ErrBadHandle indicates a handle with zero capacity or zero record size.
	ErrBadHandle = errors.New("tier: invalid handle geometry")

	// ErrLength indicates a whole-slice transfer that cannot be encoded in the
	// 16-bit length register.
	ErrLength = errors.New("tier: transfer length must be 1..65536")

	// ErrBadCommand indicates an unknown command byte.
	ErrBadCommand = errors.New("tier: unknown transfer command")

	// ErrBanks indicates a bank count outside 0..256.
	ErrBanks = errors.New("tier: bank count must be 0..256")
)
