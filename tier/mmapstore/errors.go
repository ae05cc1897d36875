package mmapstore

import "errors"

var (
	// ErrClosed indicates an operation on a closed store.
	ErrClosed = errors.New("mmapstore: store is closed")

	// ErrSize indicates a file whose size is zero or not a whole number of banks,
	// or a requested bank count outside 1..256.
	ErrSize = errors.New("mmapstore: tier size must be 1..256 whole banks")
)
