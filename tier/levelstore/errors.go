package levelstore

import "errors"

var (
	// ErrClosed indicates an operation on a closed store.
	ErrClosed = errors.New("levelstore: store is closed")

	// ErrSize indicates a bank count outside 1..256, or one that disagrees
	// with the size recorded in the database.
	ErrSize = errors.New("levelstore: tier size must be 1..256 banks")

	// ErrPageSize indicates a page size that is not a power of two dividing 64KB.
	ErrPageSize = errors.New("levelstore: page size must be a power of two up to 65536")

	// ErrCorrupt indicates a stored page or size record with the wrong length.
	ErrCorrupt = errors.New("levelstore: corrupt record")
)
