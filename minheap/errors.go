package minheap

import "errors"

var (
	// ErrFull indicates a push or init beyond capacity.
	ErrFull = errors.New("minheap: heap is full")

	// ErrEmpty indicates a pop or peek on an empty heap.
	ErrEmpty = errors.New("minheap: heap is empty")

	// ErrCapacity indicates a non-positive capacity.
	ErrCapacity = errors.New("minheap: capacity must be positive")
)
