package queue

import "errors"

var (
	// ErrFull indicates a push onto a queue holding Capacity records.
	ErrFull = errors.New("queue: queue is full")

	// ErrEmpty indicates a pop or peek on an empty queue.
	ErrEmpty = errors.New("queue: queue is empty")

	// ErrCapacity indicates a non-positive capacity.
	ErrCapacity = errors.New("queue: capacity must be positive")
)
