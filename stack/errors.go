package stack

import "errors"

var (
	// ErrFull indicates a push onto a stack holding Capacity records.
	ErrFull = errors.New("stack: stack is full")

	// ErrEmpty indicates a pop or peek on an empty stack.
	ErrEmpty = errors.New("stack: stack is empty")

	// ErrOutOfRange indicates Get with an index outside [0, Size).
	ErrOutOfRange = errors.New("stack: index out of range")

	// ErrCapacity indicates a non-positive capacity.
	ErrCapacity = errors.New("stack: capacity must be positive")
)
