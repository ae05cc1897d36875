// Package queue provides fixed-capacity circular queues that can also be
// popped from the back.
//
// Records occupy a ring of Capacity slots. Push writes at back and Pop reads
// at front, each advancing and wrapping at Capacity; PopBack steps back
// before reading. Tiered keeps the ring in a tier with one transfer per
// Push, Pop, PopBack or peek.
package queue
