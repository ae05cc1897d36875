// Package stack provides fixed-capacity LIFO stacks.
//
// Local keeps its records in a Go slice. Tiered keeps them in a tier and
// addresses them by stack pointer alone: each Push is one write transfer and
// each Pop, Peek or Get one read transfer. Clear only resets the pointer.
package stack
