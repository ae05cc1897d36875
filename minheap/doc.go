// Package minheap provides fixed-capacity binary min-heaps of record.Item
// values ordered by priority.
//
// Local keeps its array in a Go slice. Tiered keeps it in a tier behind a
// tier.Channel: sift steps read only the leading priority bytes of the
// records they compare, and a record moves with one read and one write. Only
// the record being placed is held locally.
//
// Both variants share one sift implementation, so a given sequence of
// operations produces the same array (and the same order among equal
// priorities) in either. Ties are not stable.
//
// Init bulk-loads items and heapifies bottom-up in O(n).
//
// Neither variant is safe for concurrent use.
package minheap
