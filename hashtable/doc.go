// Package hashtable provides fixed-capacity open-addressing hash tables and
// hash sets with linear probing and tombstone deletion.
//
// # Variants
//
// Table and HashSet keep their slot arrays in Go slices. TieredTable and
// TieredSet keep them in a tier behind a tier.Channel and hold only one record
// of staging buffer locally. All four share one probe implementation, so the
// same sequence of operations leaves the same keys in the same slots whichever
// variant runs it. Callers program against Map and Set and pick the variant
// that fits the data set.
//
// # Probing
//
// The home slot of a key is hash(key) mod capacity. Probes walk forward,
// wrapping at the end, until they find the key, reach an empty slot, or come
// back to the home slot.
//
//   - Find stops at the key or at the first empty slot.
//   - Insert overwrites the item of an existing key. Otherwise it takes the
//     first tombstone it passed, or the empty slot that ended the probe.
//   - Remove turns the slot into a tombstone. Slots are never emptied again
//     (short of Clear), so keys stored past a removed one stay reachable.
//
// Insert returns ErrFull when a whole lap finds neither an empty slot nor a
// tombstone.
//
// # Cost
//
// In the tiered variants every probe step is one channel transfer of one
// record. Size and IsOccupied read only marker bytes, and Remove writes only
// the marker byte.
//
// # Iteration
//
// First and Next walk full slots in ascending slot order. The cursor is part of
// the container, so only one iteration can be active; mutating during an
// iteration gives unspecified results.
//
// # Thread Safety
//
// None of the containers are safe for concurrent use.
package hashtable
