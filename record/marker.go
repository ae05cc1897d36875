package record

import "fmt"

// Marker is the slot state byte at the start of every hash table and hash set
// record.
type Marker uint8

const (
	// Empty marks a slot that never held a key. It ends a probe sequence.
	Empty Marker = 0

	// Full marks a slot holding a live key.
	Full Marker = 1

	// Tombstone marks a slot whose key was removed. Probes continue past it and
	// inserts may reuse it.
	Tombstone Marker = 0xFF
)

// MarkerSize is the width of the marker field.
const MarkerSize = 1

func (m Marker) String() string {
	switch m {
	case Empty:
		return "empty"
	case Full:
		return "full"
	case Tombstone:
		return "tombstone"
	default:
		return fmt.Sprintf("marker(0x%02x)", uint8(m))
	}
}
