// Package record defines the fixed-width record layouts shared by the local and
// tiered containers: slot markers, value codecs, heap items, and key hashing.
//
// # Layouts
//
//	| Container  | Record                                |
//	|------------|---------------------------------------|
//	| hash table | [marker:1][key:K.Size()][item:V.Size()] |
//	| hash set   | [marker:1][key:K.Size()]              |
//	| heap       | [priority:P.Size()][payload]          |
//	| stack/queue| [payload]                             |
//
// The marker byte comes first so a container can read or write it alone with a
// one-byte transfer. The heap priority comes first for the same reason: sifting
// compares priorities without moving whole records.
//
// # Markers
//
// Empty is 0, so zero-filled storage (a fresh MemStore, a grown file, a cleared
// handle) decodes as a table of empty slots. Tombstone is 0xFF.
//
// # Codecs
//
// A Codec turns a value into exactly Size() bytes and back. Integer codecs are
// little-endian. Binary covers fixed-size structs through encoding/binary:
//
//	type point struct{ X, Y int16 }
//	pc, err := record.NewBinary[point]()
//	if err != nil {
//	    return err // point has a variable-size field
//	}
package record
