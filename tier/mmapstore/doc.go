// Package mmapstore backs a tier with a memory-mapped file.
//
// # Overview
//
// The file holds the tier image byte for byte: offset N of the file is physical
// tier byte N. Reads and writes are plain copies into the mapping, so the
// Channel's cost model (round trips, bytes moved) is unchanged while the tier
// survives process restarts.
//
//	s, err := mmapstore.Open("tier.img", mmapstore.Options{Banks: 16, Create: true})
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//	ch := tier.NewChannel(s)
//
// # Dirty Tracking
//
// Every WriteAt and Fill records the byte range it touched. Flush page-aligns
// the recorded ranges, merges overlapping and adjacent ones, and msyncs only
// those pages:
//
//	Dirty writes: [0x100+8, 0x1ff0+32, 0x9000+1] → Pages: [0x0-0x3000, 0x9000-0xa000]
//
// On macOS msync must be given the original mapping address, so the whole
// mapping is synced; the kernel still writes only dirty pages.
//
// # Durability
//
// FlushMode selects what Flush does after msync:
//
//   - FlushDataOnly: msync the dirty pages only
//   - FlushAuto: msync, then fdatasync the file
//   - FlushFull: msync, then F_FULLFSYNC on macOS (fdatasync elsewhere)
//
// On platforms without mmap the file is read into memory and Flush writes the
// dirty ranges back with WriteAt.
//
// # Thread Safety
//
// Store is NOT thread-safe, matching the single-channel model of package tier.
package mmapstore
