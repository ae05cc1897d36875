//go:build linux || freebsd

package mmapstore

import (
	"context"
	"os"

	"golang.org/x/sys/unix"
)

// flushRanges msyncs each coalesced range. Linux accepts sub-slices of the
// mapping as long as they start on a page boundary.
func (s *Store) flushRanges(ctx context.Context, ranges []Range) error {
	for _, r := range ranges {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := unix.Msync(s.data[r.Off:r.Off+r.Len], unix.MS_SYNC); err != nil {
			return err
		}
	}
	return nil
}

// syncFile flushes file data to the device. full has no extra meaning here.
func syncFile(f *os.File, _ bool) error {
	return unix.Fdatasync(int(f.Fd()))
}
