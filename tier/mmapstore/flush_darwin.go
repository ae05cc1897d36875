//go:build darwin

package mmapstore

import (
	"context"
	"os"

	"golang.org/x/sys/unix"
)

// flushRanges syncs the whole mapping. msync on macOS requires the original
// mmap address, so sub-slices cannot be passed; the kernel still writes only
// dirty pages.
func (s *Store) flushRanges(ctx context.Context, _ []Range) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return unix.Msync(s.data, unix.MS_SYNC)
}

// syncFile uses F_FULLFSYNC when full is set so data leaves the drive cache.
func syncFile(f *os.File, full bool) error {
	if full {
		_, err := unix.FcntlInt(f.Fd(), unix.F_FULLFSYNC, 0)
		return err
	}
	return unix.Fsync(int(f.Fd()))
}
