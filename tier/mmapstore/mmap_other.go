//go:build !linux && !darwin && !freebsd

package mmapstore

import (
	"context"
	"io"
	"os"
)

// mapFile reads the whole file when mmap is not available.
func mapFile(f *os.File, size int64) ([]byte, error) {
	data := make([]byte, size)
	if _, err := f.ReadAt(data, 0); err != nil && err != io.EOF {
		return nil, err
	}
	return data, nil
}

func unmapFile(_ *os.File, _ []byte) error { return nil }

// flushRanges writes the dirty ranges back to the file.
func (s *Store) flushRanges(ctx context.Context, ranges []Range) error {
	for _, r := range ranges {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := s.f.WriteAt(s.data[r.Off:r.Off+r.Len], r.Off); err != nil {
			return err
		}
	}
	return nil
}

func syncFile(f *os.File, _ bool) error { return f.Sync() }
