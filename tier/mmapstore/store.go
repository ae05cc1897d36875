package mmapstore

import (
	"context"
	"fmt"
	"os"

	"github.com/joshuapare/tierkit/internal/logger"
	"github.com/joshuapare/tierkit/tier"
)

// Options configures Open.
type Options struct {
	// Banks is the tier size in 64KB banks (1..256). A smaller existing file is
	// grown with zeros. Zero adopts the size of an existing file.
	Banks int

	// Create creates the file when it does not exist.
	Create bool

	// FlushMode selects the durability of Flush. Default: FlushAuto.
	FlushMode FlushMode

	// SyncOnClose runs Flush before unmapping in Close.
	SyncOnClose bool
}

// Store is a tier.Store over a memory-mapped file.
//
// NOT thread-safe.
type Store struct {
	path  string
	f     *os.File
	data  []byte
	dirty *tracker
	opts  Options
}

var _ tier.Store = (*Store)(nil)

// Open maps the tier image at path read-write.
func Open(path string, opts Options) (*Store, error) {
	if opts.Banks < 0 || opts.Banks > tier.MaxBanks {
		return nil, fmt.Errorf("%w: banks=%d", ErrSize, opts.Banks)
	}

	flags := os.O_RDWR
	if opts.Create {
		flags |= os.O_CREATE
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, err
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	size, err := targetSize(st.Size(), opts.Banks)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if size != st.Size() {
		// Extends with zeros, which reads back as empty record slots.
		if err := f.Truncate(size); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("mmapstore: grow %s to %d: %w", path, size, err)
		}
	}

	data, err := mapFile(f, size)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("mmapstore: map %s: %w", path, err)
	}

	logger.Debug("tier file mapped", "path", path, "banks", size/tier.BankSize)
	return &Store{
		path:  path,
		f:     f,
		data:  data,
		dirty: newTracker(),
		opts:  opts,
	}, nil
}

// targetSize decides the mapped size from the file's current size and the
// requested bank count.
func targetSize(cur int64, banks int) (int64, error) {
	if banks == 0 {
		if cur == 0 || cur%tier.BankSize != 0 || cur > tier.AddrSpace {
			return 0, fmt.Errorf("%w: file is %d bytes", ErrSize, cur)
		}
		return cur, nil
	}
	want := int64(banks) * tier.BankSize
	if cur > want {
		return 0, fmt.Errorf("%w: file is %d bytes, want %d banks", ErrSize, cur, banks)
	}
	return want, nil
}

// Path returns the file path.
func (s *Store) Path() string { return s.path }

// Banks returns the mapped size in banks.
func (s *Store) Banks() int { return int(s.Size() / tier.BankSize) }

// Size implements tier.Store.
func (s *Store) Size() int64 { return int64(len(s.data)) }

// ReadAt implements tier.Store.
func (s *Store) ReadAt(p []byte, off int64) (int, error) {
	if s.f == nil {
		return 0, ErrClosed
	}
	if err := tier.CheckRange(s.Size(), off, len(p)); err != nil {
		return 0, err
	}
	return copy(p, s.data[off:]), nil
}

// WriteAt implements tier.Store.
func (s *Store) WriteAt(p []byte, off int64) (int, error) {
	if s.f == nil {
		return 0, ErrClosed
	}
	if err := tier.CheckRange(s.Size(), off, len(p)); err != nil {
		return 0, err
	}
	n := copy(s.data[off:], p)
	s.dirty.add(off, n)
	return n, nil
}

// Fill implements tier.Store.
func (s *Store) Fill(off int64, value byte, n int) error {
	if s.f == nil {
		return ErrClosed
	}
	if err := tier.CheckRange(s.Size(), off, n); err != nil {
		return err
	}
	region := s.data[off : off+int64(n)]
	for i := range region {
		region[i] = value
	}
	s.dirty.add(off, n)
	return nil
}

// DirtyRanges returns the page-aligned ranges the next Flush will sync.
func (s *Store) DirtyRanges() []Range {
	return s.dirty.coalesce(s.Size())
}

// Flush syncs dirty pages to the file and, depending on the FlushMode, the
// file to the device.
//
// If ctx is cancelled part way, some ranges may have been synced and the rest
// stay recorded for the next Flush.
func (s *Store) Flush(ctx context.Context) error {
	if s.f == nil {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if !s.dirty.empty() {
		ranges := s.dirty.coalesce(s.Size())
		if err := s.flushRanges(ctx, ranges); err != nil {
			return fmt.Errorf("mmapstore: flush %s: %w", s.path, err)
		}
		logger.Debug("tier file flushed", "path", s.path, "ranges", len(ranges))
		s.dirty.reset()
	}

	if s.opts.FlushMode == FlushDataOnly {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return syncFile(s.f, s.opts.FlushMode == FlushFull)
}

// Close unmaps the file and closes it. Unflushed writes stay in the page cache
// and reach the file eventually unless SyncOnClose forces them out first.
func (s *Store) Close() error {
	if s.f == nil {
		return nil
	}
	var flushErr error
	if s.opts.SyncOnClose {
		flushErr = s.Flush(context.Background())
	}
	unmapErr := unmapFile(s.f, s.data)
	closeErr := s.f.Close()
	s.f = nil
	s.data = nil

	switch {
	case flushErr != nil:
		return flushErr
	case unmapErr != nil:
		return unmapErr
	default:
		return closeErr
	}
}
