package levelstore

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/joshuapare/tierkit/internal/buf"
	"github.com/joshuapare/tierkit/internal/logger"
	"github.com/joshuapare/tierkit/tier"
)

// DefaultPageSize is used when Options.PageSize is zero.
const DefaultPageSize = 4096

// Options configures Open and New.
type Options struct {
	// Banks is the tier size in 64KB banks (1..256). Zero adopts the size
	// recorded in the database.
	Banks int

	// PageSize is the number of tier bytes per key. Must be a power of two no
	// larger than 64KB. Default: DefaultPageSize.
	PageSize int

	// Prefix is the first byte of every key this store owns. Default: 'T'.
	Prefix byte

	// Sync makes every write wait for the LevelDB journal to reach the disk.
	Sync bool

	// ReadOnly opens the database read-only (Open only). Writes then fail with
	// the LevelDB read-only error.
	ReadOnly bool

	// CacheExpiration keeps pages in an in-memory cache for this long after
	// their last write or load. Zero disables the cache.
	CacheExpiration time.Duration
}

// Store is a tier.Store over LevelDB.
//
// NOT thread-safe.
type Store struct {
	db       *leveldb.DB
	owned    bool
	prefix   byte
	pageSize int
	size     int64
	wo       *ldb_opt.WriteOptions
	cache    *pageCache // nil when disabled
}

var _ tier.Store = (*Store)(nil)

// Open opens (creating if needed) the LevelDB database at path and attaches a
// tier to it. Close closes the database.
func Open(path string, opts Options) (*Store, error) {
	db, err := leveldb.OpenFile(path, &ldb_opt.Options{
		ErrorIfMissing: opts.ReadOnly,
		ReadOnly:       opts.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("levelstore: open %s: %w", path, err)
	}
	s, err := attach(db, opts)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s.owned = true
	logger.Debug("tier database opened", "path", path, "banks", s.size/tier.BankSize)
	return s, nil
}

// New attaches a tier to an open database. Close leaves db open.
func New(db *leveldb.DB, opts Options) (*Store, error) {
	return attach(db, opts)
}

func attach(db *leveldb.DB, opts Options) (*Store, error) {
	if opts.PageSize == 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.PageSize < 1 || opts.PageSize > tier.BankSize || opts.PageSize&(opts.PageSize-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrPageSize, opts.PageSize)
	}
	if opts.Banks < 0 || opts.Banks > tier.MaxBanks {
		return nil, fmt.Errorf("%w: %d", ErrSize, opts.Banks)
	}
	if opts.Prefix == 0 {
		opts.Prefix = 'T'
	}

	s := &Store{
		db:       db,
		prefix:   opts.Prefix,
		pageSize: opts.PageSize,
		wo:       &ldb_opt.WriteOptions{Sync: opts.Sync},
	}
	if opts.CacheExpiration > 0 {
		s.cache = newPageCache(opts.CacheExpiration)
	}

	banks, err := s.recordedBanks()
	if err != nil {
		return nil, err
	}
	switch {
	case opts.Banks == 0 && banks == 0:
		return nil, fmt.Errorf("%w: no size recorded", ErrSize)
	case opts.Banks == 0:
		opts.Banks = banks
	case banks != 0 && banks != opts.Banks:
		return nil, fmt.Errorf("%w: recorded %d, requested %d", ErrSize, banks, opts.Banks)
	case banks == 0:
		if err := s.recordBanks(opts.Banks); err != nil {
			return nil, err
		}
	}
	s.size = int64(opts.Banks) * tier.BankSize
	return s, nil
}

// sizeKey is the bare prefix; it sorts before every page key.
func (s *Store) sizeKey() []byte { return []byte{s.prefix} }

func (s *Store) recordedBanks() (int, error) {
	v, err := s.db.Get(s.sizeKey(), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("levelstore: read size: %w", err)
	}
	if len(v) != 4 {
		return 0, fmt.Errorf("%w: size record is %d bytes", ErrCorrupt, len(v))
	}
	return int(binary.BigEndian.Uint32(v)), nil
}

func (s *Store) recordBanks(banks int) error {
	v := make([]byte, 4)
	binary.BigEndian.PutUint32(v, uint32(banks))
	return s.db.Put(s.sizeKey(), v, s.wo)
}

// pageKey returns prefix || uint64be(page).
func (s *Store) pageKey(page int64) []byte {
	key := make([]byte, 9)
	key[0] = s.prefix
	buf.PutU64BE(key[1:], uint64(page))
	return key
}

// loadPage returns the stored page, or nil when the page has no key.
// The returned slice is owned by the caller.
func (s *Store) loadPage(page int64) ([]byte, error) {
	key := s.pageKey(page)
	if s.cache != nil {
		if data, found := s.cache.get(key); found {
			return data, nil
		}
	}

	v, err := s.db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		v, err = nil, nil
	}
	if err != nil {
		return nil, err
	}
	if v != nil && len(v) != s.pageSize {
		return nil, fmt.Errorf("%w: page %d is %d bytes", ErrCorrupt, page, len(v))
	}
	if s.cache != nil {
		s.cache.put(key, v)
	}
	if v == nil {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

// Size implements tier.Store.
func (s *Store) Size() int64 { return s.size }

// CachedPages returns the number of cache entries (0 when the cache is off).
func (s *Store) CachedPages() int {
	if s.cache == nil {
		return 0
	}
	return s.cache.len()
}

// PageSize returns the number of tier bytes per key.
func (s *Store) PageSize() int { return s.pageSize }

// ReadAt implements tier.Store.
func (s *Store) ReadAt(p []byte, off int64) (int, error) {
	if s.db == nil {
		return 0, ErrClosed
	}
	if err := tier.CheckRange(s.size, off, len(p)); err != nil {
		return 0, err
	}
	ps := int64(s.pageSize)
	for done := 0; done < len(p); {
		pos := off + int64(done)
		page, in := pos/ps, int(pos%ps)
		n := min(len(p)-done, s.pageSize-in)

		data, err := s.loadPage(page)
		if err != nil {
			return done, fmt.Errorf("levelstore: read page %d: %w", page, err)
		}
		if data == nil {
			clear(p[done : done+n])
		} else {
			copy(p[done:done+n], data[in:in+n])
		}
		done += n
	}
	return len(p), nil
}

// WriteAt implements tier.Store.
func (s *Store) WriteAt(p []byte, off int64) (int, error) {
	err := s.update(off, len(p), func(page []byte, lo, hi int) {
		copy(page, p[lo:hi])
	})
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

// Fill implements tier.Store.
func (s *Store) Fill(off int64, value byte, n int) error {
	return s.update(off, n, func(page []byte, _, _ int) {
		for i := range page {
			page[i] = value
		}
	})
}

// update applies fn to every page slice covering [off, off+n) and commits
// the result as one batch. lo and hi are offsets relative to off.
func (s *Store) update(off int64, n int, fn func(page []byte, lo, hi int)) error {
	if s.db == nil {
		return ErrClosed
	}
	if err := tier.CheckRange(s.size, off, n); err != nil {
		return err
	}

	batch := new(leveldb.Batch)
	var written []cacheUpdate
	ps := int64(s.pageSize)
	for done := 0; done < n; {
		pos := off + int64(done)
		page, in := pos/ps, int(pos%ps)
		m := min(n-done, s.pageSize-in)

		var data []byte
		if m < s.pageSize {
			// Partial page: merge with what is stored.
			old, err := s.loadPage(page)
			if err != nil {
				return fmt.Errorf("levelstore: read page %d: %w", page, err)
			}
			data = old
		}
		if data == nil {
			data = make([]byte, s.pageSize)
		}
		fn(data[in:in+m], done, done+m)

		key := s.pageKey(page)
		if isZero(data) {
			batch.Delete(key)
			data = nil
		} else {
			batch.Put(key, data)
		}
		if s.cache != nil {
			written = append(written, cacheUpdate{key: key, data: data})
		}
		done += m
	}
	if err := s.db.Write(batch, s.wo); err != nil {
		return fmt.Errorf("levelstore: write %d bytes at %d: %w", n, off, err)
	}
	for _, u := range written {
		s.cache.put(u.key, u.data)
	}
	return nil
}

type cacheUpdate struct {
	key  []byte
	data []byte // nil for a deleted page
}

func isZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

// Pages returns the number of pages currently stored (pages holding only
// zeros are not stored).
func (s *Store) Pages() (int, error) {
	if s.db == nil {
		return 0, ErrClosed
	}
	pages := s.size / int64(s.pageSize)
	iter := s.db.NewIterator(ldb_util.BytesPrefix([]byte{s.prefix}), nil)
	count := 0
	for iter.Next() {
		key := iter.Key()
		if len(key) != 9 || int64(buf.U64BE(key[1:])) >= pages {
			continue // size record, or a key this store never writes
		}
		count++
	}
	iter.Release()
	return count, iter.Error()
}

// Close detaches the store and closes the database if Open created it.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	db := s.db
	s.db = nil
	if s.cache != nil {
		s.cache.clear()
	}
	if !s.owned {
		return nil
	}
	return db.Close()
}
