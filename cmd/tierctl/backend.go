package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/joshuapare/tierkit/tier"
	"github.com/joshuapare/tierkit/tier/levelstore"
	"github.com/joshuapare/tierkit/tier/mmapstore"
)

const (
	backendMem     = "mem"
	backendMmap    = "mmap"
	backendLevelDB = "leveldb"
)

// session is an open tier with its channel. Close persists and releases the
// backing store.
type session struct {
	ch    *tier.Channel
	store tier.Store
	close func() error
}

func (s *session) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// closeInto closes s and stores the close error in *errp unless the command
// already failed. Use it deferred with a named error result.
func (s *session) closeInto(errp *error) {
	if err := s.Close(); err != nil && *errp == nil {
		*errp = fmt.Errorf("close failed: %w", err)
	}
}

// openTier opens the tier selected by the global flags.
func openTier() (*session, error) {
	switch backend {
	case backendMem:
		if tierBanks < 1 {
			return nil, fmt.Errorf("--banks must be at least 1 for the %s backend", backendMem)
		}
		s, err := tier.NewMemStore(tierBanks)
		if err != nil {
			return nil, err
		}
		return &session{ch: tier.NewChannel(s), store: s}, nil

	case backendMmap:
		if tierPath == "" {
			return nil, errors.New("--path is required for the mmap backend")
		}
		printVerbose("Mapping tier image: %s\n", tierPath)
		s, err := mmapstore.Open(tierPath, mmapstore.Options{
			Banks:       tierBanks,
			Create:      true,
			SyncOnClose: true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open tier image: %w", err)
		}
		return &session{ch: tier.NewChannel(s), store: s, close: s.Close}, nil

	case backendLevelDB:
		if tierPath == "" {
			return nil, errors.New("--path is required for the leveldb backend")
		}
		printVerbose("Opening tier database: %s\n", tierPath)
		s, err := levelstore.Open(tierPath, levelstore.Options{Banks: tierBanks})
		if err != nil {
			return nil, fmt.Errorf("failed to open tier database: %w", err)
		}
		return &session{ch: tier.NewChannel(s), store: s, close: s.Close}, nil

	default:
		return nil, fmt.Errorf("unknown backend %q (want %s, %s or %s)", backend, backendMem, backendMmap, backendLevelDB)
	}
}

// flush forces pending writes of a file-backed tier to disk.
func (s *session) flush(ctx context.Context) error {
	if m, ok := s.store.(*mmapstore.Store); ok {
		return m.Flush(ctx)
	}
	return nil
}
