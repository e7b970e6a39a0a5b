package storage

import (
	"fmt"
	"strings"
	"time"
)

// Package storage provides the local seen-post dedup store.

// Store tracks post IDs the watcher has already published.
type Store interface {
	Close() error
	SeenPost(id string) (bool, error)
	MarkPost(id string) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	PostTTL         time.Duration
	CleanupInterval time.Duration
}

const (
	defaultPostTTL         = 5 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.PostTTL <= 0 {
		opts.PostTTL = defaultPostTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                  { return nil }
func (noopStore) SeenPost(string) (bool, error) { return false, nil }
func (noopStore) MarkPost(string) error         { return nil }
