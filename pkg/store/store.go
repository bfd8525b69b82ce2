// Package store provides the key-value stores and location fragments the
// viewer persists its session to.
package store

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"tableflip.dev/comicview/pkg/viewer"
)

// Backend names a KV implementation.
const (
	BackendDisk   = "disk"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// ErrUnavailable is returned by every write to an Unavailable store.
var ErrUnavailable = errors.New("store: storage unavailable")

// Config describes where session state lives.
type Config interface {
	BasePath() string
	Backend() string
}

// KV is a viewer.Store that holds resources.
type KV interface {
	viewer.Store
	io.Closer
}

// Load opens the KV selected by cfg.
func Load(cfg Config) (KV, error) {
	if cfg == nil {
		return nil, errors.New("store: no config")
	}
	switch strings.ToLower(cfg.Backend()) {
	case BackendDisk, "":
		return OpenDisk(cfg.BasePath())
	case BackendSQLite:
		return OpenSQLite(cfg.BasePath())
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend())
	}
}

// Unavailable is a KV on which every call fails, standing in for storage
// that is disabled or could not be opened.
type Unavailable struct{}

// Get never finds anything.
func (Unavailable) Get(string) (string, bool) { return "", false }

// Set always fails.
func (Unavailable) Set(string, string) error { return ErrUnavailable }

// Close does nothing.
func (Unavailable) Close() error { return nil }
