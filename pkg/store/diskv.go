package store

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// Disk is a KV backed by diskv. Keys of the form `<name>-<field>` are stored
// as <base>/<encoded name>/<field>.
type Disk struct {
	d        *diskv.Diskv
	basePath string
}

// OpenDisk creates the base directory and returns a diskv backed store.
func OpenDisk(basePath string) (*Disk, error) {
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &Disk{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      64 * 1024,
	}), basePath: basePath}, nil
}

// Get returns the value stored under key.
func (p *Disk) Get(key string) (string, bool) {
	val, err := p.d.Read(key)
	if err != nil {
		return "", false
	}
	return string(val), true
}

// Set stores value under key.
func (p *Disk) Set(key, value string) error {
	if err := p.d.WriteString(key, value); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

// Keys lists stored keys in order.
func (p *Disk) Keys(ctx context.Context) []string {
	var keys []string
	for key := range p.d.Keys(ctx.Done()) {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// BasePath returns the storage directory.
func (p *Disk) BasePath() string {
	return p.basePath
}

// Close is a no-op; diskv holds no open files between calls.
func (p *Disk) Close() error {
	return nil
}

func keyToPathTransform(s string) *diskv.PathKey {
	i := strings.LastIndex(s, "-")
	if i < 0 {
		return &diskv.PathKey{FileName: s}
	}
	return &diskv.PathKey{
		Path:     []string{toNamespace(s[:i])},
		FileName: s[i+1:],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s-%s", fromNamespace(pathKey.Path[0]), pathKey.FileName)
}

// toNamespace encodes a comic name so it is safe as a directory name.
func toNamespace(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func fromNamespace(s string) string {
	ns, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return fmt.Sprintf("fromNamespace: %s", err)
	}
	return string(ns)
}
