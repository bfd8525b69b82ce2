package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileLocation keeps the shareable location fragment in a small file so that
// other processes (or the user) can point a running viewer somewhere else.
type FileLocation struct {
	path string

	mu      sync.Mutex
	written string
}

// NewFileLocation returns a location stored at path. The file is created on
// the first Set.
func NewFileLocation(path string) *FileLocation {
	return &FileLocation{path: path}
}

// Path returns the location file.
func (l *FileLocation) Path() string {
	return l.path
}

// Get returns the trimmed file content. A missing or empty file is absent.
func (l *FileLocation) Get() (string, bool) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return "", false
	}
	v := strings.TrimSpace(string(data))
	return v, v != ""
}

// Set writes the fragment atomically.
func (l *FileLocation) Set(v string) error {
	if l.path == "" {
		return errors.New("store: location path unknown")
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("store: ensure location dir: %w", err)
	}
	l.mu.Lock()
	l.written = v
	l.mu.Unlock()

	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(v+"\n"), 0o644); err != nil {
		return fmt.Errorf("store: write location: %w", err)
	}
	if err := os.Rename(tmp, l.path); err != nil {
		return fmt.Errorf("store: write location: %w", err)
	}
	return nil
}

// isEcho reports whether v is the value this process wrote last.
func (l *FileLocation) isEcho(v string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return v == l.written
}
