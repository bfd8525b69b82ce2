package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch streams external changes of the location file until ctx is
// cancelled. Values this FileLocation wrote itself are not reported, and
// bursts of writes are coalesced to the latest value. Callers should drain
// the channel; it is closed once ctx is done or the watcher fails.
func (l *FileLocation) Watch(ctx context.Context) (<-chan string, error) {
	if l.path == "" {
		return nil, errors.New("store: location path unknown")
	}
	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure location dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		})
	}

	// The file is replaced by rename on every write, so watch the directory.
	if err := watcher.Add(dir); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", dir, err)
	}

	changes := make(chan string, watchBuffer)
	target := filepath.Clean(l.path)

	go func() {
		defer close(changes)
		defer closeWatcher()

		// Coalesce bursts of writes: deliver only the latest value once
		// writes settle for settleDelay.
		var (
			pending string
			settle  <-chan time.Time
		)

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			case <-settle:
				select {
				case changes <- pending:
					settle = nil
				default:
					// The consumer is behind; keep the value and retry.
					settle = time.After(settleDelay)
				}
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != target {
					continue
				}
				if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
					continue
				}
				v, found := l.Get()
				if !found || l.isEcho(v) {
					continue
				}
				pending = v
				if settle == nil {
					settle = time.After(settleDelay)
				}
			}
		}
	}()

	return changes, nil
}

const settleDelay = 50 * time.Millisecond

var watchBuffer = 8
