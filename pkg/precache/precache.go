// Package precache warms media ahead of navigation. Hints are fire and
// forget: they are queued without blocking and dropped when the queue is
// full or the warmer is disabled.
package precache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/h2non/filetype"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"tableflip.dev/comicview/pkg/comic"
	"tableflip.dev/comicview/pkg/logging"
)

const defaultQueue = 64

// ErrTooLarge is returned for media bigger than the whole cache.
var ErrTooLarge = errors.New("precache: media too large")

// Config configures a Warmer.
type Config struct {
	// Root is prefixed to relative media names; a local directory or an
	// http(s) base URL.
	Root string
	// Workers is the number of fetch goroutines. Zero disables warming.
	Workers int
	// MaxBytes bounds the in-memory cache.
	MaxBytes int64
	// Client fetches remote media. Defaults to a retrying client.
	Client *retryablehttp.Client
	Logger logrus.FieldLogger
}

// Item is one warmed media file.
type Item struct {
	Ref    string
	Source string
	MIME   string
	Data   []byte
}

// Warmer fetches media refs into a bounded in-memory cache.
type Warmer struct {
	root    string
	workers int
	max     int64
	client  *retryablehttp.Client
	log     logrus.FieldLogger
	queue   chan string

	mu       sync.Mutex
	items    map[string]*Item
	order    []string
	size     int64
	inflight map[string]struct{}

	wg sync.WaitGroup
}

// New returns a Warmer. Call Start to begin fetching.
func New(cfg Config) *Warmer {
	client := cfg.Client
	if client == nil {
		client = retryablehttp.NewClient()
		client.Logger = log.New(io.Discard, "", 0)
		client.RetryMax = 2
	}
	l := cfg.Logger
	if l == nil {
		l = logging.Log
	}
	return &Warmer{
		root:     cfg.Root,
		workers:  cfg.Workers,
		max:      cfg.MaxBytes,
		client:   client,
		log:      l,
		queue:    make(chan string, defaultQueue),
		items:    make(map[string]*Item),
		inflight: make(map[string]struct{}),
	}
}

// Start launches the workers. They exit when ctx is done.
func (w *Warmer) Start(ctx context.Context) {
	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case ref := <-w.queue:
					w.warm(ctx, ref)
				}
			}
		}()
	}
}

// Wait blocks until every worker has exited.
func (w *Warmer) Wait() {
	w.wg.Wait()
}

// Precache queues refs that are neither cached nor already in flight.
func (w *Warmer) Precache(refs []string) {
	if w.workers == 0 {
		return
	}
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		w.mu.Lock()
		_, cached := w.items[ref]
		_, busy := w.inflight[ref]
		if cached || busy {
			w.mu.Unlock()
			continue
		}
		w.inflight[ref] = struct{}{}
		w.mu.Unlock()

		select {
		case w.queue <- ref:
		default:
			w.done(ref)
			w.log.WithField("ref", ref).Debug("precache: queue full, hint dropped")
		}
	}
}

// Get returns a warmed item.
func (w *Warmer) Get(ref string) (Item, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	it, ok := w.items[ref]
	if !ok {
		return Item{}, false
	}
	return *it, true
}

// Len returns the number of cached items.
func (w *Warmer) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.items)
}

// Size returns the cached bytes.
func (w *Warmer) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

func (w *Warmer) done(ref string) {
	w.mu.Lock()
	delete(w.inflight, ref)
	w.mu.Unlock()
}

func (w *Warmer) warm(ctx context.Context, ref string) {
	defer w.done(ref)
	src, err := w.Resolve(ref)
	if err != nil {
		w.log.WithField("ref", ref).WithError(err).Debug("precache: bad ref")
		return
	}
	data, err := w.fetch(ctx, src)
	if err != nil {
		w.log.WithField("source", src).WithError(err).Debug("precache: fetch failed")
		return
	}
	w.put(&Item{Ref: ref, Source: src, MIME: sniff(data), Data: data})
}

// Resolve maps a media ref to a file path or URL.
func (w *Warmer) Resolve(ref string) (string, error) {
	m, err := comic.ParseMedia(ref)
	if err != nil {
		return "", err
	}
	if isURL(m.Name) {
		return m.Name, nil
	}
	if isURL(w.root) {
		return strings.TrimSuffix(w.root, "/") + "/" + strings.TrimPrefix(m.Name, "/"), nil
	}
	return filepath.Join(w.root, filepath.FromSlash(m.Name)), nil
}

func (w *Warmer) fetch(ctx context.Context, src string) ([]byte, error) {
	if !isURL(src) {
		f, err := os.Open(src)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return w.read(src, f)
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := w.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("precache: %s: %s", src, resp.Status)
	}
	return w.read(src, resp.Body)
}

// read reads r, stopping one byte past max so oversized media is never
// held in memory whole.
func (w *Warmer) read(src string, r io.Reader) ([]byte, error) {
	if w.max <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, w.max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > w.max {
		return nil, fmt.Errorf("%w: %s is larger than %d bytes", ErrTooLarge, src, w.max)
	}
	return data, nil
}

// put inserts it, evicting the oldest items to stay within max bytes.
func (w *Warmer) put(it *Item) {
	n := int64(len(it.Data))
	if w.max > 0 && n > w.max {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.items[it.Ref]; ok {
		return
	}
	for w.max > 0 && w.size+n > w.max && len(w.order) > 0 {
		oldest := w.order[0]
		w.order = w.order[1:]
		if old, ok := w.items[oldest]; ok {
			w.size -= int64(len(old.Data))
			delete(w.items, oldest)
		}
	}
	w.items[it.Ref] = it
	w.order = append(w.order, it.Ref)
	w.size += n
}

func sniff(data []byte) string {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return "application/octet-stream"
	}
	return kind.MIME.Value
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
