package viewer

import (
	"errors"
	"sync"
	"testing"

	"tableflip.dev/comicview/pkg/comic"
)

// dataset builds a dataset from a category pattern: 's' storyline, 'e' extra.
func dataset(t *testing.T, pattern string) *comic.Dataset {
	t.Helper()
	entries := make([]comic.Entry, 0, len(pattern))
	for i, c := range pattern {
		cat := comic.Storyline
		if c == 'e' {
			cat = comic.Extra
		}
		entries = append(entries, comic.Entry{
			Category:  cat,
			MediaRefs: []string{string(rune('a'+i)) + ".png"},
		})
	}
	ds, err := comic.New(entries)
	if err != nil {
		t.Fatalf("build dataset %q: %v", pattern, err)
	}
	return ds
}

// seqRand replays a fixed sequence of draws.
type seqRand struct {
	vals []int
	i    int
}

func (r *seqRand) IntN(n int) int {
	v := r.vals[r.i%len(r.vals)] % n
	r.i++
	return v
}

type memStore struct {
	mu   sync.Mutex
	data map[string]string
	sets int
}

func newMemStore(kv ...string) *memStore {
	s := &memStore{data: map[string]string{}}
	for i := 0; i+1 < len(kv); i += 2 {
		s.data[kv[i]] = kv[i+1]
	}
	return s
}

func (s *memStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *memStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	s.sets++
	return nil
}

type brokenStore struct{}

func (brokenStore) Get(string) (string, bool) { return "", false }
func (brokenStore) Set(string, string) error  { return errors.New("storage disabled") }

type memLocation struct {
	value  string
	set    bool
	writes []string
}

func (l *memLocation) Get() (string, bool) { return l.value, l.set }
func (l *memLocation) Set(v string) error {
	l.value, l.set = v, true
	l.writes = append(l.writes, v)
	return nil
}

type frame struct {
	index           int
	isFirst, isLast bool
}

type recorder struct {
	frames []frame
	hints  [][]string
}

func (r *recorder) Render(e comic.Entry, isFirst, isLast bool) {
	r.frames = append(r.frames, frame{index: e.Index, isFirst: isFirst, isLast: isLast})
}

func (r *recorder) Precache(refs []string) {
	r.hints = append(r.hints, refs)
}

func (r *recorder) last(t *testing.T) frame {
	t.Helper()
	if len(r.frames) == 0 {
		t.Fatalf("nothing rendered")
	}
	return r.frames[len(r.frames)-1]
}
