package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tableflip.dev/comicview/pkg/comic"
	"tableflip.dev/comicview/pkg/config"
	"tableflip.dev/comicview/pkg/logging"
	"tableflip.dev/comicview/pkg/store"
	"tableflip.dev/comicview/pkg/viewer"
)

const db = `[
  {"filename": "a.png", "isstoryline": true, "title": "A"},
  {"filename": "b.png", "isstoryline": false, "title": "B"},
  {"filename": "c.png", "isstoryline": true, "title": "C"}
]`

func init() {
	logging.Log.SetOutput(io.Discard)
}

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	dataset := filepath.Join(dir, "db.json")
	if err := os.WriteFile(dataset, []byte(db), 0o644); err != nil {
		t.Fatal(err)
	}
	return &config.Config{
		Name:         "test",
		Dataset:      dataset,
		StoreBackend: backend,
		StorePath:    filepath.Join(dir, "session"),
		Location:     filepath.Join(dir, "location"),
		MediaRoot:    dir,
	}
}

func TestOpenAndNavigate(t *testing.T) {
	cfg := testConfig(t, store.BackendMemory)
	svc, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer svc.Close()

	var shown []int
	v, err := svc.Viewer(viewer.RendererFunc(func(e comic.Entry, _, _ bool) {
		shown = append(shown, e.Index)
	}))
	if err != nil {
		t.Fatalf("Viewer: %v", err)
	}
	if !v.Do(viewer.Go(viewer.Last)) {
		t.Fatalf("last should move")
	}
	if got, _ := svc.KV.Get("test-last"); got != "2" {
		t.Fatalf("stored last = %q", got)
	}
	if got, _ := svc.Location.Get(); got != "2" {
		t.Fatalf("location = %q", got)
	}
	if len(shown) != 2 || shown[1] != 2 {
		t.Fatalf("rendered %v", shown)
	}
}

func TestOpenRestoresFromLocationFile(t *testing.T) {
	cfg := testConfig(t, store.BackendDisk)
	if err := os.WriteFile(cfg.Location, []byte("1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	svc, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer svc.Close()
	v, err := svc.Viewer(nil)
	if err != nil {
		t.Fatalf("Viewer: %v", err)
	}
	if v.Index() != 1 {
		t.Fatalf("index = %d, want 1", v.Index())
	}
}

func TestBadBackendFallsBack(t *testing.T) {
	cfg := testConfig(t, "bogus")
	svc, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok := svc.KV.(store.Unavailable); !ok {
		t.Fatalf("expected Unavailable store, got %T", svc.KV)
	}
	if err := svc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestOpenErrors(t *testing.T) {
	if _, err := Open(context.Background(), nil); err != ErrNoConfig {
		t.Fatalf("err = %v", err)
	}
	cfg := testConfig(t, store.BackendMemory)
	cfg.Dataset = filepath.Join(t.TempDir(), "missing.json")
	_, err := Open(context.Background(), cfg)
	if err == nil || !strings.Contains(err.Error(), "missing.json") {
		t.Fatalf("err = %v", err)
	}
}
