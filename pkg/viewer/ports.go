package viewer

import "tableflip.dev/comicview/pkg/comic"

// Store is the persistent key-value store. Implementations may fail at any
// time; the Viewer treats failures as "nothing saved".
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Location is the shareable position fragment (a URL hash in a browser).
type Location interface {
	Get() (string, bool)
	Set(value string) error
}

// Renderer displays an entry after every transition.
type Renderer interface {
	Render(e comic.Entry, isFirst, isLast bool)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(e comic.Entry, isFirst, isLast bool)

// Render calls f.
func (f RendererFunc) Render(e comic.Entry, isFirst, isLast bool) { f(e, isFirst, isLast) }

// Precacher receives fire-and-forget requests to prefetch media refs.
type Precacher interface {
	Precache(refs []string)
}

// Keys names the storage keys for one comic.
type Keys struct {
	Last      string
	Storyline string
	Extras    string
}

// KeysFor namespaces the storage keys by comic name.
func KeysFor(name string) Keys {
	return Keys{
		Last:      name + "-last",
		Storyline: name + "-usestory",
		Extras:    name + "-useextras",
	}
}

type nopStore struct{}

func (nopStore) Get(string) (string, bool) { return "", false }
func (nopStore) Set(string, string) error  { return nil }

type nopLocation struct{}

func (nopLocation) Get() (string, bool) { return "", false }
func (nopLocation) Set(string) error    { return nil }
