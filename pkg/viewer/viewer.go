// Package viewer is the navigation and filtering state machine of the comic
// viewer. Pure functions (FirstAllowed, Advance, Stage, Apply) compute
// states; Viewer owns one State and pushes every change to storage, the
// location fragment, the precacher and the renderer.
package viewer

import (
	"math/rand/v2"
	"strconv"

	"github.com/sirupsen/logrus"

	"tableflip.dev/comicview/pkg/comic"
	"tableflip.dev/comicview/pkg/logging"
)

// Option customises a Viewer.
type Option func(*Viewer)

// WithStore sets the key-value store used for the last index and filters.
func WithStore(s Store) Option {
	return func(v *Viewer) {
		if s != nil {
			v.store = s
		}
	}
}

// WithLocation sets the shareable location fragment.
func WithLocation(l Location) Option {
	return func(v *Viewer) {
		if l != nil {
			v.loc = l
		}
	}
}

// WithRenderer sets the renderer.
func WithRenderer(r Renderer) Option {
	return func(v *Viewer) { v.render = r }
}

// WithPrecacher sets the precache sink.
func WithPrecacher(p Precacher) Option {
	return func(v *Viewer) { v.cache = p }
}

// WithRand sets the random source used for random picks.
func WithRand(r Rand) Option {
	return func(v *Viewer) {
		if r != nil {
			v.rng = r
		}
	}
}

// WithKeys sets the storage key names.
func WithKeys(k Keys) Option {
	return func(v *Viewer) { v.keys = k }
}

// WithLogger sets the logger for swallowed persistence failures.
func WithLogger(l logrus.FieldLogger) Option {
	return func(v *Viewer) {
		if l != nil {
			v.log = l
		}
	}
}

// Viewer owns the navigation state for one dataset. It is not safe for
// concurrent use; drive it from a single event loop.
type Viewer struct {
	ds     *comic.Dataset
	state  State
	rng    Rand
	store  Store
	loc    Location
	render Renderer
	cache  Precacher
	keys   Keys
	log    logrus.FieldLogger
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// New restores the session and performs the initial transition: filters come
// from the store; the current index from the location fragment, else the
// stored last index, else 0.
func New(ds *comic.Dataset, opts ...Option) (*Viewer, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, comic.ErrEmptyDataset
	}
	v := &Viewer{
		ds:    ds,
		rng:   globalRand{},
		store: nopStore{},
		loc:   nopLocation{},
		keys:  KeysFor("comic"),
		log:   logging.Log,
	}
	for _, opt := range opts {
		opt(v)
	}
	v.state = State{
		Current: v.restoreIndex(),
		Staged:  NoPick,
		Filter:  v.restoreFilter(),
	}
	v.restage()
	v.commit()
	return v, nil
}

func (v *Viewer) restoreFilter() Filter {
	storyline, extras := true, true
	if raw, ok := v.store.Get(v.keys.Storyline); ok {
		if b, ok := ParseFlag(raw); ok {
			storyline = b
		}
	}
	if raw, ok := v.store.Get(v.keys.Extras); ok {
		if b, ok := ParseFlag(raw); ok {
			extras = b
		}
	}
	return NewFilter(storyline, extras)
}

func (v *Viewer) restoreIndex() int {
	if raw, ok := v.loc.Get(); ok && raw != "" {
		i, _ := ParseIndex(raw, v.ds.Len())
		return i
	}
	if raw, ok := v.store.Get(v.keys.Last); ok {
		i, _ := ParseIndex(raw, v.ds.Len())
		return i
	}
	return 0
}

// SetRenderer replaces the renderer used by later transitions.
func (v *Viewer) SetRenderer(r Renderer) { v.render = r }

// Dataset returns the dataset being viewed.
func (v *Viewer) Dataset() *comic.Dataset { return v.ds }

// State returns a copy of the current state.
func (v *Viewer) State() State { return v.state }

// Filter returns the current filter.
func (v *Viewer) Filter() Filter { return v.state.Filter }

// Index returns the current index.
func (v *Viewer) Index() int { return v.state.Current }

// Current returns the current entry.
func (v *Viewer) Current() comic.Entry { return v.ds.At(v.state.Current) }

// IsFirst reports whether the current entry is the first allowed one.
func (v *Viewer) IsFirst() bool {
	i, ok := FirstAllowed(v.ds, v.state.Filter)
	return ok && i == v.state.Current
}

// IsLast reports whether the current entry is the last allowed one.
func (v *Viewer) IsLast() bool {
	i, ok := LastAllowed(v.ds, v.state.Filter)
	return ok && i == v.state.Current
}

// Do applies a navigation action. It returns false when the action was a
// no-op, in which case nothing is persisted or rendered.
func (v *Viewer) Do(act Action) bool {
	next, ok := Apply(v.ds, v.state, act, v.rng)
	if !ok {
		return false
	}
	v.state = next
	if act.Kind == Random {
		v.hint(v.state.Staged)
	}
	v.commit()
	return true
}

// SetIncludeStoryline updates the storyline toggle.
func (v *Viewer) SetIncludeStoryline(b bool) {
	f := v.state.Filter
	f.SetIncludeStoryline(b)
	v.setFilter(f)
}

// SetIncludeExtras updates the extras toggle.
func (v *Viewer) SetIncludeExtras(b bool) {
	f := v.state.Filter
	f.SetIncludeExtras(b)
	v.setFilter(f)
}

func (v *Viewer) setFilter(f Filter) {
	v.state = ApplyFilter(v.ds, v.state, f, v.rng)
	v.persist(v.keys.Storyline, strconv.FormatBool(f.IncludeStoryline()))
	v.persist(v.keys.Extras, strconv.FormatBool(f.IncludeExtras()))
	v.hint(v.state.Staged)
	v.hintNeighbors()
	v.draw()
}

// LocationChanged handles an external change of the location fragment.
// Malformed values and the current index are ignored; anything else is a
// Direct action.
func (v *Viewer) LocationChanged(raw string) bool {
	i, ok := parseInt(raw)
	if !ok || i == v.state.Current {
		return false
	}
	return v.Do(GoTo(i))
}

func (v *Viewer) restage() {
	var ok bool
	if v.state.Staged, ok = Stage(v.ds, v.state.Filter, v.rng); ok {
		v.hint(v.state.Staged)
	}
}

// commit pushes the current index to storage and location, hints the
// neighbors and renders.
func (v *Viewer) commit() {
	idx := strconv.Itoa(v.state.Current)
	v.persist(v.keys.Last, idx)
	if err := v.loc.Set(idx); err != nil {
		v.log.WithError(err).Debug("viewer: location update failed")
	}
	v.hintNeighbors()
	v.draw()
}

func (v *Viewer) draw() {
	if v.render == nil {
		return
	}
	v.render.Render(v.Current(), v.IsFirst(), v.IsLast())
}

func (v *Viewer) persist(key, value string) {
	if err := v.store.Set(key, value); err != nil {
		v.log.WithFields(logrus.Fields{"key": key}).WithError(err).Debug("viewer: persist failed")
	}
}

// hintNeighbors precaches the entries reachable in one step: previous,
// next, first and last.
func (v *Viewer) hintNeighbors() {
	seen := map[int]struct{}{v.state.Current: {}}
	try := func(i int, ok bool) {
		if !ok {
			return
		}
		if _, dup := seen[i]; dup {
			return
		}
		seen[i] = struct{}{}
		v.hint(i)
	}
	try(Advance(v.ds, v.state.Filter, v.state.Current, -1))
	try(Advance(v.ds, v.state.Filter, v.state.Current, 1))
	try(FirstAllowed(v.ds, v.state.Filter))
	try(LastAllowed(v.ds, v.state.Filter))
}

func (v *Viewer) hint(i int) {
	if v.cache == nil {
		return
	}
	e, ok := v.ds.Lookup(i)
	if !ok || !e.HasMedia {
		return
	}
	v.cache.Precache(e.MediaRefs)
}
