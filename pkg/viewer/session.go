package viewer

import (
	"fmt"
	"strconv"
	"strings"

	"tableflip.dev/comicview/pkg/comic"
)

// State is the complete navigation state: the current entry, the staged
// random pick and the filter. Current may point at an entry the filter
// excludes (direct navigation, restored locations, filter changes).
type State struct {
	Current int
	Staged  int
	Filter  Filter
}

// Kind enumerates navigation actions.
type Kind int

const (
	First Kind = iota
	Prev
	Next
	Last
	Random
	Direct
)

var kindNames = []string{"first", "prev", "next", "last", "random", "goto"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds returns every action kind in display order.
func Kinds() []Kind {
	return []Kind{First, Prev, Next, Last, Random, Direct}
}

// ParseKind converts an action name to a Kind.
func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "first":
		return First, nil
	case "prev", "previous":
		return Prev, nil
	case "next":
		return Next, nil
	case "last":
		return Last, nil
	case "random", "rand":
		return Random, nil
	case "goto", "direct":
		return Direct, nil
	}
	return First, fmt.Errorf("viewer: unknown action %q", raw)
}

// Action is one navigation request. Index is only used by Direct.
type Action struct {
	Kind  Kind
	Index int
}

// Go returns an action of kind k.
func Go(k Kind) Action { return Action{Kind: k} }

// GoTo returns a Direct action to index i.
func GoTo(i int) Action { return Action{Kind: Direct, Index: i} }

func (a Action) String() string {
	if a.Kind == Direct {
		return fmt.Sprintf("goto %d", a.Index)
	}
	return a.Kind.String()
}

// Apply computes the state that follows act. It reports false, returning
// st unchanged, when the action is a no-op (no eligible neighbor, nothing
// staged, unknown kind).
func Apply(ds *comic.Dataset, st State, act Action, rng Rand) (State, bool) {
	switch act.Kind {
	case First:
		i, ok := FirstAllowed(ds, st.Filter)
		if !ok {
			return st, false
		}
		st.Current = i
	case Last:
		i, ok := LastAllowed(ds, st.Filter)
		if !ok {
			return st, false
		}
		st.Current = i
	case Prev, Next:
		dir := -1
		if act.Kind == Next {
			dir = 1
		}
		i, ok := Advance(ds, st.Filter, st.Current, dir)
		if !ok {
			return st, false
		}
		st.Current = i
	case Random:
		picked, next, ok := Consume(ds, st, rng)
		if !ok {
			return st, false
		}
		st.Current, st.Staged = picked, next
	case Direct:
		st.Current = Clamp(ds, act.Index)
	default:
		return st, false
	}
	return st, true
}

// ApplyFilter replaces the filter and restages the random pick. The current
// index is left where it is.
func ApplyFilter(ds *comic.Dataset, st State, f Filter, rng Rand) State {
	st.Filter = f
	st.Staged, _ = Stage(ds, f, rng)
	return st
}

// Clamp maps an out-of-range index to 0.
func Clamp(ds *comic.Dataset, i int) int {
	if i < 0 || i >= ds.Len() {
		return 0
	}
	return i
}

// ParseIndex parses a stored or location index. It accepts an optional
// leading '#'. Non-numeric values and values outside [0, n) are rejected.
func ParseIndex(raw string, n int) (int, bool) {
	i, ok := parseInt(raw)
	if !ok || i < 0 || i >= n {
		return 0, false
	}
	return i, true
}

func parseInt(raw string) (int, bool) {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "#")
	i, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return i, true
}

// ParseFlag parses a stored boolean flag.
func ParseFlag(raw string) (bool, bool) {
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, false
	}
	return b, true
}
