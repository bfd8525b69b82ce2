package viewer

import "tableflip.dev/comicview/pkg/comic"

// Filter selects which categories are eligible for navigation. At least one
// category is always included; the zero value is not valid, use
// DefaultFilter.
type Filter struct {
	storyline bool
	extras    bool
}

// DefaultFilter includes both categories.
func DefaultFilter() Filter {
	return Filter{storyline: true, extras: true}
}

// NewFilter builds a filter, forcing extras on when both would be off.
func NewFilter(storyline, extras bool) Filter {
	if !storyline && !extras {
		return Filter{extras: true}
	}
	return Filter{storyline: storyline, extras: extras}
}

// IncludeStoryline reports whether storyline entries are eligible.
func (f Filter) IncludeStoryline() bool { return f.storyline }

// IncludeExtras reports whether extra entries are eligible.
func (f Filter) IncludeExtras() bool { return f.extras }

// SetIncludeStoryline sets the storyline flag. Clearing it while extras is
// already off turns extras on.
func (f *Filter) SetIncludeStoryline(v bool) {
	f.storyline = v
	if !v && !f.extras {
		f.extras = true
	}
}

// SetIncludeExtras sets the extras flag. Clearing it while storyline is
// already off turns storyline on.
func (f *Filter) SetIncludeExtras(v bool) {
	f.extras = v
	if !v && !f.storyline {
		f.storyline = true
	}
}

// Allows reports whether e is eligible under the filter.
func (f Filter) Allows(e comic.Entry) bool {
	return (e.Category == comic.Storyline && f.storyline) ||
		(e.Category == comic.Extra && f.extras)
}

func (f Filter) String() string {
	switch {
	case f.storyline && f.extras:
		return "storyline+extras"
	case f.extras:
		return "extras"
	default:
		return "storyline"
	}
}
