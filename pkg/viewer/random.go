package viewer

import "tableflip.dev/comicview/pkg/comic"

// NoPick marks a State with nothing staged.
const NoPick = -1

// Rand is the source of uniform picks. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Stage samples indices uniformly until one is allowed by f. The expected
// number of draws is Len/Eligible. It returns false, without sampling, when
// the filter excludes every entry of the dataset.
func Stage(ds *comic.Dataset, f Filter, rng Rand) (int, bool) {
	if Eligible(ds, f) == 0 {
		return NoPick, false
	}
	for {
		i := rng.IntN(ds.Len())
		if f.Allows(ds.At(i)) {
			return i, true
		}
	}
}

// Consume returns the staged pick of st and a freshly staged replacement.
func Consume(ds *comic.Dataset, st State, rng Rand) (picked, next int, ok bool) {
	if st.Staged == NoPick {
		return NoPick, NoPick, false
	}
	next, _ = Stage(ds, st.Filter, rng)
	return st.Staged, next, true
}

// Eligible counts the entries allowed by f.
func Eligible(ds *comic.Dataset, f Filter) int {
	n := 0
	if f.IncludeStoryline() {
		n += ds.Count(comic.Storyline)
	}
	if f.IncludeExtras() {
		n += ds.Count(comic.Extra)
	}
	return n
}
