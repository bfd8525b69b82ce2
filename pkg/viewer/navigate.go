package viewer

import "tableflip.dev/comicview/pkg/comic"

// FirstAllowed returns the lowest index allowed by f.
func FirstAllowed(ds *comic.Dataset, f Filter) (int, bool) {
	for i := 0; i < ds.Len(); i++ {
		if f.Allows(ds.At(i)) {
			return i, true
		}
	}
	return 0, false
}

// LastAllowed returns the highest index allowed by f.
func LastAllowed(ds *comic.Dataset, f Filter) (int, bool) {
	for i := ds.Len() - 1; i >= 0; i-- {
		if f.Allows(ds.At(i)) {
			return i, true
		}
	}
	return 0, false
}

// ClosestAllowed scans away from `from` in the direction of the sign of
// direction and returns the first allowed index. The starting index itself
// is never returned and does not need to be allowed. A zero direction finds
// nothing.
func ClosestAllowed(ds *comic.Dataset, f Filter, from, direction int) (int, bool) {
	step := sign(direction)
	if step == 0 {
		return 0, false
	}
	for i := from + step; i >= 0 && i < ds.Len(); i += step {
		if f.Allows(ds.At(i)) {
			return i, true
		}
	}
	return 0, false
}

// Advance returns the next eligible index from current in direction. When
// nothing is found the caller keeps current; navigation never wraps.
func Advance(ds *comic.Dataset, f Filter, current, direction int) (int, bool) {
	return ClosestAllowed(ds, f, current, direction)
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
