// Package collection provides generic, functional-style helpers for slices.
//
// Usage:
//
//	ratings := collection.Map(reviews, func(r models.Review) float64 { return float64(r.Rating) })
//	mine := collection.Filter(reviews, func(r models.Review) bool { return r.UserID == id })
package collection

// Map transforms each element of slice s using fn.
func Map[T, R any](s []T, fn func(T) R) []R {
	out := make([]R, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}

// Filter returns elements of s for which fn returns true.
func Filter[T any](s []T, fn func(T) bool) []T {
	var out []T
	for _, v := range s {
		if fn(v) {
			out = append(out, v)
		}
	}
	return out
}

// Reject returns elements of s for which fn returns false (inverse of Filter).
func Reject[T any](s []T, fn func(T) bool) []T {
	return Filter(s, func(v T) bool { return !fn(v) })
}

// First returns the first element matching fn, or (zero, false).
func First[T any](s []T, fn func(T) bool) (T, bool) {
	for _, v := range s {
		if fn(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Contains reports whether any element of s satisfies fn.
func Contains[T any](s []T, fn func(T) bool) bool {
	_, ok := First(s, fn)
	return ok
}

// Sum adds up the values produced by fn over s.
func Sum[T any](s []T, fn func(T) float64) float64 {
	var total float64
	for _, v := range s {
		total += fn(v)
	}
	return total
}

// Average returns the mean of the values produced by fn, or 0 for an
// empty slice.
func Average[T any](s []T, fn func(T) float64) float64 {
	if len(s) == 0 {
		return 0
	}
	return Sum(s, fn) / float64(len(s))
}
