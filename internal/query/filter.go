// Package query implements the predicate filtering every list screen shares:
// free-text search over named fields, status equality with an "all" sentinel,
// and date-range containment. Predicates compose with logical AND and the
// filter is stable, preserving the collection's relative order.
package query

import "strings"

// StatusAll matches any status value.
const StatusAll = "all"

// Predicate reports whether an item should be kept.
type Predicate[T any] func(T) bool

// Filter returns the items satisfying every predicate, in their original
// relative order. With no predicates the input is returned as a copy.
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
next:
	for _, it := range items {
		for _, p := range preds {
			if !p(it) {
				continue next
			}
		}
		out = append(out, it)
	}
	return out
}

// Text matches when the query is a case-insensitive substring of any of the
// named fields. An empty query matches everything.
func Text[T any](q string, fields func(T) []string) Predicate[T] {
	q = strings.ToLower(strings.TrimSpace(q))
	return func(it T) bool {
		if q == "" {
			return true
		}
		for _, f := range fields(it) {
			if strings.Contains(strings.ToLower(f), q) {
				return true
			}
		}
		return false
	}
}

// Status matches when the field equals want exactly. An empty want or the
// "all" sentinel matches unconditionally.
func Status[T any](want string, field func(T) string) Predicate[T] {
	return func(it T) bool {
		if want == "" || want == StatusAll {
			return true
		}
		return field(it) == want
	}
}

// DateBetween matches when from <= field(it) <= to. An unset bound is
// vacuously true, so the caller can offer the two bounds independently.
// Comparison is lexicographic, which equals chronological order only for the
// normalized YYYY-MM-DD layout; a bound or field value in any other shape
// never matches rather than comparing in the wrong order.
func DateBetween[T any](from, to string, field func(T) string) Predicate[T] {
	return func(it T) bool {
		if from == "" && to == "" {
			return true
		}
		d := field(it)
		if !isNormalizedDate(d) {
			return false
		}
		if from != "" {
			if !isNormalizedDate(from) || d < from {
				return false
			}
		}
		if to != "" {
			if !isNormalizedDate(to) || d > to {
				return false
			}
		}
		return true
	}
}

// isNormalizedDate checks the YYYY-MM-DD shape without parsing a calendar.
func isNormalizedDate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, r := range s {
		if i == 4 || i == 7 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
