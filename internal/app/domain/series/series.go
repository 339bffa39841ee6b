// Package series provides the shared reduction helpers used by the
// aggregation code: windowed filtering, counting, sums and extremes over
// dated record collections. Everything here is pure.
package series

import "time"

// Filter returns the items for which keep is true.
func Filter[T any](items []T, keep func(T) bool) []T {
	var out []T
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// CountSince counts items whose instant is at or after the cutoff.
func CountSince[T any](items []T, at func(T) time.Time, cutoff time.Time) int {
	n := 0
	for _, item := range items {
		if !at(item).Before(cutoff) {
			n++
		}
	}
	return n
}

// Sum totals the value of every item.
func Sum[T any](items []T, value func(T) float64) float64 {
	total := 0.0
	for _, item := range items {
		total += value(item)
	}
	return total
}

// Average returns the mean value, or 0 for an empty collection.
func Average[T any](items []T, value func(T) float64) float64 {
	if len(items) == 0 {
		return 0
	}
	return Sum(items, value) / float64(len(items))
}

// MinMax returns the smallest and largest value, or (0, 0) when empty.
func MinMax[T any](items []T, value func(T) float64) (float64, float64) {
	if len(items) == 0 {
		return 0, 0
	}
	min := value(items[0])
	max := min
	for _, item := range items[1:] {
		v := value(item)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
