// Package algo provides small generic container and numeric helpers shared
// by the reconstruction code.
package algo

import "cmp"

// Pair is a key-value pair for sorted-slice lookups.
type Pair[K cmp.Ordered, V any] struct {
	Key   K
	Value V
}

// SearchPair finds the value for key in a slice of pairs sorted by key.
// Returns nil if the key is not present.
func SearchPair[K cmp.Ordered, V any](pairs []Pair[K, V], key K) *V {
	lo, hi := 0, len(pairs)
	for lo != hi {
		pos := (lo + hi) / 2
		switch {
		case key < pairs[pos].Key:
			hi = pos
		case pairs[pos].Key < key:
			lo = pos + 1
		default:
			return &pairs[pos].Value
		}
	}
	return nil
}

// Number covers the numeric types the accumulators operate on.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// SquaredSum returns the sum of squares of xs.
func SquaredSum[T Number](xs []T) T {
	var sum T
	for _, x := range xs {
		sum += x * x
	}
	return sum
}

// AbsoluteSum returns the sum of absolute values of xs.
func AbsoluteSum[T Number](xs []T) T {
	var sum T
	for _, x := range xs {
		if x < 0 {
			sum -= x
		} else {
			sum += x
		}
	}
	return sum
}

// EpsilonEqual reports whether a and b differ by at most eps.
func EpsilonEqual[T Number](a, b, eps T) bool {
	return a-eps <= b && b <= a+eps
}

// Clean removes the elements of xs marked true in deleteList, keeping the
// remaining elements in order. The slice is compacted in place and the
// shortened slice is returned.
func Clean[T any](deleteList []bool, xs []T) []T {
	w := 0
	for r := 0; r < len(xs) && r < len(deleteList); r++ {
		if deleteList[r] {
			continue
		}
		if w != r {
			xs[w] = xs[r]
		}
		w++
	}
	return xs[:w]
}

// SortThree sorts the three values pointed at in ascending order.
func SortThree[T cmp.Ordered](a, b, c *T) {
	if *b < *a {
		*a, *b = *b, *a
	}
	if *c < *b {
		*b, *c = *c, *b
	}
	if *b < *a {
		*a, *b = *b, *a
	}
}
