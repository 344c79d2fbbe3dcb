// Package buf contains small bounds-checked helpers for fixed buffers and
// growable arenas.
package buf

import "math"

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies two non-negative ints, returning ok = false when
// the product would overflow or either operand is negative.
func MulOverflowSafe(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// Grow returns the capacity an arena should move to so that it holds at least
// need elements: double the current capacity, or need itself when doubling
// falls short. A zero current capacity starts at min. ok is false when the
// result cannot be represented.
func Grow(current, need, min int) (int, bool) {
	if need < 0 || current < 0 {
		return 0, false
	}
	next := current
	if next == 0 {
		next = min
	} else {
		var ok bool
		if next, ok = MulOverflowSafe(next, 2); !ok {
			next = math.MaxInt
		}
	}
	if next < need {
		next = need
	}
	return next, true
}

// Shift moves b[from:to] by n positions (negative n moves left) inside b,
// returning false without touching b when either range falls outside it.
// Overlapping ranges are handled.
func Shift(b []byte, from, to, n int) bool {
	if from < 0 || to < from || to > len(b) {
		return false
	}
	dst, ok := AddOverflowSafe(from, n)
	if !ok || dst < 0 {
		return false
	}
	end, ok := AddOverflowSafe(dst, to-from)
	if !ok || end > len(b) {
		return false
	}
	copy(b[dst:end], b[from:to])
	return true
}

// Fill sets every byte of b to c.
func Fill(b []byte, c byte) {
	for i := range b {
		b[i] = c
	}
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end], true
}
