package numfmt

import "github.com/joshuapare/cardkit/internal/buf"

// putDigits writes the decimal digits of u right-aligned so the last digit
// lands at dst[end-1], zero-filling on the left until at least min digits are
// written. It returns the index of the first digit.
//
// On 32-bit platforms u is split into 9-digit halves so the inner loop runs on
// native words.
func putDigits(dst []byte, end int, u uint64, min int) int {
	i := end
	if ^uintptr(0)>>32 == 0 {
		for u > uint64(^uintptr(0)) {
			q := u / 1e9
			us := uintptr(u - q*1e9) // us % 1e9 fits into a uintptr
			for j := 9; j > 0; j-- {
				i--
				qs := us / 10
				dst[i] = byte(us - qs*10 + '0')
				us = qs
			}
			u = q
		}
	}

	us := uintptr(u)
	for us >= 10 {
		i--
		q := us / 10
		dst[i] = byte(us - q*10 + '0')
		us = q
	}
	i--
	dst[i] = byte(us + '0')

	for end-i < min {
		i--
		dst[i] = '0'
	}
	return i
}

// countDigits returns the number of decimal digits in u (1 for zero).
func countDigits(u uint64) int {
	n := 1
	for n < len(pow10u) && u >= pow10u[n] {
		n++
	}
	return n
}

// insertPoint moves the digits in dst[start:end-frac] one column left and
// puts '.' in the gap, returning the new start. frac must be positive and
// start must be at least 1.
func insertPoint(dst []byte, start, end, frac int) int {
	if !buf.Shift(dst, start, end-frac, -1) {
		panic("numfmt: decimal point outside field")
	}
	dst[end-frac-1] = '.'
	return start - 1
}
