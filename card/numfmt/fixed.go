package numfmt

import "math"

// pointCols is the number of columns the fraction occupies, point included.
func pointCols(frac int) int {
	if frac == 0 {
		return 0
	}
	return frac + 1
}

// renderFixed writes a in fixed notation into the right end of field and
// returns the body start and the prefix to place before it. ok is false when
// fixed notation cannot hold the value, or when UnderflowE applies.
//
// A reserved blank is only given up when the digits need exactly that one
// column. In auto mode a rounding carry first costs a fractional digit, so
// reformatting the printed text lands on the same layout.
//
// At most 15 significant digits (7 for Single) are taken from the value;
// fraction columns past them are zero-filled. With UnderflowE a magnitude of
// at most half a unit in the last fraction column goes to scientific.
//
// In squeeze mode the reserved blank is dropped up front and the fraction
// shrinks to whatever room is left; it is the last attempt before the field
// is starred.
func renderFixed(field []byte, s Spec, a float64, neg, squeeze bool) (int, byte, bool) {
	w := len(field)
	prefix := prefixFor(s, neg)
	if squeeze && prefix == ' ' {
		prefix = 0
	}

	n := intDigits(a)
	if n > maxFixedDigits {
		return 0, 0, false
	}
	_, e := normalize(a)
	sig := maxSigDigits
	if s.Has(Single) {
		sig = maxSigSingle
	}
	room := w - prefixCols(prefix)
	frac := s.Decimals()
	flexible := squeeze || s.Has(Auto)
	if flexible {
		frac = max(0, min(frac, room-n-1, maxFixedDigits-n))
	} else if n+frac > maxFixedDigits {
		return 0, 0, false
	}
	if need := n + pointCols(frac); need > room {
		if prefix != ' ' || need > room+1 {
			return 0, 0, false
		}
		prefix = 0
	}

	var guard retry
	for {
		// Underflow is judged on the unrounded magnitude.
		if s.Has(UnderflowE) && a <= 0.5/pow10tab[frac] {
			return 0, 0, false
		}
		scaled := scaleFixed(a, frac, sig-1-e)
		p := prefix
		if scaled == 0 && p == '-' {
			// Nothing negative is left to show.
			if p = prefixFor(s, false); squeeze && p == ' ' {
				p = 0
			}
		}

		need := max(countDigits(scaled), frac+1)
		if frac > 0 {
			need++
		}
		if room := w - prefixCols(p); need > room {
			switch {
			case flexible && frac > 0:
				if guard.next() != nil {
					return 0, 0, false
				}
				frac--
				continue
			case p == ' ' && need == room+1:
				// The carried digit takes the reserved blank.
				p = 0
			default:
				return 0, 0, false
			}
		}

		start := putDigits(field, w, scaled, frac+1)
		if frac > 0 {
			start = insertPoint(field, start, w, frac)
		}
		return start, p, true
	}
}

// scaleFixed returns a * 10^frac rounded half away from zero, keeping only the
// digits down to 10^-last and zero-filling the columns below them.
func scaleFixed(a float64, frac, last int) uint64 {
	p := max(0, min(frac, last))
	scaled := uint64(math.Round(a * pow10tab[p]))
	return scaled * pow10u[frac-p]
}
