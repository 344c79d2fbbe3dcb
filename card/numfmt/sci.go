package numfmt

import "math"

// renderSci writes a as d.dddE±x into the right end of field. ok is false when
// not even one mantissa digit fits.
//
// The exponent field is as wide as the larger of the configured minimum and
// the digits the exponent needs. When notation was not forced by the spec and
// that leaves no mantissa column, the minimal form is tried: the reserved
// blank is dropped and only the needed exponent digits are written.
//
// A rounding carry (9.996 at two places becoming 10.00) bumps the exponent and
// re-enters the layout once with the mantissa divided by ten. The re-entry
// never widens the fraction, so the mantissa rounds to exactly 1 and a second
// carry is an internal error.
func (f *Formatter) renderSci(field []byte, s Spec, a float64, neg bool) (int, byte, bool, error) {
	w := len(field)
	forced := s.Has(ForceE)
	prefix := prefixFor(s, neg)
	m, e := normalize(a)

	maxFrac := maxSigDigits - 1
	if s.Has(Single) {
		maxFrac = maxSigSingle - 1
	}
	if d := s.Decimals(); d > 0 {
		maxFrac = min(maxFrac, d)
	}
	minExp := max(f.minExp, 1)

	var (
		guard   retry
		minimal bool
	)
	for {
		ed := expDigits(e)
		if !minimal {
			ed = max(ed, minExp)
		}
		cols := w - prefixCols(prefix) - 2 - ed
		if cols < 1 {
			if forced || minimal {
				return 0, 0, false, nil
			}
			minimal = true
			if prefix == ' ' {
				prefix = 0
			}
			continue
		}

		frac := 0
		if cols >= 3 {
			frac = min(cols-2, maxFrac)
		}

		scaled := uint64(math.Round(m * pow10tab[frac]))
		if scaled >= pow10u[frac+1] {
			if err := guard.next(); err != nil {
				return 0, 0, false, err
			}
			m /= 10
			e++
			continue
		}

		mag, sign := e, byte('+')
		if e < 0 {
			mag, sign = -e, '-'
		}
		start := putDigits(field, w, uint64(mag), ed)
		start--
		field[start] = sign
		start--
		field[start] = 'E'

		end := start
		start = putDigits(field, end, scaled, frac+1)
		if frac > 0 {
			start = insertPoint(field, start, end, frac)
		}
		return start, prefix, true, nil
	}
}
