// Package fixpt renders raw bit patterns and binary-scaled integers into
// fixed-width fields. Its Converter is the numfmt.Delegate for hexadecimal
// and octal specs.
package fixpt

import (
	"errors"
	"math"

	"github.com/joshuapare/cardkit/card/numfmt"
	"github.com/joshuapare/cardkit/internal/buf"
)

var (
	// ErrNotRadix indicates FormatBits was called with a spec that selects
	// neither Hex nor Octal.
	ErrNotRadix = errors.New("fixpt: spec selects neither hex nor octal")
	// ErrSourceSize indicates a bit-pattern size other than 32 or 64.
	ErrSourceSize = errors.New("fixpt: source size must be 32 or 64")
)

const upperDigits = "0123456789ABCDEF"

// Converter renders hex and octal fields and owns a Formatter that delegates
// to it.
type Converter struct {
	f *numfmt.Formatter
}

// New returns a Converter whose Formatter uses minExpDigits for scientific
// exponents and hands hex and octal specs back to the Converter.
func New(minExpDigits int) *Converter {
	c := &Converter{}
	c.f = numfmt.New(numfmt.Options{MinExpDigits: minExpDigits, Delegate: c})
	return c
}

// Formatter returns the Formatter wired to c.
func (c *Converter) Formatter() *numfmt.Formatter { return c.f }

// FormatBits writes bits in the spec's radix. The digits are zero-filled to
// the natural count for the source size (16 hex or 22 octal digits for 64
// bits, 8 or 11 for 32) when that fits; otherwise only significant digits are
// written. A pattern with more significant digits than the width is starred.
func (c *Converter) FormatBits(dst []byte, s numfmt.Spec, bits uint64, size int) (numfmt.Result, error) {
	var shift uint
	switch {
	case s.Has(numfmt.Hex):
		shift = 4
	case s.Has(numfmt.Octal):
		shift = 3
	default:
		return numfmt.Result{}, ErrNotRadix
	}
	switch size {
	case 32:
		bits &= math.MaxUint32
	case 64:
	default:
		return numfmt.Result{}, ErrSourceSize
	}
	w := s.Width()
	if len(dst) < w {
		return numfmt.Result{}, numfmt.ErrShortBuffer
	}
	field := dst[:w]

	natural := (size + int(shift) - 1) / int(shift)
	n := natural
	if n > w {
		n = radixDigits(bits, shift)
		if n > w {
			buf.Fill(field, '*')
			return numfmt.Result{Len: w, Overflow: true}, nil
		}
	}

	var a [64]byte
	i := len(a)
	mask := uint64(1)<<shift - 1
	for k := 0; k < n; k++ {
		i--
		a[i] = upperDigits[bits&mask]
		bits >>= shift
	}
	justify(field, a[i:], s)
	return numfmt.Result{Len: n}, nil
}

// FormatInt renders the binary-scaled integer v / 2^scale. Decimal specs go
// through the Formatter; hex and octal specs render v's two's-complement
// pattern, 32 bits wide when the spec is Single.
func (c *Converter) FormatInt(dst []byte, s numfmt.Spec, v int64, scale int) (numfmt.Result, error) {
	if s.Has(numfmt.Hex) || s.Has(numfmt.Octal) {
		if err := s.Validate(); err != nil {
			return numfmt.Result{}, err
		}
		size := 64
		if s.Has(numfmt.Single) {
			size = 32
		}
		r, err := c.FormatBits(dst, s, uint64(v), size)
		if err != nil {
			return r, err
		}
		if s.Has(numfmt.Hex) {
			r.Mode = numfmt.ModeHex
		} else {
			r.Mode = numfmt.ModeOctal
		}
		return r, nil
	}
	return c.f.Format(dst, s, math.Ldexp(float64(v), -scale))
}

func radixDigits(bits uint64, shift uint) int {
	n := 1
	for bits >>= shift; bits != 0; bits >>= shift {
		n++
	}
	return n
}

func justify(field, digits []byte, s numfmt.Spec) {
	pad := byte(' ')
	if s.Has(numfmt.ZeroPad) {
		pad = '0'
	}
	if s.Has(numfmt.Left) {
		n := copy(field, digits)
		buf.Fill(field[n:], pad)
		return
	}
	start := len(field) - len(digits)
	buf.Fill(field[:start], pad)
	copy(field[start:], digits)
}
