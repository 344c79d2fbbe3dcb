package numfmt

import (
	"math"

	"github.com/joshuapare/cardkit/internal/buf"
)

// Mode identifies the notation a field was rendered in.
type Mode uint8

const (
	// ModeFixed is fixed-point notation (also used for zero and NaN).
	ModeFixed Mode = iota
	// ModeScientific is mantissa-and-exponent notation.
	ModeScientific
	// ModeHex is a hexadecimal bit pattern produced by the Delegate.
	ModeHex
	// ModeOctal is an octal bit pattern produced by the Delegate.
	ModeOctal
)

func (m Mode) String() string {
	switch m {
	case ModeFixed:
		return "fixed"
	case ModeScientific:
		return "scientific"
	case ModeHex:
		return "hex"
	case ModeOctal:
		return "octal"
	}
	return "unknown"
}

// Result describes one rendered field.
type Result struct {
	// Len is the number of non-padding characters in the field. An
	// asterisk-filled field reports its full width.
	Len int
	// Mode is the notation chosen.
	Mode Mode
	// Overflow is set when the field was filled with asterisks because no
	// rendering fit.
	Overflow bool
}

// Delegate renders raw bit patterns for hexadecimal and octal specs. size is
// 32 for single-precision sources and 64 otherwise. Implementations write
// exactly s.Width() bytes into dst.
type Delegate interface {
	FormatBits(dst []byte, s Spec, bits uint64, size int) (Result, error)
}

// Options configures a Formatter.
type Options struct {
	// MinExpDigits is the minimum number of exponent digits in scientific
	// notation. Values below 1 mean 1.
	MinExpDigits int

	// Delegate handles hex and octal specs. If nil those specs fail with
	// ErrNoDelegate.
	Delegate Delegate
}

// Formatter renders values per Spec. The zero value is ready to use with one
// minimum exponent digit and no Delegate. A Formatter holds no per-call state.
type Formatter struct {
	minExp   int
	delegate Delegate
}

// New returns a Formatter configured by opts.
func New(opts Options) *Formatter {
	return &Formatter{minExp: opts.MinExpDigits, delegate: opts.Delegate}
}

var defaultFormatter Formatter

// Format renders v with the default Formatter. See (*Formatter).Format.
func Format(dst []byte, s Spec, v float64) (Result, error) {
	return defaultFormatter.Format(dst, s, v)
}

// MustFormat is Format for callers that treat a malformed spec as fatal.
func MustFormat(dst []byte, s Spec, v float64) Result {
	r, err := defaultFormatter.Format(dst, s, v)
	if err != nil {
		panic(err)
	}
	return r
}

// String renders v into a freshly allocated string.
func (f *Formatter) String(s Spec, v float64) (string, Result, error) {
	var field [32]byte
	r, err := f.Format(field[:], s, v)
	if err != nil {
		return "", r, err
	}
	return string(field[:s.Width()]), r, nil
}

// Format writes v into dst[:s.Width()] and reports how many of those bytes are
// content. Errors are reserved for malformed specs, short buffers and broken
// internal invariants; a value that does not fit is not an error and comes
// back asterisk-filled with Result.Overflow set.
func (f *Formatter) Format(dst []byte, s Spec, v float64) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, err
	}
	w := s.Width()
	if len(dst) < w {
		return Result{}, ErrShortBuffer
	}
	field := dst[:w]

	switch {
	case s.Has(Hex):
		return f.radix(field, s, v, ModeHex)
	case s.Has(Octal):
		return f.radix(field, s, v, ModeOctal)
	}

	bits := math.Float64bits(v)
	if isNaN(bits) {
		return formatNaN(field), nil
	}
	if bits&^signBit == 0 {
		field[w-1] = '0'
		return finish(field, w-1, 0, s, ModeFixed), nil
	}
	if bits&^signBit == infBits {
		return overflow(field), nil
	}

	neg := bits&signBit != 0
	a := math.Abs(v)

	if !s.Has(ForceE) {
		if start, prefix, ok := renderFixed(field, s, a, neg, false); ok {
			return finish(field, start, prefix, s, ModeFixed), nil
		}
	}
	start, prefix, ok, err := f.renderSci(field, s, a, neg)
	if err != nil {
		return Result{}, err
	}
	if ok {
		return finish(field, start, prefix, s, ModeScientific), nil
	}
	if !s.Has(ForceE) {
		if start, prefix, ok := renderFixed(field, s, a, neg, true); ok {
			return finish(field, start, prefix, s, ModeFixed), nil
		}
	}
	return overflow(field), nil
}

const (
	signBit = 1 << 63
	expBits = 0x7FF << 52
	infBits = expBits
)

// isNaN inspects the raw pattern: all exponent bits set and a non-zero
// fraction.
func isNaN(bits uint64) bool {
	return bits&expBits == expBits && bits&(1<<52-1) != 0
}

func formatNaN(field []byte) Result {
	if len(field) < 2 {
		return overflow(field)
	}
	n := copy(field, "NaN")
	buf.Fill(field[n:], ' ')
	return Result{Len: n, Mode: ModeFixed}
}

func overflow(field []byte) Result {
	buf.Fill(field, '*')
	return Result{Len: len(field), Overflow: true}
}

func (f *Formatter) radix(field []byte, s Spec, v float64, mode Mode) (Result, error) {
	if f.delegate == nil {
		return Result{}, ErrNoDelegate
	}
	var (
		bits uint64
		size int
	)
	if s.Has(Single) {
		bits, size = uint64(math.Float32bits(float32(v))), 32
	} else {
		bits, size = math.Float64bits(v), 64
	}
	r, err := f.delegate.FormatBits(field, s, bits, size)
	if err != nil {
		return Result{}, err
	}
	r.Mode = mode
	return r, nil
}

// prefixFor returns the character placed before the digits: '-' for negative
// values, '+' with Plus, a reserved blank with Blank or Auto, or 0 for none.
func prefixFor(s Spec, neg bool) byte {
	switch {
	case neg:
		return '-'
	case s.Has(Plus):
		return '+'
	case s.Has(Blank), s.Has(Auto):
		return ' '
	}
	return 0
}

func prefixCols(prefix byte) int {
	if prefix == 0 {
		return 0
	}
	return 1
}

// finish justifies the body held in field[start:] and places the prefix. The
// returned length counts the body and a visible sign, never padding.
func finish(field []byte, start int, prefix byte, s Spec, mode Mode) Result {
	w := len(field)
	body := w - start
	pad := byte(' ')
	if s.Has(ZeroPad) {
		pad = '0'
	}

	if s.Has(Left) {
		pos := 0
		if prefix != 0 {
			field[0] = prefix
			pos = 1
		}
		copy(field[pos:], field[start:])
		buf.Fill(field[pos+body:], pad)
	} else {
		buf.Fill(field[:start], pad)
		if prefix != 0 {
			if pad == '0' {
				field[0] = prefix
			} else {
				field[start-1] = prefix
			}
		}
	}

	n := body
	if prefix == '-' || prefix == '+' {
		n++
	}
	return Result{Len: n, Mode: mode}
}
