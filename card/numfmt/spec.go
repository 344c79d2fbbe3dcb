// Package numfmt renders float64 values into fixed-width text fields for
// control-card reports. A packed Spec selects the width, the number of
// decimal digits and the presentation flags; the Formatter chooses between
// fixed-point and scientific notation so the value fits, and fills the field
// with asterisks when nothing fits.
//
// The Formatter writes into a caller-owned buffer and never allocates.
// Hexadecimal and octal renderings are handed whole to a Delegate.
package numfmt

import (
	"fmt"
	"strings"

	"github.com/joshuapare/cardkit/internal/format"
)

// Spec is a packed conversion specification. Its bit layout is defined by
// internal/format and is shared with callers that store one integer per field.
type Spec uint32

// Flag is one presentation or mode bit of a Spec.
type Flag uint32

const (
	// Auto picks the number of fractional digits from the room left after the
	// integer part, never exceeding the spec's decimal count.
	Auto Flag = Flag(format.AutoBit)
	// UnderflowE switches to scientific notation when a non-zero value would
	// print as all zeros in fixed notation.
	UnderflowE Flag = Flag(format.UnderflowEBit)
	// ForceE always uses scientific notation.
	ForceE Flag = Flag(format.ForceEBit)
	// Left left-justifies the field.
	Left Flag = Flag(format.LeftBit)
	// ZeroPad pads with '0' instead of blanks.
	ZeroPad Flag = Flag(format.ZeroPadBit)
	// Plus writes '+' before non-negative values.
	Plus Flag = Flag(format.PlusBit)
	// Blank reserves a leading blank column for non-negative values.
	Blank Flag = Flag(format.BlankBit)
	// Single marks the value as coming from a float32 source.
	Single Flag = Flag(format.SingleBit)
	// Hex renders the value's bit pattern in hexadecimal through the Delegate.
	Hex Flag = Flag(format.HexBit)
	// Octal renders the value's bit pattern in octal through the Delegate.
	Octal Flag = Flag(format.OctalBit)
)

var flagNames = []struct {
	flag Flag
	name string
}{
	{Auto, "auto"},
	{UnderflowE, "uflow"},
	{ForceE, "sci"},
	{Left, "left"},
	{ZeroPad, "zero"},
	{Plus, "plus"},
	{Blank, "blank"},
	{Single, "single"},
	{Hex, "hex"},
	{Octal, "octal"},
}

// NewSpec builds a Spec. Width wraps modulo 32 and decimals modulo 16; bits of
// flags outside the defined set are dropped.
func NewSpec(width, decimals int, flags Flag) Spec {
	return Spec(format.PackWidth(width) | format.PackDecimals(decimals) | uint32(flags)&format.FlagMask)
}

// Pack wraps a packed integer received from a legacy caller. No validation
// happens here; Format reports malformed specs.
func Pack(p uint32) Spec { return Spec(p) }

// Packed returns the spec as the legacy packed integer.
func (s Spec) Packed() uint32 { return uint32(s) }

// Width returns the field width, 1 through 32.
func (s Spec) Width() int { return format.Width(uint32(s)) }

// Decimals returns the decimal-digit count, 0 through 15.
func (s Spec) Decimals() int { return format.Decimals(uint32(s)) }

// Has reports whether every bit of f is set.
func (s Spec) Has(f Flag) bool { return Flag(s)&f == f }

// With returns s with f set.
func (s Spec) With(f Flag) Spec { return s | Spec(f&Flag(format.FlagMask)) }

// Without returns s with f cleared.
func (s Spec) Without(f Flag) Spec { return s &^ Spec(f) }

// Validate reports ErrMalformedSpec for reserved bits or conflicting modes.
func (s Spec) Validate() error {
	if err := format.Check(uint32(s)); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedSpec, err)
	}
	return nil
}

// String renders the spec as "w<width>.d<decimals>" followed by flag names,
// e.g. "w8.d2+auto+plus".
func (s Spec) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "w%d.d%d", s.Width(), s.Decimals())
	for _, fn := range flagNames {
		if s.Has(fn.flag) {
			sb.WriteByte('+')
			sb.WriteString(fn.name)
		}
	}
	return sb.String()
}

// ParseFlags converts flag names (auto, uflow, sci, left, zero, plus, blank,
// single, hex, octal) into a Flag set. Names are case-insensitive.
func ParseFlags(names ...string) (Flag, error) {
	var out Flag
next:
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		for _, fn := range flagNames {
			if strings.EqualFold(name, fn.name) {
				out |= fn.flag
				continue next
			}
		}
		return 0, fmt.Errorf("%w: %q", ErrUnknownFlag, name)
	}
	return out, nil
}
