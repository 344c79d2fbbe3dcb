package format

// PackWidth encodes a field width. Widths outside 1..MaxWidth wrap modulo
// MaxWidth rather than being rejected, so 0 encodes as 32 and 33 as 1.
func PackWidth(width int) uint32 {
	return uint32(width-1) & WidthMask
}

// PackDecimals encodes a decimal-digit count modulo 16.
func PackDecimals(decimals int) uint32 {
	return (uint32(decimals) & DecimalsMask) << DecimalsShift
}

// Width returns the field width held in a packed spec.
func Width(p uint32) int {
	return int(p&WidthMask) + 1
}

// Decimals returns the decimal-digit count held in a packed spec.
func Decimals(p uint32) int {
	return int(p>>DecimalsShift) & DecimalsMask
}

// Check reports whether a packed spec is well formed: no reserved bits, at
// most one of hex and octal, and no forced scientific notation in either of
// those modes.
func Check(p uint32) error {
	if p&ReservedMask != 0 {
		return ErrReservedBits
	}
	radix := p & (HexBit | OctalBit)
	if radix == HexBit|OctalBit {
		return ErrModeConflict
	}
	if radix != 0 && p&ForceEBit != 0 {
		return ErrModeConflict
	}
	return nil
}
