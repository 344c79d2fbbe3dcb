// Package format defines the packed conversion-spec layout shared with callers
// that still pass a single integer per output field. The layout is the ABI
// boundary with the card interpreter: higher-level packages work with typed
// values and convert through the helpers here.
package format

// Packed spec layout (uint32, bit 0 is least significant):
//
//	bits  0-4   field width - 1 (1..32)
//	bit   5     hexadecimal mode
//	bit   6     octal mode
//	bit   7     reserved
//	bits  8-11  decimal digits (0 = integer)
//	bit  12     auto-decimal placement
//	bit  13     underflow forces scientific
//	bit  14     force scientific
//	bit  15     left-justify
//	bit  16     zero-pad
//	bit  17     plus sign for positive values
//	bit  18     reserve leading blank
//	bit  19     single-precision source
//	bits 20-31  reserved
const (
	// WidthBits is the number of bits holding width-1.
	WidthBits = 5

	// WidthMask extracts width-1 from a packed spec.
	WidthMask = 1<<WidthBits - 1

	// MaxWidth is the widest field a spec can describe.
	MaxWidth = WidthMask + 1

	// DecimalsShift is the position of the 4-bit decimal-digit field.
	DecimalsShift = 8

	// DecimalsMask extracts the decimal-digit count after shifting.
	DecimalsMask = 0xF

	// MaxDecimals is the largest decimal-digit count a spec can carry.
	MaxDecimals = DecimalsMask
)

// Mode and option bits.
const (
	HexBit        uint32 = 1 << 5
	OctalBit      uint32 = 1 << 6
	AutoBit       uint32 = 1 << 12
	UnderflowEBit uint32 = 1 << 13
	ForceEBit     uint32 = 1 << 14
	LeftBit       uint32 = 1 << 15
	ZeroPadBit    uint32 = 1 << 16
	PlusBit       uint32 = 1 << 17
	BlankBit      uint32 = 1 << 18
	SingleBit     uint32 = 1 << 19
)

const (
	// ReservedLowBit sits between the mode bits and the decimal field.
	ReservedLowBit uint32 = 1 << 7

	// ReservedHighMask covers every bit above the single-precision flag.
	ReservedHighMask uint32 = 0xFFF00000

	// ReservedMask is the union of all bits that must be zero.
	ReservedMask = ReservedLowBit | ReservedHighMask

	// FlagMask is the union of all defined option and mode bits.
	FlagMask = HexBit | OctalBit | AutoBit | UnderflowEBit | ForceEBit |
		LeftBit | ZeroPadBit | PlusBit | BlankBit | SingleBit
)
