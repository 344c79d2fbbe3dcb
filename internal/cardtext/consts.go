package cardtext

const (
	// ============================================================================
	// Card Layout
	// ============================================================================

	// CommentPrefix in column 1 marks a comment card
	CommentPrefix = '*'

	// SingleQuote and DoubleQuote open a quoted field; the same character
	// doubled inside the field stands for itself
	SingleQuote = '\''
	DoubleQuote = '"'

	// CR is stripped from the end of each card
	CR = "\r"

	// ============================================================================
	// Scanner Limits
	// ============================================================================

	// ScannerInitialBufferSize is the initial line buffer size
	ScannerInitialBufferSize = 4 * 1024

	// ScannerMaxLineSize is the longest card accepted
	ScannerMaxLineSize = 1024 * 1024

	// InitialCardCapacity is the initial capacity of a deck's card slice
	InitialCardCapacity = 256
)
