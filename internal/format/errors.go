package format

import "errors"

var (
	// ErrReservedBits indicates a packed spec had bits set outside the defined layout.
	ErrReservedBits = errors.New("format: reserved spec bits set")
	// ErrModeConflict indicates mutually exclusive conversion modes were requested together.
	ErrModeConflict = errors.New("format: conflicting conversion modes")
)
