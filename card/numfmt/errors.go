package numfmt

import "errors"

var (
	// ErrMalformedSpec indicates a spec with reserved bits or conflicting modes.
	ErrMalformedSpec = errors.New("numfmt: malformed spec")
	// ErrShortBuffer indicates the output buffer is narrower than the spec's width.
	ErrShortBuffer = errors.New("numfmt: output buffer shorter than field width")
	// ErrNoDelegate indicates a hex or octal spec reached a Formatter without a Delegate.
	ErrNoDelegate = errors.New("numfmt: no delegate for hex/octal conversion")
	// ErrRoundingRetry indicates the rounding adjustment had to be applied twice,
	// which means the scaled mantissa was inconsistent with its exponent.
	ErrRoundingRetry = errors.New("numfmt: rounding adjustment retried twice")
	// ErrUnknownFlag indicates a flag name ParseFlags does not recognize.
	ErrUnknownFlag = errors.New("numfmt: unknown flag")
)
