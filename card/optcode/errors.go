package optcode

import (
	"errors"
	"fmt"
)

var (
	// ErrAlphabetTooWide indicates an alphabet with more keys than the flag
	// word it is applied to has bits.
	ErrAlphabetTooWide = errors.New("optcode: alphabet wider than flag word")
	// ErrInvalidKey indicates a key outside printable ASCII, or '+' or '-'
	// which select the policy.
	ErrInvalidKey = errors.New("optcode: invalid key")
	// ErrDuplicateKey indicates a key listed twice in one alphabet.
	ErrDuplicateKey = errors.New("optcode: duplicate key")
)

// UnrecognizedError lists option characters that are not keys of the
// alphabet, in the order they appeared. It is a data error: the Selection
// returned alongside it is still usable.
type UnrecognizedError struct {
	Codes string
}

func (e *UnrecognizedError) Error() string {
	return `Option codes "` + e.Codes + `" not recognized.`
}

// KeyError reports the offending key of a rejected alphabet.
type KeyError struct {
	Key byte
	Err error
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("%v %q", e.Err, e.Key)
}

func (e *KeyError) Unwrap() error { return e.Err }
