// Package optcode translates between option strings, one character per
// option, and binary flag words.
//
// An Alphabet lists the option characters; counted from the right, each key
// owns one bit, so in "ABC" the key C is bit 0 and A is bit 2. Encode turns an
// option string into a Selection, and Apply performs that selection on flag
// words of any supported width:
//
//	a := optcode.MustAlphabet("ABC")
//	sel, err := a.Encode("+AC")
//	var w uint16 = 0b010
//	_ = optcode.Apply(sel, &w) // w == 0b111
package optcode

import (
	"math/bits"
	"strings"
)

// Canonical alphabet bounds. Decode walks keys in this order.
const (
	firstKey  = '!'
	lastKey   = '~'
	numKeys   = lastKey - firstKey + 1
	maxKeyLen = 32
)

// Word is a flag word Apply and Decode operate on.
type Word interface {
	~uint8 | ~uint16 | ~uint32
}

// Policy says how a Selection combines with the target word.
type Policy uint8

const (
	// Replace overwrites the target with the selected bits.
	Replace Policy = iota
	// OrIn sets the selected bits.
	OrIn
	// ClearBits clears the selected bits.
	ClearBits
	// ZeroAll clears the whole target.
	ZeroAll
)

func (p Policy) String() string {
	switch p {
	case Replace:
		return "replace"
	case OrIn:
		return "or"
	case ClearBits:
		return "clear"
	case ZeroAll:
		return "zero"
	}
	return "unknown"
}

// Selection is the result of Encode: the bits named by an option string and
// how to combine them. It is a plain value; later calls to Encode do not
// affect it.
type Selection struct {
	Bits   uint32
	Policy Policy
	// Width is the length of the alphabet that produced the selection.
	Width int
}

// Alphabet is an ordered set of option characters.
type Alphabet struct {
	keys string
	bit  [numKeys]int8 // bit index per canonical character, -1 if not a key
}

// NewAlphabet builds an Alphabet from keys. Keys must be printable ASCII other
// than blank, '+' and '-', each listed once, and at most 32 of them.
func NewAlphabet(keys string) (Alphabet, error) {
	a := Alphabet{keys: keys}
	if len(keys) > maxKeyLen {
		return Alphabet{}, ErrAlphabetTooWide
	}
	for i := range a.bit {
		a.bit[i] = -1
	}
	for i := 0; i < len(keys); i++ {
		c := keys[i]
		if c < firstKey || c > lastKey || c == '+' || c == '-' {
			return Alphabet{}, &KeyError{Key: c, Err: ErrInvalidKey}
		}
		if a.bit[c-firstKey] >= 0 {
			return Alphabet{}, &KeyError{Key: c, Err: ErrDuplicateKey}
		}
		a.bit[c-firstKey] = int8(len(keys) - 1 - i)
	}
	return a, nil
}

// MustAlphabet is NewAlphabet for alphabets fixed at compile time.
func MustAlphabet(keys string) Alphabet {
	a, err := NewAlphabet(keys)
	if err != nil {
		panic(err)
	}
	return a
}

// Keys returns the alphabet as given.
func (a Alphabet) Keys() string { return a.keys }

// Len returns the number of keys.
func (a Alphabet) Len() int { return len(a.keys) }

// Mask returns the bits the alphabet can set.
func (a Alphabet) Mask() uint32 {
	if len(a.keys) == maxKeyLen {
		return ^uint32(0)
	}
	return 1<<len(a.keys) - 1
}

// Encode converts an option string into a Selection. A leading '+' selects
// OrIn and a leading '-' ClearBits; otherwise the selection replaces the
// target. The string "0" means ZeroAll unless '0' is a key.
//
// Characters that are not keys are skipped and reported together as an
// *UnrecognizedError; the Selection still carries every key that matched.
func (a Alphabet) Encode(data string) (Selection, error) {
	sel := Selection{Policy: Replace, Width: len(a.keys)}
	if data == "0" && a.index('0') < 0 {
		sel.Policy = ZeroAll
		return sel, nil
	}
	if data != "" {
		switch data[0] {
		case '+':
			sel.Policy, data = OrIn, data[1:]
		case '-':
			sel.Policy, data = ClearBits, data[1:]
		}
	}

	var unmatched strings.Builder
	for i := 0; i < len(data); i++ {
		if b := a.index(data[i]); b >= 0 {
			sel.Bits |= 1 << b
			continue
		}
		unmatched.WriteByte(data[i])
	}
	if unmatched.Len() > 0 {
		return sel, &UnrecognizedError{Codes: unmatched.String()}
	}
	return sel, nil
}

func (a Alphabet) index(c byte) int {
	if c < firstKey || c > lastKey {
		return -1
	}
	return int(a.bit[c-firstKey])
}

// Apply performs sel on *target. The same Selection may be applied to words
// of different widths. It fails with ErrAlphabetTooWide when the alphabet
// that produced sel has more keys than W has bits.
func Apply[W Word](sel Selection, target *W) error {
	if sel.Width > wordBits[W]() {
		return ErrAlphabetTooWide
	}
	b := W(sel.Bits)
	switch sel.Policy {
	case Replace:
		*target = b
	case OrIn:
		*target |= b
	case ClearBits:
		*target &^= b
	case ZeroAll:
		*target = 0
	}
	return nil
}

// Decode renders the keys whose bits are set in item. Keys are emitted in
// canonical order ('!' through '~'), not alphabet order. With pad > 0 the
// result is blank-padded or truncated to exactly pad characters.
func Decode[W Word](a Alphabet, item W, pad int) string {
	limit := min(numKeys, len(a.keys), wordBits[W]())
	out := make([]byte, 0, max(limit, pad))
	for c := byte(firstKey); c <= lastKey && len(out) < limit; c++ {
		b := a.bit[c-firstKey]
		if b >= 0 && uint64(item)&(1<<b) != 0 {
			out = append(out, c)
		}
	}
	if pad > 0 {
		if len(out) > pad {
			out = out[:pad]
		}
		for len(out) < pad {
			out = append(out, ' ')
		}
	}
	return string(out)
}

func wordBits[W Word]() int {
	return bits.Len64(uint64(^W(0)))
}
