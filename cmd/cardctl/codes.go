package main

import (
	"fmt"
	"strconv"

	"github.com/joshuapare/cardkit/card/optcode"
)

var (
	codesKeys  string
	codesWidth int
)

// resolveAlphabet returns the alphabet given by --keys, or the configured
// alphabet called name.
func resolveAlphabet(name string) (optcode.Alphabet, error) {
	if codesKeys != "" {
		return optcode.NewAlphabet(codesKeys)
	}
	return cfg.Alphabet(name)
}

// applyWidth applies sel to word held in a codesWidth-bit integer and returns
// the result widened to uint32.
func applyWidth(sel optcode.Selection, word uint32) (uint32, error) {
	switch codesWidth {
	case 8:
		w := uint8(word)
		err := optcode.Apply(sel, &w)
		return uint32(w), err
	case 16:
		w := uint16(word)
		err := optcode.Apply(sel, &w)
		return uint32(w), err
	case 32:
		w := word
		err := optcode.Apply(sel, &w)
		return w, err
	}
	return 0, fmt.Errorf("invalid width %d: must be 8, 16 or 32", codesWidth)
}

// decodeWidth decodes word as a codesWidth-bit integer.
func decodeWidth(a optcode.Alphabet, word uint32, pad int) (string, error) {
	switch codesWidth {
	case 8:
		return optcode.Decode(a, uint8(word), pad), nil
	case 16:
		return optcode.Decode(a, uint16(word), pad), nil
	case 32:
		return optcode.Decode(a, word, pad), nil
	}
	return "", fmt.Errorf("invalid width %d: must be 8, 16 or 32", codesWidth)
}

func parseWord(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid word %q: %w", s, err)
	}
	return uint32(v), nil
}

func formatWord(w uint32) string {
	return fmt.Sprintf("0x%0*x", codesWidth/4, w)
}
