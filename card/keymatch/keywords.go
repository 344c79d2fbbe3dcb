package keymatch

import "strings"

// KeywordMatcher picks one candidate for field text, returning its 1-based
// index, or false when no candidate matches uniquely.
type KeywordMatcher func(text string, candidates []string) (int, bool)

// Prefix matches text against candidates case-insensitively. A candidate
// equal to text wins outright; otherwise text must be a prefix of exactly one
// candidate. Empty text matches nothing.
func Prefix(text string, candidates []string) (int, bool) {
	if text == "" {
		return 0, false
	}
	found := 0
	for i, c := range candidates {
		if len(c) < len(text) || !strings.EqualFold(c[:len(text)], text) {
			continue
		}
		if len(c) == len(text) {
			return i + 1, true
		}
		if found != 0 {
			found = -1 // ambiguous unless an exact match follows
			continue
		}
		found = i + 1
	}
	if found <= 0 {
		return 0, false
	}
	return found, true
}

// Exact matches text case-insensitively against whole candidates only.
func Exact(text string, candidates []string) (int, bool) {
	for i, c := range candidates {
		if strings.EqualFold(c, text) {
			return i + 1, true
		}
	}
	return 0, false
}
