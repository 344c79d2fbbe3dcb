package cardtext

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/joshuapare/cardkit/card/keymatch"
)

// ErrUnterminatedQuote indicates a quoted field with no closing quote.
var ErrUnterminatedQuote = errors.New("cardtext: unterminated quote")

// Card is one line of a deck. Next hands out its fields left to right.
type Card struct {
	Line int
	Text string

	pos   int
	intro keymatch.Punct
}

var _ keymatch.Scanner = (*Card)(nil)

// NewCard wraps one line of text.
func NewCard(line int, text string) *Card {
	return &Card{Line: line, Text: text}
}

// Reset rewinds the card to its first field.
func (c *Card) Reset() {
	c.pos = 0
	c.intro = 0
}

// Rest returns the text not yet consumed.
func (c *Card) Rest() string { return c.Text[c.pos:] }

// Introducer reports the delimiter that ended the previous field, which is
// the one in front of the next field. It is 0 before the first field.
func (c *Card) Introducer() keymatch.Punct { return c.intro }

// Next returns the next field under policy p, or io.EOF when the card is used
// up. Surrounding blanks are not part of a field; with the Whitespace policy
// a blank also ends it. A blank followed by another delimiter counts as that
// delimiter.
func (c *Card) Next(p keymatch.Policy) (keymatch.Field, error) {
	s := c.Text
	i := skipBlanks(s, c.pos)
	if i >= len(s) {
		c.pos = len(s)
		return keymatch.Field{}, io.EOF
	}

	var text string
	if q := s[i]; q == SingleQuote || q == DoubleQuote {
		unquoted, end, ok := unquote(s, i)
		if !ok {
			c.pos = len(s)
			return keymatch.Field{Text: s[i:]}, fmt.Errorf("line %d: %w", c.Line, ErrUnterminatedQuote)
		}
		text, i = unquoted, end
	} else {
		start := i
		for i < len(s) {
			if _, n := delimAt(s, i, p); n > 0 {
				break
			}
			if p == keymatch.Whitespace && isBlank(s[i]) {
				break
			}
			i++
		}
		text = strings.TrimRight(s[start:i], " \t")
	}

	var punct keymatch.Punct
	j := skipBlanks(s, i)
	weak := j > i
	switch cls, n := delimAtEnd(s, j, p); {
	case j >= len(s):
		punct = keymatch.PunctEnd
	case n > 0:
		punct = cls
		j += n
	case weak:
		punct = keymatch.PunctBlank
	}
	c.pos = j
	c.intro = punct
	return keymatch.Field{Text: text, Punct: punct}, nil
}

// Fields drains the card under policy p.
func (c *Card) Fields(p keymatch.Policy) ([]keymatch.Field, error) {
	var out []keymatch.Field
	for {
		f, err := c.Next(p)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, f)
	}
}

func delimAtEnd(s string, i int, p keymatch.Policy) (keymatch.Punct, int) {
	if i >= len(s) {
		return 0, 0
	}
	return delimAt(s, i, p)
}

// delimAt classifies the delimiter starting at s[i] under policy p and
// returns its length, or 0 when s[i] is field text.
func delimAt(s string, i int, p keymatch.Policy) (keymatch.Punct, int) {
	equals := p == keymatch.Whitespace || p == keymatch.Equals
	parens := p == keymatch.Whitespace || p == keymatch.Paren
	switch s[i] {
	case ',':
		return keymatch.PunctComma, 1
	case '=':
		if equals {
			return keymatch.PunctEquals, 1
		}
	case '+', '-':
		if equals && i+1 < len(s) && s[i+1] == '=' {
			if s[i] == '+' {
				return keymatch.PunctPlusEquals, 2
			}
			return keymatch.PunctMinusEquals, 2
		}
	case '(':
		if parens {
			return keymatch.PunctOpenParen, 1
		}
	case ')':
		if parens {
			return keymatch.PunctCloseParen, 1
		}
	case ':':
		if p == keymatch.Whitespace {
			return keymatch.PunctColon, 1
		}
	}
	return 0, 0
}

// unquote reads the quoted field opening at s[i] and returns its text and the
// index just past the closing quote.
func unquote(s string, i int) (string, int, bool) {
	q := s[i]
	var sb strings.Builder
	for j := i + 1; j < len(s); j++ {
		if s[j] != q {
			sb.WriteByte(s[j])
			continue
		}
		if j+1 < len(s) && s[j+1] == q {
			sb.WriteByte(q)
			j++
			continue
		}
		return sb.String(), j + 1, true
	}
	return "", 0, false
}

func skipBlanks(s string, i int) int {
	for i < len(s) && isBlank(s[i]) {
		i++
	}
	return i
}

func isBlank(b byte) bool { return b == ' ' || b == '\t' }
