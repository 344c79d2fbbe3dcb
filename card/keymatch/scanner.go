package keymatch

import "strings"

// Punct is a set of punctuation classes. A Field carries the class of the
// delimiter that ended it; Scanner.Introducer reports the class of the
// delimiter in front of the next field.
type Punct uint16

const (
	PunctBlank Punct = 1 << iota
	PunctComma
	PunctEquals
	PunctPlusEquals
	PunctMinusEquals
	PunctOpenParen
	PunctCloseParen
	PunctColon
	// PunctEnd marks a field that ran to the end of the card.
	PunctEnd
)

// PunctAnyEquals matches "=", "+=" and "-=".
const PunctAnyEquals = PunctEquals | PunctPlusEquals | PunctMinusEquals

var punctNames = []struct {
	p    Punct
	name string
}{
	{PunctBlank, "blank"},
	{PunctComma, ","},
	{PunctEquals, "="},
	{PunctPlusEquals, "+="},
	{PunctMinusEquals, "-="},
	{PunctOpenParen, "("},
	{PunctCloseParen, ")"},
	{PunctColon, ":"},
	{PunctEnd, "end"},
}

func (p Punct) String() string {
	if p == 0 {
		return "none"
	}
	var names []string
	for _, pn := range punctNames {
		if p&pn.p != 0 {
			names = append(names, pn.name)
		}
	}
	return strings.Join(names, "|")
}

// Policy names the delimiters that end a field.
type Policy uint8

const (
	// Whitespace fields end at a blank, comma, equals sign, colon or paren.
	Whitespace Policy = iota
	// Comma fields end only at a comma or the end of the card; blanks and
	// other punctuation stay in the text.
	Comma
	// Paren fields end at a paren or comma.
	Paren
	// Equals fields end only at an equals sign (plain, "+=" or "-="), a comma
	// or the end of the card.
	Equals
)

func (p Policy) String() string {
	switch p {
	case Whitespace:
		return "whitespace"
	case Comma:
		return "comma"
	case Paren:
		return "paren"
	case Equals:
		return "equals"
	}
	return "unknown"
}

// Field is one token returned by a Scanner.
type Field struct {
	Text  string
	Punct Punct
}

// Scanner supplies fields to the Matcher. Next returns io.EOF when the input
// is exhausted.
type Scanner interface {
	Next(p Policy) (Field, error)
	Introducer() Punct
}
