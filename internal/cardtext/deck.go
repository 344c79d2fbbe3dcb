// Package cardtext splits control decks into cards and cards into fields.
//
// Decks are read as Windows-1252 text, the encoding legacy card images are
// kept in, and converted to UTF-8. A line with '*' in column 1 and a blank line
// are comments. Every other line is a Card, which implements keymatch.Scanner.
package cardtext

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Deck is the list of cards read from one input.
type Deck struct {
	cards []*Card
}

// NewDeck reads every card from r.
func NewDeck(r io.Reader) (*Deck, error) {
	d := &Deck{cards: make([]*Card, 0, InitialCardCapacity)}

	utf8Reader := transform.NewReader(r, charmap.Windows1252.NewDecoder())
	scanner := bufio.NewScanner(utf8Reader)
	buf := make([]byte, 0, ScannerInitialBufferSize)
	scanner.Buffer(buf, ScannerMaxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), CR)
		if isComment(text) {
			continue
		}
		d.cards = append(d.cards, NewCard(line, text))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning deck: %w", err)
	}
	return d, nil
}

// ParseDeck is NewDeck over an in-memory image, such as a mapped file.
func ParseDeck(data []byte) (*Deck, error) {
	return NewDeck(bytes.NewReader(data))
}

// Cards returns the deck's cards in input order.
func (d *Deck) Cards() []*Card { return d.cards }

// Len returns the number of cards.
func (d *Deck) Len() int { return len(d.cards) }

func isComment(line string) bool {
	if line != "" && line[0] == CommentPrefix {
		return true
	}
	return strings.TrimSpace(line) == ""
}
