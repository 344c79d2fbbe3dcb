// Package keymatch resolves control-card fields against keyword tables.
//
// The Matcher pulls one field from a Scanner, checks the punctuation around
// it and picks the keyword it names. Problems with the input are reported to a
// Reporter and summarised in the returned Status; they never stop the caller.
package keymatch

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Status is the outcome of one Match call.
type Status uint8

const (
	Matched Status = iota
	NoUniqueMatch
	PunctuationError
	EndOfInput
)

func (s Status) String() string {
	switch s {
	case Matched:
		return "matched"
	case NoUniqueMatch:
		return "no-unique-match"
	case PunctuationError:
		return "punctuation-error"
	case EndOfInput:
		return "end-of-input"
	}
	return "unknown"
}

// Code identifies a diagnostic.
type Code uint8

const (
	MissingEquals Code = iota + 1
	MissingField
	Punctuation
	NoUnique
)

func (c Code) String() string {
	switch c {
	case MissingEquals:
		return "missing-equals"
	case MissingField:
		return "missing-field"
	case Punctuation:
		return "punctuation"
	case NoUnique:
		return "no-unique"
	}
	return "unknown"
}

// Diagnostic describes one input problem found while matching.
type Diagnostic struct {
	Code  Code
	Field Field
	// Candidates is set for NoUnique.
	Candidates []string
	// Err is set when the Scanner failed for a reason other than io.EOF.
	Err error
}

// Message renders the diagnostic for a report listing.
func (d Diagnostic) Message() string {
	switch d.Code {
	case MissingEquals:
		return `expected "=" before keyword`
	case MissingField:
		return "required field missing"
	case Punctuation:
		if d.Err != nil {
			return fmt.Sprintf("cannot read field: %v", d.Err)
		}
		return fmt.Sprintf("unexpected punctuation %s after %q", d.Field.Punct, d.Field.Text)
	case NoUnique:
		return fmt.Sprintf("%q does not uniquely match any of: %s", d.Field.Text, strings.Join(d.Candidates, ", "))
	}
	return d.Code.String()
}

// Reporter receives diagnostics.
type Reporter interface {
	Report(d Diagnostic)
}

// Request parameterises one Match call.
type Request struct {
	// RequireEquals demands that the field be introduced by "=", "+=" or "-=".
	RequireEquals bool
	// Mandatory reports a missing field at the end of input.
	Mandatory bool
	// Policy is handed to the Scanner.
	Policy Policy
	// The field's punctuation masked with Mask must equal Expect.
	Mask   Punct
	Expect Punct
}

// Result is the outcome of Match. Index is the 1-based candidate index when
// Status is Matched.
type Result struct {
	Index  int
	Status Status
	Field  Field
}

// Matcher matches fields against keyword lists.
type Matcher struct {
	reporter Reporter
	keywords KeywordMatcher
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithKeywordMatcher replaces the default Prefix matcher.
func WithKeywordMatcher(km KeywordMatcher) Option {
	return func(m *Matcher) { m.keywords = km }
}

// New returns a Matcher that sends diagnostics to r. A nil r discards them.
func New(r Reporter, opts ...Option) *Matcher {
	m := &Matcher{reporter: r, keywords: Prefix}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match reads the next field from sc and resolves it against candidates.
func (m *Matcher) Match(sc Scanner, req Request, candidates []string) Result {
	if req.RequireEquals && sc.Introducer()&PunctAnyEquals == 0 {
		m.report(Diagnostic{Code: MissingEquals})
	}

	f, err := sc.Next(req.Policy)
	if errors.Is(err, io.EOF) {
		if req.Mandatory {
			m.report(Diagnostic{Code: MissingField})
		}
		return Result{Status: EndOfInput}
	}
	if err != nil {
		m.report(Diagnostic{Code: Punctuation, Field: f, Err: err})
		return Result{Status: PunctuationError, Field: f}
	}

	if f.Punct&req.Mask != req.Expect {
		m.report(Diagnostic{Code: Punctuation, Field: f})
		return Result{Status: PunctuationError, Field: f}
	}

	idx, ok := m.keywords(f.Text, candidates)
	if !ok {
		m.report(Diagnostic{Code: NoUnique, Field: f, Candidates: candidates})
		return Result{Status: NoUniqueMatch, Field: f}
	}
	return Result{Index: idx, Status: Matched, Field: f}
}

func (m *Matcher) report(d Diagnostic) {
	if m.reporter != nil {
		m.reporter.Report(d)
	}
}
