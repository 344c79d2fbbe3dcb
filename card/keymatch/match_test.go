package keymatch

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// fakeScanner replays fields; intro is returned by Introducer.
type fakeScanner struct {
	fields   []Field
	intro    Punct
	policies []Policy
	err      error
}

func (s *fakeScanner) Next(p Policy) (Field, error) {
	s.policies = append(s.policies, p)
	if s.err != nil {
		return Field{}, s.err
	}
	if len(s.fields) == 0 {
		return Field{}, io.EOF
	}
	f := s.fields[0]
	s.fields = s.fields[1:]
	s.intro = f.Punct
	return f, nil
}

func (s *fakeScanner) Introducer() Punct { return s.intro }

type collector struct {
	diags []Diagnostic
}

func (c *collector) Report(d Diagnostic) { c.diags = append(c.diags, d) }

var units = []string{"SECONDS", "SAMPLES", "MILLISECONDS", "STEPS"}

func TestMatch(t *testing.T) {
	blankOrEnd := PunctBlank | PunctEnd
	tests := []struct {
		name   string
		sc     *fakeScanner
		req    Request
		want   Result
		report []Diagnostic
	}{
		{
			name: "abbreviation",
			sc:   &fakeScanner{fields: []Field{{Text: "mil", Punct: PunctBlank}}},
			want: Result{Index: 3, Status: Matched, Field: Field{Text: "mil", Punct: PunctBlank}},
		},
		{
			name: "ambiguous abbreviation",
			sc:   &fakeScanner{fields: []Field{{Text: "S", Punct: PunctEnd}}},
			want: Result{Status: NoUniqueMatch, Field: Field{Text: "S", Punct: PunctEnd}},
			report: []Diagnostic{{
				Code:       NoUnique,
				Field:      Field{Text: "S", Punct: PunctEnd},
				Candidates: units,
			}},
		},
		{
			name: "no candidate",
			sc:   &fakeScanner{fields: []Field{{Text: "HOURS", Punct: PunctEnd}}},
			want: Result{Status: NoUniqueMatch, Field: Field{Text: "HOURS", Punct: PunctEnd}},
			report: []Diagnostic{{
				Code:       NoUnique,
				Field:      Field{Text: "HOURS", Punct: PunctEnd},
				Candidates: units,
			}},
		},
		{
			name: "end of optional input",
			sc:   &fakeScanner{},
			want: Result{Status: EndOfInput},
		},
		{
			name:   "end of mandatory input",
			sc:     &fakeScanner{},
			req:    Request{Mandatory: true},
			want:   Result{Status: EndOfInput},
			report: []Diagnostic{{Code: MissingField}},
		},
		{
			name: "punctuation accepted",
			sc:   &fakeScanner{fields: []Field{{Text: "steps", Punct: PunctEnd}}},
			req:  Request{Mask: blankOrEnd | PunctComma, Expect: PunctEnd},
			want: Result{Index: 4, Status: Matched, Field: Field{Text: "steps", Punct: PunctEnd}},
		},
		{
			name: "punctuation rejected",
			sc:   &fakeScanner{fields: []Field{{Text: "steps", Punct: PunctComma}}},
			req:  Request{Mask: blankOrEnd | PunctComma, Expect: PunctEnd},
			want: Result{Status: PunctuationError, Field: Field{Text: "steps", Punct: PunctComma}},
			report: []Diagnostic{{
				Code:  Punctuation,
				Field: Field{Text: "steps", Punct: PunctComma},
			}},
		},
		{
			name: "equals present",
			sc: &fakeScanner{
				intro:  PunctPlusEquals,
				fields: []Field{{Text: "sec", Punct: PunctEnd}},
			},
			req:  Request{RequireEquals: true, Policy: Equals},
			want: Result{Index: 1, Status: Matched, Field: Field{Text: "sec", Punct: PunctEnd}},
		},
		{
			name: "equals missing keeps matching",
			sc: &fakeScanner{
				intro:  PunctBlank,
				fields: []Field{{Text: "sec", Punct: PunctEnd}},
			},
			req:    Request{RequireEquals: true},
			want:   Result{Index: 1, Status: Matched, Field: Field{Text: "sec", Punct: PunctEnd}},
			report: []Diagnostic{{Code: MissingEquals}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c collector
			got := New(&c).Match(tt.sc, tt.req, units)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("result mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.report, c.diags); diff != "" {
				t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMatch_PassesPolicy(t *testing.T) {
	sc := &fakeScanner{fields: []Field{{Text: "a"}, {Text: "b"}}}
	m := New(nil)
	m.Match(sc, Request{Policy: Paren}, []string{"A"})
	m.Match(sc, Request{Policy: Comma}, []string{"B"})
	require.Equal(t, []Policy{Paren, Comma}, sc.policies)
}

func TestMatch_ScannerError(t *testing.T) {
	bad := errors.New("unterminated quote")
	var c collector
	r := New(&c).Match(&fakeScanner{err: bad}, Request{}, units)
	require.Equal(t, PunctuationError, r.Status)
	require.Len(t, c.diags, 1)
	require.Equal(t, Punctuation, c.diags[0].Code)
	require.ErrorIs(t, c.diags[0].Err, bad)
	require.Equal(t, "cannot read field: unterminated quote", c.diags[0].Message())
}

func TestMatch_CustomKeywordMatcher(t *testing.T) {
	sc := &fakeScanner{fields: []Field{{Text: "sec"}}}
	var c collector
	r := New(&c, WithKeywordMatcher(Exact)).Match(sc, Request{}, units)
	require.Equal(t, NoUniqueMatch, r.Status)
	require.Len(t, c.diags, 1)
}

func TestMatch_NilReporter(t *testing.T) {
	r := New(nil).Match(&fakeScanner{}, Request{Mandatory: true, RequireEquals: true}, units)
	require.Equal(t, EndOfInput, r.Status)
}

func TestDiagnostic_Message(t *testing.T) {
	tests := []struct {
		d    Diagnostic
		want string
	}{
		{Diagnostic{Code: MissingEquals}, `expected "=" before keyword`},
		{Diagnostic{Code: MissingField}, "required field missing"},
		{
			Diagnostic{Code: Punctuation, Field: Field{Text: "x", Punct: PunctComma | PunctOpenParen}},
			`unexpected punctuation ,|( after "x"`,
		},
		{
			Diagnostic{Code: NoUnique, Field: Field{Text: "S"}, Candidates: []string{"SEC", "STEP"}},
			`"S" does not uniquely match any of: SEC, STEP`,
		},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.d.Message())
	}
}

func TestPunct_String(t *testing.T) {
	require.Equal(t, "none", Punct(0).String())
	require.Equal(t, "=|+=|-=", PunctAnyEquals.String())
	require.Equal(t, "blank|end", (PunctBlank | PunctEnd).String())
}
