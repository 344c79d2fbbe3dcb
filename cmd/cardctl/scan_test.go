package main

import (
	"errors"
	"testing"

	"github.com/joshuapare/cardkit/card/optcode"
	"github.com/joshuapare/cardkit/internal/config"
	"github.com/joshuapare/cardkit/internal/report"
)

const goodDeck = `* sample deck
TITLE  Pump station model
NET 12 'main line'

OPTIONS output=ACD trace+=EF
OPT output+=V output-=A
OUTPUT = MILLI
RUN = 10 SEC
END
CELL ignored after end
`

const badDeck = `BOGUS 1
OPTIONS output=AXZ
RUN 2.5 SEC
OUTPUT
`

// scanConfig narrows the numeric field so run values are predictable
func scanConfig() {
	cfg.Format = config.FormatConfig{Width: 8, Decimals: 2, MinExpDigits: 1}
}

func TestScanCommand(t *testing.T) {
	tests := []struct {
		name           string
		deck           string
		wantHad        bool
		wantContain    []string
		wantNotContain []string
		wantJSON       bool
	}{
		{
			name: "good deck",
			deck: goodDeck,
			wantContain: []string{
				"Cards: 7",
				"Title: Pump station model",
				"Names: 9",
				"Output: MILLISECONDS",
				`Options output: "CDV"`,
				`Options trace: "EF"`,
				"Run: [   10.00] SECONDS",
			},
			wantNotContain: []string{"CELL"},
		},
		{
			name:     "good deck as json",
			deck:     goodDeck,
			wantJSON: true,
			wantContain: []string{
				`"cards": 7`,
				`"OPTIONS": 2`,
				`"output": "CDV"`,
				`"runs": [`,
			},
			wantNotContain: []string{`"diagnostics"`},
		},
		{
			name:     "bad deck",
			deck:     badDeck,
			wantHad:  true,
			wantJSON: true,
			wantContain: []string{
				`"cards": 4`,
				`"output": "A"`,
				`line 1: \"BOGUS\" does not uniquely match`,
				`line 2: Option codes \"XZ\" not recognized.`,
				`line 3: expected \"=\" before keyword`,
				"line 4: required field missing",
				`"[    2.50] SECONDS"`,
			},
		},
		{
			name:        "empty deck",
			deck:        "",
			wantContain: []string{"Cards: 0", "Names: 0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetGlobals()
			scanConfig()
			jsonOut = tt.wantJSON
			path := writeDeck(t, tt.deck)

			output, err := captureOutput(t, func() error {
				return runScan([]string{path})
			})

			if tt.wantHad {
				if !errors.Is(err, errHadErrors) {
					t.Errorf("expected errHadErrors, got %v", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.wantJSON {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}

func TestScanCommand_Overflow(t *testing.T) {
	resetGlobals()
	cfg.Format = config.FormatConfig{Width: 3, Decimals: 0, MinExpDigits: 1}
	jsonOut = true
	path := writeDeck(t, "RUN = 123456789 STEPS\n")

	output, err := captureOutput(t, func() error {
		return runScan([]string{path})
	})
	if !errors.Is(err, errHadErrors) {
		t.Fatalf("expected errHadErrors, got %v", err)
	}
	assertContains(t, output, []string{"does not fit field", `"[***] STEPS"`})
}

func TestScanCommand_UnterminatedQuote(t *testing.T) {
	resetGlobals()
	scanConfig()
	path := writeDeck(t, "CELL 'open\n")

	_, err := captureOutput(t, func() error {
		return runScan([]string{path})
	})
	if !errors.Is(err, errHadErrors) {
		t.Errorf("expected errHadErrors, got %v", err)
	}
}

func TestScanCommand_MissingTable(t *testing.T) {
	resetGlobals()
	delete(cfg.Keywords, unitsTable)
	path := writeDeck(t, "END\n")

	_, err := captureOutput(t, func() error {
		return runScan([]string{path})
	})
	if err == nil || errors.Is(err, errHadErrors) {
		t.Errorf("expected a command error, got %v", err)
	}
}

func TestScanCommand_MissingFile(t *testing.T) {
	resetGlobals()
	_, err := captureOutput(t, func() error {
		return runScan([]string{"does-not-exist.deck"})
	})
	if err == nil {
		t.Error("expected error, got nil")
	}
}

func TestDeckScanner_CheckEncode(t *testing.T) {
	resetGlobals()
	log := newReport()
	ds, err := newDeckScanner(log)
	if err != nil {
		t.Fatalf("newDeckScanner: %v", err)
	}

	if !ds.checkEncode("output", nil) {
		t.Error("nil error rejected")
	}
	if !ds.checkEncode("output", &optcode.UnrecognizedError{Codes: "XZ"}) {
		t.Error("unrecognized codes should still apply the selection")
	}
	if ds.checkEncode("output", optcode.ErrAlphabetTooWide) {
		t.Error("other errors must not apply the selection")
	}

	entries := log.Entries()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2: %v", len(entries), entries)
	}
	if entries[0].Code != report.CodeOptionCodes {
		t.Errorf("first entry code = %q", entries[0].Code)
	}
	if entries[1].Code != report.CodeScan {
		t.Errorf("second entry code = %q", entries[1].Code)
	}
	assertContains(t, entries[1].Message, []string{"option set output"})
}
