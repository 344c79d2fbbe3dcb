package main

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joshuapare/cardkit/card/fixpt"
	"github.com/joshuapare/cardkit/card/keymatch"
	"github.com/joshuapare/cardkit/card/namecache"
	"github.com/joshuapare/cardkit/card/numfmt"
	"github.com/joshuapare/cardkit/card/optcode"
	"github.com/joshuapare/cardkit/internal/cardtext"
	"github.com/joshuapare/cardkit/internal/logger"
	"github.com/joshuapare/cardkit/internal/mmfile"
	"github.com/joshuapare/cardkit/internal/report"
)

// Keyword tables the scanner needs.
const (
	cardsTable = "cards"
	unitsTable = "units"
)

func init() {
	rootCmd.AddCommand(newScanCmd())
}

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <deck>",
		Short: "Read a control deck and report every problem found",
		Long: `The scan command reads a control deck card by card. Each card starts with a
keyword from the "cards" table, which may be abbreviated. Lines starting with
'*' and blank lines are skipped.

  TITLE    free text
  OPTIONS  set=CODES set+=CODES set-=CODES ...
  OUTPUT = unit
  RUN = value unit
  END      stops the scan

Any other card has its fields recorded. Problems are listed on stderr and the
command exits 1 when there were any.

Example:
  cardctl scan model.deck
  cardctl scan model.deck --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(args)
		},
	}
}

// scanSummary is what a scan found.
type scanSummary struct {
	Deck        string            `json:"deck"`
	Mapped      bool              `json:"mapped"`
	Cards       int               `json:"cards"`
	Keywords    map[string]int    `json:"keywords"`
	Names       int               `json:"names"`
	Title       string            `json:"title,omitempty"`
	Output      string            `json:"output,omitempty"`
	Options     map[string]string `json:"options"`
	Runs        []string          `json:"runs,omitempty"`
	Diagnostics []string          `json:"diagnostics,omitempty"`
}

// deckScanner holds the per-run state of a scan.
type deckScanner struct {
	log   *report.Log
	match *keymatch.Matcher
	names *namecache.Cache
	f     *numfmt.Formatter
	spec  numfmt.Spec
	field []byte

	cards []string
	units []string
	sets  []string

	alphabets map[string]optcode.Alphabet
	words     map[string]uint32

	sum scanSummary
}

func newDeckScanner(log *report.Log) (*deckScanner, error) {
	cards, err := cfg.Table(cardsTable)
	if err != nil {
		return nil, err
	}
	units, err := cfg.Table(unitsTable)
	if err != nil {
		return nil, err
	}
	spec, err := cfg.Format.Spec()
	if err != nil {
		return nil, err
	}

	ds := &deckScanner{
		log:       log,
		match:     keymatch.New(log),
		names:     namecache.New(0, 0),
		f:         fixpt.New(cfg.Format.MinExpDigits).Formatter(),
		spec:      spec,
		field:     make([]byte, spec.Width()),
		cards:     cards,
		units:     units,
		sets:      slices.Sorted(maps.Keys(cfg.Options)),
		alphabets: make(map[string]optcode.Alphabet, len(cfg.Options)),
		words:     make(map[string]uint32, len(cfg.Options)),
		sum: scanSummary{
			Keywords: make(map[string]int),
			Options:  make(map[string]string),
		},
	}
	for _, name := range ds.sets {
		a, err := cfg.Alphabet(name)
		if err != nil {
			return nil, err
		}
		ds.alphabets[name] = a
	}
	return ds, nil
}

func runScan(args []string) error {
	path := args[0]
	m, err := mmfile.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open deck: %w", err)
	}
	mapped := m.Mapped()
	deck, err := cardtext.ParseDeck(m.Data)
	if cerr := m.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to read deck: %w", err)
	}

	log := newReport()
	ds, err := newDeckScanner(log)
	if err != nil {
		return err
	}
	ds.sum.Deck = path
	ds.sum.Mapped = mapped

	printVerbose("Scanning %s (%d cards)\n", path, deck.Len())
	logger.L.Info("scan started", zap.String("deck", path), zap.Int("cards", deck.Len()))

	for i, card := range deck.Cards() {
		if !ds.scanCard(card) {
			if rest := deck.Len() - i - 1; rest > 0 {
				printVerbose("Ignoring %d cards after END\n", rest)
			}
			break
		}
	}
	sum := ds.finish()

	logger.L.Info("scan finished",
		zap.Int("cards", sum.Cards),
		zap.Int("names", sum.Names),
		zap.Int("diagnostics", len(sum.Diagnostics)))

	if jsonOut {
		if err := printJSON(sum); err != nil {
			return err
		}
	} else {
		printScanSummary(sum)
	}
	if log.HadErrors() {
		printDiagnostics(log)
		return errHadErrors
	}
	return nil
}

// scanCard handles one card and reports false at END.
func (ds *deckScanner) scanCard(card *cardtext.Card) bool {
	ds.log.SetLine(card.Line)
	ds.sum.Cards++

	r := ds.match.Match(card, keymatch.Request{Mandatory: true, Policy: keymatch.Whitespace}, ds.cards)
	if r.Status != keymatch.Matched {
		return true
	}
	kw := ds.cards[r.Index-1]
	ds.sum.Keywords[kw]++
	ds.names.Intern(kw)

	switch kw {
	case "END":
		return false
	case "TITLE":
		if ds.sum.Title = strings.TrimSpace(card.Rest()); ds.sum.Title != "" {
			ds.names.Intern(ds.sum.Title)
		}
	case "OPTIONS":
		ds.scanOptions(card)
	case "OUTPUT":
		u := ds.match.Match(card, keymatch.Request{
			RequireEquals: true,
			Mandatory:     true,
			Policy:        keymatch.Whitespace,
		}, ds.units)
		if u.Status == keymatch.Matched {
			ds.sum.Output = ds.units[u.Index-1]
		}
	case "RUN":
		ds.scanRun(card)
	default:
		ds.scanFields(card)
	}
	return true
}

// optionNameMask rejects an option-set name not followed by an equals sign.
const optionNameMask = keymatch.PunctBlank | keymatch.PunctComma | keymatch.PunctEnd |
	keymatch.PunctOpenParen | keymatch.PunctCloseParen | keymatch.PunctColon

func (ds *deckScanner) scanOptions(card *cardtext.Card) {
	for {
		r := ds.match.Match(card, keymatch.Request{
			Policy: keymatch.Whitespace,
			Mask:   optionNameMask,
		}, ds.sets)
		if r.Status != keymatch.Matched {
			return
		}
		name := ds.sets[r.Index-1]

		f, err := card.Next(keymatch.Whitespace)
		if errors.Is(err, io.EOF) {
			ds.log.Report(keymatch.Diagnostic{Code: keymatch.MissingField})
			return
		}
		if err != nil {
			ds.log.Record(report.CodeScan, err.Error())
			return
		}

		codes := f.Text
		switch r.Field.Punct {
		case keymatch.PunctPlusEquals:
			codes = "+" + codes
		case keymatch.PunctMinusEquals:
			codes = "-" + codes
		}
		sel, err := ds.alphabets[name].Encode(codes)
		if !ds.checkEncode(name, err) {
			continue
		}

		word := ds.words[name]
		if err := optcode.Apply(sel, &word); err != nil {
			ds.log.Record(report.CodeOptionCodes, fmt.Sprintf("option set %s: %v", name, err))
			continue
		}
		ds.words[name] = word
		logger.L.Debug("options applied",
			zap.String("set", name),
			zap.String("codes", codes),
			zap.Uint32("word", word))
	}
}

// checkEncode records an Encode error. It reports false when the selection
// must not be applied.
func (ds *deckScanner) checkEncode(set string, err error) bool {
	if err := ds.log.Check(err); err != nil {
		ds.log.Record(report.CodeScan, fmt.Sprintf("option set %s: %v", set, err))
		return false
	}
	return true
}

func (ds *deckScanner) scanRun(card *cardtext.Card) {
	if card.Introducer()&keymatch.PunctAnyEquals == 0 {
		ds.log.Report(keymatch.Diagnostic{Code: keymatch.MissingEquals})
	}
	f, err := card.Next(keymatch.Whitespace)
	if errors.Is(err, io.EOF) {
		ds.log.Report(keymatch.Diagnostic{Code: keymatch.MissingField})
		return
	}
	if err != nil {
		ds.log.Record(report.CodeScan, err.Error())
		return
	}
	v, err := strconv.ParseFloat(f.Text, 64)
	if err != nil {
		ds.log.Record(report.CodeScan, fmt.Sprintf("invalid number %q", f.Text))
		return
	}

	res, err := ds.f.Format(ds.field, ds.spec, v)
	if err != nil {
		ds.log.Record(report.CodeScan, err.Error())
		return
	}
	if res.Overflow {
		ds.log.Overflow(ds.spec.String(), v)
	}

	u := ds.match.Match(card, keymatch.Request{Mandatory: true, Policy: keymatch.Whitespace}, ds.units)
	if u.Status != keymatch.Matched {
		return
	}
	ds.sum.Runs = append(ds.sum.Runs, fmt.Sprintf("[%s] %s", ds.field, ds.units[u.Index-1]))
}

func (ds *deckScanner) scanFields(card *cardtext.Card) {
	fields, err := card.Fields(keymatch.Whitespace)
	if err != nil {
		ds.log.Record(report.CodeScan, err.Error())
	}
	for _, f := range fields {
		if f.Text != "" {
			ds.names.Intern(f.Text)
		}
	}
}

func (ds *deckScanner) finish() scanSummary {
	for _, name := range ds.sets {
		ds.sum.Options[name] = optcode.Decode(ds.alphabets[name], ds.words[name], 0)
	}
	ds.sum.Names = ds.names.Len()
	for _, e := range ds.log.Entries() {
		ds.sum.Diagnostics = append(ds.sum.Diagnostics, e.String())
	}

	st := ds.names.Stats()
	printVerbose("Names: %d entries, %d arena bytes, %d header growths\n",
		st.Entries, st.ArenaBytes, st.HeaderGrowths)
	return ds.sum
}

func printScanSummary(sum scanSummary) {
	printInfo("Deck: %s\n", sum.Deck)
	printInfo("Cards: %d\n", sum.Cards)
	if sum.Title != "" {
		printInfo("Title: %s\n", sum.Title)
	}
	for _, kw := range slices.Sorted(maps.Keys(sum.Keywords)) {
		printVerbose("  %-10s %d\n", kw, sum.Keywords[kw])
	}
	printInfo("Names: %d\n", sum.Names)
	if sum.Output != "" {
		printInfo("Output: %s\n", sum.Output)
	}
	for _, name := range slices.Sorted(maps.Keys(sum.Options)) {
		printInfo("Options %s: %q\n", name, sum.Options[name])
	}
	for _, run := range sum.Runs {
		printInfo("Run: %s\n", run)
	}
}
