package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/cardkit/card/keymatch"
	"github.com/joshuapare/cardkit/internal/cardtext"
)

var (
	matchPolicy string
	matchExact  bool
)

func init() {
	cmd := newMatchCmd()
	cmd.Flags().StringVar(&matchPolicy, "policy", "whitespace", "Field policy: whitespace, comma, paren or equals")
	cmd.Flags().BoolVar(&matchExact, "exact", false, "Require the whole keyword instead of a unique prefix")
	rootCmd.AddCommand(cmd)
}

func newMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <table> <text>",
		Short: "Resolve the first field of text against a keyword table",
		Long: `The match command reads the first field of text and resolves it against a
configured keyword table. Keywords may be abbreviated to any unique prefix.

Example:
  cardctl match cards "NET 1 2"
  cardctl match units milli
  cardctl match units SECONDS --exact`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(args)
		},
	}
}

// matchResult is the JSON form of a match.
type matchResult struct {
	Field   string `json:"field"`
	Punct   string `json:"punct"`
	Status  string `json:"status"`
	Index   int    `json:"index,omitempty"`
	Keyword string `json:"keyword,omitempty"`
}

func parsePolicy(s string) (keymatch.Policy, error) {
	for _, p := range []keymatch.Policy{
		keymatch.Whitespace, keymatch.Comma, keymatch.Paren, keymatch.Equals,
	} {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown policy %q", s)
}

func runMatch(args []string) error {
	table, err := cfg.Table(args[0])
	if err != nil {
		return err
	}
	policy, err := parsePolicy(matchPolicy)
	if err != nil {
		return err
	}

	log := newReport()
	var opts []keymatch.Option
	if matchExact {
		opts = append(opts, keymatch.WithKeywordMatcher(keymatch.Exact))
	}
	m := keymatch.New(log, opts...)

	card := cardtext.NewCard(1, args[1])
	r := m.Match(card, keymatch.Request{Mandatory: true, Policy: policy}, table)

	res := matchResult{
		Field:  r.Field.Text,
		Punct:  r.Field.Punct.String(),
		Status: r.Status.String(),
	}
	if r.Status == keymatch.Matched {
		res.Index = r.Index
		res.Keyword = table[r.Index-1]
	}

	if jsonOut {
		if err := printJSON(res); err != nil {
			return err
		}
	} else if r.Status == keymatch.Matched {
		printVerbose("Field: %q (%s)\n", res.Field, res.Punct)
		printInfo("%d %s\n", res.Index, res.Keyword)
	}

	if log.HadErrors() {
		printDiagnostics(log)
		return errHadErrors
	}
	return nil
}
