package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joshuapare/cardkit/internal/logger"
)

var encodeWord string

func init() {
	cmd := newEncodeCmd()
	cmd.Flags().StringVar(&codesKeys, "keys", "", "Literal alphabet instead of a configured one")
	cmd.Flags().IntVar(&codesWidth, "width", 32, "Target word width in bits (8, 16 or 32)")
	cmd.Flags().StringVar(&encodeWord, "word", "0", "Initial value of the target word")
	rootCmd.AddCommand(cmd)
}

func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <alphabet> <codes>",
		Short: "Convert option codes to a flag word",
		Long: `The encode command converts an option string into a selection and applies
it to a flag word. A leading '+' adds the bits, a leading '-' clears them and
"0" clears the whole word.

Example:
  cardctl encode output ACD
  cardctl encode output +N --word 0x5
  cardctl encode x --keys ABC -- -B --word 7`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(args)
		},
	}
}

// encodeResult is the JSON form of an encode.
type encodeResult struct {
	Alphabet string `json:"alphabet"`
	Codes    string `json:"codes"`
	Policy   string `json:"policy"`
	Bits     string `json:"bits"`
	Word     string `json:"word"`
	Decoded  string `json:"decoded"`
}

func runEncode(args []string) error {
	a, err := resolveAlphabet(args[0])
	if err != nil {
		return err
	}
	word, err := parseWord(encodeWord)
	if err != nil {
		return err
	}

	log := newReport()
	sel, err := a.Encode(args[1])
	if err := log.Check(err); err != nil {
		return err
	}
	word, err = applyWidth(sel, word)
	if err != nil {
		return err
	}
	decoded, err := decodeWidth(a, word, 0)
	if err != nil {
		return err
	}
	logger.L.Debug("encoded",
		zap.String("codes", args[1]),
		zap.Stringer("policy", sel.Policy),
		zap.Uint32("word", word))

	res := encodeResult{
		Alphabet: a.Keys(),
		Codes:    args[1],
		Policy:   sel.Policy.String(),
		Bits:     formatWord(sel.Bits),
		Word:     formatWord(word),
		Decoded:  decoded,
	}
	if jsonOut {
		if err := printJSON(res); err != nil {
			return err
		}
	} else {
		printVerbose("Alphabet: %s\n", res.Alphabet)
		printInfo("policy=%s bits=%s word=%s codes=%q\n", res.Policy, res.Bits, res.Word, res.Decoded)
	}

	if log.HadErrors() {
		printDiagnostics(log)
		return errHadErrors
	}
	return nil
}
