package main

import (
	"github.com/spf13/cobra"
)

var decodePad int

func init() {
	cmd := newDecodeCmd()
	cmd.Flags().StringVar(&codesKeys, "keys", "", "Literal alphabet instead of a configured one")
	cmd.Flags().IntVar(&codesWidth, "width", 32, "Word width in bits (8, 16 or 32)")
	cmd.Flags().IntVar(&decodePad, "pad", 0, "Blank-pad or truncate the result to this many characters")
	rootCmd.AddCommand(cmd)
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <alphabet> <word>",
		Short: "Convert a flag word to option codes",
		Long: `The decode command prints the option codes whose bits are set in a word.
Codes are listed in character order, not alphabet order.

Example:
  cardctl decode output 0x2a
  cardctl decode x --keys ABC 5 --pad 4`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(args)
		},
	}
}

func runDecode(args []string) error {
	a, err := resolveAlphabet(args[0])
	if err != nil {
		return err
	}
	word, err := parseWord(args[1])
	if err != nil {
		return err
	}
	codes, err := decodeWidth(a, word, decodePad)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]string{
			"alphabet": a.Keys(),
			"word":     formatWord(word),
			"codes":    codes,
		})
	}
	printVerbose("Alphabet: %s\n", a.Keys())
	printInfo("%q\n", codes)
	return nil
}
