package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joshuapare/cardkit/card/fixpt"
	"github.com/joshuapare/cardkit/card/numfmt"
	"github.com/joshuapare/cardkit/internal/logger"
)

var (
	fmtWidth    int
	fmtDecimals int
	fmtFlags    []string
	fmtSpec     string
	fmtScale    int
	fmtInt      bool
)

func init() {
	cmd := newFmtCmd()
	cmd.Flags().IntVarP(&fmtWidth, "width", "w", 0, "Field width (default from config)")
	cmd.Flags().IntVarP(&fmtDecimals, "decimals", "d", -1, "Decimal digits (default from config)")
	cmd.Flags().StringSliceVarP(&fmtFlags, "flags", "f", nil,
		"Presentation flags: auto,uflow,sci,left,zero,plus,blank,single,hex,octal")
	cmd.Flags().StringVar(&fmtSpec, "spec", "", "Packed spec integer, e.g. 0x10c (overrides other flags)")
	cmd.Flags().BoolVar(&fmtInt, "int", false, "Treat values as scaled fixed-point integers")
	cmd.Flags().IntVar(&fmtScale, "scale", 0, "Binary scale for --int values")
	rootCmd.AddCommand(cmd)
}

func newFmtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt <value>...",
		Short: "Render numbers into fixed-width fields",
		Long: `The fmt command renders each value with a conversion spec and shows the
field between brackets together with its content length and notation.

Example:
  cardctl fmt 3.14159 -w 8 -d 3
  cardctl fmt 1e-9 --flags sci,plus
  cardctl fmt 1.0 --flags hex -w 16
  cardctl fmt --int --scale 4 40`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(args)
		},
	}
}

// fmtResult is one rendered field in JSON output.
type fmtResult struct {
	Value    string `json:"value"`
	Field    string `json:"field"`
	Len      int    `json:"len"`
	Mode     string `json:"mode"`
	Overflow bool   `json:"overflow,omitempty"`
}

// fmtSpecFromFlags resolves the spec from --spec, the field flags and the
// configured defaults, in that order.
func fmtSpecFromFlags() (numfmt.Spec, error) {
	if fmtSpec != "" {
		p, err := strconv.ParseUint(fmtSpec, 0, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid spec %q: %w", fmtSpec, err)
		}
		s := numfmt.Pack(uint32(p))
		return s, s.Validate()
	}

	fc := cfg.Format
	if fmtWidth != 0 {
		fc.Width = fmtWidth
	}
	if fmtDecimals >= 0 {
		fc.Decimals = fmtDecimals
	}
	if fmtFlags != nil {
		fc.Flags = fmtFlags
	}
	return fc.Spec()
}

func runFmt(args []string) error {
	s, err := fmtSpecFromFlags()
	if err != nil {
		return err
	}
	conv := fixpt.New(cfg.Format.MinExpDigits)
	f := conv.Formatter()
	log := newReport()

	printVerbose("Spec: %s (0x%x)\n", s, s.Packed())

	field := make([]byte, s.Width())
	results := make([]fmtResult, 0, len(args))
	for i, arg := range args {
		log.SetLine(i + 1)

		var (
			r      numfmt.Result
			fmtErr error
			v      float64
		)
		if fmtInt {
			n, perr := strconv.ParseInt(arg, 0, 64)
			if perr != nil {
				return fmt.Errorf("invalid integer %q: %w", arg, perr)
			}
			v = float64(n)
			r, fmtErr = conv.FormatInt(field, s, n, fmtScale)
		} else {
			var perr error
			v, perr = strconv.ParseFloat(arg, 64)
			if perr != nil && !isRangeErr(perr) {
				return fmt.Errorf("invalid value %q: %w", arg, perr)
			}
			r, fmtErr = f.Format(field, s, v)
		}
		if fmtErr != nil {
			return fmtErr
		}
		if r.Overflow {
			log.Overflow(s.String(), v)
		}
		logger.L.Debug("formatted",
			zap.String("value", arg),
			zap.String("mode", r.Mode.String()),
			zap.Int("len", r.Len))

		results = append(results, fmtResult{
			Value:    arg,
			Field:    string(field),
			Len:      r.Len,
			Mode:     r.Mode.String(),
			Overflow: r.Overflow,
		})
	}

	if jsonOut {
		return printJSON(results)
	}
	for _, res := range results {
		printInfo("[%s]  len=%d %s\n", res.Field, res.Len, res.Mode)
	}
	printDiagnostics(log)
	return nil
}

// isRangeErr accepts values like 1e999 which parse to an infinity.
func isRangeErr(err error) bool {
	return errors.Is(err, strconv.ErrRange)
}
