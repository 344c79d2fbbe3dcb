// Package report collects input diagnostics for one run. Each entry is
// logged at Warn and recorded; HadErrors tells the caller to exit non-zero
// once processing finishes.
package report

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/joshuapare/cardkit/card/keymatch"
	"github.com/joshuapare/cardkit/card/optcode"
)

// Codes recorded besides the keymatch diagnostic codes.
const (
	CodeOptionCodes = "option-codes"
	CodeOverflow    = "overflow"
	CodeScan        = "scan"
)

// Entry is one recorded diagnostic. Line is 0 when no card was current.
type Entry struct {
	Code    string
	Line    int
	Message string
}

func (e Entry) String() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Log records diagnostics. It implements keymatch.Reporter.
type Log struct {
	logger    *zap.Logger
	entries   []Entry
	line      int
	hadErrors bool
}

var _ keymatch.Reporter = (*Log)(nil)

// New returns a Log that mirrors entries to l. A nil l logs nothing.
func New(l *zap.Logger) *Log {
	if l == nil {
		l = zap.NewNop()
	}
	return &Log{logger: l}
}

// SetLine sets the card line attached to following entries.
func (l *Log) SetLine(n int) { l.line = n }

// Report records a Matcher diagnostic.
func (l *Log) Report(d keymatch.Diagnostic) {
	l.add(d.Code.String(), d.Message())
}

// Record records a diagnostic with a free-form code.
func (l *Log) Record(code, msg string) {
	l.add(code, msg)
}

// Check records err if it is an input-data error and returns nil in that
// case; any other error is returned unchanged.
func (l *Log) Check(err error) error {
	if err == nil {
		return nil
	}
	var ue *optcode.UnrecognizedError
	if errors.As(err, &ue) {
		l.add(CodeOptionCodes, ue.Error())
		return nil
	}
	return err
}

// Overflow records a value that did not fit its field.
func (l *Log) Overflow(spec string, v float64) {
	l.add(CodeOverflow, fmt.Sprintf("value %g does not fit field %s", v, spec))
}

// HadErrors reports whether anything was recorded.
func (l *Log) HadErrors() bool { return l.hadErrors }

// Entries returns the recorded diagnostics in order.
func (l *Log) Entries() []Entry { return l.entries }

// WriteTo writes one line per entry.
func (l *Log) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, e := range l.entries {
		n, err := fmt.Fprintln(w, e.String())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (l *Log) add(code, msg string) {
	e := Entry{Code: code, Line: l.line, Message: msg}
	l.entries = append(l.entries, e)
	l.hadErrors = true
	l.logger.Warn(msg, zap.String("code", code), zap.Int("line", e.Line))
}
