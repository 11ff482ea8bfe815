package errutil

import (
	"errors"
	"log/slog"
	"strings"
)

// LogMsg logs the error with a custom message if it is not nil.
func LogMsg(err error, msg string, args ...any) {
	if err != nil {
		allArgs := append([]any{"error", err}, args...)
		slog.Warn(msg, allArgs...)
	}
}

// ReportError logs an unexpected error.
// It funnels errors through a centralized reporting mechanism (currently slog).
func ReportError(err error, msg string, args ...any) {
	if err != nil {
		allArgs := append([]any{"error", err}, args...)
		slog.Error(msg, allArgs...)
	}
}

// Causes splits a wrapped error into one line per layer, outermost first.
//
// A layer created with fmt.Errorf("context: %w", inner) yields "context";
// the innermost error yields its full message. Errors joined with several
// causes are reported as a single line.
func Causes(err error) []string {
	var lines []string
	for err != nil {
		msg := err.Error()
		inner := errors.Unwrap(err)
		if inner == nil {
			lines = append(lines, msg)
			break
		}

		if ctx, ok := strings.CutSuffix(msg, ": "+inner.Error()); ok && ctx != "" {
			lines = append(lines, ctx)
		} else if msg != inner.Error() {
			lines = append(lines, msg)
			break
		}
		err = inner
	}
	return lines
}
