package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/triplegen/internal/triples"
)

// ColorProvider supplies the escape codes used to highlight status lines.
// It lives here so that this package does not import cli.
type ColorProvider interface {
	Yellow() string
	Reset() string
}

type noColors struct{}

func (noColors) Yellow() string { return "" }
func (noColors) Reset() string  { return "" }

// ExitCode maps a search failure to the process exit code.
func ExitCode(err error) int {
	var cfg ConfigError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.Is(err, triples.ErrInvalidBound),
		errors.Is(err, triples.ErrInvalidPredicate),
		errors.As(err, &cfg):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}

// HandleSearchError writes the status line for err to out and returns its
// exit code. A positive elapsed time is appended to the line. colors may be
// nil.
func HandleSearchError(err error, elapsed time.Duration, out io.Writer, colors ColorProvider) int {
	code := ExitCode(err)
	if code == ExitSuccess {
		return code
	}
	if colors == nil {
		colors = noColors{}
	}
	var after string
	if elapsed > 0 {
		after = fmt.Sprintf(" after %s%s%s", colors.Yellow(), elapsed, colors.Reset())
	}

	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit was reached%s.\n", after)
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sStatus: Canceled%s.%s\n", colors.Yellow(), after, colors.Reset())
	case ExitErrorConfig:
		fmt.Fprintf(out, "Status: Failure. Invalid search parameters: %v\n", err)
	default:
		fmt.Fprintf(out, "Status: Failure. An unexpected error occurred: %v\n", err)
	}
	return code
}
