// Package apperrors holds the error classes the triplegen command reports
// (configuration, search and server failures) and the exit codes they map to.
package apperrors

import "fmt"

// Process exit codes.
const (
	ExitSuccess         = 0
	ExitErrorGeneric    = 1
	ExitErrorTimeout    = 2
	ExitErrorNoSolution = 3 // every search finished without a solution
	ExitErrorConfig     = 4
	ExitErrorCanceled   = 130 // 128 + SIGINT
)

// ConfigError reports a flag or environment value that cannot be used.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError formats a ConfigError.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// SearchError attaches the name of the filter that was running to the
// failure of a search.
type SearchError struct {
	Filter string
	Cause  error
}

func (e SearchError) Error() string {
	if e.Filter == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("search %q: %v", e.Filter, e.Cause)
}

func (e SearchError) Unwrap() error { return e.Cause }

// NewSearchError returns nil for a nil cause so that it can wrap the result
// of a call unconditionally.
func NewSearchError(filter string, cause error) error {
	if cause == nil {
		return nil
	}
	return SearchError{Filter: filter, Cause: cause}
}

// ServerError is returned by the HTTP server when it cannot start or stop
// cleanly. Cause may be nil.
type ServerError struct {
	Message string
	Cause   error
}

func (e ServerError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError builds a ServerError.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}
