package server

import "github.com/agbru/triplegen/internal/filters"

// Response is the JSON body of a /triples request.
type Response struct {
	Bound  int64  `json:"bound"`
	Filter string `json:"filter"`
	Arg    int64  `json:"arg,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	// Count is len(Solutions).
	Count     int                `json:"count"`
	Solutions []filters.Solution `json:"solutions"`
	// Extracted counts the triples the search pulled from the generator.
	Extracted uint64 `json:"extracted"`
	// Exhausted is false when the search stopped at its limit or timed out.
	Exhausted bool `json:"exhausted"`
	// Duration is the formatted search time.
	Duration string `json:"duration"`
	// Error is set when the search did not complete; Solutions then holds
	// what was found before it stopped.
	Error string `json:"error,omitempty"`
}

// ErrorResponse represents the standardized JSON response for an API error.
type ErrorResponse struct {
	// Error is the short error code or status text.
	Error string `json:"error"`
	// Message is a descriptive error message.
	Message string `json:"message,omitempty"`
}

// ParamError is a query parameter error carrying its HTTP status.
type ParamError struct {
	Message    string
	StatusCode int
}

// Error implements the error interface.
func (e ParamError) Error() string {
	return e.Message
}
