// Package config turns command-line flags and TRIPLEGEN_* environment
// variables into a validated AppConfig.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/triplegen/internal/errors"
	"github.com/agbru/triplegen/internal/logging"
	"github.com/agbru/triplegen/internal/triples"
)

// EnvPrefix starts every environment variable read by ParseConfig.
const EnvPrefix = "TRIPLEGEN_"

const (
	DefaultBound    int64 = 1000
	DefaultMaxBound int64 = 50_000_000
	DefaultTimeout        = time.Minute
	DefaultPort           = "8080"
	DefaultFilter         = "all"
	DefaultLogLevel       = "info"
)

// AppConfig is one invocation's worth of settings.
type AppConfig struct {
	Bound   int64    // largest hypotenuse to enumerate
	Filters []string // one search per filter, in order
	Arg     int64    // passed to every filter
	Limit   int      // solutions per search, 0 for no limit
	Timeout time.Duration

	JSONOutput bool
	Quiet      bool // no spinner, banners or tables: one solution per line
	Verbose    bool // list every solution, not a preview
	NoColor    bool // NO_COLOR is honored separately by ui.InitTheme
	OutputFile string
	LogLevel   string

	ServerMode bool
	Port       string
	MaxBound   int64 // cap on Bound, for the CLI and for HTTP requests
}

// Validate reports the first inconsistent setting as a ConfigError.
// availableFilters is the list of filter names the search service accepts.
func (c AppConfig) Validate(availableFilters []string) error {
	switch {
	case c.Timeout <= 0:
		return apperrors.NewConfigError("timeout value must be strictly positive")
	case c.MaxBound < triples.MinBound || c.MaxBound > triples.MaxBound:
		return apperrors.NewConfigError("max bound must be between %d and %d: %d", triples.MinBound, triples.MaxBound, c.MaxBound)
	case c.Bound < triples.MinBound:
		return apperrors.NewConfigError("bound must be at least %d: %d", triples.MinBound, c.Bound)
	case c.Bound > c.MaxBound:
		return apperrors.NewConfigError("bound %d exceeds the maximum %d", c.Bound, c.MaxBound)
	case c.Limit < 0:
		return apperrors.NewConfigError("limit cannot be negative: %d", c.Limit)
	case len(c.Filters) == 0:
		return apperrors.NewConfigError("at least one filter is required")
	}
	if i := slices.IndexFunc(c.Filters, func(f string) bool { return !slices.Contains(availableFilters, f) }); i >= 0 {
		return apperrors.NewConfigError("unrecognized filter: '%s'. Valid filters are: [%s]", c.Filters[i], strings.Join(availableFilters, ", "))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	return nil
}

// ParseConfig parses args (without the program name), applies environment
// overrides to the flags args did not set, and validates the result.
// Problems are reported on stderr together with the usage text. A -h or
// -help request returns flag.ErrHelp.
func ParseConfig(programName string, args []string, stderr io.Writer, availableFilters []string) (AppConfig, error) {
	var (
		c       AppConfig
		filters string
	)
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.Int64Var(&c.Bound, "bound", DefaultBound, "Largest hypotenuse to enumerate.")
	fs.Int64Var(&c.Bound, "b", DefaultBound, "")
	fs.StringVar(&filters, "filter", DefaultFilter,
		fmt.Sprintf("Comma-separated filters to run, one search each. Available: [%s].", strings.Join(availableFilters, ", ")))
	fs.Int64Var(&c.Arg, "arg", 0, "Argument passed to the filters (perimeter, leg, ...).")
	fs.IntVar(&c.Limit, "limit", 0, "Maximum number of solutions per search (0 for all).")
	fs.DurationVar(&c.Timeout, "timeout", DefaultTimeout, "Give up on the searches after this long.")
	fs.Int64Var(&c.MaxBound, "max-bound", DefaultMaxBound, "Largest bound a search may request.")

	fs.BoolVar(&c.JSONOutput, "json", false, "Print the results as JSON.")
	fs.BoolVar(&c.Quiet, "quiet", false, "Print only the solutions, one per line.")
	fs.BoolVar(&c.Quiet, "q", false, "")
	fs.BoolVar(&c.Verbose, "v", false, "List every solution instead of the first few.")
	fs.BoolVar(&c.NoColor, "no-color", false, "Disable colors (NO_COLOR works too).")
	fs.StringVar(&c.OutputFile, "output", "", "Also write the results to this file (.json for JSON).")
	fs.StringVar(&c.OutputFile, "o", "", "")
	fs.StringVar(&c.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error.")

	fs.BoolVar(&c.ServerMode, "server", false, "Serve the HTTP API instead of searching.")
	fs.StringVar(&c.Port, "port", DefaultPort, "Port of the HTTP API.")

	setCustomUsage(fs)
	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	if err := applyEnvOverrides(fs); err != nil {
		fmt.Fprintln(stderr, "Configuration error:", err)
		return AppConfig{}, err
	}
	c.Filters = SplitFilters(filters)
	if err := c.Validate(availableFilters); err != nil {
		fmt.Fprintln(stderr, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return c, nil
}

// SplitFilters turns a comma-separated list into lower-case filter names,
// dropping blanks and duplicates while keeping the first-seen order.
func SplitFilters(list string) []string {
	var out []string
	for _, name := range strings.Split(list, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" && !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}
