package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/triplegen/internal/config"
	"github.com/agbru/triplegen/internal/service"
	"github.com/agbru/triplegen/internal/ui"
)

// RequestsFromConfig builds one search request per configured filter, all
// sharing the bound, argument and limit.
//
// Parameters:
//   - cfg: The application configuration.
//
// Returns:
//   - []service.Request: The searches to run, in the order the filters were given.
func RequestsFromConfig(cfg config.AppConfig) []service.Request {
	reqs := make([]service.Request, 0, len(cfg.Filters))
	for _, f := range cfg.Filters {
		reqs = append(reqs, service.Request{
			Bound:  cfg.Bound,
			Filter: f,
			Arg:    cfg.Arg,
			Limit:  cfg.Limit,
		})
	}
	return reqs
}

// PrintExecutionConfig displays the bound, filter argument, limit and
// timeout of the run, along with the environment.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	limit := "none"
	if cfg.Limit > 0 {
		limit = fmt.Sprintf("%d per search", cfg.Limit)
	}
	writeOut(out, "--- Execution Configuration ---\n")
	writeOut(out, "Enumerating primitive triples with %sc <= %s%s (filter argument %s%d%s, limit %s) with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), formatNumber(cfg.Bound), ui.ColorReset(),
		ui.ColorCyan(), cfg.Arg, ui.ColorReset(), limit,
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	writeOut(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode displays whether a single search or several concurrent
// searches will run.
//
// Parameters:
//   - reqs: The searches that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(reqs []service.Request, out io.Writer) {
	var modeDesc string
	switch len(reqs) {
	case 0:
		modeDesc = "Nothing to run"
	case 1:
		modeDesc = fmt.Sprintf("Single search with the %s%s%s filter", ui.ColorGreen(), reqs[0].Filter, ui.ColorReset())
	default:
		names := make([]string, len(reqs))
		for i, r := range reqs {
			names[i] = r.Filter
		}
		modeDesc = fmt.Sprintf("Concurrent searches with the %s%s%s filters",
			ui.ColorGreen(), strings.Join(names, ", "), ui.ColorReset())
	}
	writeOut(out, "Execution mode: %s.\n", modeDesc)
	writeOut(out, "\n--- Starting Execution ---\n")
}

// writeOut writes a formatted string to the output writer.
func writeOut(out io.Writer, format string, a ...any) {
	fmt.Fprintf(out, format, a...)
}
