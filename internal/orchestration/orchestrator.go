// Package orchestration runs several triple searches concurrently and
// reports on their outcome.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"sync"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/triplegen/internal/cli"
	"github.com/agbru/triplegen/internal/config"
	apperrors "github.com/agbru/triplegen/internal/errors"
	"github.com/agbru/triplegen/internal/service"
	"github.com/agbru/triplegen/internal/triples"
	"github.com/agbru/triplegen/internal/ui"
)

// SearchResult is the outcome of one search of a run. Result holds whatever
// was found before Err, if any.
type SearchResult struct {
	service.Result
	// Err is the error that ended the search early, nil on success.
	Err error
}

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. Generators drop intermediate events when the buffer is full, so a
// larger buffer only smooths the display.
const ProgressBufferMultiplier = 5

// ExecuteSearches runs every request concurrently, one goroutine and one
// generator per request, and returns the results in request order.
//
// Each generator reports to a shared progress channel consumed by
// cli.DisplayProgress, tagged with the request's index. Extra observers
// (metrics, logging) are attached to every generator.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - svc: The service running the searches.
//   - reqs: The searches to run.
//   - out: The io.Writer for displaying progress.
//   - observers: Additional observers attached to every generator.
//
// Returns:
//   - []SearchResult: One result per request.
func ExecuteSearches(ctx context.Context, svc service.Service, reqs []service.Request, out io.Writer, observers ...triples.ProgressObserver) []SearchResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]SearchResult, len(reqs))
	progressChan := make(chan triples.ProgressEvent, len(reqs)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go cli.DisplayProgress(&displayWg, progressChan, len(reqs), out)

	progress := triples.NewChannelObserver(progressChan)
	for i, req := range reqs {
		opts := []triples.Option{triples.WithIndex(i), triples.WithObserver(progress)}
		for _, o := range observers {
			opts = append(opts, triples.WithObserver(o))
		}
		g.Go(func() error {
			res, err := svc.Search(ctx, req, opts...)
			results[i] = SearchResult{Result: res, Err: apperrors.NewSearchError(res.Request.Filter, err)}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeResults prints a summary of the run, then the solutions of every
// successful search, and returns the exit code of the run.
//
// The run fails with the first search error, if any. Otherwise it fails with
// ExitErrorNoSolution when no search produced a solution.
//
// Parameters:
//   - results: The results of ExecuteSearches.
//   - cfg: The application configuration.
//   - out: The io.Writer for the report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeResults(results []SearchResult, cfg config.AppConfig, out io.Writer) int {
	var firstError error
	var succeeded []service.Result
	total := 0

	if !cfg.Quiet {
		fmt.Fprintf(out, "\n--- Search Summary ---\n")
	}
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	if !cfg.Quiet {
		fmt.Fprintf(tw, "%sFilter%s\t%sSolutions%s\t%sExtracted%s\t%sDuration%s\t%sStatus%s\n",
			ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(),
			ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(),
			ui.ColorUnderline(), ui.ColorReset())
	}

	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
			if firstError == nil {
				firstError = res.Err
			}
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
			succeeded = append(succeeded, res.Result)
			total += len(res.Solutions)
		}
		if !cfg.Quiet {
			fmt.Fprintf(tw, "%s%s%s\t%d\t%d\t%s%s%s\t%s\n",
				ui.ColorBlue(), res.Request.Filter, ui.ColorReset(),
				len(res.Solutions), res.Extracted,
				ui.ColorYellow(), cli.FormatExecutionDuration(res.Duration), ui.ColorReset(),
				status)
		}
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}

	outputCfg := cli.OutputConfig{OutputFile: cfg.OutputFile, Quiet: cfg.Quiet, Verbose: cfg.Verbose}
	if err := cli.DisplayResultsWithConfig(out, succeeded, outputCfg); err != nil {
		fmt.Fprintf(out, "%sError writing output file: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return apperrors.ExitErrorGeneric
	}

	if firstError != nil {
		if !cfg.Quiet {
			fmt.Fprintf(out, "\nGlobal Status: Failure. %d of %d searches did not complete.\n", len(results)-len(succeeded), len(results))
		}
		return apperrors.HandleSearchError(firstError, 0, out, cli.CLIColorProvider{})
	}
	if total == 0 {
		if !cfg.Quiet {
			fmt.Fprintf(out, "\nGlobal Status: No solution. No search found a matching triple.\n")
		}
		return apperrors.ExitErrorNoSolution
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "\nGlobal Status: Success. %d solutions found.\n", total)
	}
	return apperrors.ExitSuccess
}
