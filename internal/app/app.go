package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/agbru/triplegen/internal/cli"
	"github.com/agbru/triplegen/internal/config"
	apperrors "github.com/agbru/triplegen/internal/errors"
	"github.com/agbru/triplegen/internal/filters"
	"github.com/agbru/triplegen/internal/logging"
	"github.com/agbru/triplegen/internal/orchestration"
	"github.com/agbru/triplegen/internal/server"
	"github.com/agbru/triplegen/internal/service"
	"github.com/agbru/triplegen/internal/triples"
	"github.com/agbru/triplegen/internal/ui"
)

// progressLogStep is the progress change between two debug log lines.
const progressLogStep = 0.1

// Application is one triplegen invocation.
type Application struct {
	Config    config.AppConfig
	Factory   filters.Factory
	ErrWriter io.Writer // usage, errors and log records
}

// New parses os.Args-style args (program name first). Help requests come
// back as an error satisfying IsHelpError.
func New(args []string, errWriter io.Writer) (*Application, error) {
	name, rest := "triplegen", []string(nil)
	if len(args) > 0 {
		name, rest = args[0], args[1:]
	}
	factory := filters.GlobalFactory()
	cfg, err := config.ParseConfig(name, rest, errWriter, factory.List())
	if err != nil {
		return nil, err
	}
	return &Application{Config: cfg, Factory: factory, ErrWriter: errWriter}, nil
}

// Run serves the HTTP API or runs the searches, depending on the
// configuration, and returns the process exit code. SIGINT and SIGTERM
// cancel either mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor || !ui.IsTerminal(out))
	if a.Config.ServerMode {
		return a.runServer(ctx)
	}
	return a.runSearch(ctx, out, a.newLogger("triplegen"))
}

// newLogger builds a zerolog logger on ErrWriter at the configured level.
// The level was validated by config.ParseConfig; an invalid one falls back
// to info.
func (a *Application) newLogger(component string) *logging.ZerologAdapter {
	level, err := logging.ParseLevel(a.Config.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return logging.NewLogger(a.ErrWriter, component, level)
}

func (a *Application) runServer(ctx context.Context) int {
	ctx, stop := interruptContext(ctx, 0)
	defer stop()
	srv := server.NewServer(a.Factory, a.Config, server.WithLogger(a.newLogger("server")))
	if err := srv.Run(ctx); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runSearch runs one search per filter, concurrently, under the run
// timeout and reports on them.
func (a *Application) runSearch(ctx context.Context, out io.Writer, logger *logging.ZerologAdapter) int {
	ctx, stop := interruptContext(ctx, a.Config.Timeout)
	defer stop()

	svc := service.NewSearchService(a.Factory, a.Config.MaxBound)
	reqs := cli.RequestsFromConfig(a.Config)

	if !a.Config.JSONOutput && !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(reqs, out)
	}

	progressOut := out
	if a.Config.Quiet || a.Config.JSONOutput {
		progressOut = io.Discard // keep stdout parseable
	}

	logger.Debug("starting searches",
		logging.Int64("bound", a.Config.Bound),
		logging.Int("searches", len(reqs)))

	results := orchestration.ExecuteSearches(ctx, svc, reqs, progressOut,
		triples.NewLoggingObserver(logger.Zerolog(), progressLogStep))

	for _, res := range results {
		if res.Err != nil {
			logger.Error("search failed", res.Err, logging.String("filter", res.Request.Filter))
		}
	}

	if a.Config.JSONOutput {
		return printJSONResults(results, out)
	}
	return orchestration.AnalyzeResults(results, a.Config, out)
}

// IsHelpError reports whether err comes from -h or --help.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// jsonResult is one search of a run in JSON output.
type jsonResult struct {
	service.Result
	Error string `json:"error,omitempty"`
}

// printJSONResults writes the results as an indented JSON array. The exit
// code follows the same rules as the text report.
func printJSONResults(results []orchestration.SearchResult, out io.Writer) int {
	output := make([]jsonResult, len(results))
	var firstError error
	total := 0
	for i, res := range results {
		output[i] = jsonResult{Result: res.Result}
		if res.Err != nil {
			output[i].Error = res.Err.Error()
			if firstError == nil {
				firstError = res.Err
			}
			continue
		}
		total += len(res.Solutions)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		return apperrors.ExitErrorGeneric
	}

	switch {
	case firstError != nil:
		return apperrors.ExitCode(firstError)
	case total == 0:
		return apperrors.ExitErrorNoSolution
	}
	return apperrors.ExitSuccess
}
