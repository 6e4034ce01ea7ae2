package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agbru/triplegen/internal/service"
	"github.com/agbru/triplegen/internal/ui"
)

// OutputConfig selects how results are shown and where they are saved.
type OutputConfig struct {
	OutputFile string // "" for none; a .json extension selects JSON
	Quiet      bool
	Verbose    bool
}

// WriteResultsToFile saves results to config.OutputFile, creating missing
// parent directories. It does nothing when no file is configured.
func WriteResultsToFile(results []service.Result, config OutputConfig) (err error) {
	path := config.OutputFile
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	w := bufio.NewWriter(f)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = writeJSONResults(w, results)
	} else {
		err = writeTextResults(w, results, time.Now())
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return w.Flush()
}

func writeJSONResults(w io.Writer, results []service.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// writeTextResults writes a commented header per search followed by its
// solutions in the quiet "a b c" format.
func writeTextResults(w io.Writer, results []service.Result, now time.Time) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Pythagorean Triple Search Results\n# Generated: %s\n", now.Format(time.RFC3339))
	for _, res := range results {
		req := res.Request
		fmt.Fprintf(&b, "\n# Filter: %s (arg %d)\n# Bound: %d\n# Duration: %s\n# Solutions: %d\n",
			req.Filter, req.Arg, req.Bound, res.Duration, len(res.Solutions))
		b.WriteString(FormatQuietResult(res))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// FormatQuietResult renders one "a b c" line per solution.
func FormatQuietResult(res service.Result) string {
	var b strings.Builder
	for _, s := range res.Solutions {
		fmt.Fprintf(&b, "%d %d %d\n", s.A, s.B, s.C)
	}
	return b.String()
}

// DisplayResultsWithConfig prints every result, as a table or in the quiet
// format, then saves them if a file is configured.
func DisplayResultsWithConfig(out io.Writer, results []service.Result, config OutputConfig) error {
	for _, res := range results {
		if config.Quiet {
			fmt.Fprint(out, FormatQuietResult(res))
			continue
		}
		DisplayResult(res, config.Verbose, out)
	}
	if config.OutputFile == "" {
		return nil
	}
	if err := WriteResultsToFile(results, config); err != nil {
		return err
	}
	if !config.Quiet {
		fmt.Fprintf(out, "\n%s✓ Results saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
	}
	return nil
}
