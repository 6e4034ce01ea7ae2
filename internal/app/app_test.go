package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/triplegen/internal/config"
	apperrors "github.com/agbru/triplegen/internal/errors"
	"github.com/agbru/triplegen/internal/filters"
	"github.com/agbru/triplegen/internal/orchestration"
	"github.com/agbru/triplegen/internal/service"
	"github.com/agbru/triplegen/internal/testutil"
	"github.com/agbru/triplegen/internal/triples"
)

// newTestApp returns an application over the built-in filters with a valid
// base configuration; mutate adjusts it.
func newTestApp(mutate func(*config.AppConfig)) *Application {
	cfg := config.AppConfig{
		Bound:    100,
		Filters:  []string{"all"},
		Timeout:  time.Minute,
		MaxBound: 1_000_000,
		LogLevel: "info",
		NoColor:  true,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return &Application{
		Config:    cfg,
		Factory:   filters.NewDefaultFactory(),
		ErrWriter: &bytes.Buffer{},
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("Valid args create application", func(t *testing.T) {
		t.Parallel()
		var errBuf bytes.Buffer
		app, err := New([]string{"triplegen", "-bound", "500", "-filter", "all,Leg", "-arg", "12"}, &errBuf)
		if err != nil {
			t.Fatalf("New() returned unexpected error: %v", err)
		}
		if app.Config.Bound != 500 || app.Config.Arg != 12 {
			t.Errorf("unexpected config %+v", app.Config)
		}
		if len(app.Config.Filters) != 2 || app.Config.Filters[1] != "leg" {
			t.Errorf("Filters = %v", app.Config.Filters)
		}
		if app.Factory == nil {
			t.Error("Factory should not be nil")
		}
	})

	t.Run("Invalid args return error", func(t *testing.T) {
		t.Parallel()
		app, err := New([]string{"triplegen", "-invalid-flag"}, &bytes.Buffer{})
		if err == nil || app != nil {
			t.Errorf("New() = %v, %v; want nil app and an error", app, err)
		}
	})

	t.Run("Unknown filter returns error", func(t *testing.T) {
		t.Parallel()
		var errBuf bytes.Buffer
		if _, err := New([]string{"triplegen", "-filter", "nope"}, &errBuf); err == nil {
			t.Fatal("New() should reject an unknown filter")
		}
		if !strings.Contains(errBuf.String(), "unrecognized filter") {
			t.Errorf("stderr should explain the error, got:\n%s", errBuf.String())
		}
	})

	t.Run("Help flag returns error", func(t *testing.T) {
		t.Parallel()
		_, err := New([]string{"triplegen", "-h"}, &bytes.Buffer{})
		if !IsHelpError(err) {
			t.Errorf("error %v should be a help error", err)
		}
	})

	t.Run("Empty args use defaults", func(t *testing.T) {
		t.Parallel()
		app, err := New([]string{}, &bytes.Buffer{})
		if err != nil {
			t.Fatalf("New() should handle empty args, got: %v", err)
		}
		if app.Config.Bound != config.DefaultBound {
			t.Errorf("Bound = %d, want %d", app.Config.Bound, config.DefaultBound)
		}
	})
}

func TestApplicationRun(t *testing.T) {
	t.Parallel()

	t.Run("Single search with success", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		code := newTestApp(nil).Run(context.Background(), &out)

		if code != apperrors.ExitSuccess {
			t.Errorf("exit code = %d, want %d", code, apperrors.ExitSuccess)
		}
		output := testutil.StripAnsiCodes(out.String())
		for _, want := range []string{"Single search with the all filter", "Search Summary", "Global Status: Success. 16 solutions found."} {
			if !strings.Contains(output, want) {
				t.Errorf("output lacks %q:\n%s", want, output)
			}
		}
	})

	t.Run("Concurrent searches", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		app := newTestApp(func(c *config.AppConfig) {
			c.Filters = []string{"all", "leg"}
			c.Arg = 12
		})
		code := app.Run(context.Background(), &out)

		if code != apperrors.ExitSuccess {
			t.Errorf("exit code = %d, want %d", code, apperrors.ExitSuccess)
		}
		output := testutil.StripAnsiCodes(out.String())
		if !strings.Contains(output, "Concurrent searches with the all, leg filters") {
			t.Errorf("output lacks the execution mode:\n%s", output)
		}
		// 16 triples, of which (5,12,13) and (12,35,37) have a leg of 12.
		if !strings.Contains(output, "Global Status: Success. 18 solutions found.") {
			t.Errorf("unexpected status:\n%s", output)
		}
	})

	t.Run("No solution", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(func(c *config.AppConfig) {
			c.Bound = 1000
			c.Filters = []string{"perimeter"}
			c.Arg = 1000
		})
		if code := app.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitErrorNoSolution {
			t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorNoSolution)
		}
	})

	t.Run("Canceled run", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var out bytes.Buffer
		app := newTestApp(nil)
		if code := app.Run(ctx, &out); code != apperrors.ExitErrorCanceled {
			t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorCanceled)
		}
		if !strings.Contains(out.String(), "Global Status: Failure") {
			t.Errorf("output should report the failure:\n%s", out.String())
		}
		if !strings.Contains(app.ErrWriter.(*bytes.Buffer).String(), `"message":"search failed"`) {
			t.Error("failed searches should be logged")
		}
	})

	t.Run("Quiet mode prints bare triples", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		app := newTestApp(func(c *config.AppConfig) {
			c.Bound = 30
			c.Quiet = true
		})
		if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
			t.Fatalf("exit code = %d", code)
		}
		want := "3 4 5\n5 12 13\n8 15 17\n7 24 25\n20 21 29\n"
		if out.String() != want {
			t.Errorf("quiet output = %q, want %q", out.String(), want)
		}
	})

	t.Run("JSON output", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		app := newTestApp(func(c *config.AppConfig) {
			c.Bound = 1000
			c.Filters = []string{"perimeter-divides"}
			c.Arg = 1000
			c.Limit = 1
			c.JSONOutput = true
		})
		if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
			t.Fatalf("exit code = %d", code)
		}

		var decoded []struct {
			Request   service.Request    `json:"request"`
			Solutions []filters.Solution `json:"solutions"`
			Exhausted bool               `json:"exhausted"`
		}
		if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, out.String())
		}
		if len(decoded) != 1 || len(decoded[0].Solutions) != 1 {
			t.Fatalf("decoded = %+v", decoded)
		}
		if s := decoded[0].Solutions[0]; s.A != 200 || s.B != 375 || s.C != 425 {
			t.Errorf("special triplet = %+v", s)
		}
		if decoded[0].Exhausted {
			t.Error("a search stopped at its limit is not exhausted")
		}
	})

	t.Run("Debug logging reports progress", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(func(c *config.AppConfig) { c.LogLevel = "debug"; c.Quiet = true })
		app.Run(context.Background(), &bytes.Buffer{})

		logs := app.ErrWriter.(*bytes.Buffer).String()
		for _, want := range []string{"starting searches", "enumeration progress", "generator exhausted"} {
			if !strings.Contains(logs, want) {
				t.Errorf("debug logs lack %q:\n%s", want, logs)
			}
		}
	})

	t.Run("Output file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "triples.json")
		var out bytes.Buffer
		app := newTestApp(func(c *config.AppConfig) { c.OutputFile = path })
		if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
			t.Fatalf("exit code = %d", code)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("output file not written: %v", err)
		}
		if !json.Valid(data) {
			t.Errorf("output file is not JSON:\n%s", data)
		}
		if !strings.Contains(out.String(), "Results saved to: "+path) {
			t.Errorf("output should mention the file:\n%s", out.String())
		}
	})
}

func TestPrintJSONResults(t *testing.T) {
	t.Parallel()
	root, _ := filters.NewSolution(triples.Root, 1)
	ok := service.Result{
		Request:   service.Request{Bound: 30, Filter: "all"},
		Solutions: []filters.Solution{root},
	}
	empty := service.Result{Request: service.Request{Bound: 30, Filter: "leg", Arg: 7}, Solutions: []filters.Solution{}}

	tests := []struct {
		name     string
		results  []orchestration.SearchResult
		wantCode int
		wantText string
	}{
		{"success", []orchestration.SearchResult{{Result: ok}}, apperrors.ExitSuccess, `"c": 5`},
		{"no solution", []orchestration.SearchResult{{Result: empty}}, apperrors.ExitErrorNoSolution, `"solutions": []`},
		{"timeout", []orchestration.SearchResult{{Result: ok}, {Result: empty, Err: context.DeadlineExceeded}}, apperrors.ExitErrorTimeout, `"error": "context deadline exceeded"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			if code := printJSONResults(tt.results, &out); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(out.String(), tt.wantText) {
				t.Errorf("output lacks %q:\n%s", tt.wantText, out.String())
			}
		})
	}
}

func TestInterruptContext(t *testing.T) {
	t.Parallel()

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()
		ctx, stop := interruptContext(t.Context(), time.Millisecond)
		defer stop()
		<-ctx.Done()
		if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			t.Errorf("ctx.Err() = %v, want DeadlineExceeded", ctx.Err())
		}
	})

	t.Run("no timeout", func(t *testing.T) {
		t.Parallel()
		ctx, stop := interruptContext(t.Context(), 0)
		if _, ok := ctx.Deadline(); ok {
			t.Error("a zero timeout must not set a deadline")
		}
		stop()
		if ctx.Err() == nil {
			t.Error("stop should release the context")
		}
	})

	t.Run("parent cancel", func(t *testing.T) {
		t.Parallel()
		parent, cancel := context.WithCancel(t.Context())
		ctx, stop := interruptContext(parent, time.Hour)
		defer stop()
		cancel()
		<-ctx.Done()
		if !errors.Is(ctx.Err(), context.Canceled) {
			t.Errorf("ctx.Err() = %v, want Canceled", ctx.Err())
		}
	})
}
