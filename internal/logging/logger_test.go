package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	stdlog "log"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.InfoLevel, false},
		{"info", zerolog.InfoLevel, false},
		{"DEBUG", zerolog.DebugLevel, false},
		{" warn ", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"off", zerolog.Disabled, false},
		{"verbose", zerolog.NoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestZerologAdapter_Fields(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	NewLogger(&buf, "server", zerolog.DebugLevel).Info("search done",
		String("filter", "leg"),
		Strings("filters", []string{"all", "leg"}),
		Int64("bound", 1000),
		Int("solutions", 2),
		Uint64("extracted", 16),
		Float64("progress", 0.5),
		Bool("exhausted", true),
		Duration("elapsed", 2*time.Millisecond),
	)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log line %q is not JSON: %v", buf.String(), err)
	}
	want := map[string]any{
		"level":     "info",
		"message":   "search done",
		"component": "server",
		"filter":    "leg",
		"bound":     float64(1000),
		"solutions": float64(2),
		"extracted": float64(16),
		"progress":  0.5,
		"exhausted": true,
	}
	for k, v := range want {
		if rec[k] != v {
			t.Errorf("%s = %v, want %v", k, rec[k], v)
		}
	}
	if fs, ok := rec["filters"].([]any); !ok || len(fs) != 2 || fs[1] != "leg" {
		t.Errorf("filters = %v", rec["filters"])
	}
	if _, ok := rec["elapsed"]; !ok {
		t.Error("elapsed missing")
	}
	if _, ok := rec["time"]; !ok {
		t.Error("timestamp missing")
	}
}

func TestZerologAdapter_Levels(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := NewLogger(&buf, "cli", zerolog.WarnLevel)

	log.Debug("hidden")
	log.Info("hidden too")
	if buf.Len() != 0 {
		t.Fatalf("records below warn were written: %q", buf.String())
	}
	log.Warn("slow search", Int64("bound", 1_000_000))
	log.Error("boom", errors.New("bad"))

	out := buf.String()
	for _, want := range []string{`"level":"warn"`, `"bound":1000000`, `"level":"error"`, `"error":"bad"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %s", out, want)
		}
	}
}

func TestStdLoggerAdapter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := NewStdLoggerAdapter(stdlog.New(&buf, "", 0))

	log.Info("starting", String("addr", ":8080"))
	log.Debug("detail", Int64("bound", 25))
	log.Warn("retrying")
	log.Error("failed", errors.New("io"), Int("attempt", 2))

	want := "[INFO] starting addr=:8080\n" +
		"[DEBUG] detail bound=25\n" +
		"[WARN] retrying\n" +
		"[ERROR] failed: io attempt=2\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
