// Package logging is the structured logging facade shared by the CLI and
// the HTTP server. Records go to zerolog as JSON lines, or to a standard
// log.Logger as plain text when a caller supplies one.
package logging

import (
	"fmt"
	"io"
	stdlog "log"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is implemented by ZerologAdapter and StdLoggerAdapter.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)
}

// Field is one key/value pair of a log record.
type Field struct {
	Key   string
	Value any
}

// Field constructors, one per encoder the zerolog backend knows.
func String(key, value string) Field                 { return Field{key, value} }
func Strings(key string, value []string) Field       { return Field{key, value} }
func Int(key string, value int) Field                { return Field{key, value} }
func Int64(key string, value int64) Field            { return Field{key, value} }
func Uint64(key string, value uint64) Field          { return Field{key, value} }
func Float64(key string, value float64) Field        { return Field{key, value} }
func Bool(key string, value bool) Field              { return Field{key, value} }
func Duration(key string, value time.Duration) Field { return Field{key, value} }

// addTo appends f to e using the zerolog encoder for its dynamic type.
func (f Field) addTo(e *zerolog.Event) *zerolog.Event {
	switch v := f.Value.(type) {
	case string:
		return e.Str(f.Key, v)
	case []string:
		return e.Strs(f.Key, v)
	case int:
		return e.Int(f.Key, v)
	case int64:
		return e.Int64(f.Key, v)
	case uint64:
		return e.Uint64(f.Key, v)
	case float64:
		return e.Float64(f.Key, v)
	case bool:
		return e.Bool(f.Key, v)
	case time.Duration:
		return e.Dur(f.Key, v)
	case error:
		return e.AnErr(f.Key, v)
	default:
		return e.Interface(f.Key, v)
	}
}

// ParseLevel maps debug, info, warn, error and disabled (or off) to a
// zerolog level, ignoring case and surrounding blanks. "" means info.
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return zerolog.InfoLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "disabled", "off":
		return zerolog.Disabled, nil
	}
	return zerolog.NoLevel, fmt.Errorf("unknown log level %q", level)
}

// ZerologAdapter writes records through a zerolog.Logger.
type ZerologAdapter struct {
	zl zerolog.Logger
}

// NewLogger returns a JSON logger on w that stamps every record with a
// timestamp and the component name, and drops records below level.
func NewLogger(w io.Writer, component string, level zerolog.Level) *ZerologAdapter {
	return &ZerologAdapter{
		zl: zerolog.New(w).Level(level).With().Timestamp().Str("component", component).Logger(),
	}
}

// Zerolog returns the backing logger for code that takes a zerolog.Logger,
// such as the generator's logging observer.
func (z *ZerologAdapter) Zerolog() zerolog.Logger { return z.zl }

func (z *ZerologAdapter) emit(e *zerolog.Event, msg string, fields []Field) {
	for _, f := range fields {
		e = f.addTo(e)
	}
	e.Msg(msg)
}

func (z *ZerologAdapter) Debug(msg string, fields ...Field) { z.emit(z.zl.Debug(), msg, fields) }
func (z *ZerologAdapter) Info(msg string, fields ...Field)  { z.emit(z.zl.Info(), msg, fields) }
func (z *ZerologAdapter) Warn(msg string, fields ...Field)  { z.emit(z.zl.Warn(), msg, fields) }

func (z *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	z.emit(z.zl.Error().Err(err), msg, fields)
}

// StdLoggerAdapter writes "[LEVEL] message key=value ..." lines to a
// standard log.Logger. It has no level filter.
type StdLoggerAdapter struct {
	l *stdlog.Logger
}

// NewStdLoggerAdapter wraps l.
func NewStdLoggerAdapter(l *stdlog.Logger) *StdLoggerAdapter {
	return &StdLoggerAdapter{l: l}
}

func (s *StdLoggerAdapter) line(level, msg string, fields []Field) {
	var b strings.Builder
	b.WriteString("[" + level + "] " + msg)
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	s.l.Println(b.String())
}

func (s *StdLoggerAdapter) Debug(msg string, fields ...Field) { s.line("DEBUG", msg, fields) }
func (s *StdLoggerAdapter) Info(msg string, fields ...Field)  { s.line("INFO", msg, fields) }
func (s *StdLoggerAdapter) Warn(msg string, fields ...Field)  { s.line("WARN", msg, fields) }

func (s *StdLoggerAdapter) Error(msg string, err error, fields ...Field) {
	s.line("ERROR", msg+": "+fmt.Sprint(err), fields)
}

var (
	_ Logger = (*ZerologAdapter)(nil)
	_ Logger = (*StdLoggerAdapter)(nil)
)
