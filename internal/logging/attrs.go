package logging

import (
	"log/slog"
	"time"
)

// Attr aliases slog.Attr so call sites do not import log/slog directly.
type Attr = slog.Attr

func String(key, value string) Attr          { return slog.String(key, value) }
func Int(key string, value int) Attr         { return slog.Int(key, value) }
func Int64(key string, value int64) Attr     { return slog.Int64(key, value) }
func Float64(key string, value float64) Attr { return slog.Float64(key, value) }
func Bool(key string, value bool) Attr       { return slog.Bool(key, value) }
func Any(key string, value any) Attr         { return slog.Any(key, value) }

func Duration(key string, value time.Duration) Attr {
	return slog.Duration(key, value)
}

// Error wraps an error value under the conventional "error" key.
func Error(err error) Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("error", err.Error())
}

// Args flattens attrs for the slog variadic APIs.
func Args(attrs ...Attr) []any {
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, attr)
	}
	return args
}

// NewNop returns a logger that discards everything. Used by tests and by
// code paths that run before configuration is loaded.
func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}
