package gpures

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for gpures and all its sub-packages.
// By default, gpures produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by gpures:
//   - [slog.LevelDebug]: per-asset diagnostics (decode sizes, buffer uploads)
//   - [slog.LevelInfo]: lifecycle events (device opened, asset loaded)
//   - [slog.LevelWarn]: non-fatal issues (watcher errors, skipped files)
//
// Example:
//
//	// Enable info-level logging to stderr:
//	gpures.SetLogger(slog.Default())
//
//	// Log every upload, including the device layer's own diagnostics:
//	gpures.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	sinksMu.Lock()
	defer sinksMu.Unlock()
	loggerPtr.Store(l)
	for _, sink := range sinks {
		sink(l)
	}
}

// Logger returns the current logger used by gpures.
// Sub-packages call this to share the same logger configuration.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

var (
	sinksMu sync.Mutex
	sinks   []func(*slog.Logger)
)

// AddLoggerSink registers f to receive the logger now and after every
// SetLogger call. Packages wrapping libraries with their own logger use it
// to keep them in step with gpures.
func AddLoggerSink(f func(*slog.Logger)) {
	sinksMu.Lock()
	defer sinksMu.Unlock()
	sinks = append(sinks, f)
	f(loggerPtr.Load())
}
