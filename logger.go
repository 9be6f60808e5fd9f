package piper

import (
	"log/slog"
	"os"
)

// Logger is the facade the engine consumes for its four level calls. The
// instance auto-prepends itself as context (its Path) on every call, so the
// logger always knows which segment is speaking.
//
// INFO fires when debug>0 or verbose>0 for the calling instance; DEBUG
// fires only when debug>0; WARN always fires (non-fatal); ERROR always
// fires and is fatal to the calling handler invocation.
type Logger interface {
	INFO(ctx string, msg string, items ...any)
	DEBUG(ctx string, msg string, items ...any)
	WARN(ctx string, msg string, items ...any)
	ERROR(ctx string, msg string, items ...any)
}

// LoggerFactory builds the pipeline's Logger. Build calls it once, with the
// root instance's path, and every instance logs through the result; the
// calling instance's path is passed as context on each call. The default
// wraps a single *slog.Logger and attaches that path as a "segment"
// attribute.
type LoggerFactory func(path Path) Logger

// SlogLogger adapts a *slog.Logger to the Logger facade, grounded on the
// way the teacher's graph-debug extension drives slog.
type SlogLogger struct {
	base *slog.Logger
}

// NewSlogLogger builds the default Logger backed by slog, writing
// human-readable text to stderr.
func NewSlogLogger() *SlogLogger {
	return &SlogLogger{base: slog.New(slog.NewTextHandler(os.Stderr, nil))}
}

// NewSlogLoggerWith wraps a caller-supplied *slog.Logger.
func NewSlogLoggerWith(base *slog.Logger) *SlogLogger {
	return &SlogLogger{base: base}
}

func (l *SlogLogger) INFO(ctx string, msg string, items ...any) {
	l.base.Info(msg, "segment", ctx, "items", items)
}

func (l *SlogLogger) DEBUG(ctx string, msg string, items ...any) {
	l.base.Debug(msg, "segment", ctx, "items", items)
}

func (l *SlogLogger) WARN(ctx string, msg string, items ...any) {
	l.base.Warn(msg, "segment", ctx, "items", items)
}

func (l *SlogLogger) ERROR(ctx string, msg string, items ...any) {
	l.base.Error(msg, "segment", ctx, "items", items)
}

// gatedLogger wraps a Logger with the resolved debug/verbose levels for one
// instance, implementing the gating rules from spec §4.8.
type gatedLogger struct {
	inner         Logger
	ctx           string
	debug         int
	verbose       int
}

func (g *gatedLogger) INFO(_ string, msg string, items ...any) {
	if g.debug > 0 || g.verbose > 0 {
		g.inner.INFO(g.ctx, msg, items...)
	}
}

func (g *gatedLogger) DEBUG(_ string, msg string, items ...any) {
	if g.debug > 0 {
		g.inner.DEBUG(g.ctx, msg, items...)
	}
}

func (g *gatedLogger) WARN(_ string, msg string, items ...any) {
	g.inner.WARN(g.ctx, msg, items...)
}

func (g *gatedLogger) ERROR(_ string, msg string, items ...any) {
	g.inner.ERROR(g.ctx, msg, items...)
}
