package logger

//go:generate mockgen -destination=./mock/logger.go -package=mock github.com/xy-planning-network/trailhead/logger Logger

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// knownFrames is the number of frames between the caller of a Logger method
// and the call to runtime.Callers in TrailsLogger.log.
const knownFrames = 3

// The Logger interface defines the levels a logging can occur at.
type Logger interface {
	Debug(msg string, ctx *LogContext)
	Error(msg string, ctx *LogContext)
	Info(msg string, ctx *LogContext)
	Warn(msg string, ctx *LogContext)

	LogLevel() slog.Level
}

// The SkipLogger interface defines a Logger that scrolls back
// the number of frames provided in order to ascertain the call site.
type SkipLogger interface {
	AddSkip(i int) SkipLogger
	Skip() int
	Logger
}

var _ SkipLogger = new(TrailsLogger)

// TrailsLogger implements Logger using a [*log/slog.Logger].
type TrailsLogger struct {
	l    *slog.Logger
	skip int
}

// New constructs a TrailsLogger writing through sl.
// If sl is nil, [log/slog.Default] is used.
func New(sl *slog.Logger) *TrailsLogger {
	if sl == nil {
		sl = slog.Default()
	}

	return &TrailsLogger{l: sl}
}

// AddSkip replaces the current number of frames to scroll back
// when logging a message.
//
// Use Skip to get the current skip amount
// when needing to add to it with AddSkip.
func (l *TrailsLogger) AddSkip(i int) SkipLogger {
	newl := *l
	newl.skip = i
	return &newl
}

// Debug writes a debug log.
func (l *TrailsLogger) Debug(msg string, ctx *LogContext) { l.log(slog.LevelDebug, msg, ctx) }

// Error writes an error log.
func (l *TrailsLogger) Error(msg string, ctx *LogContext) { l.log(slog.LevelError, msg, ctx) }

// Info writes an info log.
func (l *TrailsLogger) Info(msg string, ctx *LogContext) { l.log(slog.LevelInfo, msg, ctx) }

// Warn writes a warning log.
func (l *TrailsLogger) Warn(msg string, ctx *LogContext) { l.log(slog.LevelWarn, msg, ctx) }

// LogLevel returns the lowest level the underlying handler is enabled for.
func (l *TrailsLogger) LogLevel() slog.Level {
	for _, lvl := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if l.l.Enabled(context.Background(), lvl) {
			return lvl
		}
	}

	return slog.LevelError
}

// Skip returns the current amount of frames to scroll back
// when logging a message.
func (l *TrailsLogger) Skip() int { return l.skip }

// Slogger exposes the underlying [*log/slog.Logger].
func (l *TrailsLogger) Slogger() *slog.Logger { return l.l }

// log builds and emits a record for the caller of the exported method,
// including any context if available.
func (l *TrailsLogger) log(level slog.Level, msg string, ctx *LogContext) {
	bg := context.Background()
	if !l.l.Enabled(bg, level) {
		return
	}

	var pc uintptr
	if ctx == nil || ctx.Caller == "" {
		var pcs [1]uintptr
		runtime.Callers(knownFrames+l.skip, pcs[:])
		pc = pcs[0]
	}

	r := slog.NewRecord(time.Now(), level, msg, pc)
	if ctx != nil {
		if ctx.Caller != "" {
			r.AddAttrs(slog.String(slog.SourceKey, ctx.Caller))
		}

		r.AddAttrs(slog.Any(LogContextKey, *ctx))
	}

	_ = l.l.Handler().Handle(bg, r)
}
