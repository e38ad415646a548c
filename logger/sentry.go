package logger

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/xy-planning-network/trailhead"
)

const sentryFlushTimeout = 2 * time.Second

var _ SkipLogger = new(SentryLogger)

// A SentryLogger logs through another Logger
// and reports the errors of warnings and errors to Sentry.
type SentryLogger struct {
	l   SkipLogger
	hub *sentry.Hub
}

// NewSentryLogger constructs a SentryLogger wrapping l and reporting to the project dsn identifies.
//
// If a Sentry client cannot be initialized, the error is logged and l is returned as is.
func NewSentryLogger(env trailhead.Environment, l Logger, dsn string, opts ...SentryOptFn) Logger {
	sl, ok := l.(SkipLogger)
	if !ok {
		sl = &noSkipLogger{l}
	}

	co := sentry.ClientOptions{
		Dsn:          dsn,
		Environment:  env.String(),
		IgnoreErrors: []string{"write: broken pipe"},
	}
	for _, opt := range opts {
		opt(&co)
	}

	client, err := sentry.NewClient(co)
	if err != nil {
		l.Error(fmt.Sprintf("unable to init Sentry: %s", err), &LogContext{Error: err})
		return l
	}

	return &SentryLogger{
		l:   sl.AddSkip(sl.Skip() + 1),
		hub: sentry.NewHub(client, sentry.NewScope()),
	}
}

// AddSkip replaces the current number of frames to scroll back
// when logging a message.
func (sl *SentryLogger) AddSkip(i int) SkipLogger {
	return &SentryLogger{l: sl.l.AddSkip(i), hub: sl.hub}
}

// Debug writes a debug log.
func (sl *SentryLogger) Debug(msg string, ctx *LogContext) { sl.l.Debug(msg, ctx) }

// Error writes an error log and sends it to Sentry.
func (sl *SentryLogger) Error(msg string, ctx *LogContext) {
	sl.l.Error(msg, ctx)
	sl.send(sentry.LevelError, ctx)
}

// Info writes an info log.
func (sl *SentryLogger) Info(msg string, ctx *LogContext) { sl.l.Info(msg, ctx) }

// Warn writes a warning log and sends it to Sentry.
func (sl *SentryLogger) Warn(msg string, ctx *LogContext) {
	if sl.l.LogLevel() > slog.LevelWarn {
		return
	}

	sl.l.Warn(msg, ctx)
	sl.send(sentry.LevelWarning, ctx)
}

// Flush waits until buffered events are sent to Sentry.
func (sl *SentryLogger) Flush() bool { return sl.hub.Flush(sentryFlushTimeout) }

// LogLevel returns the level set for the wrapped Logger.
func (sl *SentryLogger) LogLevel() slog.Level { return sl.l.LogLevel() }

// Skip returns the current amount of frames to scroll back
// when logging a message.
func (sl *SentryLogger) Skip() int { return sl.l.Skip() }

// send ships the LogContext.Error to Sentry,
// including any additional data from LogContext.
func (sl *SentryLogger) send(level sentry.Level, ctx *LogContext) {
	if ctx == nil || ctx.Error == nil {
		return
	}

	sl.hub.WithScope(func(scope *sentry.Scope) {
		if ctx.Request != nil {
			scope.SetRequest(ctx.Request)
		}

		if ctx.Data != nil {
			scope.SetExtra("data", ctx.Data)
		}

		scope.SetLevel(level)
		sl.hub.CaptureException(ctx.Error)
	})
}

// noSkipLogger adapts a Logger that cannot skip frames.
type noSkipLogger struct{ Logger }

func (l *noSkipLogger) AddSkip(int) SkipLogger { return l }
func (*noSkipLogger) Skip() int                { return 0 }
