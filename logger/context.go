package logger

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"runtime"
	"sort"

	"github.com/xy-planning-network/trailhead"
)

const (
	LogContextKey = "log_context"

	callerTmpl = "%s:%d"
)

var _ slog.LogValuer = LogContext{}

// A LogContext provides additional information and configuration
// for a [Logger] method that cannot be tersely captured in the message itself.
type LogContext struct {
	// Caller overrides the caller file and line number with the provided value.
	//
	// Caller helps goroutines identify the callers of the process that spawned it.
	Caller string

	// Data is any information pertinent at the time of the logging event.
	Data map[string]any

	// Error is the error that may or may not have instigated a logging event.
	Error error

	// Request is the *http.Request that may or may not have been open during the logging event.
	Request *http.Request
}

// LogValue groups the non-zero fields of lc.
//
// LogValue implements [log/slog.LogValuer].
func (lc LogContext) LogValue() slog.Value {
	var attrs []slog.Attr
	if len(lc.Data) > 0 {
		keys := make([]string, 0, len(lc.Data))
		for k := range lc.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		data := make([]any, 0, len(keys))
		for _, k := range keys {
			if trailhead.IsMasked(k) {
				data = append(data, slog.Attr{Key: k, Value: trailhead.MaskedLogValue})
				continue
			}

			data = append(data, slog.Any(k, lc.Data[k]))
		}

		attrs = append(attrs, slog.Group("data", data...))
	}

	if lc.Error != nil {
		attrs = append(attrs, slog.String("error", lc.Error.Error()))
	}

	if lc.Request != nil {
		req := []any{slog.String("method", lc.Request.Method)}
		if lc.Request.URL != nil {
			u := *lc.Request.URL
			q := u.Query()
			trailhead.MaskAll(q)
			u.RawQuery = q.Encode()
			req = append(req, slog.String("url", u.String()))
		}

		if lc.Request.Form != nil {
			form := make(url.Values, len(lc.Request.Form))
			for k, v := range lc.Request.Form {
				form[k] = v
			}
			trailhead.MaskAll(form)
			req = append(req, slog.String("form", form.Encode()))
		}

		if id, ok := lc.Request.Context().Value(trailhead.RequestIDKey).(string); ok {
			req = append(req, slog.String("id", id))
		}

		attrs = append(attrs, slog.Group("request", req...))
	}

	return slog.GroupValue(attrs...)
}

// String renders lc through its LogValue.
func (lc LogContext) String() string {
	return fmt.Sprint(lc.LogValue())
}

// CurrentCaller retrieves the caller for the caller of CurrentCaller,
// formatted for using as a value in LogContext.Caller.
//
//	myFunc() {		<- returns this caller
//		go func() {
//			CurrentCaller()
//		}()
//	}
func CurrentCaller() string {
	_, file, line, _ := runtime.Caller(2)
	return fmt.Sprintf(callerTmpl, immediateFilepath(file), line)
}
