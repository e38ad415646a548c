package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/logger"
)

func newJSONLogger(buf *bytes.Buffer, lvl slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{
		AddSource:   true,
		Level:       lvl,
		ReplaceAttr: logger.TruncSourceAttr,
	}))
}

// logContext logs lc and decodes the log_context attribute written.
func logContext(t *testing.T, lc logger.LogContext) map[string]any {
	buf := new(bytes.Buffer)
	logger.New(newJSONLogger(buf, slog.LevelDebug)).Info("test", &lc)

	m := make(map[string]any)
	require.Nil(t, json.Unmarshal(buf.Bytes(), &m))

	val, ok := m[logger.LogContextKey]
	if !ok {
		return nil
	}

	return val.(map[string]any)
}

func TestLogContextLogValue(t *testing.T) {
	// Act
	actual := logContext(t, logger.LogContext{})

	// Assert
	require.Nil(t, actual)

	// Act
	actual = logContext(t, logger.LogContext{Data: map[string]any{"test": "data", "age": 20}})

	// Assert
	require.Equal(t, map[string]any{"data": map[string]any{"age": float64(20), "test": "data"}}, actual)

	// Act
	actual = logContext(t, logger.LogContext{Data: map[string]any{"username": "userA", "Password": "hunter2"}})

	// Assert
	require.Equal(t, map[string]any{"data": map[string]any{"Password": trailhead.LogMaskVal, "username": "userA"}}, actual)

	// Act
	actual = logContext(t, logger.LogContext{Error: errors.New("test")})

	// Assert
	require.Equal(t, map[string]any{"error": "test"}, actual)

	// Arrange
	r := httptest.NewRequest(http.MethodGet, "https://example.com/request-param-v2?username=userA&password=hunter2", nil)
	r = r.WithContext(context.WithValue(r.Context(), trailhead.RequestIDKey, "abc"))

	expected := map[string]any{
		"request": map[string]any{
			"method": http.MethodGet,
			"url":    "https://example.com/request-param-v2?password=xxxxxx&username=userA",
			"id":     "abc",
		},
	}

	// Act
	actual = logContext(t, logger.LogContext{Request: r})

	// Assert
	require.Equal(t, expected, actual)
	require.Equal(t, "hunter2", r.URL.Query().Get("password"))

	// Arrange
	form := url.Values{}
	form.Set("email", "husserl@example.com")
	form.Set("password", "epoche")

	r = httptest.NewRequest(http.MethodPost, "https://example.com/test?some=param", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	require.Nil(t, r.ParseForm())

	expected = map[string]any{
		"request": map[string]any{
			"method": http.MethodPost,
			"url":    "https://example.com/test?some=param",
			"form":   "email=husserl%40example.com&password=xxxxxx&some=param",
		},
	}

	// Act
	actual = logContext(t, logger.LogContext{Request: r})

	// Assert
	require.Equal(t, expected, actual)
	require.Equal(t, "epoche", r.Form.Get("password"))
}

func TestLogContextCaller(t *testing.T) {
	// Arrange
	buf := new(bytes.Buffer)
	l := logger.New(newJSONLogger(buf, slog.LevelDebug))

	// Act
	l.Warn("test", &logger.LogContext{Caller: "somewhere/else.go:1"})

	// Assert
	m := make(map[string]any)
	require.Nil(t, json.Unmarshal(buf.Bytes(), &m))
	require.Equal(t, "somewhere/else.go:1", m[slog.SourceKey])
}

func TestCurrentCaller(t *testing.T) {
	// Arrange
	var actual string
	caller := func() { actual = logger.CurrentCaller() }

	// Act
	caller()

	// Assert
	require.True(t, strings.HasPrefix(actual, "logger/context_test.go:"), actual)
}
