package trailhead_test

import (
	"log/slog"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trailhead"
)

func TestMaskAll(t *testing.T) {
	for _, tc := range []struct {
		name     string
		vals     url.Values
		expected url.Values
	}{
		{"Zero", url.Values{}, url.Values{}},
		{"Untouched", url.Values{"username": {"userA"}}, url.Values{"username": {"userA"}}},
		{
			"Password",
			url.Values{"username": {"userA"}, "password": {"hunter2", "hunter3"}},
			url.Values{"username": {"userA"}, "password": {trailhead.LogMaskVal}},
		},
		{"Token-Any-Case", url.Values{"Token": {"abc"}}, url.Values{"Token": {trailhead.LogMaskVal}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			trailhead.MaskAll(tc.vals)

			// Assert
			require.Equal(t, tc.expected, tc.vals)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	for _, tc := range []struct {
		raw      string
		expected slog.Level
		err      error
	}{
		{"debug", slog.LevelDebug, nil},
		{"WARN", slog.LevelWarn, nil},
		{"error+2", slog.LevelError + 2, nil},
		{"verbose", 0, trailhead.ErrNotValid},
		{"", 0, trailhead.ErrNotValid},
	} {
		t.Run(tc.raw, func(t *testing.T) {
			// Act
			actual, err := trailhead.ParseLogLevel(tc.raw)

			// Assert
			require.ErrorIs(t, err, tc.err)
			if tc.err == nil {
				require.Equal(t, tc.expected, actual)
			}
		})
	}
}
