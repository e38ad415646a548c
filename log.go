package trailhead

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

const (
	LogKindKey = "kind"
	LogMaskVal = "xxxxxx"
)

var (
	AppLogKind  = slog.StringValue("app")
	HTTPLogKind = slog.StringValue("http")

	// MaskedLogValue stands in for a sensitive value in a log record.
	MaskedLogValue = slog.StringValue(LogMaskVal)
)

// maskedKeys name parameters whose values never reach a log.
var maskedKeys = []string{"password", "token"}

// IsMasked reports whether values for key are hidden from logs.
// Keys match regardless of case.
func IsMasked(key string) bool {
	for _, m := range maskedKeys {
		if strings.EqualFold(m, key) {
			return true
		}
	}

	return false
}

// MaskAll replaces the values of every masked key in vals with a single LogMaskVal.
func MaskAll(vals url.Values) {
	for key := range vals {
		if IsMasked(key) {
			vals[key] = []string{LogMaskVal}
		}
	}
}

// ParseLogLevel reads val, in any case, as a [log/slog.Level] such as "debug" or "warn+2".
func ParseLogLevel(val string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(val)); err != nil {
		return lvl, fmt.Errorf("%w: log level %q", ErrNotValid, val)
	}

	return lvl, nil
}
