package req

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/xy-planning-network/trailhead"
)

// A ValidationError reports one field of a parsed request whose value broke the rule tagged on it.
type ValidationError struct {
	Field string `json:"field"`
	Got   any    `json:"got"`
	Rule  string `json:"rule,omitempty"`
}

func (e ValidationError) String() string {
	return fmt.Sprintf("%s: %v breaks %s", e.Field, e.Got, e.Rule)
}

// ValidationErrors collects every ValidationError found while parsing one request.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, err := range v {
		msgs[i] = err.String()
	}

	return strings.Join(msgs, "; ")
}

// Lookup returns the first ValidationError reported for field.
func (v ValidationErrors) Lookup(field string) (ValidationError, bool) {
	for _, err := range v {
		if err.Field == field {
			return err, true
		}
	}

	return ValidationError{}, false
}

func (v ValidationErrors) MarshalJSON() ([]byte, error) {
	errs := struct {
		E []ValidationError `json:"errors"`
	}{E: v}
	if errs.E == nil {
		errs.E = []ValidationError{}
	}

	return json.Marshal(errs)
}

// StatusCode reports the request's parameters were well-formed but not acceptable.
func (ValidationErrors) StatusCode() int { return http.StatusBadRequest }

func (ValidationErrors) Unwrap() error { return trailhead.ErrNotValid }
