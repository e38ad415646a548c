package bind

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/trailhead"
)

// A MissingParameterError reports a required value absent from a request
// when no default is declared for it.
type MissingParameterError struct {
	Name   string
	Source Source
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing required %s parameter %q", e.Source, e.Name)
}

func (*MissingParameterError) Unwrap() error { return trailhead.ErrMissingData }

// StatusCode reports the request could not be handled as sent.
func (*MissingParameterError) StatusCode() int { return http.StatusBadRequest }

// A TypeCoercionError reports a value present in a request
// that cannot be converted into the declared, non-nullable Kind.
type TypeCoercionError struct {
	Name   string
	Source Source
	Raw    string
	Kind   Kind

	// Err is the conversion failure, if any.
	Err error
}

func (e *TypeCoercionError) Error() string {
	msg := fmt.Sprintf("cannot coerce %s parameter %q value %q into %s", e.Source, e.Name, e.Raw, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *TypeCoercionError) Unwrap() []error {
	if e.Err == nil {
		return []error{trailhead.ErrNotValid}
	}

	return []error{trailhead.ErrNotValid, e.Err}
}

// StatusCode reports the server could not bind a value its handler cannot do without.
func (*TypeCoercionError) StatusCode() int { return http.StatusInternalServerError }

// StatusCode maps err onto the HTTP status code a response to a failed binding ought to have.
//
// Errors exposing a StatusCode method are trusted first.
// Otherwise, malformed, invalid, or missing data is a 400 and anything else a 500.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}

	switch {
	case errors.Is(err, trailhead.ErrBadFormat),
		errors.Is(err, trailhead.ErrMissingData),
		errors.Is(err, trailhead.ErrNotValid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
