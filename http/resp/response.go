package resp

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/bind"
	"github.com/xy-planning-network/trailhead/logger"
)

// A Fn is a functional option that mutates the state of the Response.
type Fn func(Responder, *Response) error

// A Response is the internal object a Responder response method builds while applying all
// functional options.
type Response struct {
	w         http.ResponseWriter
	r         *http.Request
	closeBody bool
	code      int
	data      any
	url       *url.URL
}

// Code sets the response status code.
func Code(c int) Fn {
	return func(_ Responder, r *Response) error {
		if c < 100 || c > 999 {
			return fmt.Errorf("%w: status code %d", trailhead.ErrNotValid, c)
		}

		r.code = c
		return nil
	}
}

// Data stores the provided value for writing to the client.
//
// Used with Responder.Json and Responder.Text.
func Data(d any) Fn {
	return func(_ Responder, r *Response) error {
		r.data = d
		return nil
	}
}

// Err sets the status code appropriate to e and logs it.
//
// Client errors, such as a missing request parameter, are logged as warnings;
// everything else is logged as an error.
// A nil e sets http.StatusInternalServerError.
func Err(e error) Fn {
	return func(d Responder, r *Response) error {
		if e == nil {
			r.code = http.StatusInternalServerError
			return nil
		}

		r.code = bind.StatusCode(e)

		lc := &logger.LogContext{Error: e, Request: r.r}
		if r.data != nil {
			lc.Data = map[string]any{"data": r.data}
		}

		if r.code < http.StatusInternalServerError {
			d.logger.Warn(e.Error(), lc)
			return nil
		}

		d.logger.Error(e.Error(), lc)
		return nil
	}
}

// Param adds the query parameter to the response's URL.
//
// Used with Responder.Redirect.
func Param(key, val string) Fn {
	return func(_ Responder, r *Response) error {
		if r.url == nil {
			return fmt.Errorf("%w: Url() has not been called", trailhead.ErrMissingData)
		}

		u := *r.url
		q := u.Query()
		q.Add(key, val)
		u.RawQuery = q.Encode()
		r.url = &u
		return nil
	}
}

// ToRoot calls URL with the Responder's default, root URL.
func ToRoot() Fn {
	return func(d Responder, r *Response) error {
		r.url = d.rootUrl
		return nil
	}
}

// Url parses raw the URL string and sets it in the *Response if successful.
//
// Used with Responder.Redirect.
func Url(u string) Fn {
	return func(_ Responder, r *Response) error {
		parsed, err := url.ParseRequestURI(u)
		if err != nil {
			return fmt.Errorf("%w: u is not a valid URL: %v", trailhead.ErrNotValid, err)
		}

		r.url = parsed
		return nil
	}
}

// Warn logs the warning alongside the request being responded to.
func Warn(msg string) Fn {
	return func(d Responder, r *Response) error {
		lc := &logger.LogContext{Request: r.r}
		if r.data != nil {
			lc.Data = map[string]any{"data": r.data}
		}

		d.logger.Warn(msg, lc)
		return nil
	}
}
