package resp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/logger"
)

const (
	// responderFrames skips the Fn, do, and the Responder method
	// between a handler and a log call.
	responderFrames = 3
	defaultRootUrl  = "http://localhost:3000"

	jsonContentType = "application/json; charset=UTF-8"
	textContentType = "text/plain; charset=utf-8"
)

// Responder maintains reusable pieces for responding to HTTP requests.
// It exposes many common methods for writing structured data as an HTTP response.
// These are the forms of response Responder can execute:
//
//	Err
//	Json
//	Redirect
//	Text
//
// Most oftentimes, setting up a single instance of a Responder suffices for an application.
//
// When handling a specific HTTP request, calling code supplies additional data, structure,
// and so forth through Fn functions.
type Responder struct {
	logger logger.Logger

	// Pool of *bytes.Buffer to prerender responses into
	pool *sync.Pool

	// Message written in place of the details of a 5xx error
	contactErrMsg string

	// Root URL the responder is listening on, also used when in an error state
	rootUrl *url.URL
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := &Responder{
		pool: &sync.Pool{New: func() any { return new(bytes.Buffer) }},
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.New(nil)
	}

	if l, ok := d.logger.(logger.SkipLogger); ok {
		d.logger = l.AddSkip(l.Skip() + responderFrames)
	}

	if d.rootUrl == nil {
		d.rootUrl, _ = url.ParseRequestURI(defaultRootUrl)
	}

	return d
}

// Err wraps http.Error(), logging the error causing the failure state.
//
// The status code is derived from err unless Code sets one after Err is applied.
// The details of a 5xx error are replaced by the message set with WithContactErrMsg.
func (doer *Responder) Err(w http.ResponseWriter, r *http.Request, err error, opts ...Fn) {
	rr, nested := doer.do(w, r, append([]Fn{Err(err)}, opts...)...)
	if rr == nil {
		return
	}

	if rr.closeBody && r.Body != nil {
		defer r.Body.Close()
	}

	if nested != nil {
		err = fmt.Errorf("%w: %s", err, nested)
	}

	var msg string
	if err != nil {
		msg = err.Error()
	}

	if rr.code == 0 {
		rr.code = http.StatusInternalServerError
	}

	if rr.code >= http.StatusInternalServerError && doer.contactErrMsg != "" {
		msg = doer.contactErrMsg
	}

	http.Error(w, msg, rr.code)
}

type jsonSchema struct {
	D any `json:"data,omitempty"`
}

// Json responds with data in JSON format, collating it from Data() and setting appropriate headers.
//
// The JSON schema looks like this:
//
//	{
//		"data": {}
//	}
//
// The default response status code is 200.
//
// Json logs any failure itself and answers it with a 500 when nothing was written yet;
// the returned error needs no further logging.
func (doer *Responder) Json(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, opts...)
	if err != nil {
		return doer.fail(w, r, err)
	}

	if rr.closeBody && r.Body != nil {
		defer r.Body.Close()
	}

	if rr.code == 0 {
		rr.code = http.StatusOK
	}

	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	if err := json.NewEncoder(b).Encode(jsonSchema{D: rr.data}); err != nil {
		err = fmt.Errorf("%w: cannot encode %T: %s", trailhead.ErrUnexpected, rr.data, err)
		return doer.fail(w, r, err)
	}

	w.Header().Set("Content-Type", jsonContentType)
	w.WriteHeader(rr.code)

	return doer.write(w, r, b)
}

// Text responds with the data set by Data() formatted as with fmt.Sprint.
// No data writes an empty body.
//
// The default response status code is 200.
//
// Text handles its failures as Json does.
func (doer *Responder) Text(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, opts...)
	if err != nil {
		return doer.fail(w, r, err)
	}

	if rr.closeBody && r.Body != nil {
		defer r.Body.Close()
	}

	if rr.code == 0 {
		rr.code = http.StatusOK
	}

	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	if rr.data != nil {
		fmt.Fprint(b, rr.data)
	}

	w.Header().Set("Content-Type", textContentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(rr.code)

	return doer.write(w, r, b)
}

// fail answers with a 500 a response that could not be built, logging err through Err.
// A request whose context is done gets no answer.
func (doer *Responder) fail(w http.ResponseWriter, r *http.Request, err error) error {
	if errors.Is(err, ErrDone) {
		return err
	}

	doer.Err(w, r, err, Code(http.StatusInternalServerError))
	return err
}

// write copies a prerendered body to w once headers are sent,
// so a failure can only be logged.
func (doer *Responder) write(w http.ResponseWriter, r *http.Request, b *bytes.Buffer) error {
	if _, err := b.WriteTo(w); err != nil {
		err = fmt.Errorf("%w: cannot write response: %s", trailhead.ErrUnexpected, err)
		doer.logger.Warn(err.Error(), &logger.LogContext{Error: err, Request: r})
		return err
	}

	return nil
}

// Redirect calls http.Redirect, given Url() set the redirect destination.
// If Url() is not passed in opts, then ToRoot() sets the redirect destination.
//
// The default response status code is 302.
//
// If Code() set the status code to something other than standard redirect 3xx statuses,
// Redirect overwrites the status code with an appropriate 3xx status code.
func (doer *Responder) Redirect(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, append([]Fn{ToRoot()}, opts...)...)
	if err != nil {
		return err
	}

	if rr.closeBody && r.Body != nil {
		defer r.Body.Close()
	}

	// NOTE: because of the default ToRoot(),
	// this check safeguards against bugs in the above.
	if rr.url == nil {
		return fmt.Errorf("%w: cannot redirect, no url", trailhead.ErrMissingData)
	}

	switch {
	case rr.code >= http.StatusMultipleChoices && rr.code <= http.StatusPermanentRedirect:
		// NOTE: code is already a 3xx, so do nothing
	case rr.code >= http.StatusBadRequest && rr.code < http.StatusInternalServerError:
		rr.code = http.StatusSeeOther
	case rr.code >= http.StatusInternalServerError:
		rr.code = http.StatusTemporaryRedirect
	default:
		rr.code = http.StatusFound
	}

	http.Redirect(w, r, rr.url.String(), rr.code)
	return nil
}

// do applies all options to the passed in http.ResponseWriter and *http.Request.
//
// Calling code ought to pass Options in the correct order.
// An option requiring something set by another one should come after.
// do nonetheless attempts to retry calling functional options until all do not return errors or,
// a set of options unable to not return errors is reached.
//
// Should all options apply successfully, do returns a validly formed *Response.
func (doer *Responder) do(w http.ResponseWriter, r *http.Request, opts ...Fn) (*Response, error) {
	resp := &Response{
		closeBody: true,
		w:         w,
		r:         r,
	}

	redos := make([]Fn, 0)
	for _, opt := range opts {
		select {
		case <-r.Context().Done():
			return nil, fmt.Errorf("%w", ErrDone)
		default:
			if err := opt(*doer, resp); err != nil {
				redos = append(redos, opt)
			}
		}
	}

	i := -1
	for i != len(redos) {
		select {
		case <-r.Context().Done():
			return nil, fmt.Errorf("%w", ErrDone)
		default:
			// NOTE: redo shrinks redos as options succeed;
			// stop once a pass fixes none of them.
			i = len(redos)
			redos = doer.redo(resp, redos...)
		}
	}

	var err error
	for _, opt := range redos {
		if nested := opt(*doer, resp); nested != nil {
			if err == nil {
				err = nested
				continue
			}

			err = fmt.Errorf("%w: %s", nested, err)
		}
	}

	return resp, err
}

// redo applies as many Options as it can, returning those Options that continue to throw an error.
func (doer *Responder) redo(r *Response, opts ...Fn) []Fn {
	bad := make([]Fn, 0)
	for _, opt := range opts {
		if err := opt(*doer, r); err != nil {
			bad = append(bad, opt)
		}
	}

	return bad
}
