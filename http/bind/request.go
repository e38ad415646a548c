package bind

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/trailhead"
)

// A Request is the named, untyped data of an HTTP request a binding reads from.
//
// A Request is not mutated by binding and is discarded after the request is handled.
type Request struct {
	// Query holds query string parameters merged with url-encoded form fields.
	Query url.Values

	// Header holds request headers, including Host.
	Header http.Header

	// Cookies holds the first value sent for each cookie name.
	Cookies map[string]string

	// Path holds path variables extracted by the router.
	Path map[string]string
}

// NewRequest collects the data binding reads from r and the path variables already extracted for it.
//
// NewRequest parses r's form, so r.Body of a url-encoded POST, PUT, or PATCH request is consumed.
func NewRequest(r *http.Request, pathVars map[string]string) (Request, error) {
	if r == nil {
		return Request{}, fmt.Errorf("%w: nil *http.Request", trailhead.ErrBadAny)
	}

	if err := r.ParseForm(); err != nil {
		return Request{}, fmt.Errorf("%w: failed parsing form: %s", trailhead.ErrBadFormat, err)
	}

	header := r.Header.Clone()
	if header == nil {
		header = make(http.Header)
	}

	// NOTE: net/http promotes the Host header to r.Host and removes it from r.Header.
	if r.Host != "" && header.Get("Host") == "" {
		header.Set("Host", r.Host)
	}

	cookies := make(map[string]string)
	for _, c := range r.Cookies() {
		if _, ok := cookies[c.Name]; ok {
			continue
		}
		cookies[c.Name] = c.Value
	}

	path := make(map[string]string, len(pathVars))
	for k, v := range pathVars {
		path[k] = v
	}

	return Request{
		Query:   r.Form,
		Header:  header,
		Cookies: cookies,
		Path:    path,
	}, nil
}

// lookup retrieves the raw values for name in src
// and whether any value was sent at all.
func (r Request) lookup(src Source, name string) ([]string, bool) {
	switch src {
	case SourceQuery:
		vals, ok := r.Query[name]
		return vals, ok && len(vals) > 0

	case SourceHeader:
		vals := r.Header.Values(name)
		return vals, len(vals) > 0

	case SourceCookie:
		val, ok := r.Cookies[name]
		if !ok {
			return nil, false
		}
		return []string{val}, true

	case SourcePath:
		val, ok := r.Path[name]
		if !ok {
			return nil, false
		}
		return []string{val}, true

	default:
		return nil, false
	}
}
