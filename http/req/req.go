package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/trailhead"
)

// A Parser decodes and validates request payloads.
// A Parser is safe for concurrent use.
type Parser struct {
	queryParamDecoder queryParamDecoder
	validator
}

func NewParser() *Parser {
	return &Parser{
		queryParamDecoder: newQueryParamDecoder(),
		validator:         newValidator(),
	}
}

// ParseBody decodes into a pointer to a struct the JSON data in body.
// If successful, ParseBody runs validation against the contents,
// returning an ErrNotValid if the data fails validation rules.
//
// ParseBody reads the entire body and it can't be read from again.
// Use a [io.TeeReader] if the body needs to be reused after calling ParseBody.
func (p *Parser) ParseBody(body io.Reader, structPtr any) error {
	if body == nil {
		return fmt.Errorf("trailhead/http/req: %w: empty request body", trailhead.ErrMissingData)
	}

	var ourFault *json.InvalidUnmarshalError
	err := json.NewDecoder(body).Decode(structPtr)
	if errors.As(err, &ourFault) {
		return fmt.Errorf("trailhead/http/req: %w: ParseBody called with non-pointer: %s", trailhead.ErrBadAny, err)
	}

	if errors.Is(err, io.EOF) {
		return fmt.Errorf("trailhead/http/req: %w: empty request body", trailhead.ErrMissingData)
	}

	if err != nil {
		return fmt.Errorf("trailhead/http/req: %w: failed decoding request body: %s", trailhead.ErrBadFormat, err)
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("trailhead/http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}

// ParseQueryParams decodes params into a pointer to a struct.
// A repeated key fills a slice field with every value and a scalar field with the first.
// If successful, ParseQueryParams runs validation against the contents,
// returning an ErrNotValid if the data fails validation rules.
func (p *Parser) ParseQueryParams(params url.Values, structPtr any) error {
	if err := p.queryParamDecoder.decode(structPtr, params); err != nil {
		return fmt.Errorf("trailhead/http/req: failed decoding request query params: %w", err)
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("trailhead/http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}

// ParseForm decodes the query string and url-encoded form of r into a pointer to a struct,
// as ParseQueryParams does.
//
// Form values sent in the body take precedence over query string values of the same key.
func (p *Parser) ParseForm(r *http.Request, structPtr any) error {
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("trailhead/http/req: %w: failed parsing form: %s", trailhead.ErrBadFormat, err)
	}

	return p.ParseQueryParams(r.Form, structPtr)
}
