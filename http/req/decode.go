package req

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/gorilla/schema"
	"github.com/xy-planning-network/trailhead"
)

// queryParamDecoder decodes url.Values into structs tagged with "schema".
type queryParamDecoder struct {
	dec *schema.Decoder
}

func newQueryParamDecoder() queryParamDecoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)

	return queryParamDecoder{dec}
}

// decode populates structPtr with params,
// translating any failure into trailhead sentinel errors.
func (d queryParamDecoder) decode(structPtr any, params url.Values) error {
	rv := reflect.ValueOf(structPtr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: expected pointer to struct, got %T", trailhead.ErrBadAny, structPtr)
	}

	if err := d.dec.Decode(structPtr, firstValues(rv.Elem().Type(), params)); err != nil {
		return translateDecoderError(err)
	}

	return nil
}

// firstValues keeps only the first value of every repeated key
// unless the key names a slice field of t.
// schema otherwise decodes the last value into a scalar field.
func firstValues(t reflect.Type, params url.Values) url.Values {
	slices := make(map[string]bool)
	sliceKeys(t, "", slices, 0)

	out := make(url.Values, len(params))
	for k, v := range params {
		if len(v) > 1 && !slices[strings.ToLower(k)] && !hasIndex(k) {
			v = v[:1]
		}

		out[k] = v
	}

	return out
}

// sliceKeys records, lowercased, the schema key of every slice field reachable from t.
func sliceKeys(t reflect.Type, prefix string, out map[string]bool, depth int) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct || depth > 8 {
		return
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		name, _, _ := strings.Cut(f.Tag.Get("schema"), ",")
		if name == "-" {
			continue
		}

		if name == "" {
			name = f.Name
		}

		key := strings.ToLower(prefix + name)
		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}

		switch ft.Kind() {
		case reflect.Slice, reflect.Array:
			out[key] = true
		case reflect.Struct:
			sliceKeys(ft, key+".", out, depth+1)
		}
	}
}

// hasIndex reports whether k addresses an element of a slice of structs, such as "a.0.b".
func hasIndex(k string) bool {
	for _, part := range strings.Split(k, ".") {
		if part == "" {
			continue
		}

		if strings.Trim(part, "0123456789") == "" {
			return true
		}
	}

	return false
}

// translateDecoderError converts an error returned by *schema.Decoder into standardized errors.
// Some are issues with calling code, some are unexpected,
// and the rest are mismatches between a request's query params and the expected shape.
func translateDecoderError(err error) error {
	var pkgErrs schema.MultiError
	// NOTE: outside the pointer check in decode,
	// schema always wraps its errors in a MultiError.
	if !errors.As(err, &pkgErrs) {
		return fmt.Errorf("%w: %s", trailhead.ErrBadFormat, err)
	}

	var validErrs ValidationErrors
	for key, pkgErr := range pkgErrs {
		switch err := pkgErr.(type) {
		case schema.ConversionError:
			// NOTE: for non-slice values, Index is -1.
			validErrs = append(validErrs, ValidationError{
				Field: err.Key,
				Got:   fmt.Sprintf("bad value at index %d", max(0, err.Index)),
				Rule:  "must be " + err.Type.String(),
			})

		case schema.EmptyFieldError:
			return fmt.Errorf(`%w: use validate tags to set "required" fields, not schema`, trailhead.ErrNotImplemented)

		case schema.UnknownKeyError:
			// NOTE: unknown keys are ignored by newQueryParamDecoder,
			// this only surfaces if that changes.
			validErrs = append(validErrs, ValidationError{
				Field: err.Key,
				Got:   "value is set",
				Rule:  "unexpected key should not be set",
			})

		default:
			// A field whose type has no registered converter
			// only errors once a request sets its key.
			if strings.Contains(err.Error(), "schema: converter not found for") {
				return fmt.Errorf("%w: cannot convert %q into unsupported type", trailhead.ErrNotImplemented, key)
			}

			return fmt.Errorf("%w: %s", trailhead.ErrUnexpected, err)
		}
	}

	sort.Slice(validErrs, func(i, j int) bool { return validErrs[i].Field < validErrs[j].Field })

	return validErrs
}
