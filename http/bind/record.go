package bind

import (
	"fmt"

	"github.com/xy-planning-network/trailhead"
)

// A Field maps a request parameter name onto a field of T.
type Field[T any] struct {
	Name string
	Kind Kind
	set  func(*T, any)
}

func newField[T, F any](name string, kind Kind, at func(*T) *F) Field[T] {
	return Field[T]{
		Name: name,
		Kind: kind,
		set: func(dst *T, v any) {
			*at(dst) = v.(F)
		},
	}
}

// StringField binds the parameter name into the string at points to.
func StringField[T any](name string, at func(*T) *string) Field[T] {
	return newField(name, String, at)
}

// StringsField binds every value of the parameter name into the slice at points to.
func StringsField[T any](name string, at func(*T) *[]string) Field[T] {
	return newField(name, Strings, at)
}

// IntField binds the parameter name into the int at points to.
func IntField[T any](name string, at func(*T) *int) Field[T] {
	return newField(name, Int, at)
}

// OptionalIntField binds the parameter name into the Optional at points to.
// Unparsable values leave it unset.
func OptionalIntField[T any](name string, at func(*T) *Optional[int]) Field[T] {
	return newField(name, OptionalInt, at)
}

// BoolField binds the parameter name into the bool at points to.
func BoolField[T any](name string, at func(*T) *bool) Field[T] {
	return newField(name, Bool, at)
}

// FloatField binds the parameter name into the float64 at points to.
func FloatField[T any](name string, at func(*T) *float64) Field[T] {
	return newField(name, Float, at)
}

// A Record binds query and form values onto the fields of a T.
//
// A Record is safe for concurrent use.
type Record[T any] struct {
	fields  []Field[T]
	partial bool
}

// NewRecord constructs a Record from fields.
// Field names must be unique.
func NewRecord[T any](fields ...Field[T]) (*Record[T], error) {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("%w: field has no name", trailhead.ErrBadConfig)
		}

		if f.set == nil {
			return nil, fmt.Errorf("%w: field %q has no accessor", trailhead.ErrBadConfig, f.Name)
		}

		if _, ok := seen[f.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate field %q", trailhead.ErrBadConfig, f.Name)
		}
		seen[f.Name] = struct{}{}
	}

	cp := make([]Field[T], len(fields))
	copy(cp, fields)

	return &Record[T]{fields: cp}, nil
}

// AllowPartial returns a copy of rec whose BindInto assigns fields directly onto the destination.
// When a field fails to coerce, fields bound before it are not rolled back.
func (rec *Record[T]) AllowPartial() *Record[T] {
	cp := *rec
	cp.partial = true

	return &cp
}

// Bind constructs a T from r.
// Absent fields keep their zero value.
func (rec *Record[T]) Bind(r Request) (T, error) {
	var out T
	if err := rec.BindInto(r, &out); err != nil {
		var zero T
		return zero, err
	}

	return out, nil
}

// BindInto assigns the fields present in r onto dst, leaving absent fields untouched.
//
// dst is left unmodified when any field fails, unless rec allows partial binding.
func (rec *Record[T]) BindInto(r Request, dst *T) error {
	if dst == nil {
		return fmt.Errorf("%w: nil destination", trailhead.ErrBadAny)
	}

	work := dst
	if !rec.partial {
		cp := *dst
		work = &cp
	}

	for _, f := range rec.fields {
		raw, ok := r.lookup(SourceQuery, f.Name)
		if !ok {
			continue
		}

		v, err := coerce(f.Kind, raw)
		if err != nil {
			return &TypeCoercionError{Name: f.Name, Source: SourceQuery, Raw: raw[0], Kind: f.Kind, Err: err}
		}

		f.set(work, v)
	}

	if !rec.partial {
		*dst = *work
	}

	return nil
}
