package bind

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
)

// An Optional is a value that may or may not be set.
//
// The zero value is an unset Optional.
type Optional[T any] struct {
	Val   T
	Valid bool
}

// Some constructs a set Optional holding v.
func Some[T any](v T) Optional[T] { return Optional[T]{Val: v, Valid: true} }

// Get returns the held value and whether it is set.
func (o Optional[T]) Get() (T, bool) { return o.Val, o.Valid }

// Or returns the held value or def when o is not set.
func (o Optional[T]) Or(def T) T {
	if !o.Valid {
		return def
	}

	return o.Val
}

func (o Optional[T]) String() string {
	if !o.Valid {
		return "<nil>"
	}

	return fmt.Sprint(o.Val)
}

// LogValue implements [log/slog.LogValuer].
func (o Optional[T]) LogValue() slog.Value {
	if !o.Valid {
		return slog.AnyValue(nil)
	}

	return slog.AnyValue(o.Val)
}

// MarshalJSON encodes an unset Optional as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}

	return json.Marshal(o.Val)
}

// UnmarshalJSON decodes null into an unset Optional.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*o = Optional[T]{}
		return nil
	}

	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	*o = Some(v)
	return nil
}
