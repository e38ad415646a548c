package bind

import (
	"fmt"
	"strconv"
)

// A Source is the part of an HTTP request a value is read from.
type Source int

const (
	SourceQuery Source = iota
	SourceHeader
	SourceCookie
	SourcePath
)

func (s Source) String() string {
	switch s {
	case SourceQuery:
		return "query"
	case SourceHeader:
		return "header"
	case SourceCookie:
		return "cookie"
	case SourcePath:
		return "path"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// A Kind is the type a raw string value is coerced into.
type Kind int

const (
	String Kind = iota + 1
	Strings
	Int
	OptionalInt
	Bool
	Float
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Strings:
		return "[]string"
	case Int:
		return "int"
	case OptionalInt:
		return "optional int"
	case Bool:
		return "bool"
	case Float:
		return "float64"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// nullable asserts whether the Kind can represent "no value".
func (k Kind) nullable() bool {
	switch k {
	case String, Strings, OptionalInt:
		return true
	default:
		return false
	}
}

// coerce converts raw into a value of kind k.
// Only the first raw value is considered unless k is Strings.
//
// coerce never fails for OptionalInt.
func coerce(k Kind, raw []string) (any, error) {
	if k == Strings {
		out := make([]string, len(raw))
		copy(out, raw)
		return out, nil
	}

	var first string
	if len(raw) > 0 {
		first = raw[0]
	}

	switch k {
	case String:
		return first, nil

	case Int:
		return strconv.Atoi(first)

	case OptionalInt:
		n, err := strconv.Atoi(first)
		if err != nil {
			return Optional[int]{}, nil
		}

		return Some(n), nil

	case Bool:
		return strconv.ParseBool(first)

	case Float:
		return strconv.ParseFloat(first, 64)

	default:
		return nil, fmt.Errorf("unsupported kind %s", k)
	}
}
