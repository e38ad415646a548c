package bind

// Values holds the result of binding a [Target], keyed by Param name.
//
// A Param that was absent and not required is not set.
type Values map[string]any

// IsSet asserts whether name was bound.
func (v Values) IsSet(name string) bool {
	_, ok := v[name]
	return ok
}

// String returns the String bound to name or "".
func (v Values) String(name string) string {
	s, _ := Get[string](v, name)
	return s
}

// Strings returns the Strings bound to name or nil.
func (v Values) Strings(name string) []string {
	ss, _ := Get[[]string](v, name)
	return ss
}

// Int returns the Int bound to name or 0.
func (v Values) Int(name string) int {
	n, _ := Get[int](v, name)
	return n
}

// OptionalInt returns the OptionalInt bound to name, which may not be set.
func (v Values) OptionalInt(name string) Optional[int] {
	o, _ := Get[Optional[int]](v, name)
	return o
}

// Bool returns the Bool bound to name or false.
func (v Values) Bool(name string) bool {
	b, _ := Get[bool](v, name)
	return b
}

// Float returns the Float bound to name or 0.
func (v Values) Float(name string) float64 {
	f, _ := Get[float64](v, name)
	return f
}

// Get retrieves the value bound to name as a T
// and whether it was set with that type.
func Get[T any](v Values, name string) (T, bool) {
	var zero T
	raw, ok := v[name]
	if !ok {
		return zero, false
	}

	t, ok := raw.(T)
	if !ok {
		return zero, false
	}

	return t, true
}
