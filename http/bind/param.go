package bind

// A Param describes a single scalar value a handler reads from a request.
//
// Params are required unless [NotRequired] is applied.
// A declared default satisfies requiredness.
type Param struct {
	Name     string
	Source   Source
	Kind     Kind
	Required bool
	Default  *string
}

// A ParamOptFn configures a Param.
type ParamOptFn func(*Param)

// NotRequired allows p to be absent from a request.
func NotRequired() ParamOptFn {
	return func(p *Param) { p.Required = false }
}

// Default sets the literal used when p is absent or empty.
func Default(lit string) ParamOptFn {
	return func(p *Param) { p.Default = &lit }
}

// QueryParam describes a query string or form value.
func QueryParam(name string, kind Kind, opts ...ParamOptFn) Param {
	return newParam(SourceQuery, name, kind, opts)
}

// HeaderParam describes a request header, matched case-insensitively.
func HeaderParam(name string, kind Kind, opts ...ParamOptFn) Param {
	return newParam(SourceHeader, name, kind, opts)
}

// CookieParam describes a cookie value.
func CookieParam(name string, kind Kind, opts ...ParamOptFn) Param {
	return newParam(SourceCookie, name, kind, opts)
}

// PathParam describes a path variable declared in a route's path template.
func PathParam(name string, kind Kind, opts ...ParamOptFn) Param {
	return newParam(SourcePath, name, kind, opts)
}

func newParam(src Source, name string, kind Kind, opts []ParamOptFn) Param {
	p := Param{Name: name, Source: src, Kind: kind, Required: true}
	for _, opt := range opts {
		opt(&p)
	}

	return p
}

// bind resolves p against r.
func (p Param) bind(r Request) (any, error) {
	raw, ok := r.lookup(p.Source, p.Name)

	// NOTE: an empty value only falls back to a default when one is declared;
	// otherwise empty and absent are distinct.
	if p.Default != nil && (!ok || isEmpty(raw)) {
		raw, ok = []string{*p.Default}, true
	}

	if !ok {
		if p.Required {
			return nil, &MissingParameterError{Name: p.Name, Source: p.Source}
		}

		if p.Kind == OptionalInt {
			return Optional[int]{}, nil
		}

		if p.Kind.nullable() {
			return nil, nil
		}

		// A primitive cannot hold "no value".
		return nil, &TypeCoercionError{Name: p.Name, Source: p.Source, Kind: p.Kind}
	}

	v, err := coerce(p.Kind, raw)
	if err != nil {
		return nil, &TypeCoercionError{Name: p.Name, Source: p.Source, Raw: raw[0], Kind: p.Kind, Err: err}
	}

	return v, nil
}

func isEmpty(raw []string) bool {
	return len(raw) == 0 || (len(raw) == 1 && raw[0] == "")
}
