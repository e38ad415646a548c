package bind

import (
	"fmt"
	"strings"

	"github.com/xy-planning-network/trailhead"
)

// A Target is the validated set of Params a handler binds from every request it serves.
//
// A Target is safe for concurrent use.
type Target struct {
	params []Param
}

// NewTarget validates params and constructs a Target from them.
//
// Names must be unique across a Target, a Kind must be known,
// and a declared default must coerce into its Param's Kind.
func NewTarget(params ...Param) (*Target, error) {
	seen := make(map[string]struct{}, len(params))
	for _, p := range params {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: %s parameter has no name", trailhead.ErrBadConfig, p.Source)
		}

		if p.Kind < String || p.Kind > Float {
			return nil, fmt.Errorf("%w: parameter %q has unknown %s", trailhead.ErrBadConfig, p.Name, p.Kind)
		}

		if p.Source < SourceQuery || p.Source > SourcePath {
			return nil, fmt.Errorf("%w: parameter %q has unknown %s", trailhead.ErrBadConfig, p.Name, p.Source)
		}

		if _, ok := seen[p.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate parameter %q", trailhead.ErrBadConfig, p.Name)
		}
		seen[p.Name] = struct{}{}

		if p.Default != nil && p.Kind != OptionalInt {
			if _, err := coerce(p.Kind, []string{*p.Default}); err != nil {
				return nil, fmt.Errorf("%w: default %q for parameter %q is not %s: %s", trailhead.ErrBadConfig, *p.Default, p.Name, p.Kind, err)
			}
		}
	}

	cp := make([]Param, len(params))
	copy(cp, params)

	return &Target{params: cp}, nil
}

// Params returns a copy of the Params t binds.
func (t *Target) Params() []Param {
	if t == nil {
		return nil
	}

	cp := make([]Param, len(t.params))
	copy(cp, t.params)

	return cp
}

// CheckVars asserts every path Param of t names one of the variables
// declared by a route's path template.
//
// Routers call CheckVars when a route is registered so a misconfigured route fails at startup.
func (t *Target) CheckVars(declared []string) error {
	if t == nil {
		return nil
	}

	vars := make(map[string]struct{}, len(declared))
	for _, name := range declared {
		vars[name] = struct{}{}
	}

	var missing []string
	for _, p := range t.params {
		if p.Source != SourcePath {
			continue
		}

		if _, ok := vars[p.Name]; !ok {
			missing = append(missing, p.Name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: path variables not declared by route: %s", trailhead.ErrBadConfig, strings.Join(missing, ", "))
	}

	return nil
}

// Bind resolves every Param of t against r in declaration order,
// stopping at the first failure.
//
// Bind is pure: it performs no I/O and never mutates r.
func (t *Target) Bind(r Request) (Values, error) {
	if t == nil {
		return Values{}, nil
	}

	vals := make(Values, len(t.params))
	for _, p := range t.params {
		if p.Source == SourcePath {
			if _, ok := r.Path[p.Name]; !ok {
				return nil, fmt.Errorf("%w: path variable %q was not extracted for this route", trailhead.ErrBadConfig, p.Name)
			}
		}

		v, err := p.bind(r)
		if err != nil {
			return nil, err
		}

		if v == nil {
			continue
		}

		vals[p.Name] = v
	}

	return vals, nil
}
