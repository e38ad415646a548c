package bind

import (
	"context"

	"github.com/xy-planning-network/trailhead"
)

// NewRequestContext stores r in ctx.
func NewRequestContext(ctx context.Context, r Request) context.Context {
	return context.WithValue(ctx, trailhead.BindRequestKey, r)
}

// RequestFromContext retrieves the Request stored in ctx by NewRequestContext.
func RequestFromContext(ctx context.Context) (Request, bool) {
	r, ok := ctx.Value(trailhead.BindRequestKey).(Request)
	return r, ok
}

// NewValuesContext stores vals in ctx.
func NewValuesContext(ctx context.Context, vals Values) context.Context {
	return context.WithValue(ctx, trailhead.BindValuesKey, vals)
}

// ValuesFromContext retrieves the Values stored in ctx by NewValuesContext.
// An empty Values is returned when none were stored.
func ValuesFromContext(ctx context.Context) Values {
	vals, ok := ctx.Value(trailhead.BindValuesKey).(Values)
	if !ok {
		return Values{}
	}

	return vals
}
