package router

import (
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/bind"
	"github.com/xy-planning-network/trailhead/http/middleware"
)

// A Route maps a path and HTTP method to an [http.HandlerFunc].
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
//
// When Params is set, the parameters it declares are bound from every matching request
// before Handler is called; Handler reads them with [bind.ValuesFromContext].
type Route struct {
	Path        string
	Method      string
	Handler     http.HandlerFunc
	Middlewares []middleware.Adapter
	Params      *bind.Target
}

// A BindErrorHandler responds to a request whose parameters could not be bound.
type BindErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// DefaultBindErrorHandler writes err as plain text with the status [bind.StatusCode] reports.
func DefaultBindErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	http.Error(w, err.Error(), bind.StatusCode(err))
}

// A Router registers Routes and dispatches requests to them.
type Router interface {
	http.Handler
	CatchAll(handler http.HandlerFunc)
	Handle(route Route) error
	HandleNotFound(handler http.HandlerFunc)
	HandleRoutes(routes []Route, middlewares ...middleware.Adapter) error
	OnBindError(fn BindErrorHandler)
	OnEveryRequest(middlewares ...middleware.Adapter)
	Routes() []Route
	Subrouter(prefix string) Router
}

// DefaultRouter is the [Router] built on [mux.Router].
type DefaultRouter struct {
	Env           trailhead.Environment
	bindErr       *bindErrHandler
	everyReqStack []middleware.Adapter
	logReq        middleware.Adapter
	prefix        string
	r             *mux.Router
	reg           *registry
}

// New constructs a [*DefaultRouter] for the given environment.
// logReq is applied to requests matching no Route.
func New(env trailhead.Environment, logReq middleware.Adapter) *DefaultRouter {
	return &DefaultRouter{
		Env:     env,
		bindErr: &bindErrHandler{fn: DefaultBindErrorHandler},
		logReq:  logReq,
		r:       mux.NewRouter(),
		reg:     new(registry),
	}
}

// CatchAll sets up a handler for all routes to funnel to for e.g. maintenance mode.
func (r *DefaultRouter) CatchAll(handler http.HandlerFunc) {
	r.r.PathPrefix("/").Handler(
		middleware.Chain(
			middleware.ReportPanic(r.Env)(handler),
			r.everyReqStack...,
		),
	)
}

// Handle applies the [Route] to the [*DefaultRouter].
func (r *DefaultRouter) Handle(route Route) error {
	return r.HandleRoutes([]Route{route})
}

// HandleNotFound sets the provided [http.HandlerFunc] as the default function
// for when no other registered Route is matched.
func (r *DefaultRouter) HandleNotFound(handler http.HandlerFunc) {
	r.r.NotFoundHandler = middleware.Chain(
		middleware.ReportPanic(r.Env)(handler),
		r.logReq,
	)
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
//
// HandleRoutes checks every Route before registering any of them.
// A Route missing a path or handler, or whose Params name a path variable
// its Path does not declare, fails with [trailhead.ErrBadConfig].
func (r *DefaultRouter) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) error {
	for _, route := range routes {
		if err := r.check(route); err != nil {
			return err
		}
	}

	for _, route := range routes {
		mws := make([]middleware.Adapter, 0, len(r.everyReqStack)+len(middlewares)+len(route.Middlewares))
		mws = append(mws, r.everyReqStack...)
		mws = append(mws, middlewares...)
		mws = append(mws, route.Middlewares...)

		handler := middleware.Chain(
			middleware.ReportPanic(r.Env)(r.bindParams(route.Params)(route.Handler)),
			mws...,
		)

		mr := r.r.Handle(route.Path, handler)
		if route.Method != "" {
			mr.Methods(route.Method)
		}

		route.Path = r.prefix + route.Path
		r.reg.add(route)
	}

	return nil
}

// OnBindError replaces the handler responding to requests whose parameters could not be bound.
//
// The handler is shared with every Subrouter of r.
// A nil fn restores [DefaultBindErrorHandler].
func (r *DefaultRouter) OnBindError(fn BindErrorHandler) {
	if fn == nil {
		fn = DefaultBindErrorHandler
	}

	r.bindErr.set(fn)
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*DefaultRouter] will apply to every request.
func (r *DefaultRouter) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// Routes lists every Route registered on r or any of its Subrouters, sorted by path then method.
func (r *DefaultRouter) Routes() []Route {
	return r.reg.list()
}

// ServeHTTP responds to an HTTP request.
func (r *DefaultRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.r.ServeHTTP(w, req)
}

// Subrouter constructs a [Router] whose Routes are all nested under prefix.
// The Subrouter starts with the middleware stack r applies to every request.
func (r *DefaultRouter) Subrouter(prefix string) Router {
	mws := make([]middleware.Adapter, len(r.everyReqStack))
	copy(mws, r.everyReqStack)

	return &DefaultRouter{
		Env:           r.Env,
		bindErr:       r.bindErr,
		everyReqStack: mws,
		logReq:        r.logReq,
		prefix:        r.prefix + prefix,
		r:             r.r.PathPrefix(prefix).Subrouter(),
		reg:           r.reg,
	}
}

// check asserts route can be registered on r.
func (r *DefaultRouter) check(route Route) error {
	if route.Path == "" {
		return fmt.Errorf("%w: route has no path", trailhead.ErrBadConfig)
	}

	if route.Handler == nil {
		return fmt.Errorf("%w: route %s %s has no handler", trailhead.ErrBadConfig, route.Method, route.Path)
	}

	vars, err := mux.NewRouter().Path(r.prefix + route.Path).GetVarNames()
	if err != nil {
		return fmt.Errorf("%w: route %s %s: %s", trailhead.ErrBadConfig, route.Method, route.Path, err)
	}

	if err := route.Params.CheckVars(vars); err != nil {
		return fmt.Errorf("route %s %s: %w", route.Method, route.Path, err)
	}

	return nil
}

// bindParams builds the [bind.Request] for each request,
// binds target from it, and stashes both in the request's context.
//
// A binding failure goes to the router's [BindErrorHandler] and the handler is never called.
func (r *DefaultRouter) bindParams(target *bind.Target) middleware.Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			br, err := bind.NewRequest(req, mux.Vars(req))
			if err != nil {
				r.bindErr.get()(w, req, err)
				return
			}

			vals, err := target.Bind(br)
			if err != nil {
				r.bindErr.get()(w, req, err)
				return
			}

			ctx := bind.NewRequestContext(req.Context(), br)
			ctx = bind.NewValuesContext(ctx, vals)
			h.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

type bindErrHandler struct {
	mu sync.RWMutex
	fn BindErrorHandler
}

func (b *bindErrHandler) get() BindErrorHandler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.fn
}

func (b *bindErrHandler) set(fn BindErrorHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fn = fn
}

// registry records Routes across a router and its subrouters.
type registry struct {
	mu     sync.Mutex
	routes []Route
}

func (reg *registry) add(route Route) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.routes = append(reg.routes, route)
}

func (reg *registry) list() []Route {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	cp := make([]Route, len(reg.routes))
	copy(cp, reg.routes)
	sort.SliceStable(cp, func(i, j int) bool {
		if cp[i].Path != cp[j].Path {
			return cp[i].Path < cp[j].Path
		}

		return cp[i].Method < cp[j].Method
	})

	return cp
}
