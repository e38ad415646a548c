/*
Package router defines what an HTTP router is and a default implementation of it.

The package defines what a web server router does through [Router]
and a default implementation of it, [*DefaultRouter].
[*DefaultRouter] utilizes [mux.Router] for its implementation,
and so functions as a thin wrapper around that package.

A [Router] leverages a standardized data model, a [Route], when registering how requests
should be routed. A path and an HTTP method comprise a [Route].
An [http.HandlerFunc] is the function called when a request matches a Route.
Before a request gets to a handler, though,
any middlewares added to the Route are called in the order they appear.

# Binding

A Route may declare the parameters its handler needs as a [bind.Target]:

	target, _ := bind.NewTarget(
		bind.PathParam("userId", bind.Int),
		bind.QueryParam("verbose", bind.Bool, bind.NotRequired()),
	)

	err := rt.Handle(router.Route{
		Path:    "/mapping/users/{userId}",
		Method:  http.MethodGet,
		Handler: getUser,
		Params:  target,
	})

Registration fails with [trailhead.ErrBadConfig] when a path parameter names a variable the
path does not declare, so a misconfigured server never starts.

For every matching request, the router builds a [bind.Request] from the request and its
path variables, binds the Target, and stores both in the request's context
(cf. [bind.RequestFromContext] and [bind.ValuesFromContext]).
When binding fails, the handler is not called; the [BindErrorHandler] set by
OnBindError responds instead.
*/
package router
