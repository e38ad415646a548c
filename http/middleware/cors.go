package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// CORS sets "Access-Control-Allow" style headers on a response to a request from one of origins.
// The route including this middleware must also handle the http.MethodOptions method
// and not just the HTTP method it's designed for.
//
// If no origins are provided, NoopAdapter returns and this middleware does nothing.
func CORS(origins ...string) Adapter {
	if len(origins) == 0 {
		return NoopAdapter
	}

	return handlers.CORS(
		handlers.AllowedHeaders([]string{
			"Accept-Language",
			"Content-Type",
			"X-CSRF-Token",
		}),
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{
			http.MethodDelete,
			http.MethodGet,
			http.MethodHead,
			http.MethodOptions,
			http.MethodPatch,
			http.MethodPost,
			http.MethodPut,
		}),
		handlers.ExposedHeaders([]string{RequestIDHeader}),
	)
}
