package middleware

import (
	"net/http"
	"net/url"

	"github.com/xy-planning-network/trailhead"
)

// ForceHTTPS permanently redirects plain HTTP requests to HTTPS,
// except in the development and testing environments.
//
// The "X-Forwarded-Proto" header is trusted to report the original scheme
// when a trailhead application runs behind a proxy.
func ForceHTTPS(env trailhead.Environment) Adapter {
	if env.IsDevelopment() || env.IsTesting() {
		return NoopAdapter
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
				handler.ServeHTTP(w, r)
				return
			}

			u := new(url.URL)
			*u = *r.URL
			u.Scheme = "https"
			u.Host = r.Host

			http.Redirect(w, r, u.String(), http.StatusPermanentRedirect)
		})
	}
}
