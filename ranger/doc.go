/*
Package ranger initializes and manages a trailhead app with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type, constructed with [New].
Options passed to [New] set components directly; anything they leave unset is built
from environment variables. Handlers needing the app's logger or responder
are registered once the [Ranger] exists:

	rng, err := ranger.New(ranger.WithEnv("development"))
	if err != nil {
		log.Fatal(err)
	}

	c, err := basic.NewController(rng.EmitLogger(), rng.Responder)
	if err != nil {
		log.Fatal(err)
	}

	if err := rng.HandleRoutes(c.Routes()); err != nil {
		log.Fatal(err)
	}

	log.Fatal(rng.Guide())

Routes needing neither can be passed to [New] with [WithRoutes].

[*Ranger.Guide] begins the web server.
By default, [*Ranger.Guide] listens on [DefaultPort] (:3000),
assuming either a reverse proxy proxies requests
or only a client application makes direct requests to the web server.

Stop that web server with [*Ranger.Shutdown],
by cancelling the context passed to [WithContext],
or by sending a signal [*Ranger.Guide] listens for.

# Defaults

The default router binds each Route's declared parameters before calling its handler
and answers binding failures through the default [resp.Responder],
so client errors answer 400 and server errors answer 500 with a contact message.
Every request passes through these middlewares, outermost first:
request IDs, client IP addresses, access logging,
HTTPS redirection when BASE_URL is https, CORS when CORS_ORIGIN is set, and rate limiting.

In development, app logs are colorized text; elsewhere, or when LOG_JSON is true, they are JSON.
Access logs are written through a separate logger whose records carry kind=http.

# Configuration

Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - BASE_URL: the base URL the application runs on; replaces HOST & PORT
  - CONTACT_US_EMAIL: the email address end users are pointed to when a server error occurs
  - CORS_ORIGIN: comma-separated origins allowed to make cross-origin requests
  - ENVIRONMENT: the environment the application is running in; cf. [trailhead.Environment]
  - HOST: the host the application is running on; default: localhost
  - LOG_JSON: whether development logs are written as JSON; default: false
  - LOG_LEVEL: the level at which to begin logging; default: INFO
  - PORT: the port the application should listen on; default: :3000
  - RATE_BURST: the burst of requests a single IP address may make; default: 20
  - RATE_LIMIT: the requests per second a single IP address may make; default: 5
  - SENTRY_DSN: the Sentry project warnings, errors, and panics are reported to
  - SERVER_IDLE_TIMEOUT: the timeout, as understood by [time.ParseDuration], for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout, as understood by [time.ParseDuration], for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout, as understood by [time.ParseDuration], for writing HTTP responses; default: 5s
*/
package ranger
