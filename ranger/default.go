package ranger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/lmittmann/tint"
	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/middleware"
	"github.com/xy-planning-network/trailhead/http/resp"
	"github.com/xy-planning-network/trailhead/http/router"
	"github.com/xy-planning-network/trailhead/logger"
	"golang.org/x/time/rate"
)

const (
	// Base URL defaults
	BaseURLEnvVar = "BASE_URL"

	// App metadata
	ContactUsEnvVar  = "CONTACT_US_EMAIL"
	defaultContactUs = "hello@example.com"
	contactUsErrTmpl = "Uh oh! We've run into an issue. Please email us at %s so we can help."

	// CORS defaults
	corsOriginEnvVar = "CORS_ORIGIN"

	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar  = "LOG_LEVEL"
	defaultLogLvl   = slog.LevelInfo
	logJSONEnvVar   = "LOG_JSON"
	defaultLogJSON  = false
	sentryDsnEnvVar = "SENTRY_DSN"

	// Rate limit defaults
	rateLimitEnvVar  = "RATE_LIMIT"
	rateBurstEnvVar  = "RATE_BURST"
	defaultRateLimit = 5
	defaultRateBurst = 20

	// Web server defaults
	DefaultHost               = "localhost"
	hostEnvVar                = "HOST"
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 5 * time.Second
	shutdownTimeout           = 5 * time.Second
)

// defaultBaseURL assembles the URL the web server is reachable at from HOST and PORT.
func defaultBaseURL() string {
	return "http://" + trailhead.EnvVarOrString(hostEnvVar, DefaultHost) + normalizePort(trailhead.EnvVarOrString(portEnvVar, DefaultPort))
}

// normalizePort prefixes port with a colon when it lacks one.
func normalizePort(port string) string {
	if port == "" || port[0] == ':' {
		return port
	}

	return ":" + port
}

// defaultAppLogger constructs a [logger.Logger] configured for use in the application.
//
// When SENTRY_DSN is set, warnings and errors are reported to Sentry
// and the default Sentry hub is bound to the same project for reporting panics.
func defaultAppLogger(env trailhead.Environment, output io.Writer) logger.Logger {
	slogger := newSlogger(trailhead.AppLogKind, env, output)
	var l logger.Logger = logger.New(slogger)
	l.Debug("setting up app logger", nil)
	if dsn := os.Getenv(sentryDsnEnvVar); dsn != "" {
		l = logger.NewSentryLogger(env, l, dsn)
		l.Debug("using SentryLogger for app logger", nil)

		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn, Environment: env.String()}); err != nil {
			l.Error(fmt.Sprintf("unable to init Sentry for panics: %s", err), &logger.LogContext{Error: err})
		}
	}

	slog.SetDefault(slogger)

	return l
}

// defaultHTTPLogger constructs a [*log/slog.Logger] for use in HTTP router logging.
func defaultHTTPLogger(env trailhead.Environment, output io.Writer) *slog.Logger {
	sl := newSlogger(trailhead.HTTPLogKind, env, output)
	sl.Debug("setting up HTTP router logger")

	return sl
}

// newSlogger toggles constructing the specific [*log/slog.Logger]
// from the given parameters.
//
// Outside of development, or when LOG_JSON is true, records are written as JSON.
func newSlogger(kind slog.Value, env trailhead.Environment, out io.Writer) *slog.Logger {
	lvl := new(slog.LevelVar)
	lvl.Set(trailhead.EnvVarOrLogLevel(logLevelEnvVar, defaultLogLvl))

	useJSON := !env.IsDevelopment() || trailhead.EnvVarOrBool(logJSONEnvVar, defaultLogJSON)
	isHTTP := kind.String() == trailhead.HTTPLogKind.String()

	var handler slog.Handler
	switch {
	case useJSON && !isHTTP:
		opts := &slog.HandlerOptions{
			AddSource:   true,
			Level:       lvl,
			ReplaceAttr: logger.TruncSourceAttr,
		}
		handler = slog.NewJSONHandler(out, opts)

	case !useJSON && !isHTTP:
		opts := &tint.Options{
			AddSource:  true,
			Level:      lvl,
			TimeFormat: "2006-01-02 15:04:05.000",
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a = logger.ColorizeLevel(groups, a)
				return logger.TruncSourceAttr(groups, a)
			},
		}
		handler = tint.NewHandler(out, opts)

	case useJSON:
		opts := &slog.HandlerOptions{
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a = logger.DeleteLevelAttr(groups, a)
				return logger.DeleteMessageAttr(groups, a)
			},
		}
		handler = slog.NewJSONHandler(out, opts)

	default:
		opts := &slog.HandlerOptions{
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a = logger.DeleteLevelAttr(groups, a)
				return logger.DeleteMessageAttr(groups, a)
			},
		}
		handler = slog.NewTextHandler(out, opts)
	}

	handler = handler.WithAttrs([]slog.Attr{
		{Key: trailhead.LogKindKey, Value: kind},
	})

	return slog.New(handler)
}

// defaultResponder configures the [*resp.Responder] to be used by http.Handlers.
func defaultResponder(l logger.Logger, url *url.URL, contact string) *resp.Responder {
	args := []resp.ResponderOptFn{
		resp.WithContactErrMsg(fmt.Sprintf(contactUsErrTmpl, contact)),
		resp.WithLogger(l),
		resp.WithRootUrl(url.String()),
	}

	return resp.NewResponder(args...)
}

// defaultMiddlewares assembles the stack applied to every request, outermost first.
//
// ForceHTTPS joins the stack only when baseURL is served over https.
// CORS joins the stack only when CORS_ORIGIN lists allowed origins.
func defaultMiddlewares(env trailhead.Environment, baseURL *url.URL, httpLog *slog.Logger) []middleware.Adapter {
	mws := []middleware.Adapter{
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(httpLog),
	}

	if baseURL.Scheme == "https" {
		mws = append(mws, middleware.ForceHTTPS(env))
	}

	mws = append(mws, middleware.CORS(corsOrigins()...))

	limit := rate.Limit(trailhead.EnvVarOrInt(rateLimitEnvVar, defaultRateLimit))
	burst := trailhead.EnvVarOrInt(rateBurstEnvVar, defaultRateBurst)
	mws = append(mws, middleware.RateLimit(middleware.NewVisitors(limit, burst)))

	return mws
}

// corsOrigins splits the comma-separated CORS_ORIGIN env var.
func corsOrigins() []string {
	raw := os.Getenv(corsOriginEnvVar)
	if raw == "" {
		return nil
	}

	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return origins
}

// defaultRouter constructs a [router.Router] to be used by the web server.
//
// Binding failures are answered through responder,
// so they are logged and 5xx details are hidden from clients.
func defaultRouter(
	env trailhead.Environment,
	responder *resp.Responder,
	httpLog *slog.Logger,
	mws []middleware.Adapter,
) router.Router {
	route := router.New(env, middleware.LogRequest(httpLog))
	route.OnEveryRequest(mws...)
	route.OnBindError(func(wx http.ResponseWriter, rx *http.Request, err error) {
		responder.Err(wx, rx, err)
	})
	route.HandleNotFound(http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
		http.Error(wx, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	}))

	return route
}

// defaultServer constructs a default [*http.Server] listening on port.
func defaultServer(ctx context.Context, port string) *http.Server {
	srv := &http.Server{
		Addr:         normalizePort(port),
		IdleTimeout:  trailhead.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadTimeout:  trailhead.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: trailhead.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
	if ctx != nil {
		srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return srv
}
