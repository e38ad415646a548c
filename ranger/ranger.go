package ranger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	_ "github.com/joho/godotenv/autoload"
	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/resp"
	"github.com/xy-planning-network/trailhead/http/router"
	"github.com/xy-planning-network/trailhead/logger"
)

// A Ranger manages and exposes all components of a trailhead app to one another.
type Ranger struct {
	*resp.Responder
	router.Router

	ctx      context.Context
	mu       sync.Mutex
	cancel   context.CancelFunc
	stopping bool
	env      trailhead.Environment
	httpLog  *slog.Logger
	l        logger.Logger
	out      io.Writer
	port     string
	srv      *http.Server
	url      *url.URL
}

// New constructs a Ranger from the provided options.
// Options supplied to New take precedence;
// whatever they leave unset is then built from env vars.
// Followups returned by options run last, once every component is available.
func New(opts ...RangerOption) (*Ranger, error) {
	r := new(Ranger)
	followups := make([]OptFollowup, 0)

	for _, opt := range opts {
		fn, err := opt(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", trailhead.ErrBadConfig, err)
		}

		if fn != nil {
			followups = append(followups, fn)
		}
	}

	if err := r.defaults(); err != nil {
		return nil, err
	}

	for _, fn := range followups {
		if err := fn(); err != nil {
			return nil, fmt.Errorf("%w: %s", trailhead.ErrBadConfig, err)
		}
	}

	return r, nil
}

// defaults fills every component left unset by options.
// Components are built in dependency order.
func (r *Ranger) defaults() error {
	if r.env == "" {
		r.env = trailhead.EnvVarOrEnv(environmentEnvVar, trailhead.Development)
	}

	if r.ctx == nil {
		r.ctx = context.Background()
	}

	if r.out == nil {
		r.out = os.Stdout
	}

	if r.port == "" {
		r.port = normalizePort(trailhead.EnvVarOrString(portEnvVar, DefaultPort))
	}

	def := defaultBaseURL()
	r.url = trailhead.EnvVarOrURL(BaseURLEnvVar, def)
	if r.url == nil {
		return fmt.Errorf("%w: base URL %q built from %s and %s is not a URL", trailhead.ErrBadConfig, def, hostEnvVar, portEnvVar)
	}

	if r.l == nil {
		r.l = defaultAppLogger(r.env, r.out)
	}

	if r.httpLog == nil {
		r.httpLog = defaultHTTPLogger(r.env, r.out)
	}

	if r.Responder == nil {
		contact := trailhead.EnvVarOrString(ContactUsEnvVar, defaultContactUs)
		r.Responder = defaultResponder(r.l, r.url, contact)
	}

	if r.Router == nil {
		mws := defaultMiddlewares(r.env, r.url, r.httpLog)
		r.Router = defaultRouter(r.env, r.Responder, r.httpLog, mws)
	}

	if r.srv == nil {
		r.srv = defaultServer(r.ctx, r.port)
	}

	r.srv.Handler = r.Router

	r.l.Debug(fmt.Sprintf("using env %s", r.env), nil)
	r.l.Debug(fmt.Sprintf("using base URL %s", r.url), nil)

	return nil
}

// EmitEnv returns the Environment the app runs in.
func (r *Ranger) EmitEnv() trailhead.Environment { return r.env }

// EmitHTTPLogger returns the logger request access logs are written through.
func (r *Ranger) EmitHTTPLogger() *slog.Logger { return r.httpLog }

// EmitLogger returns the app's logger.
func (r *Ranger) EmitLogger() logger.Logger { return r.l }

// EmitServer returns the web server Guide runs.
func (r *Ranger) EmitServer() *http.Server { return r.srv }

// EmitURL returns a copy of the base URL the app is reachable at.
func (r *Ranger) EmitURL() *url.URL {
	u := *r.url
	return &u
}

// Guide begins the web server.
//
// These, and (*Ranger).Shutdown, stop Guide:
//
//   - os.Interrupt
//   - syscall.SIGHUP
//   - syscall.SIGINT
//   - syscall.SIGQUIT
//   - syscall.SIGTERM
//   - the context set by WithContext being done
//
// Guide returns an error wrapping [trailhead.ErrUnexpected] if the server cannot listen.
func (r *Ranger) Guide() error {
	ctx, cancel := signal.NotifyContext(
		r.ctx,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer cancel()

	r.mu.Lock()
	if r.stopping {
		r.mu.Unlock()
		return nil
	}
	r.cancel = cancel
	r.mu.Unlock()
	errCh := make(chan error, 1)

	go func() {
		r.l.Info(fmt.Sprintf("running web server at %s", r.srv.Addr), nil)
		if err := r.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			err = fmt.Errorf("%w: could not listen: %s", trailhead.ErrUnexpected, err)
			r.l.Error(err.Error(), &logger.LogContext{Error: err})
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	r.mu.Lock()
	stopping := r.stopping
	r.mu.Unlock()
	if stopping {
		return nil
	}

	r.l.Info("received shutdown signal", nil)

	return r.Shutdown()
}

// Shutdown shutdowns the web server, waiting up to five seconds for in-flight requests.
func (r *Ranger) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	r.mu.Lock()
	r.stopping = true
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Unlock()

	r.l.Info("shutting down web server", nil)
	defer sentry.Flush(2 * time.Second)

	err := r.srv.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%w: could not shutdown: %s", trailhead.ErrUnexpected, err)
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}
