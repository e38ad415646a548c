package ranger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/resp"
	"github.com/xy-planning-network/trailhead/http/router"
	"github.com/xy-planning-network/trailhead/logger"
)

// A RangerOption configures a *Ranger either (1) directly, immediately upon being called
// or (2) in the OptFollowup it returns.
// Some RangerOptions require components New assembles from the others,
// and thus an OptFollowup can be returned in order to be called once they are available.
//
// WithEnv is an example of the first.
// An unexported field on the passed in *Ranger is updated with the enclosed value.
//
// WithRoutes is an example of the second.
// The Routes are registered on the *Ranger's router only when the closure it returns is called.
type RangerOption func(rng *Ranger) (OptFollowup, error)
type OptFollowup func() error

// WithContext exposes the provided context.Context to the web server.
// Guide stops when ctx is done.
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if ctx == nil {
			return nil, fmt.Errorf("%w: nil context", trailhead.ErrBadConfig)
		}

		rng.ctx = ctx
		return nil, nil
	}
}

// WithEnv casts the provided string into a valid Environment,
// or, reads from the ENVIRONMENT environment variable a valid Environment.
//
// If both fail, the default Environment is set to Development.
func WithEnv(envVar string) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		e, err := trailhead.ParseEnvironment(envVar)
		if err != nil {
			e = trailhead.EnvVarOrEnv(environmentEnvVar, trailhead.Development)
		}

		rng.env = e
		return nil, nil
	}
}

// WithHTTPLogger sets the logger request access logs are written through.
func WithHTTPLogger(l *slog.Logger) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.httpLog = l
		return nil, nil
	}
}

// WithLogger exposes the provided logger.Logger to the app.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.l = l
		return nil, nil
	}
}

// WithLogOutput sets where the default loggers write.
// Without it, they write to [os.Stdout].
func WithLogOutput(w io.Writer) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if w == nil {
			return nil, fmt.Errorf("%w: nil log output", trailhead.ErrBadConfig)
		}

		rng.out = w
		return nil, nil
	}
}

// WithPort sets the port the web server listens on, overriding the PORT env var.
func WithPort(port string) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if port == "" {
			return nil, nil
		}

		rng.port = normalizePort(port)
		return nil, nil
	}
}

// WithResponder exposes the *resp.Responder to the app.
func WithResponder(r *resp.Responder) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.Responder = r
		return nil, nil
	}
}

// WithRouter exposes the router.Router to the app and serves requests through it.
func WithRouter(r router.Router) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.Router = r
		return nil, nil
	}
}

// WithRoutes constructs a followup option that, when called,
// registers routes on the *Ranger's router.
//
// The followup fails when any Route cannot be registered; cf. [router.Router.HandleRoutes].
func WithRoutes(routes ...router.Route) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error {
			if err := rng.Router.HandleRoutes(routes); err != nil {
				return err
			}

			rng.l.Debug(fmt.Sprintf("registered %d routes", len(routes)), nil)
			return nil
		}, nil
	}
}

// WithServer exposes the *http.Server to the app.
// The *Ranger's router replaces any handler s has.
func WithServer(s *http.Server) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if s == nil {
			return nil, fmt.Errorf("%w: nil server", trailhead.ErrBadConfig)
		}

		rng.srv = s
		return nil, nil
	}
}
