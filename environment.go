package trailhead

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// An Environment names where a trailhead app is running.
// An Environment is an [Enumerable].
type Environment string

const (
	Demo        Environment = "DEMO"
	Development Environment = "DEVELOPMENT"
	Production  Environment = "PRODUCTION"
	Review      Environment = "REVIEW"
	Staging     Environment = "STAGING"
	Testing     Environment = "TESTING"
)

// ParseEnvironment reads s, in any case, as an Environment.
func ParseEnvironment(s string) (Environment, error) {
	env := Environment(strings.ToUpper(strings.TrimSpace(s)))
	if err := env.Valid(); err != nil {
		return "", fmt.Errorf("%w: environment %q", ErrNotValid, s)
	}

	return env, nil
}

func (e Environment) String() string { return string(e) }

func (e Environment) Valid() error {
	switch e {
	case Demo, Development, Production, Review, Staging, Testing:
		return nil
	default:
		return ErrNotValid
	}
}

func (e Environment) IsDemo() bool        { return e == Demo }
func (e Environment) IsDevelopment() bool { return e == Development }
func (e Environment) IsProduction() bool  { return e == Production }
func (e Environment) IsReview() bool      { return e == Review }
func (e Environment) IsStaging() bool     { return e == Staging }
func (e Environment) IsTesting() bool     { return e == Testing }

// envVarOr reads key and converts it with parse.
// def is returned when key is unset or parse fails.
func envVarOr[T any](key string, def T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return def
	}

	v, err := parse(raw)
	if err != nil {
		return def
	}

	return v
}

// EnvVarOrBool reads key as "true" or "false", ignoring case, or returns def.
func EnvVarOrBool(key string, def bool) bool {
	return envVarOr(key, def, func(raw string) (bool, error) {
		switch strings.ToLower(raw) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			return false, ErrNotValid
		}
	})
}

// EnvVarOrDuration reads key as a [time.Duration] or returns def.
func EnvVarOrDuration(key string, def time.Duration) time.Duration {
	return envVarOr(key, def, time.ParseDuration)
}

// EnvVarOrEnv reads key as an [Environment] or returns def.
func EnvVarOrEnv(key string, def Environment) Environment {
	return envVarOr(key, def, ParseEnvironment)
}

// EnvVarOrInt reads key as an int or returns def.
func EnvVarOrInt(key string, def int) int {
	return envVarOr(key, def, strconv.Atoi)
}

// EnvVarOrLogLevel reads key as a [slog.Level] or returns def; cf. [ParseLogLevel].
func EnvVarOrLogLevel(key string, def slog.Level) slog.Level {
	return envVarOr(key, def, ParseLogLevel)
}

// EnvVarOrString reads key or returns def.
func EnvVarOrString(key, def string) string {
	return envVarOr(key, def, func(raw string) (string, error) { return raw, nil })
}

// EnvVarOrURL reads key as an absolute URL.
// Otherwise, def is parsed and its path reset to the root.
// EnvVarOrURL returns nil if def cannot be parsed either.
func EnvVarOrURL(key, def string) *url.URL {
	u := envVarOr(key, (*url.URL)(nil), url.ParseRequestURI)
	if u != nil {
		return u
	}

	u, err := url.ParseRequestURI(def)
	if err != nil {
		return nil
	}
	u.Path = "/"

	return u
}
