package logger

import (
	"github.com/getsentry/sentry-go"
)

// A SentryOptFn configures the client a SentryLogger reports through.
type SentryOptFn func(*sentry.ClientOptions)

// WithTransport sets the transport events are sent with.
func WithTransport(t sentry.Transport) SentryOptFn {
	return func(o *sentry.ClientOptions) { o.Transport = t }
}

// WithRelease sets the release events are tagged with.
func WithRelease(release string) SentryOptFn {
	return func(o *sentry.ClientOptions) { o.Release = release }
}
