package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// A Visitor tracks a rate limiter and last seen time.
type Visitor struct {
	LastSeen time.Time
	Limiter  *rate.Limiter
}

// Visitors keeps one Visitor per client address.
type Visitors struct {
	sync.Mutex
	val         map[string]Visitor
	limit       rate.Limit
	burst       int
	lastCleanup time.Time
}

const (
	defaultLimit rate.Limit = 5
	defaultBurst            = 20

	visitorTTL      = time.Hour
	cleanupInterval = time.Minute
)

// NewVisitors constructs a Visitors whose new visitors are limited to
// limit requests every second with bursts of up to burst.
//
// A non-positive limit or burst falls back to 5 requests every second with bursts of up to 20.
func NewVisitors(limit rate.Limit, burst int) *Visitors {
	if limit <= 0 || burst <= 0 {
		limit, burst = defaultLimit, defaultBurst
	}

	return &Visitors{val: make(map[string]Visitor), limit: limit, burst: burst, lastCleanup: time.Now()}
}

// Fetch retrieves the Visitor for ip, creating one on first sight.
// Visitors unseen for over an hour are forgotten.
func (vs *Visitors) Fetch(ip string) Visitor {
	vs.Lock()
	defer vs.Unlock()

	now := time.Now().UTC()
	if now.Sub(vs.lastCleanup) > cleanupInterval {
		vs.cleanup(now)
	}

	v, ok := vs.val[ip]
	if !ok {
		v = Visitor{Limiter: rate.NewLimiter(vs.limit, vs.burst)}
	}

	v.LastSeen = now
	vs.val[ip] = v
	return v
}

// cleanup must be called with vs locked.
func (vs *Visitors) cleanup(now time.Time) {
	for ip, v := range vs.val {
		if now.Sub(v.LastSeen) > visitorTTL {
			delete(vs.val, ip)
		}
	}

	vs.lastCleanup = now
}

// RateLimit rejects requests from a client that exceeded its allowance with a 429,
// telling it in Retry-After how many seconds to wait.
//
// Clients are told apart by the address InjectIPAddress stored,
// or by GetIPAddress when InjectIPAddress did not run first.
//
// The approach follows https://www.alexedwards.net/blog/how-to-rate-limit-http-requests.
func RateLimit(visitors *Visitors) Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := IPAddressFromContext(r.Context())
			if ip == "" {
				ip = GetIPAddress(r.Header)
			}

			lim := visitors.Fetch(ip).Limiter
			if !lim.Allow() {
				wait := int(math.Ceil(1 / float64(lim.Limit())))
				w.Header().Set("Retry-After", strconv.Itoa(max(1, wait)))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			h.ServeHTTP(w, r)
		})
	}
}
