package middleware

import (
	"context"
	"net/http"
	"net/netip"
	"strings"

	"github.com/xy-planning-network/trailhead"
)

// UnknownIPAddress is reported when a request carries no public address.
const UnknownIPAddress = "0.0.0.0"

// forwardingHeaders are read, in order, for the address a request came from.
var forwardingHeaders = []string{"X-Forwarded-For", "X-Real-Ip"}

// nonPublic lists IANA special-purpose ranges [netip.Addr.IsPrivate] does not cover.
var nonPublic = []netip.Prefix{
	netip.MustParsePrefix("100.64.0.0/10"),
	netip.MustParsePrefix("192.0.0.0/24"),
	netip.MustParsePrefix("198.18.0.0/15"),
}

// InjectIPAddress stores the address GetIPAddress finds in the request's context
// under [trailhead.IpAddrKey].
func InjectIPAddress() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), trailhead.IpAddrKey, GetIPAddress(r.Header))
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IPAddressFromContext retrieves the address InjectIPAddress set for the request ctx belongs to.
func IPAddressFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(trailhead.IpAddrKey).(string)
	return ip
}

// GetIPAddress finds the client address in the "X-Forwarded-For" and "X-Real-Ip" headers.
//
// Every value of a header is considered, right to left,
// so the last public address before the first proxy wins.
// Unparsable and non-public addresses are skipped.
// GetIPAddress reports [UnknownIPAddress] when no public address is found.
func GetIPAddress(hm http.Header) string {
	for _, h := range forwardingHeaders {
		addrs := strings.Split(strings.Join(hm.Values(h), ","), ",")
		for i := len(addrs) - 1; i >= 0; i-- {
			addr, err := netip.ParseAddr(strings.TrimSpace(addrs[i]))
			if err != nil || !isPublic(addr) {
				continue
			}

			return addr.String()
		}
	}

	return UnknownIPAddress
}

func isPublic(addr netip.Addr) bool {
	addr = addr.Unmap()
	if !addr.IsGlobalUnicast() || addr.IsPrivate() {
		return false
	}

	for _, p := range nonPublic {
		if p.Contains(addr) {
			return false
		}
	}

	return true
}
