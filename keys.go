package trailhead

// A Key names a value trailhead stores in a request's context.
// Its type keeps it from colliding with keys set by other packages.
type Key string

const (
	// BindRequestKey stashes the bind.Request built for an HTTP request.
	BindRequestKey Key = "BindRequestKey"

	// BindValuesKey stashes the bind.Values bound for a route's declared params.
	BindValuesKey Key = "BindValuesKey"

	// IpAddrKey stashes the IP address of an HTTP request being handled by trailhead.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "trailhead context key: " + string(k)
}
