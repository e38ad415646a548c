package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/xy-planning-network/trailhead"
)

// A LogRequestRecord is the access log entry LogRequest writes for each request.
type LogRequestRecord struct {
	BodySize       int           `json:"bodySize"`
	Duration       time.Duration `json:"duration"`
	Host           string        `json:"host"`
	ID             string        `json:"id,omitempty"`
	IPAddr         string        `json:"ipAddr,omitempty"`
	Method         string        `json:"method"`
	Path           string        `json:"path"`
	Protocol       string        `json:"protocol"`
	Referrer       string        `json:"referrer,omitempty"`
	ReqContentType string        `json:"reqContentType,omitempty"`
	Scheme         string        `json:"scheme"`
	Status         int           `json:"status"`
	URI            string        `json:"uri"`
	UserAgent      string        `json:"userAgent,omitempty"`
}

// NewLogRequestRecord collects the attributes of r worth logging,
// masking the values of sensitive query parameters.
func NewLogRequestRecord(r *http.Request) LogRequestRecord {
	q := r.URL.Query()
	trailhead.MaskAll(q)

	uri := r.URL.Path
	if query := q.Encode(); query != "" {
		uri += "?" + query
	}

	scheme := r.URL.Scheme
	switch {
	case scheme != "":
	case r.TLS != nil:
		scheme = "https"
	case r.Header.Get("X-Forwarded-Proto") != "":
		scheme = r.Header.Get("X-Forwarded-Proto")
	default:
		scheme = "http"
	}

	return LogRequestRecord{
		Host:           r.Host,
		ID:             GetRequestID(r.Context()),
		IPAddr:         IPAddressFromContext(r.Context()),
		Method:         r.Method,
		Path:           r.URL.Path,
		Protocol:       r.Proto,
		Referrer:       r.Referer(),
		ReqContentType: r.Header.Get("Content-Type"),
		Scheme:         scheme,
		URI:            uri,
		UserAgent:      r.UserAgent(),
	}
}

// attrs flattens rec into attributes, dropping empty optional values.
func (rec LogRequestRecord) attrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.Int("bodySize", rec.BodySize),
		slog.Duration("duration", rec.Duration),
		slog.String("host", rec.Host),
		slog.String("method", rec.Method),
		slog.String("path", rec.Path),
		slog.String("protocol", rec.Protocol),
		slog.String("scheme", rec.Scheme),
		slog.Int("status", rec.Status),
		slog.String("uri", rec.URI),
	}

	for _, a := range []slog.Attr{
		slog.String("id", rec.ID),
		slog.String("ipAddr", rec.IPAddr),
		slog.String("referrer", rec.Referrer),
		slog.String("reqContentType", rec.ReqContentType),
		slog.String("userAgent", rec.UserAgent),
	} {
		if a.Value.String() != "" {
			attrs = append(attrs, a)
		}
	}

	return attrs
}

// LogRequest logs a LogRequestRecord through l once the request has been handled.
//
// LogRequest scrubs the values for the following query keys:
//   - password
//   - token
//
// If l is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(l *slog.Logger) Adapter {
	if l == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &recordingWriter{ResponseWriter: w}

			h.ServeHTTP(rw, r)

			rec := NewLogRequestRecord(r)
			rec.BodySize = rw.size
			rec.Duration = time.Since(start)
			rec.Status = rw.status
			if rec.Status == 0 {
				rec.Status = http.StatusOK
			}

			l.LogAttrs(r.Context(), slog.LevelInfo, "", rec.attrs()...)
		})
	}
}

// recordingWriter captures the status code and size of a response.
type recordingWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (rw *recordingWriter) WriteHeader(code int) {
	if rw.status == 0 {
		rw.status = code
	}

	rw.ResponseWriter.WriteHeader(code)
}

func (rw *recordingWriter) Write(b []byte) (int, error) {
	if rw.status == 0 {
		rw.status = http.StatusOK
	}

	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

// Unwrap exposes the wrapped writer to [net/http.ResponseController].
func (rw *recordingWriter) Unwrap() http.ResponseWriter { return rw.ResponseWriter }
