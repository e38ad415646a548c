package basic

import (
	"net/http"

	"github.com/xy-planning-network/trailhead/http/bind"
	"github.com/xy-planning-network/trailhead/logger"
	"golang.org/x/text/language"
)

// defaultLocale is the locale of a request without a usable Accept-Language header.
var defaultLocale = language.AmericanEnglish

// Locale resolves the locale a request prefers from its Accept-Language header.
// The tag with the highest quality wins; ties go to the first listed.
func Locale(h http.Header) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(h.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return defaultLocale
	}

	return tags[0]
}

// headers logs the method, locale, headers, and cookie of the request.
// The host header is required and the myCookie cookie is not.
func (c *Controller) headers(w http.ResponseWriter, r *http.Request) {
	br, _ := bind.RequestFromContext(r.Context())
	vals := bind.ValuesFromContext(r.Context())

	cookie := any(nil)
	if vals.IsSet("myCookie") {
		cookie = vals.String("myCookie")
	}

	c.l.Info("headers", &logger.LogContext{
		Data: map[string]any{
			"headerMap":  map[string][]string(br.Header),
			"host":       vals.String("host"),
			"httpMethod": r.Method,
			"locale":     Locale(br.Header).String(),
			"myCookie":   cookie,
		},
		Request: r,
	})

	c.ok(w, r)
}
