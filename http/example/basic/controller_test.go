package basic_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/example/basic"
	"github.com/xy-planning-network/trailhead/http/resp"
	"github.com/xy-planning-network/trailhead/http/router"
	"github.com/xy-planning-network/trailhead/logger"
)

func newTestRouter(t *testing.T, out io.Writer) router.Router {
	l := logger.New(slog.New(slog.NewJSONHandler(out, nil)))
	c, err := basic.NewController(l, resp.NewResponder(resp.WithLogger(l)))
	require.Nil(t, err)

	rt := router.New(trailhead.Testing, nil)
	require.Nil(t, rt.HandleRoutes(c.Routes()))

	return rt
}

func TestRequestParams(t *testing.T) {
	tcs := []struct {
		name   string
		target string
		code   int
		body   string
		logged []string
	}{
		{"V1", "/request-param-v1?username=userA&age=20", http.StatusOK, "ok", []string{`"username":"userA"`, `"age":20`}},
		{"V1-Missing-Age", "/request-param-v1?username=userA", http.StatusInternalServerError, `cannot coerce query parameter "age" value "" into int`, nil},
		{"V2", "/request-param-v2?username=userA&age=20", http.StatusOK, "ok", []string{`"username":"userA"`, `"age":20`}},
		{"V2-Missing-Username", "/request-param-v2?age=20", http.StatusBadRequest, `missing required query parameter "username"`, nil},
		{"V2-Missing-Age", "/request-param-v2?username=userA", http.StatusBadRequest, `missing required query parameter "age"`, nil},
		{"V2-Bad-Age", "/request-param-v2?username=userA&age=twenty", http.StatusInternalServerError, `value "twenty" into int`, nil},
		{"V2-Empty-Username", "/request-param-v2?username=&age=20", http.StatusOK, "ok", []string{`"username":""`}},
		{"V3", "/request-param-v3?username=userA&age=20", http.StatusOK, "ok", []string{`"username":"userA"`, `"age":20`}},
		{"V4", "/request-param-v4?username=userA&age=20", http.StatusOK, "ok", []string{`"username":"userA"`, `"age":20`}},
		{"Required", "/request-param-required?username=userA", http.StatusOK, "ok", []string{`"username":"userA"`, `"age":null`}},
		{"Required-Age", "/request-param-required?username=userA&age=20", http.StatusOK, "ok", []string{`"age":20`}},
		{"Required-Bad-Age", "/request-param-required?username=userA&age=twenty", http.StatusOK, "ok", []string{`"age":null`}},
		{"Required-Missing-Username", "/request-param-required?age=20", http.StatusBadRequest, `missing required query parameter "username"`, nil},
		{"Default", "/request-param-default", http.StatusOK, "ok", []string{`"username":"guest"`, `"age":-1`}},
		{"Default-Empty", "/request-param-default?username=&age=", http.StatusOK, "ok", []string{`"username":"guest"`, `"age":-1`}},
		{"Default-Set", "/request-param-default?username=userA&age=20", http.StatusOK, "ok", []string{`"username":"userA"`, `"age":20`}},
		{"Map", "/request-param-map?username=userA&age=20&username=userB", http.StatusOK, "ok", []string{`"paramMap":{"age":"20","username":"userA"}`, `"username":["userA","userB"]`}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			b := new(bytes.Buffer)
			rt := newTestRouter(t, b)
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, tc.target, nil)

			// Act
			rt.ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.Contains(t, w.Body.String(), tc.body)
			for _, l := range tc.logged {
				require.Contains(t, b.String(), l)
			}
		})
	}
}

func TestRequestParamForm(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	rt := newTestRouter(t, b)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/request-param-v2", strings.NewReader("username=userA&age=20"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	// Act
	rt.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", w.Body.String())
	require.Contains(t, b.String(), `"username":"userA"`)
}

func TestModelAttribute(t *testing.T) {
	tcs := []struct {
		name   string
		target string
		code   int
		logged string
	}{
		{"V1", "/model-attribute-v1?username=userA&age=20", http.StatusOK, `"helloData":{"username":"userA","age":20}`},
		{"V1-Zero", "/model-attribute-v1", http.StatusOK, `"helloData":{"username":"","age":0}`},
		{"V1-Bad-Age", "/model-attribute-v1?username=userA&age=twenty", http.StatusInternalServerError, ""},
		{"V2", "/model-attribute-v2?username=userA&age=20", http.StatusOK, `"helloData":{"username":"userA","age":20}`},
		{"V2-Bad-Age", "/model-attribute-v2?age=", http.StatusInternalServerError, ""},
		{"V3", "/model-attribute-v3?username=userA&age=20&other=x", http.StatusOK, `"helloData":{"username":"userA","age":20}`},
		{"V3-Bad-Age", "/model-attribute-v3?username=userA&age=twenty", http.StatusBadRequest, ""},
		{"V1-Repeated", "/model-attribute-v1?username=userA&username=userB&age=20", http.StatusOK, `"helloData":{"username":"userA","age":20}`},
		{"V3-Repeated", "/model-attribute-v3?username=userA&username=userB&age=20", http.StatusOK, `"helloData":{"username":"userA","age":20}`},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			b := new(bytes.Buffer)
			rt := newTestRouter(t, b)
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, tc.target, nil)

			// Act
			rt.ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.Contains(t, b.String(), tc.logged)
		})
	}
}

func TestRequestBodyJson(t *testing.T) {
	tcs := []struct {
		name string
		body string
		code int
		resp string
	}{
		{"Ok", `{"username":"userA","age":20}`, http.StatusOK, `{"data":{"username":"userA","age":20}}` + "\n"},
		{"Empty", "", http.StatusBadRequest, "empty request body"},
		{"Malformed", `{"username":`, http.StatusBadRequest, "failed decoding request body"},
		{"Bad-Age", `{"username":"userA","age":"twenty"}`, http.StatusBadRequest, "failed decoding request body"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			rt := newTestRouter(t, io.Discard)
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/request-body-json", strings.NewReader(tc.body))
			r.Header.Set("Content-Type", "application/json")

			// Act
			rt.ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.Contains(t, w.Body.String(), tc.resp)
		})
	}
}

func TestHeaders(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	rt := newTestRouter(t, b)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/headers", nil)
	r.Header.Set("Accept-Language", "ko-KR,ko;q=0.9,en-US;q=0.8")
	r.AddCookie(&http.Cookie{Name: "myCookie", Value: "yum"})

	// Act
	rt.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", w.Body.String())
	require.Contains(t, b.String(), `"host":"example.com"`)
	require.Contains(t, b.String(), `"httpMethod":"POST"`)
	require.Contains(t, b.String(), `"locale":"ko-KR"`)
	require.Contains(t, b.String(), `"myCookie":"yum"`)

	// Arrange
	b.Reset()
	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodGet, "/headers", nil)

	// Act
	rt.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, b.String(), `"myCookie":null`)
	require.Contains(t, b.String(), `"locale":"en-US"`)

	// Arrange
	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodGet, "/headers", nil)
	r.Host = ""

	// Act
	rt.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), `missing required header parameter "host"`)
}

func TestLocale(t *testing.T) {
	for _, tc := range []struct {
		name     string
		accept   string
		expected string
	}{
		{"None", "", "en-US"},
		{"Single", "ko-KR", "ko-KR"},
		{"Ordered", "da, en-gb;q=0.8, en;q=0.7", "da"},
		{"Weighted", "en;q=0.5, fr", "fr"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			h := make(http.Header)
			if tc.accept != "" {
				h.Set("Accept-Language", tc.accept)
			}

			// Act
			actual := basic.Locale(h)

			// Assert
			require.Equal(t, tc.expected, actual.String())
		})
	}
}

func TestResponseBody(t *testing.T) {
	tcs := []struct {
		target      string
		contentType string
		body        string
	}{
		{"/response-body-string-v1", "text/plain; charset=utf-8", "ok"},
		{"/response-body-string-v2", "text/plain; charset=utf-8", "ok"},
		{"/response-body-string-v3", "text/plain; charset=utf-8", "ok"},
		{"/response-body-json-v1", "application/json; charset=UTF-8", `{"data":{"username":"userA","age":20}}` + "\n"},
		{"/response-body-json-v2", "application/json; charset=UTF-8", `{"data":{"username":"userA","age":20}}` + "\n"},
	}

	for _, tc := range tcs {
		t.Run(tc.target, func(t *testing.T) {
			// Arrange
			rt := newTestRouter(t, io.Discard)
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, tc.target, nil)

			// Act
			rt.ServeHTTP(w, r)

			// Assert
			require.Equal(t, http.StatusOK, w.Code)
			require.Equal(t, tc.contentType, w.Header().Get("Content-Type"))
			require.Equal(t, tc.body, w.Body.String())
		})
	}
}

func TestMapping(t *testing.T) {
	tcs := []struct {
		method string
		target string
		code   int
		body   string
	}{
		{http.MethodGet, "/mapping/users", http.StatusOK, "get users"},
		{http.MethodPost, "/mapping/users", http.StatusOK, "post user"},
		{http.MethodGet, "/mapping/users/userA", http.StatusOK, "get userId=userA"},
		{http.MethodPatch, "/mapping/users/userA", http.StatusOK, "update userId=userA"},
		{http.MethodDelete, "/mapping/users/userA", http.StatusOK, "delete userId=userA"},
		{http.MethodPut, "/mapping/users/userA", http.StatusMethodNotAllowed, ""},
	}

	for _, tc := range tcs {
		t.Run(tc.method+tc.target, func(t *testing.T) {
			// Arrange
			rt := newTestRouter(t, io.Discard)
			w := httptest.NewRecorder()
			r := httptest.NewRequest(tc.method, tc.target, nil)

			// Act
			rt.ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.Equal(t, tc.body, w.Body.String())
		})
	}
}
