package basic

import (
	"net/http"
	"strconv"

	"github.com/xy-planning-network/trailhead/http/bind"
	"github.com/xy-planning-network/trailhead/http/resp"
	"github.com/xy-planning-network/trailhead/logger"
)

// requestParamV1 reads parameters by hand and writes "ok" without a Responder.
func (c *Controller) requestParamV1(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	raw := r.FormValue("age")
	age, err := strconv.Atoi(raw)
	if err != nil {
		err = &bind.TypeCoercionError{Name: "age", Source: bind.SourceQuery, Raw: raw, Kind: bind.Int, Err: err}
		c.rp.Err(w, r, err)
		return
	}

	c.l.Info("request-param-v1", &logger.LogContext{Data: map[string]any{"username": username, "age": age}})

	w.Write([]byte("ok"))
}

// requestParamV2 reads parameters the route's Target bound.
func (c *Controller) requestParamV2(w http.ResponseWriter, r *http.Request) {
	vals := bind.ValuesFromContext(r.Context())
	c.l.Info("request-param-v2", &logger.LogContext{
		Data: map[string]any{"username": vals.String("username"), "age": vals.Int("age")},
	})

	c.ok(w, r)
}

// requestParamV3 reads bound parameters by type.
func (c *Controller) requestParamV3(w http.ResponseWriter, r *http.Request) {
	vals := bind.ValuesFromContext(r.Context())
	username, _ := bind.Get[string](vals, "username")
	age, _ := bind.Get[int](vals, "age")

	c.l.Info("request-param-v3", &logger.LogContext{Data: map[string]any{"username": username, "age": age}})

	c.ok(w, r)
}

// requestParamV4 logs every bound parameter as is.
// Neither parameter is required, but an absent age still fails: an int cannot be left unset.
func (c *Controller) requestParamV4(w http.ResponseWriter, r *http.Request) {
	c.l.Info("request-param-v4", &logger.LogContext{Data: bind.ValuesFromContext(r.Context())})

	c.ok(w, r)
}

// requestParamRequired accepts requests without an age.
// An age that is not a number is treated as absent.
func (c *Controller) requestParamRequired(w http.ResponseWriter, r *http.Request) {
	vals := bind.ValuesFromContext(r.Context())
	c.l.Info("request-param-required", &logger.LogContext{
		Data: map[string]any{"username": vals.String("username"), "age": vals.OptionalInt("age")},
	})

	c.ok(w, r)
}

// requestParamDefault falls back to username "guest" and age -1 when either is absent or empty.
func (c *Controller) requestParamDefault(w http.ResponseWriter, r *http.Request) {
	vals := bind.ValuesFromContext(r.Context())
	c.l.Info("request-param-default", &logger.LogContext{
		Data: map[string]any{"username": vals.String("username"), "age": vals.Int("age")},
	})

	c.ok(w, r)
}

// requestParamMap reads every parameter, both by its first value and by all of them.
func (c *Controller) requestParamMap(w http.ResponseWriter, r *http.Request) {
	br, _ := bind.RequestFromContext(r.Context())

	first := make(map[string]any, len(br.Query))
	for k, v := range br.Query {
		first[k] = v[0]
	}

	c.l.Info("request-param-map", &logger.LogContext{
		Data: map[string]any{"paramMap": first, "multiValueMap": map[string][]string(br.Query)},
	})

	c.ok(w, r)
}

// modelAttributeV1 binds a HelloData from parameters.
func (c *Controller) modelAttributeV1(w http.ResponseWriter, r *http.Request) {
	br, _ := bind.RequestFromContext(r.Context())
	data, err := c.hello.Bind(br)
	if err != nil {
		c.rp.Err(w, r, err)
		return
	}

	c.l.Info("model-attribute-v1", &logger.LogContext{Data: map[string]any{"helloData": data}})

	c.ok(w, r)
}

// modelAttributeV2 binds parameters into an existing HelloData.
func (c *Controller) modelAttributeV2(w http.ResponseWriter, r *http.Request) {
	br, _ := bind.RequestFromContext(r.Context())

	var data HelloData
	if err := c.hello.BindInto(br, &data); err != nil {
		c.rp.Err(w, r, err)
		return
	}

	c.l.Info("model-attribute-v2", &logger.LogContext{Data: map[string]any{"helloData": data}})

	c.ok(w, r)
}

// modelAttributeV3 binds a HelloData from parameters through its struct tags.
func (c *Controller) modelAttributeV3(w http.ResponseWriter, r *http.Request) {
	br, _ := bind.RequestFromContext(r.Context())

	var data HelloData
	if err := c.parser.ParseQueryParams(br.Query, &data); err != nil {
		c.rp.Err(w, r, err)
		return
	}

	c.l.Info("model-attribute-v3", &logger.LogContext{Data: map[string]any{"helloData": data}})

	c.ok(w, r)
}

// requestBodyJson binds a HelloData from a JSON body and echoes it.
func (c *Controller) requestBodyJson(w http.ResponseWriter, r *http.Request) {
	var data HelloData
	if err := c.parser.ParseBody(r.Body, &data); err != nil {
		c.rp.Err(w, r, err)
		return
	}

	c.l.Info("request-body-json", &logger.LogContext{Data: map[string]any{"helloData": data}})

	c.rp.Json(w, r, resp.Data(data))
}
