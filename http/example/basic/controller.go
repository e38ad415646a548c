package basic

import (
	"net/http"

	"github.com/xy-planning-network/trailhead/http/bind"
	"github.com/xy-planning-network/trailhead/http/req"
	"github.com/xy-planning-network/trailhead/http/resp"
	"github.com/xy-planning-network/trailhead/http/router"
	"github.com/xy-planning-network/trailhead/logger"
)

// A Controller holds what the handlers of this package share.
type Controller struct {
	l      logger.Logger
	parser *req.Parser
	rp     *resp.Responder
	hello  *bind.Record[HelloData]

	helloParams    *bind.Target
	looseParams    *bind.Target
	requiredParams *bind.Target
	defaultParams  *bind.Target
	headerParams   *bind.Target
	userParams     *bind.Target
}

// NewController constructs a Controller logging through l and responding through rp.
//
// A nil l logs through [log/slog.Default]; a nil rp responds through a default [*resp.Responder].
func NewController(l logger.Logger, rp *resp.Responder) (*Controller, error) {
	if l == nil {
		l = logger.New(nil)
	}

	if rp == nil {
		rp = resp.NewResponder(resp.WithLogger(l))
	}

	c := &Controller{l: l, parser: req.NewParser(), rp: rp}

	var err error
	if c.hello, err = newHelloRecord(); err != nil {
		return nil, err
	}

	if c.helloParams, err = bind.NewTarget(
		bind.QueryParam("username", bind.String),
		bind.QueryParam("age", bind.Int),
	); err != nil {
		return nil, err
	}

	if c.looseParams, err = bind.NewTarget(
		bind.QueryParam("username", bind.String, bind.NotRequired()),
		bind.QueryParam("age", bind.Int, bind.NotRequired()),
	); err != nil {
		return nil, err
	}

	if c.requiredParams, err = bind.NewTarget(
		bind.QueryParam("username", bind.String),
		bind.QueryParam("age", bind.OptionalInt, bind.NotRequired()),
	); err != nil {
		return nil, err
	}

	if c.defaultParams, err = bind.NewTarget(
		bind.QueryParam("username", bind.String, bind.Default("guest")),
		bind.QueryParam("age", bind.Int, bind.NotRequired(), bind.Default("-1")),
	); err != nil {
		return nil, err
	}

	if c.headerParams, err = bind.NewTarget(
		bind.HeaderParam("host", bind.String),
		bind.CookieParam("myCookie", bind.String, bind.NotRequired()),
	); err != nil {
		return nil, err
	}

	if c.userParams, err = bind.NewTarget(bind.PathParam("userId", bind.String)); err != nil {
		return nil, err
	}

	return c, nil
}

// Routes lists every route c handles.
// An empty Method matches any HTTP method.
func (c *Controller) Routes() []router.Route {
	return []router.Route{
		{Path: "/request-param-v1", Handler: c.requestParamV1},
		{Path: "/request-param-v2", Handler: c.requestParamV2, Params: c.helloParams},
		{Path: "/request-param-v3", Handler: c.requestParamV3, Params: c.helloParams},
		{Path: "/request-param-v4", Handler: c.requestParamV4, Params: c.looseParams},
		{Path: "/request-param-required", Handler: c.requestParamRequired, Params: c.requiredParams},
		{Path: "/request-param-default", Handler: c.requestParamDefault, Params: c.defaultParams},
		{Path: "/request-param-map", Handler: c.requestParamMap},
		{Path: "/model-attribute-v1", Handler: c.modelAttributeV1},
		{Path: "/model-attribute-v2", Handler: c.modelAttributeV2},
		{Path: "/model-attribute-v3", Handler: c.modelAttributeV3},
		{Path: "/request-body-json", Method: http.MethodPost, Handler: c.requestBodyJson},
		{Path: "/headers", Handler: c.headers, Params: c.headerParams},
		{Path: "/response-body-string-v1", Method: http.MethodGet, Handler: c.responseBodyStringV1},
		{Path: "/response-body-string-v2", Method: http.MethodGet, Handler: c.responseBodyStringV2},
		{Path: "/response-body-string-v3", Method: http.MethodGet, Handler: c.responseBodyStringV3},
		{Path: "/response-body-json-v1", Method: http.MethodGet, Handler: c.responseBodyJsonV1},
		{Path: "/response-body-json-v2", Method: http.MethodGet, Handler: c.responseBodyJsonV2},
		{Path: "/mapping/users", Method: http.MethodGet, Handler: c.getUsers},
		{Path: "/mapping/users", Method: http.MethodPost, Handler: c.addUser},
		{Path: "/mapping/users/{userId}", Method: http.MethodGet, Handler: c.findUser, Params: c.userParams},
		{Path: "/mapping/users/{userId}", Method: http.MethodPatch, Handler: c.updateUser, Params: c.userParams},
		{Path: "/mapping/users/{userId}", Method: http.MethodDelete, Handler: c.deleteUser, Params: c.userParams},
	}
}

// ok answers "ok" as plain text.
func (c *Controller) ok(w http.ResponseWriter, r *http.Request) {
	c.rp.Text(w, r, resp.Data("ok"))
}
