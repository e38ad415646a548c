package basic

import (
	"net/http"

	"github.com/xy-planning-network/trailhead/http/resp"
)

// responseBodyStringV1 writes "ok" straight to the response.
func (c *Controller) responseBodyStringV1(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("ok"))
}

// responseBodyStringV2 answers "ok" with an explicit status code.
func (c *Controller) responseBodyStringV2(w http.ResponseWriter, r *http.Request) {
	c.rp.Text(w, r, resp.Code(http.StatusOK), resp.Data("ok"))
}

// responseBodyStringV3 answers "ok" with the default status code.
func (c *Controller) responseBodyStringV3(w http.ResponseWriter, r *http.Request) {
	c.ok(w, r)
}

// responseBodyJsonV1 answers a HelloData with an explicit status code.
func (c *Controller) responseBodyJsonV1(w http.ResponseWriter, r *http.Request) {
	data := HelloData{Username: "userA", Age: 20}
	c.rp.Json(w, r, resp.Code(http.StatusOK), resp.Data(data))
}

// responseBodyJsonV2 answers a HelloData with the default status code.
func (c *Controller) responseBodyJsonV2(w http.ResponseWriter, r *http.Request) {
	data := HelloData{Username: "userA", Age: 20}
	c.rp.Json(w, r, resp.Data(data))
}
