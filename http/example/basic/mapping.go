package basic

import (
	"net/http"

	"github.com/xy-planning-network/trailhead/http/bind"
	"github.com/xy-planning-network/trailhead/http/resp"
	"github.com/xy-planning-network/trailhead/logger"
)

func (c *Controller) getUsers(w http.ResponseWriter, r *http.Request) {
	c.text(w, r, "get users")
}

func (c *Controller) addUser(w http.ResponseWriter, r *http.Request) {
	c.text(w, r, "post user")
}

func (c *Controller) findUser(w http.ResponseWriter, r *http.Request) {
	c.text(w, r, "get userId="+bind.ValuesFromContext(r.Context()).String("userId"))
}

func (c *Controller) updateUser(w http.ResponseWriter, r *http.Request) {
	c.text(w, r, "update userId="+bind.ValuesFromContext(r.Context()).String("userId"))
}

func (c *Controller) deleteUser(w http.ResponseWriter, r *http.Request) {
	c.text(w, r, "delete userId="+bind.ValuesFromContext(r.Context()).String("userId"))
}

// text logs and answers msg as plain text.
func (c *Controller) text(w http.ResponseWriter, r *http.Request, msg string) {
	c.l.Info(msg, &logger.LogContext{Request: r})
	c.rp.Text(w, r, resp.Data(msg))
}
