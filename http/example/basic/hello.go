package basic

import (
	"github.com/xy-planning-network/trailhead/http/bind"
)

// HelloData is the record the model-attribute, request-body, and response-body handlers exchange.
type HelloData struct {
	Username string `json:"username" schema:"username"`
	Age      int    `json:"age" schema:"age"`
}

// newHelloRecord describes how HelloData is bound from query or form parameters.
func newHelloRecord() (*bind.Record[HelloData], error) {
	return bind.NewRecord(
		bind.StringField("username", func(d *HelloData) *string { return &d.Username }),
		bind.IntField("age", func(d *HelloData) *int { return &d.Age }),
	)
}
