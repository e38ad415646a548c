/*
Package resp provides a high-level API for responding to HTTP requests
with an easy way to configure the responses application-wide.

resp provides four ways of responding to an HTTP request:
  - writing plain text
  - writing JSON data
  - redirecting
  - reporting an error

Each is configured per request with [Fn] functional options:

	doer.Text(w, r, resp.Data("ok"))
	doer.Json(w, r, resp.Code(http.StatusCreated), resp.Data(user))
	doer.Err(w, r, err)

[Responder.Err] derives the status code from the error,
so a request binding failure answers 400 when a parameter is missing
and 500 when a value cannot become the primitive a handler declared.
*/
package resp
