/*
Package req parses the payload of an HTTP request into a tagged struct.

JSON bodies are matched to fields by "json" tags and query or form values by "schema" tags.
Once decoded, the struct is checked against its "validate" tags.

Failures are translated into trailhead sentinel errors, whatever the encoding,
so handlers can map them onto responses the same way bind.StatusCode does:

	if err := p.ParseQueryParams(r.URL.Query(), &data); err != nil {
		status := bind.StatusCode(err) // 400 for malformed or invalid data
	}

Package req is the struct-tag counterpart to the explicit descriptors of package bind.
*/
package req
