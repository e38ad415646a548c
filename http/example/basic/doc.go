/*
Package basic serves instructional handlers showing how a trailhead app
binds request data and writes responses.

Each route answers a single question:

  - /request-param-v1 through /request-param-v4: reading scalar query or form parameters,
    first by hand, then through a [bind.Target]
  - /request-param-required and /request-param-default: optional parameters and default values
  - /request-param-map: every parameter at once
  - /model-attribute-v1 through /model-attribute-v3: populating a [HelloData] from parameters
  - /request-body-json: populating a [HelloData] from a JSON body
  - /headers: the method, locale, headers, and cookies of a request
  - /response-body-string-v1 through v3 and /response-body-json-v1 and v2: writing text and JSON
  - /mapping/users: a resource addressed by path variables

A missing required parameter answers 400.
A value that cannot be coerced into a non-nullable type, such as "twenty" for an int, answers 500.
*/
package basic
