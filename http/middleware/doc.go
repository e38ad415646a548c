/*
Package middleware defines what a middleware is in trailhead and a set of basic middlewares.

The available middlewares are:
  - CORS
  - ForceHTTPS
  - InjectIPAddress
  - LogRequest
  - RateLimit
  - ReportPanic
  - RequestID

The ranger package assembles these into a default chain.
Outside of it, the following can be copy-pasted:

	adpts := []middleware.Adapter{
		middleware.ReportPanic(env),
		middleware.RateLimit(middleware.NewVisitors(5, 20)),
		middleware.ForceHTTPS(env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(httpLogger),
		middleware.CORS(baseURL),
	}
*/
package middleware
