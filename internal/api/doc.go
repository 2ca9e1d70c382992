// Package api serves the library over HTTP. It routes requests with chi,
// validates request bodies, translates service errors into status codes and
// returns JSON bodies. Error responses carry the request's trace ID so a
// client report can be matched to the server log.
package api
