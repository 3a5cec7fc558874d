// Package middleware contains HTTP middleware for the Fiber application.
//
// It covers the cross-cutting concerns that run before every handler:
//
//   - Auth: validates the X-Api-Key header against the configured key.
//   - RayID: tags every request with a unique ID, stored in the request
//     locals and echoed in the response headers for log correlation.
//
// The middleware is registered globally in the application setup, before
// the feature routes are mounted.
package middleware
