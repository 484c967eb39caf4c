// Package middleware provides HTTP middleware for cross-cutting concerns:
// CORS, request logging, request correlation, and path normalization.
package middleware

import "net/http"

// Middleware wraps an http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Chain applies middleware to a handler in reverse order, so the first
// middleware listed is the outermost.
func Chain(handler http.Handler, middleware ...Middleware) http.Handler {
	for i := len(middleware) - 1; i >= 0; i-- {
		handler = middleware[i](handler)
	}
	return handler
}
