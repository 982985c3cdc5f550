// File: server/handler_chain.go
// License: Apache-2.0
//
// Middleware composition for route handlers.

package server

// Middleware wraps a Handler with cross-cutting behavior. Middleware
// applies to pattern routes only, not to the default or error handlers.
type Middleware func(Handler) Handler

// NewHandlerChain wraps base in mw; the first middleware in the slice
// becomes the outermost layer and therefore runs first.
func NewHandlerChain(base Handler, mw ...Middleware) Handler {
	h := base
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}
