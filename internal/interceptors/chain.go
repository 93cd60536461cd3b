package interceptors

import (
	"net/http"
)

// Chain applies middleware so the first one listed is outermost
func Chain(h http.Handler, middleware ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middleware) - 1; i >= 0; i-- {
		h = middleware[i](h)
	}
	return h
}
