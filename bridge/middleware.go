package bridge

import (
	"net/http"

	"github.com/viant/mcp-protocol/schema"
)

// Middleware wraps an http.Handler.
type Middleware func(next http.Handler) http.Handler

// Chain applies middlewares so that the first one is outermost.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

const protocolVersionHeader = "MCP-Protocol-Version"

// protocolVersion rejects unsupported MCP-Protocol-Version headers and advertises the bridge version.
func protocolVersion() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			version := r.Header.Get(protocolVersionHeader)
			if version != "" && version != schema.LatestProtocolVersion {
				http.Error(w, "invalid "+protocolVersionHeader, http.StatusBadRequest)
				return
			}
			w.Header().Set(protocolVersionHeader, schema.LatestProtocolVersion)
			next.ServeHTTP(w, r)
		})
	}
}

// originValidation rejects browser requests whose Origin is not allowed; "*" allows any.
// Requests without Origin pass.
func originValidation(allowed []string) Middleware {
	allowedMap := make(map[string]bool, len(allowed))
	for _, origin := range allowed {
		allowedMap[origin] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || allowedMap["*"] || allowedMap[origin] {
				next.ServeHTTP(w, r)
				return
			}
			http.Error(w, "origin not allowed", http.StatusForbidden)
		})
	}
}
