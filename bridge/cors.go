package bridge

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	allowOriginHeader      = "Access-Control-Allow-Origin"
	allowHeadersHeader     = "Access-Control-Allow-Headers"
	allowMethodsHeader     = "Access-Control-Allow-Methods"
	requestMethodHeader    = "Access-Control-Request-Method"
	allowCredentialsHeader = "Access-Control-Allow-Credentials"
	exposeHeadersHeader    = "Access-Control-Expose-Headers"
	maxAgeHeader           = "Access-Control-Max-Age"
	separator              = ", "
)

// Cors is the CORS policy of the streamable HTTP transport.
type Cors struct {
	AllowCredentials *bool    `yaml:"allowCredentials,omitempty"`
	AllowHeaders     []string `yaml:"allowHeaders,omitempty"`
	AllowMethods     []string `yaml:"allowMethods,omitempty"`
	AllowOrigins     []string `yaml:"allowOrigins,omitempty"`
	ExposeHeaders    []string `yaml:"exposeHeaders,omitempty"`
	MaxAge           *int64   `yaml:"maxAge,omitempty"`
}

func (c *Cors) originMap() map[string]bool {
	var result = make(map[string]bool)
	for _, origin := range c.AllowOrigins {
		result[origin] = true
	}
	return result
}

// Middleware sets CORS headers and answers preflight requests.
func (c *Cors) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.setHeaders(w, r)
		if r.Method == http.MethodOptions && r.Header.Get(requestMethodHeader) != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (c *Cors) setHeaders(writer http.ResponseWriter, request *http.Request) {
	if c == nil {
		return
	}
	origin := request.Header.Get("Origin")
	allowedOrigins := c.originMap()
	switch {
	case allowedOrigins["*"] && origin == "":
		writer.Header().Set(allowOriginHeader, "*")
	case allowedOrigins["*"] || (origin != "" && allowedOrigins[origin]):
		writer.Header().Set(allowOriginHeader, origin)
	}
	if len(c.AllowMethods) > 0 {
		methods := strings.Join(c.AllowMethods, separator)
		if methods == "*" {
			methods = "GET, POST, DELETE, OPTIONS"
		}
		writer.Header().Set(allowMethodsHeader, methods)
	}
	if len(c.AllowHeaders) > 0 {
		allowedHeaders := strings.Join(c.AllowHeaders, separator)
		if allowedHeaders == "*" {
			allowedHeaders = "Content-Type,Authorization,Mcp-Session-Id,MCP-Protocol-Version"
		}
		writer.Header().Set(allowHeadersHeader, allowedHeaders)
	}
	if c.AllowCredentials != nil {
		writer.Header().Set(allowCredentialsHeader, strconv.FormatBool(*c.AllowCredentials))
	}
	if c.MaxAge != nil {
		writer.Header().Set(maxAgeHeader, strconv.Itoa(int(*c.MaxAge)))
	}
	if len(c.ExposeHeaders) > 0 {
		exposedHeaders := strings.Join(c.ExposeHeaders, separator)
		if exposedHeaders == "*" {
			exposedHeaders = "Content-Type,Mcp-Session-Id,MCP-Protocol-Version"
		}
		writer.Header().Set(exposeHeadersHeader, exposedHeaders)
	}
}

// DefaultCors allows local browser clients only.
func DefaultCors() *Cors {
	return &Cors{
		AllowHeaders:  []string{"*"},
		AllowMethods:  []string{"*"},
		AllowOrigins:  []string{"http://localhost", "http://127.0.0.1"},
		ExposeHeaders: []string{"*"},
	}
}
