package bridge

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/jsonrpc/transport/server/http/streamable"
)

// rpcHandler adapts Handler to a streamable HTTP session handler.
type rpcHandler struct {
	handler Handler
	logger  zerolog.Logger
}

// Serve implements transport.Handler.
func (h *rpcHandler) Serve(ctx context.Context, request *jsonrpc.Request, response *jsonrpc.Response) {
	translated := h.handler.Handle(ctx, request)
	response.Result = translated.Result
	response.Error = translated.Error
}

// OnNotification implements transport.Handler.
func (h *rpcHandler) OnNotification(ctx context.Context, notification *jsonrpc.Notification) {
	h.logger.Debug().Str("method", notification.Method).Msg("notification received")
}

func (s *Server) newHandler(ctx context.Context, _ transport.Transport) transport.Handler {
	return &rpcHandler{handler: s.handler, logger: s.logger}
}

// HTTPHandler returns the streamable HTTP transport mounted at the configured URI.
func (s *Server) HTTPHandler() http.Handler {
	cors := s.options.Cors
	if cors == nil {
		cors = DefaultCors()
	}
	middlewares := []Middleware{
		protocolVersion(),
		cors.Middleware,
		originValidation(cors.AllowOrigins),
	}
	handler := streamable.New(s.newHandler, streamable.WithURI(s.options.StreamableURI))
	mux := http.NewServeMux()
	mux.Handle(s.options.StreamableURI, Chain(handler, middlewares...))
	return mux
}

// HTTP creates an HTTP server for the streamable transport; the default address binds to localhost only.
func (s *Server) HTTP(addr string) *http.Server {
	if addr == "" {
		addr = "127.0.0.1:5000"
	}
	return &http.Server{Addr: addr, Handler: s.HTTPHandler()}
}
