package bridge

import (
	"github.com/rs/zerolog"
)

// ServerOptions configure a Server.
type ServerOptions struct {
	Logger         zerolog.Logger
	ReadBufferSize      int
	MaxFrameSize        int
	StrictNotifications bool
	StreamableURI       string
	Cors                *Cors
}

// ServerOption mutates ServerOptions.
type ServerOption func(o *ServerOptions)

// WithLogger sets the server logger.
func WithLogger(logger zerolog.Logger) ServerOption {
	return func(o *ServerOptions) {
		o.Logger = logger
	}
}

// WithReadBufferSize sets the per-connection read buffer size.
func WithReadBufferSize(size int) ServerOption {
	return func(o *ServerOptions) {
		if size > 0 {
			o.ReadBufferSize = size
		}
	}
}

// WithMaxFrameSize caps a single frame; longer frames are answered with an invalid request error.
func WithMaxFrameSize(size int) ServerOption {
	return func(o *ServerOptions) {
		if size > 0 {
			o.MaxFrameSize = size
		}
	}
}

// WithStrictNotifications suppresses responses to frames without an id member.
func WithStrictNotifications(strict bool) ServerOption {
	return func(o *ServerOptions) {
		o.StrictNotifications = strict
	}
}

// WithStreamableURI sets the streamable HTTP mount point (default /mcp).
func WithStreamableURI(uri string) ServerOption {
	return func(o *ServerOptions) {
		if uri != "" {
			o.StreamableURI = uri
		}
	}
}

// WithCORS sets the CORS policy of the streamable HTTP transport.
func WithCORS(cors *Cors) ServerOption {
	return func(o *ServerOptions) {
		o.Cors = cors
	}
}

func newServerOptions(opts []ServerOption) *ServerOptions {
	ret := &ServerOptions{
		Logger:         zerolog.Nop(),
		ReadBufferSize: 64 * 1024,
		MaxFrameSize:   4 * 1024 * 1024,
		StreamableURI:  "/mcp",
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}
