package endpoint

import (
	"crypto/tls"
	"time"

	"github.com/rs/zerolog"
	"github.com/viant/mcpbridge/identity"
	"google.golang.org/grpc"
)

const (
	// DefaultCallTimeout bounds every remote call.
	DefaultCallTimeout = 30 * time.Second
)

type (
	// Options configure connection construction.
	Options struct {
		CallTimeout time.Duration
		TokenExpiry time.Duration
		Local       *bool
		TLSConfig   *tls.Config
		DialOptions []grpc.DialOption
		Resolver    identity.Resolver
		Connector   Connector
		Logger      zerolog.Logger
	}

	// Option mutates Options.
	Option func(o *Options)
)

// WithCallTimeout sets the per call timeout.
func WithCallTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.CallTimeout = timeout
	}
}

// WithTokenExpiry sets the identity bearer token lifetime.
func WithTokenExpiry(expiry time.Duration) Option {
	return func(o *Options) {
		o.TokenExpiry = expiry
	}
}

// WithLocal overrides loopback detection; local endpoints use plaintext and require trust bootstrap.
func WithLocal(local bool) Option {
	return func(o *Options) {
		o.Local = &local
	}
}

// WithTLSConfig sets the TLS config used for non local endpoints.
func WithTLSConfig(config *tls.Config) Option {
	return func(o *Options) {
		o.TLSConfig = config
	}
}

// WithDialOptions appends gRPC dial options.
func WithDialOptions(options ...grpc.DialOption) Option {
	return func(o *Options) {
		o.DialOptions = append(o.DialOptions, options...)
	}
}

// WithResolver sets the identity resolver.
func WithResolver(resolver identity.Resolver) Option {
	return func(o *Options) {
		o.Resolver = resolver
	}
}

// WithConnector replaces the connection constructor.
func WithConnector(connector Connector) Option {
	return func(o *Options) {
		o.Connector = connector
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

func newOptions(opts []Option) *Options {
	ret := &Options{
		CallTimeout: DefaultCallTimeout,
		TokenExpiry: identity.DefaultTokenExpiry,
		Logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.Resolver == nil {
		ret.Resolver = identity.NewFileResolver("")
	}
	if ret.Connector == nil {
		ret.Connector = &grpcConnector{options: ret}
	}
	return ret
}
