package bridge

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	mcpschema "github.com/viant/mcp-protocol/schema"
	"github.com/viant/mcpbridge/endpoint"
	"github.com/viant/mcpbridge/identity"
	"github.com/viant/mcpbridge/logger"
	"github.com/viant/mcpbridge/registry"
	"github.com/viant/mcpbridge/translator"
)

// Version is the bridge version reported in initialize.
const Version = "0.1.0"

// Service wires the pool, endpoint client, translator and server for one endpoint.
type Service struct {
	config     *Config
	logger     zerolog.Logger
	identity   *identity.Identity
	pool       *endpoint.Pool
	client     *endpoint.Client
	local      *registry.Registry
	translator *translator.Translator
	server     *Server
}

// Config returns the resolved configuration.
func (s *Service) Config() *Config {
	return s.config
}

// Translator returns the protocol translator.
func (s *Service) Translator() *translator.Translator {
	return s.translator
}

// Server returns the frame server.
func (s *Service) Server() *Server {
	return s.server
}

// Start serves clients on the configured transport until ctx is done or the transport fails.
func (s *Service) Start(ctx context.Context) error {
	logger := s.logger.With().Str("transport", s.config.Transport).Logger()
	switch s.config.Transport {
	case TransportStdio:
		logger.Info().Msg("bridge serving stdio")
		done := make(chan struct{})
		go func() {
			s.server.ServeStdio(ctx, os.Stdin, os.Stdout)
			close(done)
		}()
		select {
		case <-ctx.Done():
		case <-done:
		}
		return nil
	case TransportStreamable:
		server := s.server.HTTP(s.config.ListenAddress())
		go func() {
			<-ctx.Done()
			_ = server.Shutdown(context.Background())
		}()
		logger.Info().Str("address", server.Addr).Msg("bridge serving streamable HTTP")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	default:
		listener, err := net.Listen("tcp", s.config.ListenAddress())
		if err != nil {
			return fmt.Errorf("failed to listen on %v: %w", s.config.ListenAddress(), err)
		}
		go func() {
			<-ctx.Done()
			s.server.Shutdown()
		}()
		if err = s.server.Serve(ctx, listener); err != nil && !errors.Is(err, ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Close shuts the server down and retires pooled connections.
func (s *Service) Close() {
	s.server.Shutdown()
	s.pool.Clear()
}

// New resolves the identity, discovers the endpoint catalog and builds the service.
func New(ctx context.Context, config *Config, opts ...endpoint.Option) (*Service, error) {
	if err := config.Init(); err != nil {
		return nil, err
	}
	log := logger.New(&config.Logging, nil).With().Str("endpoint", config.EndpointID).Logger()
	resolver := identity.NewFileResolver(config.IdentityURL)
	id, err := resolver.Resolve(ctx, config.Identity)
	if err != nil {
		return nil, err
	}
	poolOptions := append([]endpoint.Option{
		endpoint.WithCallTimeout(config.CallTimeout),
		endpoint.WithTokenExpiry(config.TokenExpiry),
		endpoint.WithResolver(resolver),
		endpoint.WithLogger(log),
	}, opts...)
	ret := &Service{
		config:   config,
		logger:   log,
		identity: id,
		pool:     endpoint.NewPool(poolOptions...),
		local:    registry.New(),
	}
	ret.client = endpoint.NewClient(ret.pool, config.Address, config.EndpointID, config.Identity)
	if config.InfoTool {
		if err = ret.registerTools(); err != nil {
			return nil, err
		}
	}
	ret.translator, err = translator.New(ctx, ret.client, config.EndpointID,
		translator.WithLogger(log),
		translator.WithLocalTools(ret.local),
		translator.WithInstructions(config.Instructions),
		translator.WithArgumentValidation(*config.Validate),
		translator.WithImplementation(mcpschema.Implementation{Name: "mcp-bridge", Version: Version}),
	)
	if err != nil {
		ret.pool.Clear()
		return nil, err
	}
	ret.server = NewServer(ret.translator,
		WithLogger(log),
		WithCORS(config.Cors),
		WithMaxFrameSize(config.MaxFrameSize),
		WithStrictNotifications(config.StrictNotifications),
	)
	log.Info().Str("address", config.Address).Str("identity", config.Identity).Str("principal", id.Principal()).Msg("bridge ready")
	return ret, nil
}
