package endpoint

import (
	"context"
	"crypto/tls"
	"net"
	"strings"

	"github.com/viant/mcpbridge/identity"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// Connector constructs a ready to use connection for a resolved identity.
type Connector interface {
	Connect(ctx context.Context, key Key, id *identity.Identity) (*Connection, error)
}

// ConnectorFunc adapts a function to Connector.
type ConnectorFunc func(ctx context.Context, key Key, id *identity.Identity) (*Connection, error)

// Connect implements Connector.
func (f ConnectorFunc) Connect(ctx context.Context, key Key, id *identity.Identity) (*Connection, error) {
	return f(ctx, key, id)
}

type grpcConnector struct {
	options *Options
}

// Connect dials the endpoint and, for local endpoints, performs the root key bootstrap.
func (g *grpcConnector) Connect(ctx context.Context, key Key, id *identity.Identity) (*Connection, error) {
	local := IsLocal(key.Address)
	if g.options.Local != nil {
		local = *g.options.Local
	}
	dialOptions := []grpc.DialOption{
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}
	if local {
		dialOptions = append(dialOptions, grpc.WithTransportCredentials(insecure.NewCredentials()))
	} else {
		tlsConfig := g.options.TLSConfig
		if tlsConfig == nil {
			tlsConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		dialOptions = append(dialOptions, grpc.WithTransportCredentials(credentials.NewTLS(tlsConfig)))
	}
	if source := id.TokenSource("", g.options.TokenExpiry); source != nil {
		dialOptions = append(dialOptions, grpc.WithPerRPCCredentials(identity.NewPerRPCCredentials(source, !local)))
	}
	dialOptions = append(dialOptions, g.options.DialOptions...)
	cc, err := grpc.NewClient(key.Address, dialOptions...)
	if err != nil {
		return nil, &DialError{Stage: DialStageConnect, Key: key, Err: err}
	}
	ret := newConnection(key, id, cc, g.options.CallTimeout)
	if local {
		if err = ret.bootstrap(ctx); err != nil {
			_ = ret.close()
			return nil, &DialError{Stage: DialStageBootstrap, Key: key, Err: err}
		}
	}
	return ret, nil
}

// IsLocal reports whether the address points at a loopback (development) endpoint.
func IsLocal(address string) bool {
	address = strings.TrimPrefix(address, "dns:///")
	address = strings.TrimPrefix(address, "passthrough:///")
	if strings.HasPrefix(address, "unix:") {
		return true
	}
	host := address
	if h, _, err := net.SplitHostPort(address); err == nil {
		host = h
	}
	host = strings.Trim(host, "[]")
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
