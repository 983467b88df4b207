package identity

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// AuthorizationKey is the gRPC metadata key carrying the bearer token.
const AuthorizationKey = "authorization"

// PerRPCCredentials attaches identity bearer tokens to every remote call.
// It satisfies google.golang.org/grpc/credentials.PerRPCCredentials.
type PerRPCCredentials struct {
	source oauth2.TokenSource
	secure bool
}

// GetRequestMetadata returns the authorization header for the next call.
func (c *PerRPCCredentials) GetRequestMetadata(ctx context.Context, _ ...string) (map[string]string, error) {
	token, err := c.source.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to obtain identity token: %w", err)
	}
	return map[string]string{AuthorizationKey: token.Type() + " " + token.AccessToken}, nil
}

// RequireTransportSecurity reports whether the credentials require TLS.
func (c *PerRPCCredentials) RequireTransportSecurity() bool {
	return c.secure
}

// NewPerRPCCredentials wraps a token source; secure requires a TLS transport.
func NewPerRPCCredentials(source oauth2.TokenSource, secure bool) *PerRPCCredentials {
	return &PerRPCCredentials{source: source, secure: secure}
}
