package identity

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

const (
	claimPublicKey = "pub"
	// DefaultTokenExpiry bounds the lifetime of a minted bearer token.
	DefaultTokenExpiry = 5 * time.Minute
)

// ErrInvalidToken is returned when a bearer token fails verification.
var ErrInvalidToken = errors.New("invalid identity token")

type tokenSource struct {
	identity *Identity
	audience string
	expiry   time.Duration
	now      func() time.Time
}

// Token mints a fresh EdDSA signed JWT for the identity.
func (s *tokenSource) Token() (*oauth2.Token, error) {
	issued := s.now()
	expiry := issued.Add(s.expiry)
	claims := jwt.MapClaims{
		"sub":          s.identity.Principal(),
		claimPublicKey: base64.StdEncoding.EncodeToString(s.identity.PublicKey()),
		"iat":          issued.Unix(),
		"exp":          expiry.Unix(),
	}
	if s.audience != "" {
		claims["aud"] = s.audience
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(s.identity.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token for %v: %w", s.identity.Name, err)
	}
	return &oauth2.Token{AccessToken: signed, TokenType: "Bearer", Expiry: expiry}, nil
}

// TokenSource returns a caching token source minting tokens valid for expiry.
// Anonymous identities have no token source.
func (i *Identity) TokenSource(audience string, expiry time.Duration) oauth2.TokenSource {
	if i.IsAnonymous() {
		return nil
	}
	if expiry <= 0 {
		expiry = DefaultTokenExpiry
	}
	return oauth2.ReuseTokenSource(nil, &tokenSource{identity: i, audience: audience, expiry: expiry, now: time.Now})
}

// Verify checks a bearer token and returns the caller principal.
// The token is self-certifying: the signing public key travels in the claims and
// must hash to the subject principal.
func Verify(ctx context.Context, token string, audience string) (string, error) {
	var principal string
	keyFunc := func(parsed *jwt.Token) (interface{}, error) {
		claims, ok := parsed.Claims.(jwt.MapClaims)
		if !ok {
			return nil, fmt.Errorf("unexpected claims type %T", parsed.Claims)
		}
		encoded, _ := claims[claimPublicKey].(string)
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil || len(raw) != ed25519.PublicKeySize {
			return nil, fmt.Errorf("invalid public key claim")
		}
		subject, _ := claims["sub"].(string)
		publicKey := ed25519.PublicKey(raw)
		if subject != Principal(publicKey) {
			return nil, fmt.Errorf("subject does not match public key")
		}
		principal = subject
		return publicKey, nil
	}
	options := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}), jwt.WithExpirationRequired()}
	if audience != "" {
		options = append(options, jwt.WithAudience(audience))
	}
	if _, err := jwt.Parse(token, keyFunc, options...); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return principal, nil
}
