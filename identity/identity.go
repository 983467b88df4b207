package identity

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base32"
	"encoding/pem"
	"fmt"
	"strings"
)

const (
	// AnonymousName is the identity used when no credential is configured.
	AnonymousName = "anonymous"
	// AnonymousPrincipal is the principal reported for unauthenticated callers.
	AnonymousPrincipal = "2vxsx-fae"
)

// Identity is a named credential used to authenticate endpoint connections.
type Identity struct {
	Name       string
	PrivateKey ed25519.PrivateKey
}

// IsAnonymous reports whether the identity carries no key.
func (i *Identity) IsAnonymous() bool {
	return i == nil || len(i.PrivateKey) == 0
}

// PublicKey returns the identity public key, nil for anonymous.
func (i *Identity) PublicKey() ed25519.PublicKey {
	if i.IsAnonymous() {
		return nil
	}
	return i.PrivateKey.Public().(ed25519.PublicKey)
}

// Principal returns the textual principal derived from the public key.
func (i *Identity) Principal() string {
	if i.IsAnonymous() {
		return AnonymousPrincipal
	}
	return Principal(i.PublicKey())
}

// EncodePEM encodes the private key as PKCS#8 PEM.
func (i *Identity) EncodePEM() ([]byte, error) {
	if i.IsAnonymous() {
		return nil, fmt.Errorf("identity %v has no key", i.Name)
	}
	der, err := x509.MarshalPKCS8PrivateKey(i.PrivateKey)
	if err != nil {
		return nil, err
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}

// Principal derives a self-authenticating principal: base32 of sha224(public key), grouped by five.
func Principal(publicKey ed25519.PublicKey) string {
	digest := sha256.Sum224(publicKey)
	encoded := strings.ToLower(base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(digest[:]))
	var groups []string
	for len(encoded) > 5 {
		groups = append(groups, encoded[:5])
		encoded = encoded[5:]
	}
	groups = append(groups, encoded)
	return strings.Join(groups, "-")
}

// Anonymous returns the anonymous identity.
func Anonymous() *Identity {
	return &Identity{Name: AnonymousName}
}

// Generate creates a new identity with a random Ed25519 key.
func Generate(name string) (*Identity, error) {
	_, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return &Identity{Name: name, PrivateKey: privateKey}, nil
}
