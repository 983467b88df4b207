package identity

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

// ErrNotFound is returned when a named identity does not exist.
var ErrNotFound = errors.New("identity not found")

const identityFile = "identity.pem"

type (
	// Resolver resolves an identity name into a usable credential.
	Resolver interface {
		Resolve(ctx context.Context, name string) (*Identity, error)
	}

	// ResolverFunc adapts a function to Resolver.
	ResolverFunc func(ctx context.Context, name string) (*Identity, error)

	// FileResolver loads PEM encoded Ed25519 keys from <baseURL>/<name>/identity.pem.
	FileResolver struct {
		baseURL string
		fs      afs.Service
	}

	// StaticResolver serves identities from memory.
	StaticResolver map[string]*Identity
)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(ctx context.Context, name string) (*Identity, error) {
	return f(ctx, name)
}

// Resolve implements Resolver.
func (s StaticResolver) Resolve(_ context.Context, name string) (*Identity, error) {
	if name == "" || name == AnonymousName {
		return Anonymous(), nil
	}
	if ret, ok := s[name]; ok {
		return ret, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrNotFound, name)
}

// Resolve implements Resolver.
func (r *FileResolver) Resolve(ctx context.Context, name string) (*Identity, error) {
	if name == "" || name == AnonymousName {
		return Anonymous(), nil
	}
	if strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return nil, fmt.Errorf("invalid identity name: %q", name)
	}
	URL := r.keyURL(name)
	exists, err := r.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check identity %v: %w", name, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %v (%v)", ErrNotFound, name, URL)
	}
	data, err := r.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load identity %v: %w", name, err)
	}
	key, err := jwt.ParseEdPrivateKeyFromPEM(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse identity %v: %w", name, err)
	}
	privateKey, ok := key.(ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("identity %v: unsupported key type %T", name, key)
	}
	return &Identity{Name: name, PrivateKey: privateKey}, nil
}

// Store persists the identity key under the resolver base URL.
func (r *FileResolver) Store(ctx context.Context, identity *Identity) error {
	data, err := identity.EncodePEM()
	if err != nil {
		return err
	}
	return r.fs.Upload(ctx, r.keyURL(identity.Name), 0600, bytes.NewReader(data))
}

func (r *FileResolver) keyURL(name string) string {
	return url.Join(r.baseURL, name, identityFile)
}

// DefaultBaseURL returns the default identity store location.
func DefaultBaseURL() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return path.Join(home, ".config", "mcpbridge", "identity")
}

// NewFileResolver creates a file resolver; an empty baseURL selects DefaultBaseURL.
func NewFileResolver(baseURL string) *FileResolver {
	if baseURL == "" {
		baseURL = DefaultBaseURL()
	}
	return &FileResolver{baseURL: baseURL, fs: afs.New()}
}
