package identity

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	resolver := NewFileResolver(t.TempDir())
	generated, err := Generate("alice")
	require.Nil(t, err)
	require.Nil(t, resolver.Store(ctx, generated))

	var testCases = []struct {
		description string
		name        string
		anonymous   bool
		notFound    bool
		expectErr   bool
	}{
		{description: "stored identity", name: "alice"},
		{description: "empty name is anonymous", name: "", anonymous: true},
		{description: "anonymous", name: AnonymousName, anonymous: true},
		{description: "missing identity", name: "bob", expectErr: true, notFound: true},
		{description: "path traversal", name: "../alice", expectErr: true},
	}
	for _, testCase := range testCases {
		actual, err := resolver.Resolve(ctx, testCase.name)
		if testCase.expectErr {
			assert.NotNil(t, err, testCase.description)
			assert.Equal(t, testCase.notFound, errors.Is(err, ErrNotFound), testCase.description)
			continue
		}
		require.Nil(t, err, testCase.description)
		assert.Equal(t, testCase.anonymous, actual.IsAnonymous(), testCase.description)
		if !testCase.anonymous {
			assert.Equal(t, generated.Principal(), actual.Principal(), testCase.description)
		}
	}
}

func TestStaticResolver(t *testing.T) {
	alice, err := Generate("alice")
	require.Nil(t, err)
	resolver := StaticResolver{"alice": alice}
	actual, err := resolver.Resolve(context.Background(), "alice")
	require.Nil(t, err)
	assert.Same(t, alice, actual)
	_, err = resolver.Resolve(context.Background(), "carol")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestPrincipal(t *testing.T) {
	alice, err := Generate("alice")
	require.Nil(t, err)
	principal := alice.Principal()
	assert.Equal(t, principal, Principal(alice.PublicKey()))
	for _, group := range strings.Split(principal, "-") {
		assert.LessOrEqual(t, len(group), 5)
	}
	assert.Equal(t, AnonymousPrincipal, Anonymous().Principal())
}

func TestTokenSource_Verify(t *testing.T) {
	ctx := context.Background()
	alice, err := Generate("alice")
	require.Nil(t, err)

	source := alice.TokenSource("endpoint-1", time.Minute)
	require.NotNil(t, source)
	token, err := source.Token()
	require.Nil(t, err)
	assert.Equal(t, "Bearer", token.Type())

	principal, err := Verify(ctx, token.AccessToken, "endpoint-1")
	require.Nil(t, err)
	assert.Equal(t, alice.Principal(), principal)

	_, err = Verify(ctx, token.AccessToken, "endpoint-2")
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, err = Verify(ctx, token.AccessToken+"x", "")
	assert.True(t, errors.Is(err, ErrInvalidToken))

	assert.Nil(t, Anonymous().TokenSource("endpoint-1", time.Minute))
}

func TestTokenSource_Expired(t *testing.T) {
	alice, err := Generate("alice")
	require.Nil(t, err)
	source := &tokenSource{identity: alice, expiry: time.Minute, now: func() time.Time { return time.Now().Add(-time.Hour) }}
	token, err := source.Token()
	require.Nil(t, err)
	_, err = Verify(context.Background(), token.AccessToken, "")
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestPerRPCCredentials(t *testing.T) {
	alice, err := Generate("alice")
	require.Nil(t, err)
	credentials := NewPerRPCCredentials(alice.TokenSource("", time.Minute), false)
	md, err := credentials.GetRequestMetadata(context.Background())
	require.Nil(t, err)
	assert.True(t, strings.HasPrefix(md[AuthorizationKey], "Bearer "))
	assert.False(t, credentials.RequireTransportSecurity())
}
