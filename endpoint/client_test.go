package endpoint_test

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jsonrpc"
	"github.com/viant/mcpbridge/endpoint"
	"github.com/viant/mcpbridge/host"
	"github.com/viant/mcpbridge/identity"
	"github.com/viant/mcpbridge/registry"
	"github.com/viant/mcpbridge/schema"
	"github.com/viant/mcpbridge/translator"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/test/bufconn"
)

type whoamiInput struct{}

func startHost(t *testing.T, opts ...host.Option) (*host.Host, func(ctx context.Context, address string) (net.Conn, error)) {
	h, err := host.New("counter", "1.0.0", opts...)
	require.NoError(t, err)
	whoami, err := registry.NewRegistration[whoamiInput, string]("whoami", "returns caller principal", func(ctx context.Context, input *whoamiInput) (string, error) {
		return host.Caller(ctx), nil
	})
	require.NoError(t, err)
	require.NoError(t, h.RegisterQuery(whoami))
	require.NoError(t, h.RegisterQuery(registry.Registration{
		Name: "echo",
		Handler: func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
			return args, nil
		},
	}))
	require.NoError(t, h.RegisterQuery(registry.Registration{
		Name: "slow",
		Handler: func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(500 * time.Millisecond):
				return json.RawMessage(`"done"`), nil
			}
		},
	}))
	require.NoError(t, h.RegisterUpdate(registry.Registration{
		Name: "fail",
		Handler: func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
			return nil, errors.New("boom")
		},
	}))

	listener := bufconn.Listen(1 << 20)
	server := h.NewServer()
	go func() { _ = server.Serve(listener) }()
	t.Cleanup(server.Stop)
	return h, func(ctx context.Context, address string) (net.Conn, error) {
		return listener.DialContext(ctx)
	}
}

func TestClient_EndToEnd(t *testing.T) {
	h, dialer := startHost(t)
	alice, err := identity.Generate("alice")
	require.NoError(t, err)
	pool := endpoint.NewPool(
		endpoint.WithLocal(true),
		endpoint.WithResolver(identity.StaticResolver{"alice": alice}),
		endpoint.WithDialOptions(grpc.WithContextDialer(dialer)),
	)
	defer pool.Clear()

	anonymous := endpoint.NewClient(pool, "passthrough:///bufnet", "counter", "")
	data, err := anonymous.Query(context.Background(), "whoami", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `"2vxsx-fae"`, string(data))

	named := endpoint.NewClient(pool, "passthrough:///bufnet", "counter", "alice")
	data, err = named.Query(context.Background(), "whoami", nil)
	require.NoError(t, err)
	var principal string
	require.NoError(t, json.Unmarshal(data, &principal))
	assert.Equal(t, alice.Principal(), principal)
	assert.Equal(t, 2, pool.Len())

	conn, err := pool.Get(context.Background(), "passthrough:///bufnet", "alice")
	require.NoError(t, err)
	assert.EqualValues(t, h.RootKey(), conn.RootKey())
	conn.Release()

	data, err = named.Query(context.Background(), "echo", json.RawMessage(`{"id": 9007199254740993}`))
	require.NoError(t, err)
	assert.Equal(t, `{"id":9007199254740993}`, string(data))

	_, err = named.Update(context.Background(), "fail", nil)
	remoteErr := &endpoint.RemoteError{}
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, codes.Unknown, remoteErr.Code)
	assert.Contains(t, remoteErr.Message, "boom")

	_, err = named.Query(context.Background(), "fail", nil)
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, codes.FailedPrecondition, remoteErr.Code)
}

func TestClient_AnonymousRejected(t *testing.T) {
	_, dialer := startHost(t, host.WithAnonymous(false))
	pool := endpoint.NewPool(
		endpoint.WithLocal(true),
		endpoint.WithResolver(identity.StaticResolver{}),
		endpoint.WithDialOptions(grpc.WithContextDialer(dialer)),
	)
	defer pool.Clear()
	client := endpoint.NewClient(pool, "passthrough:///bufnet", "counter", "")
	_, err := client.Query(context.Background(), "whoami", nil)
	remoteErr := &endpoint.RemoteError{}
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, codes.Unauthenticated, remoteErr.Code)
}

func TestClient_CallTimeout(t *testing.T) {
	_, dialer := startHost(t)
	pool := endpoint.NewPool(
		endpoint.WithLocal(true),
		endpoint.WithCallTimeout(50*time.Millisecond),
		endpoint.WithResolver(identity.StaticResolver{}),
		endpoint.WithDialOptions(grpc.WithContextDialer(dialer)),
	)
	defer pool.Clear()
	client := endpoint.NewClient(pool, "passthrough:///bufnet", "counter", "")

	started := time.Now()
	_, err := client.Query(context.Background(), "slow", nil)
	assert.Less(t, time.Since(started), 400*time.Millisecond)
	remoteErr := &endpoint.RemoteError{}
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, codes.DeadlineExceeded, remoteErr.Code)
	assert.Contains(t, err.Error(), "timed out")

	bridge, err := translator.New(context.Background(), client, "counter")
	require.NoError(t, err)
	response := bridge.Handle(context.Background(), &jsonrpc.Request{
		Jsonrpc: jsonrpc.Version,
		Id:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`{"name":"slow","arguments":{}}`),
	})
	require.NotNil(t, response.Error)
	assert.EqualValues(t, schema.CodeInternalError, response.Error.Code)
	assert.Contains(t, response.Error.Message, "timed out")
}
