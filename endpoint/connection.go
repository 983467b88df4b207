package endpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/viant/mcpbridge/identity"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type (
	// Key identifies a pooled connection.
	Key struct {
		Address  string
		Identity string
	}

	// Connection is a shared, reference counted endpoint connection bound to one identity.
	Connection struct {
		key      Key
		identity *identity.Identity
		cc       grpc.ClientConnInterface
		closer   interface{ Close() error }
		timeout  time.Duration
		rootKey  []byte
		refs     int32
		closed   int32
		closeErr error
		once     sync.Once
	}
)

// Key returns the pool key.
func (c *Connection) Key() Key {
	return c.key
}

// Identity returns the connection identity.
func (c *Connection) Identity() *identity.Identity {
	return c.identity
}

// RootKey returns trust material fetched during bootstrap (local endpoints only).
func (c *Connection) RootKey() []byte {
	return c.rootKey
}

// Closed reports whether the underlying transport was closed.
func (c *Connection) Closed() bool {
	return atomic.LoadInt32(&c.closed) == 1
}

// Query issues a read-only call.
func (c *Connection) Query(ctx context.Context, endpointID, method string, args json.RawMessage) ([]byte, error) {
	return c.Call(ctx, KindQuery, endpointID, method, args)
}

// Update issues a state changing call.
func (c *Connection) Update(ctx context.Context, endpointID, method string, args json.RawMessage) ([]byte, error) {
	return c.Call(ctx, KindUpdate, endpointID, method, args)
}

// Call encodes the arguments, invokes the remote procedure within the call timeout and returns raw result bytes.
func (c *Connection) Call(ctx context.Context, kind Kind, endpointID, method string, args json.RawMessage) ([]byte, error) {
	if c.Closed() {
		return nil, fmt.Errorf("connection %v was closed", c.key.Address)
	}
	request, err := EncodeCall(endpointID, method, args)
	if err != nil {
		return nil, err
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	reply := &wrapperspb.BytesValue{}
	if err = c.cc.Invoke(ctx, kind.FullMethod(), request, reply); err != nil {
		return nil, newRemoteError(kind, method, err)
	}
	return reply.GetValue(), nil
}

// bootstrap fetches the endpoint root key; local endpoints are not usable before it succeeds.
func (c *Connection) bootstrap(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	reply := &wrapperspb.BytesValue{}
	if err := c.cc.Invoke(ctx, StatusMethod, &emptypb.Empty{}, reply); err != nil {
		return newRemoteError(KindQuery, "status", err)
	}
	if len(reply.GetValue()) == 0 {
		return fmt.Errorf("endpoint returned empty root key")
	}
	c.rootKey = reply.GetValue()
	return nil
}

func (c *Connection) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Connection) acquire() {
	atomic.AddInt32(&c.refs, 1)
}

// Release returns a checkout; the transport closes once the pool and all users released it.
func (c *Connection) Release() {
	if atomic.AddInt32(&c.refs, -1) == 0 {
		_ = c.close()
	}
}

func (c *Connection) close() error {
	c.once.Do(func() {
		atomic.StoreInt32(&c.closed, 1)
		if c.closer != nil {
			c.closeErr = c.closer.Close()
		}
	})
	return c.closeErr
}

// newConnection creates a connection holding a single (pool) reference.
func newConnection(key Key, id *identity.Identity, cc grpc.ClientConnInterface, timeout time.Duration) *Connection {
	ret := &Connection{key: key, identity: id, cc: cc, timeout: timeout, refs: 1}
	if closer, ok := cc.(interface{ Close() error }); ok {
		ret.closer = closer
	}
	return ret
}
