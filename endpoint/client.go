package endpoint

import (
	"context"
	"encoding/json"
)

type (
	// Querier issues read-only calls.
	Querier interface {
		Query(ctx context.Context, method string, args json.RawMessage) ([]byte, error)
	}

	// Caller issues read-only and state changing calls against one endpoint.
	Caller interface {
		Querier
		Update(ctx context.Context, method string, args json.RawMessage) ([]byte, error)
	}

	// Client is bound to one endpoint id and checks connections out of a shared pool per call.
	Client struct {
		endpointID string
		address    string
		identity   string
		pool       *Pool
	}
)

// EndpointID returns the target endpoint id.
func (c *Client) EndpointID() string {
	return c.endpointID
}

// Query implements Querier.
func (c *Client) Query(ctx context.Context, method string, args json.RawMessage) ([]byte, error) {
	return c.call(ctx, KindQuery, method, args)
}

// Update implements Caller.
func (c *Client) Update(ctx context.Context, method string, args json.RawMessage) ([]byte, error) {
	return c.call(ctx, KindUpdate, method, args)
}

func (c *Client) call(ctx context.Context, kind Kind, method string, args json.RawMessage) ([]byte, error) {
	conn, err := c.pool.Get(ctx, c.address, c.identity)
	if err != nil {
		return nil, err
	}
	defer conn.Release()
	return conn.Call(ctx, kind, c.endpointID, method, args)
}

// NewClient creates a client for endpointID reachable at address, authenticated as identityName.
func NewClient(pool *Pool, address, endpointID, identityName string) *Client {
	return &Client{endpointID: endpointID, address: address, identity: identityName, pool: pool}
}
