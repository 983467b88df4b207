package counter

import (
	"context"
	"sync"

	"github.com/viant/mcpbridge/host"
	"github.com/viant/mcpbridge/internal/conv"
	"github.com/viant/mcpbridge/registry"
)

type (
	// Counter is a process wide integer cell.
	Counter struct {
		mux   sync.Mutex
		value int
	}

	AddInput struct {
		A int `json:"a" description:"first addend"`
		B int `json:"b" description:"second addend"`
	}

	IncrementInput struct {
		By *int `json:"by,omitempty" description:"step, defaults to 1"`
	}

	Empty struct{}

	Value struct {
		Value int    `json:"value"`
		Owner string `json:"owner,omitempty"`
	}
)

// Add returns a + b.
func (c *Counter) Add(ctx context.Context, input *AddInput) (int, error) {
	return input.A + input.B, nil
}

// Get returns the current value.
func (c *Counter) Get(ctx context.Context, _ *Empty) (*Value, error) {
	c.mux.Lock()
	defer c.mux.Unlock()
	return &Value{Value: c.value}, nil
}

// Increment adds the step and returns the new value.
func (c *Counter) Increment(ctx context.Context, input *IncrementInput) (*Value, error) {
	by := conv.AsInt(input.By)
	if input.By == nil {
		by = 1
	}
	c.mux.Lock()
	defer c.mux.Unlock()
	c.value += by
	return &Value{Value: c.value, Owner: host.Caller(ctx)}, nil
}

// Reset sets the value to zero.
func (c *Counter) Reset(ctx context.Context, _ *Empty) (*Value, error) {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.value = 0
	return &Value{Value: 0, Owner: host.Caller(ctx)}, nil
}

// Register exposes the counter procedures on h.
func Register(h *host.Host, c *Counter) error {
	queries := []func() (registry.Registration, error){
		func() (registry.Registration, error) {
			return registry.NewRegistration[AddInput, int]("add", "Adds two integers", c.Add)
		},
		func() (registry.Registration, error) {
			return registry.NewRegistration[Empty, *Value]("get", "Returns the counter value", c.Get)
		},
	}
	updates := []func() (registry.Registration, error){
		func() (registry.Registration, error) {
			return registry.NewRegistration[IncrementInput, *Value]("increment", "Increments the counter", c.Increment)
		},
		func() (registry.Registration, error) {
			return registry.NewRegistration[Empty, *Value]("reset", "Resets the counter to zero", c.Reset)
		},
	}
	for _, build := range queries {
		registration, err := build()
		if err != nil {
			return err
		}
		if err = h.RegisterQuery(registration); err != nil {
			return err
		}
	}
	for _, build := range updates {
		registration, err := build()
		if err != nil {
			return err
		}
		if err = h.RegisterUpdate(registration); err != nil {
			return err
		}
	}
	return nil
}

// New creates a counter host for endpointID.
func New(endpointID string, opts ...host.Option) (*host.Host, *Counter, error) {
	h, err := host.New(endpointID, "1.0.0", opts...)
	if err != nil {
		return nil, nil, err
	}
	c := &Counter{}
	if err = Register(h, c); err != nil {
		return nil, nil, err
	}
	return h, c, nil
}
