package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/mcpbridge/schema"
)

func constant(value string) Handler {
	return func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
		return json.RawMessage(value), nil
	}
}

func TestRegistry_Register(t *testing.T) {
	var testCases = []struct {
		description  string
		registration Registration
		expectErr    bool
	}{
		{description: "valid", registration: Registration{Name: "echo", Handler: constant(`1`)}},
		{description: "empty name", registration: Registration{Handler: constant(`1`)}, expectErr: true},
		{description: "nil handler", registration: Registration{Name: "nil"}, expectErr: true},
	}
	for _, testCase := range testCases {
		reg := New()
		err := reg.Register(testCase.registration)
		assert.Equal(t, testCase.expectErr, err != nil, testCase.description)
	}
}

func TestRegistry_DuplicateRejected(t *testing.T) {
	reg := New()
	require.Nil(t, reg.Register(Registration{Name: "tool", Description: "first", Handler: constant(`"first"`)}))
	err := reg.Register(Registration{Name: "tool", Description: "second", Handler: constant(`"second"`)})
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrDuplicate))

	out, err := reg.Execute(context.Background(), "tool", nil)
	require.Nil(t, err)
	assert.Equal(t, `"first"`, string(out))
	assert.Equal(t, []Info{{Name: "tool", Description: "first"}}, reg.List())
}

func TestRegistry_Execute(t *testing.T) {
	reg := New()
	failure := errors.New("boom")
	require.Nil(t, reg.Register(Registration{Name: "fail", Handler: func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
		return nil, failure
	}}))
	require.Nil(t, reg.Register(Registration{Name: "echo", Handler: func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
		return args, nil
	}}))

	_, err := reg.Execute(context.Background(), "missing", nil)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = reg.Execute(context.Background(), "fail", nil)
	assert.Equal(t, failure, err)

	out, err := reg.Execute(context.Background(), "echo", nil)
	require.Nil(t, err)
	assert.Equal(t, `{}`, string(out))
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	reg := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = reg.Register(Registration{Name: fmt.Sprintf("tool-%d", i%10), Handler: constant(`true`)})
		}(i)
		go func() {
			defer wg.Done()
			_ = reg.List()
			_, _ = reg.Execute(context.Background(), "tool-0", nil)
		}()
	}
	wg.Wait()
	assert.Equal(t, 10, reg.Len())
	assert.Len(t, reg.List(), 10)
}

func TestRegisterTool(t *testing.T) {
	type addition struct {
		A int `json:"a"`
		B int `json:"b"`
	}
	reg := New()
	err := RegisterTool[addition, int](reg, "add", "Add two integers", func(ctx context.Context, input *addition) (int, error) {
		return input.A + input.B, nil
	})
	require.Nil(t, err)

	registration, ok := reg.Lookup("add")
	require.True(t, ok)
	assert.Equal(t, []schema.ParameterDescriptor{
		{Name: "a", Type: schema.TypeInteger, Required: true},
		{Name: "b", Type: schema.TypeInteger, Required: true},
	}, registration.Parameters)

	out, err := reg.Execute(context.Background(), "add", json.RawMessage(`{"a":2,"b":3}`))
	require.Nil(t, err)
	assert.Equal(t, `5`, string(out))

	_, err = reg.Execute(context.Background(), "add", json.RawMessage(`{"a":"x"}`))
	assert.NotNil(t, err)
}
