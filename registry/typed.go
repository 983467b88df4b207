package registry

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/mcpbridge/schema"
)

// NewRegistration adapts a typed function into a Registration. Parameters are derived from I.
func NewRegistration[I any, O any](name, description string, fn func(ctx context.Context, input *I) (O, error)) (Registration, error) {
	var zero I
	params, err := schema.ParametersOf(&zero)
	if err != nil {
		return Registration{}, fmt.Errorf("tool %v: %w", name, err)
	}
	return Registration{
		Name:        name,
		Description: description,
		Parameters:  params,
		Handler: func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
			input := new(I)
			if len(args) > 0 && string(args) != "null" {
				if err := json.Unmarshal(args, input); err != nil {
					return nil, fmt.Errorf("invalid arguments: %w", err)
				}
			}
			output, err := fn(ctx, input)
			if err != nil {
				return nil, err
			}
			return json.Marshal(output)
		},
	}, nil
}

// RegisterTool registers a typed function.
func RegisterTool[I any, O any](r *Registry, name, description string, fn func(ctx context.Context, input *I) (O, error)) error {
	registration, err := NewRegistration[I, O](name, description, fn)
	if err != nil {
		return err
	}
	return r.Register(registration)
}
