package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/viant/mcpbridge/internal/collection"
	"github.com/viant/mcpbridge/schema"
)

var (
	// ErrNotFound is returned by Execute for an unregistered tool name.
	ErrNotFound = errors.New("tool not found")
	// ErrDuplicate is returned by Register when the name is already taken.
	ErrDuplicate = errors.New("tool already registered")
)

type (
	// Handler executes a tool with JSON arguments and returns a JSON result.
	Handler func(ctx context.Context, args json.RawMessage) (json.RawMessage, error)

	// Registration binds a tool name to its handler.
	Registration struct {
		Name        string
		Description string
		Parameters  []schema.ParameterDescriptor
		Handler     Handler
	}

	// Info is a registration snapshot entry returned by List.
	Info struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
	}

	// Registry is a process-local tool dispatch table.
	Registry struct {
		tools *collection.SyncMap[string, *Registration]
		order []string
		mux   sync.Mutex
	}
)

// Register adds a tool; a second registration with the same name is rejected and the first one kept.
func (r *Registry) Register(registration Registration) error {
	if registration.Name == "" {
		return fmt.Errorf("tool name was empty")
	}
	if registration.Handler == nil {
		return fmt.Errorf("tool %v: handler was nil", registration.Name)
	}
	r.mux.Lock()
	defer r.mux.Unlock()
	if !r.tools.PutIfAbsent(registration.Name, &registration) {
		return fmt.Errorf("%w: %v", ErrDuplicate, registration.Name)
	}
	r.order = append(r.order, registration.Name)
	return nil
}

// Execute dispatches to the named tool; handler failures are returned unchanged.
func (r *Registry) Execute(ctx context.Context, name string, args json.RawMessage) (json.RawMessage, error) {
	registration, ok := r.tools.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, name)
	}
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	return registration.Handler(ctx, args)
}

// Lookup returns the registration for name.
func (r *Registry) Lookup(name string) (*Registration, bool) {
	return r.tools.Get(name)
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.tools.Get(name)
	return ok
}

// List returns a snapshot of all registrations in registration order.
func (r *Registry) List() []Info {
	registrations := r.Registrations()
	result := make([]Info, 0, len(registrations))
	for _, registration := range registrations {
		result = append(result, Info{Name: registration.Name, Description: registration.Description})
	}
	return result
}

// Registrations returns a snapshot of all registrations in registration order.
func (r *Registry) Registrations() []*Registration {
	r.mux.Lock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	r.mux.Unlock()
	result := make([]*Registration, 0, len(names))
	for _, name := range names {
		if registration, ok := r.tools.Get(name); ok {
			result = append(result, registration)
		}
	}
	return result
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return r.tools.Len()
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{tools: collection.NewSyncMap[string, *Registration]()}
}
