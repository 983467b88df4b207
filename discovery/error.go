package discovery

import (
	"errors"
	"fmt"
)

// Kind classifies a discovery failure.
type Kind string

const (
	// KindCallFailed means the metadata procedure could not be called.
	KindCallFailed Kind = "callFailed"
	// KindInvalidMetadata means the endpoint answered with an unusable catalog.
	KindInvalidMetadata Kind = "invalidMetadata"
)

var (
	// ErrCallFailed matches discovery errors of KindCallFailed.
	ErrCallFailed = errors.New("metadata call failed")
	// ErrInvalidMetadata matches discovery errors of KindInvalidMetadata.
	ErrInvalidMetadata = errors.New("invalid metadata")
)

// Error is returned by Discover.
type Error struct {
	Kind       Kind
	EndpointID string
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Kind == KindCallFailed {
		return fmt.Sprintf("failed to fetch metadata of endpoint %v: %v", e.EndpointID, e.Err)
	}
	return fmt.Sprintf("endpoint %v returned invalid metadata: %v", e.EndpointID, e.Err)
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrCallFailed:
		return e.Kind == KindCallFailed
	case ErrInvalidMetadata:
		return e.Kind == KindInvalidMetadata
	}
	return false
}
