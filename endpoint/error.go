package endpoint

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DialStage describes where connection construction failed.
type DialStage string

const (
	DialStageIdentity  DialStage = "identity"
	DialStageConnect   DialStage = "connect"
	DialStageBootstrap DialStage = "bootstrap"
)

// DialError wraps connection construction failures with a stage indicator.
type DialError struct {
	Stage DialStage
	Key   Key
	Err   error
}

// Error implements the error interface.
func (e *DialError) Error() string {
	if e == nil {
		return "endpoint dial error"
	}
	return fmt.Sprintf("endpoint %v (identity: %v) %s error: %v", e.Key.Address, e.Key.Identity, e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *DialError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// RemoteError is a call rejected by the endpoint.
type RemoteError struct {
	Kind    Kind
	Method  string
	Code    codes.Code
	Message string
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	if e.Code == codes.DeadlineExceeded {
		return fmt.Sprintf("%v %v timed out: %v", e.Kind, e.Method, e.Message)
	}
	return fmt.Sprintf("%v %v rejected (%v): %v", e.Kind, e.Method, e.Code, e.Message)
}

func newRemoteError(kind Kind, method string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &RemoteError{Kind: kind, Method: method, Code: codes.DeadlineExceeded, Message: err.Error()}
	}
	s, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("%v %v failed: %w", kind, method, err)
	}
	return &RemoteError{Kind: kind, Method: method, Code: s.Code(), Message: s.Message()}
}
