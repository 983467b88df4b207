package host

import (
	"crypto/ed25519"

	"github.com/rs/zerolog"
)

// Option configures a Host.
type Option func(h *Host)

// WithRootKey sets the trust material returned by Status.
func WithRootKey(key ed25519.PublicKey) Option {
	return func(h *Host) {
		h.rootKey = key
	}
}

// WithAnonymous controls whether unauthenticated callers are accepted (default true).
func WithAnonymous(allowed bool) Option {
	return func(h *Host) {
		h.anonymous = allowed
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(h *Host) {
		h.logger = logger
	}
}
