package translator

import (
	"github.com/rs/zerolog"
	"github.com/viant/mcp-protocol/schema"
	"github.com/viant/mcpbridge/registry"
)

// Option configures a Translator.
type Option func(t *Translator)

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(t *Translator) {
		t.logger = logger
	}
}

// WithLocalTools exposes in-process tools next to the remote ones.
func WithLocalTools(tools *registry.Registry) Option {
	return func(t *Translator) {
		t.local = tools
	}
}

// WithImplementation sets the server info reported by initialize.
func WithImplementation(info schema.Implementation) Option {
	return func(t *Translator) {
		t.info = info
	}
}

// WithInstructions sets the initialize instructions.
func WithInstructions(instructions string) Option {
	return func(t *Translator) {
		if instructions != "" {
			t.instructions = &instructions
		}
	}
}

// WithArgumentValidation toggles tools/call argument validation (enabled by default).
func WithArgumentValidation(enabled bool) Option {
	return func(t *Translator) {
		t.validate = enabled
	}
}
