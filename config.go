package decoder

import (
	"github.com/samber/oops"

	"github.com/go-fritz/go-decoder/internal"
)

// DefaultMarker is the literal prefix announcing an obfuscated token
// inside an export document.
const DefaultMarker = "$$$$"

// EngineConfig contains configuration for creating an Engine.
// It follows the builder pattern for optional configuration and validation.
type EngineConfig struct {
	// Key is the document cipher key as 64 hex characters, usually the
	// output of DeriveDeviceKey.
	Key string

	// Marker is the literal token prefix. Default: DefaultMarker.
	Marker string

	// Escape controls whether recovered values are escaped for safe
	// literal substitution (backslash, ampersand, line delimiter and
	// embedded quotes). Default: true.
	Escape bool
}

// NewEngineConfig creates a new EngineConfig with sensible defaults for
// the given cipher key.
func NewEngineConfig(key string) *EngineConfig {
	return &EngineConfig{
		Key:    key,
		Marker: DefaultMarker,
		Escape: true,
	}
}

// WithMarker sets a non-default token marker.
func (c *EngineConfig) WithMarker(marker string) *EngineConfig {
	c.Marker = marker
	return c
}

// WithoutEscaping disables substitution escaping, so recovered values are
// spliced in verbatim.
func (c *EngineConfig) WithoutEscaping() *EngineConfig {
	c.Escape = false
	return c
}

// Validate checks the configuration for correctness.
func (c *EngineConfig) Validate() error {
	if c.Marker == "" {
		return oops.
			Code("INVALID_CONFIG").
			In("decoder").
			Errorf("token marker cannot be empty")
	}
	if len(c.Key) != 2*DeviceKeySize || !internal.IsHex(c.Key) {
		return oops.
			Code("KEY_DERIVATION_FAILED").
			In("decoder").
			With("key_length", len(c.Key)).
			Errorf("cipher key must be %d hex characters, got %d", 2*DeviceKeySize, len(c.Key))
	}
	return nil
}
