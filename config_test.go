package decoder

import (
	"strings"
	"testing"
)

func TestNewEngineConfigDefaults(t *testing.T) {
	key := strings.Repeat("ab", DeviceKeySize)
	config := NewEngineConfig(key)

	if config.Key != key {
		t.Errorf("expected key %q, got %q", key, config.Key)
	}
	if config.Marker != DefaultMarker {
		t.Errorf("expected marker %q, got %q", DefaultMarker, config.Marker)
	}
	if !config.Escape {
		t.Errorf("expected escaping enabled by default")
	}
}

func TestEngineConfigBuilders(t *testing.T) {
	config := NewEngineConfig(strings.Repeat("ab", DeviceKeySize)).
		WithMarker("####").
		WithoutEscaping()

	if config.Marker != "####" {
		t.Errorf("expected marker %q, got %q", "####", config.Marker)
	}
	if config.Escape {
		t.Errorf("expected escaping disabled")
	}
	if err := config.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestEngineConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		config    *EngineConfig
		wantError bool
	}{
		{
			name:   "valid",
			config: NewEngineConfig(strings.Repeat("00", DeviceKeySize)),
		},
		{
			name:      "empty key",
			config:    NewEngineConfig(""),
			wantError: true,
		},
		{
			name:      "odd length key",
			config:    NewEngineConfig(strings.Repeat("0", 2*DeviceKeySize-1)),
			wantError: true,
		},
		{
			name:      "non-hex key",
			config:    NewEngineConfig(strings.Repeat("gg", DeviceKeySize)),
			wantError: true,
		},
		{
			name:      "empty marker",
			config:    NewEngineConfig(strings.Repeat("00", DeviceKeySize)).WithMarker(""),
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantError && err == nil {
				t.Errorf("expected validation error")
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}
