// Package commands implements the decoder CLI subcommands.
package commands

import (
	"github.com/allisson/go-env"
)

// Config holds CLI configuration read from environment variables.
type Config struct {
	// EnvFile is an alternate path for the device environment store,
	// used when the process does not run on the router itself.
	EnvFile string
	// LogLevel enables the debug trace when set to "debug".
	LogLevel string
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		EnvFile:  env.GetString("DECODER_ENV_FILE", ""),
		LogLevel: env.GetString("DECODER_LOG_LEVEL", ""),
	}
}
