package main

import (
	"os"
	"strings"

	"github.com/go-i2p/logger"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/go-fritz/go-decoder/cmd/decoder/commands"
)

// setup applies the environment configuration and the --debug flag before
// a command action runs. It returns the resolved environment file path;
// the --env-file flag wins over DECODER_ENV_FILE.
func setup(cmd *cli.Command) string {
	cfg := commands.LoadConfig()

	if cmd.Bool("debug") || strings.EqualFold(cfg.LogLevel, "debug") {
		l := logger.GetGoI2PLogger()
		l.SetOutput(os.Stderr)
		l.SetLevel(logrus.DebugLevel)
	}

	if envFile := cmd.String("env-file"); envFile != "" {
		return envFile
	}
	return cfg.EnvFile
}
