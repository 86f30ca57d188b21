// Package main provides the decoder command line tool for recovering
// FRITZ!OS export secrets.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

const version = "0.2.0"

func main() {
	cmd := &cli.Command{
		Name:     "decoder",
		Usage:    "Recover device-specific secrets from FRITZ!OS configuration exports",
		Version:  version,
		Commands: getCommands(),
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		// Fatal errors print one bolded diagnostic line and exit non-zero.
		fmt.Fprintf(os.Stderr, "\x1b[1m%s\x1b[0m\n", err)
		os.Exit(1)
	}
}
