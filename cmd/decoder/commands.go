package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/go-fritz/go-decoder/cmd/decoder/commands"
)

// commonFlags are shared by every subcommand. The environment file
// override also comes from DECODER_ENV_FILE; the flag wins.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable the debug trace on stderr (per-token failures and engine events)",
		},
		&cli.StringFlag{
			Name:    "env-file",
			Aliases: []string{"e"},
			Usage:   "Alternate environment file holding the device identifiers",
		},
	}
}

func getCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "decode-secrets",
			Usage:     "Rewrite an export document with its obfuscated secrets decrypted",
			ArgsUsage: "[serial [mac [wlan-key [tr069-passphrase]]]]   (one argument: a 64-hex-char key)",
			Flags: append(commonFlags(),
				&cli.StringFlag{
					Name:    "in",
					Aliases: []string{"i"},
					Usage:   "Input document (default: stdin)",
				},
				&cli.StringFlag{
					Name:    "out",
					Aliases: []string{"o"},
					Usage:   "Output file, written atomically (default: stdout)",
				},
				&cli.BoolFlag{
					Name:  "raw",
					Usage: "Splice recovered values in verbatim, without substitution escaping",
				},
			),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				envFile := setup(cmd)
				return commands.RunDecodeSecrets(
					cmd.Args().Slice(),
					envFile,
					cmd.String("in"),
					cmd.String("out"),
					cmd.Bool("raw"),
				)
			},
		},
		{
			Name:      "encode-secret",
			Usage:     "Encrypt a value from stdin into an obfuscated token for the given device",
			ArgsUsage: "[serial [mac [wlan-key [tr069-passphrase]]]]   (one argument: a 64-hex-char key)",
			Flags: append(commonFlags(),
				&cli.StringFlag{
					Name:    "value",
					Aliases: []string{"v"},
					Usage:   "Value to encrypt (default: read from stdin)",
				},
			),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				envFile := setup(cmd)
				return commands.RunEncodeSecret(
					cmd.Args().Slice(),
					envFile,
					cmd.String("value"),
					cmd.IsSet("value"),
				)
			},
		},
		{
			Name:      "device-key",
			Usage:     "Print the 256-bit document cipher key for a device",
			ArgsUsage: "[serial [mac [wlan-key [tr069-passphrase]]]]",
			Flags:     commonFlags(),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunDeviceKey(cmd.Args().Slice(), setup(cmd))
			},
		},
		{
			Name:      "cert-password",
			Usage:     "Print the GUI certificate private-key password for a MAC address",
			ArgsUsage: "[mac]   (default: the local device's maca entry)",
			Flags:     commonFlags(),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunCertPassword(cmd.Args().First(), setup(cmd))
			},
		},
		{
			Name:  "b32dec",
			Usage: "Decode base32 data from stdin to stdout",
			Flags: append(commonFlags(),
				&cli.BoolFlag{
					Name:    "hex-output",
					Aliases: []string{"x"},
					Usage:   "Write the decoded bytes as hexadecimal text",
				},
			),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				setup(cmd)
				return commands.RunB32Dec(cmd.Bool("hex-output"))
			},
		},
		{
			Name:  "b32enc",
			Usage: "Encode data from stdin as base32 on stdout",
			Flags: append(commonFlags(),
				&cli.BoolFlag{
					Name:    "hex-input",
					Aliases: []string{"x"},
					Usage:   "Treat stdin as hexadecimal text instead of raw bytes",
				},
			),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				setup(cmd)
				return commands.RunB32Enc(cmd.Bool("hex-input"))
			},
		},
	}
}
