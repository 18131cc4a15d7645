package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/chatcrypt/cmd/app/commands"
	"github.com/allisson/chatcrypt/internal/app"
	"github.com/allisson/chatcrypt/internal/config"
)

func fileKeyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "key", Aliases: []string{"k"}, Usage: "Base64 file key (32 bytes)"},
		&cli.StringFlag{Name: "iv", Usage: "Base64 file IV (12 bytes)"},
		&cli.StringFlag{Name: "wrapped-key", Aliases: []string{"w"}, Usage: "Base64 KMS-wrapped file key"},
		&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Required: true, Usage: "Input file path"},
		&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Required: true, Usage: "Output file path (must not exist)"},
	}
}

func fileKeyFlagValues(cmd *cli.Command) commands.FileKeyFlags {
	return commands.FileKeyFlags{
		Key:        cmd.String("key"),
		IV:         cmd.String("iv"),
		WrappedKey: cmd.String("wrapped-key"),
	}
}

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-kms-key",
			Usage: "Generate a local base64key:// URI for KMS_KEY_URI (development only)",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				return commands.RunCreateKMSKey(container.Logger(), commands.DefaultIO().Writer, cmd.String("format"))
			},
		},
		{
			Name:  "generate-file-key",
			Usage: "Generate a file key, IV and salt",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "wrap",
					Usage: "Also print the key wrapped with KMS_KEY_URI",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				fileUseCase, err := container.FileUseCase()
				if err != nil {
					return err
				}
				return commands.RunGenerateFileKey(
					ctx,
					fileUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.Bool("wrap"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "encrypt-file",
			Usage: "Encrypt a file into the chunked stream format",
			Flags: fileKeyFlags(),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				fileUseCase, err := container.FileUseCase()
				if err != nil {
					return err
				}
				return commands.RunEncryptFile(
					ctx, fileUseCase, container.Logger(), fileKeyFlagValues(cmd), cmd.String("in"), cmd.String("out"),
				)
			},
		},
		{
			Name:  "decrypt-file",
			Usage: "Decrypt a file produced by encrypt-file",
			Flags: fileKeyFlags(),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				fileUseCase, err := container.FileUseCase()
				if err != nil {
					return err
				}
				return commands.RunDecryptFile(
					ctx, fileUseCase, container.Logger(), fileKeyFlagValues(cmd), cmd.String("in"), cmd.String("out"),
				)
			},
		},
	}
}
