package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/chatcrypt/cmd/app/commands"
	"github.com/allisson/chatcrypt/internal/app"
	"github.com/allisson/chatcrypt/internal/config"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-auth-token",
			Usage: "Issue an API bearer token and print the hash for AUTH_TOKEN_HASHES",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				tokenUseCase, err := container.TokenUseCase()
				if err != nil {
					return err
				}
				return commands.RunCreateAuthToken(
					ctx,
					tokenUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
	}
}
