package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/drift-im/drift/internal/core/identity"
	"github.com/drift-im/drift/internal/printer"
)

type LoginCmd struct {
	flags    *Flags
	username string
	password string
}

// NewLoginCmd creates a new login command
func NewLoginCmd(flags *Flags) *LoginCmd {
	return &LoginCmd{flags: flags}
}

// Register adds the login command to the application
func (cmd *LoginCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "login",
		Usage:       "Sign in and persist the session",
		UsageText:   "drift login -u <username> -p <password>",
		Description: "Signs in with the given credentials and stores the session so the TUI skips the login screen.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "username",
				Aliases:     []string{"u"},
				Usage:       "account username",
				Required:    true,
				Destination: &cmd.username,
			},
			&cli.StringFlag{
				Name:        "password",
				Aliases:     []string{"p"},
				Usage:       "account password",
				Required:    true,
				Destination: &cmd.password,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LoginCmd) run(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	user, err := cmd.flags.Service.Session().Login(ctx, cmd.username, cmd.password)
	if err != nil {
		var authErr *identity.AuthError
		if errors.As(err, &authErr) {
			p.Errorf("Login failed: %s", authErr.Reason)
			return cli.Exit("", 1)
		}
		return fmt.Errorf("login: %w", err)
	}

	p.Successf("Signed in as %s", user.Username)
	return nil
}
