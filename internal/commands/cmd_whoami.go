package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/drift-im/drift/internal/printer"
)

type WhoamiCmd struct {
	flags *Flags
}

// NewWhoamiCmd creates a new whoami command
func NewWhoamiCmd(flags *Flags) *WhoamiCmd {
	return &WhoamiCmd{flags: flags}
}

// Register adds the whoami command to the application
func (cmd *WhoamiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "whoami",
		Usage:     "Show the signed-in user",
		UsageText: "drift whoami",
		Action:    cmd.run,
	})

	return app
}

func (cmd *WhoamiCmd) run(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	user, ok, err := cmd.flags.Service.Session().Restore(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	if !ok {
		p.Infof("Not signed in")
		return cli.Exit("", 1)
	}

	p.Printf("%s", user.DisplayName)
	p.KeyValue("username", user.Username)
	p.KeyValue("status", user.Status)
	p.KeyValue("avatar", user.Avatar)
	return nil
}
