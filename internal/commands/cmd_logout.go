package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/drift-im/drift/internal/printer"
)

type LogoutCmd struct {
	flags *Flags
}

// NewLogoutCmd creates a new logout command
func NewLogoutCmd(flags *Flags) *LogoutCmd {
	return &LogoutCmd{flags: flags}
}

// Register adds the logout command to the application
func (cmd *LogoutCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "logout",
		Usage:       "Clear the persisted session",
		UsageText:   "drift logout",
		Description: "Clears the stored session. The next run of drift starts at the login screen.",
		Action:      cmd.run,
	})

	return app
}

func (cmd *LogoutCmd) run(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	// Restore first so logout also works without an in-process session
	if _, _, err := cmd.flags.Service.Session().Restore(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	if _, ok := cmd.flags.Service.Session().Current(); !ok {
		p.Infof("Not signed in")
		return nil
	}

	if err := cmd.flags.Service.Logout(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	p.Successf("Signed out")
	return nil
}
