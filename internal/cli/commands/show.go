package commands

import (
	"github.com/spf13/cobra"

	"jsplit/internal/cli"
	"jsplit/internal/ui"
)

// ShowCommand handles the show command
type ShowCommand struct {
	*deps
}

// Execute runs the command
func (sc *ShowCommand) Execute(cmd *cobra.Command, args []string) error {
	plan, err := sc.storage.Load()
	if err != nil {
		return err
	}

	interactive, err := cmd.Flags().GetBool(cli.FlagInteractive)
	if err != nil {
		return err
	}
	if interactive {
		return sc.viewer.View(plan)
	}
	return ui.NewFormatter(cmd.OutOrStdout()).PrintPlan(plan, sc.cfg.Format)
}
