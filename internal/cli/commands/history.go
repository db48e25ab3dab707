package commands

import (
	"github.com/spf13/cobra"

	"jsplit/internal/cli"
	"jsplit/internal/storage"
	"jsplit/internal/ui"
)

// HistoryCommand handles the history command
type HistoryCommand struct {
	*deps
}

// Execute runs the command
func (hc *HistoryCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	limit, err := cmd.Flags().GetInt(cli.FlagLimit)
	if err != nil {
		return err
	}

	db, err := hc.openHistory(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	history, err := storage.NewHistoryStore(db, hc.cfg.HistoryTable)
	if err != nil {
		return err
	}
	runs, err := history.Runs(ctx, limit)
	if err != nil {
		return err
	}

	ui.NewFormatter(cmd.OutOrStdout()).PrintRuns(runs)
	return nil
}
