package commands

import (
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"jsplit/internal/logger"
	"jsplit/internal/storage"
)

// RecordCommand handles the record command
type RecordCommand struct {
	*deps
}

// Execute runs the command
func (rc *RecordCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	reports, result, err := rc.loadReports(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if len(result.Suites) == 0 {
		color.New(color.FgYellow).Fprintf(out, "No suites to record (%d report(s) found)\n", len(reports))
		return nil
	}

	db, err := rc.openHistory(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	history, err := storage.NewHistoryStore(db, rc.cfg.HistoryTable)
	if err != nil {
		return err
	}
	run, err := history.Record(ctx, uuid.NewString(), result.Suites)
	if err != nil {
		return err
	}

	logger.Named("record").Info(ctx, "history run recorded",
		logger.String("run_id", run.RunID),
		logger.Int("suites", run.Suites),
		logger.Int("skipped", len(result.Skipped)),
	)
	color.New(color.FgGreen).Fprintf(out, "✓ Recorded run %s: %d suites from %d report(s)\n", run.RunID, run.Suites, result.Reports)
	return nil
}
