package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"jsplit/internal/domain"
	"jsplit/internal/logger"
	"jsplit/internal/metrics"
	"jsplit/internal/storage"
	"jsplit/internal/ui"
)

// Plan sources recorded in plan metadata
const (
	SourceReports = "reports"
	SourceHistory = "history"
)

// SplitCommand handles the split command
type SplitCommand struct {
	*deps
}

// Execute runs the command
func (sc *SplitCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	status := cmd.ErrOrStderr()
	log := logger.Named("split")

	suites, skipped, source, err := sc.collect(cmd)
	if err != nil {
		return err
	}

	before := len(suites)
	suites = sc.filter.Filter(suites, sc.cfg.Filter)
	if sc.cfg.Filter != "" {
		log.Debug(ctx, "suites filtered",
			logger.String("pattern", sc.cfg.Filter),
			logger.Int("kept", len(suites)),
			logger.Int("dropped", before-len(suites)),
		)
	}
	if len(suites) == 0 && sc.cfg.Only == 0 {
		color.New(color.FgYellow).Fprintln(status, "No suites to split")
	}

	plan, err := sc.planner.Plan(sc.cfg.Groups, suites, source)
	if err != nil {
		return err
	}
	plan.Skipped = skipped

	formatter := ui.NewFormatter(out)
	if sc.cfg.Only > 0 {
		err = formatter.PrintOnly(plan, sc.cfg.Only)
	} else {
		err = formatter.PrintPlan(plan, sc.cfg.Format)
	}
	if err != nil {
		return err
	}

	if sc.cfg.Save {
		if err := sc.storage.Save(plan); err != nil {
			return fmt.Errorf("failed to save plan: %w", err)
		}
		sc.statusf(status, "Plan saved to %s\n", sc.cfg.GetOutputPath())
	}

	if sc.cfg.MetricsFile != "" {
		if err := metrics.WritePlan(sc.cfg.MetricsFile, plan); err != nil {
			return err
		}
		sc.statusf(status, "Metrics written to %s\n", sc.cfg.MetricsFile)
	}
	return nil
}

// collect returns the suites to split with skipped reports and the plan source
func (sc *SplitCommand) collect(cmd *cobra.Command) ([]domain.Suite, []domain.SkippedReport, string, error) {
	ctx := cmd.Context()

	if sc.cfg.FromHistory {
		db, err := sc.openHistory(ctx)
		if err != nil {
			return nil, nil, "", err
		}
		defer db.Close()

		history, err := storage.NewHistoryStore(db, sc.cfg.HistoryTable)
		if err != nil {
			return nil, nil, "", err
		}
		suites, err := history.Averages(ctx, sc.cfg.HistoryWindow)
		if err != nil {
			return nil, nil, "", err
		}
		return suites, nil, SourceHistory, nil
	}

	var progressOut io.Writer
	if sc.cfg.Only == 0 {
		progressOut = cmd.ErrOrStderr()
	}
	reports, result, err := sc.loadReports(ctx, progressOut)
	if err != nil {
		return nil, nil, "", err
	}
	if len(reports) == 0 {
		color.New(color.FgYellow).Fprintln(cmd.ErrOrStderr(), "No reports found")
	}
	return result.Suites, result.Skipped, SourceReports, nil
}

// statusf prints a status line unless only a group's keys were requested
func (sc *SplitCommand) statusf(w io.Writer, format string, a ...interface{}) {
	if sc.cfg.Only > 0 {
		return
	}
	color.New(color.FgGreen).Fprintf(w, format, a...)
}
