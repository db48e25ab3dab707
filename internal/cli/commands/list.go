package commands

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"jsplit/internal/cli"
	"jsplit/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	*deps
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	formatter := ui.NewFormatter(cmd.OutOrStdout())

	showSuites, err := cmd.Flags().GetBool(cli.FlagSuites)
	if err != nil {
		return err
	}

	if !showSuites {
		reports, err := lc.newScanner().Scan(cmd.Context(), lc.cfg.ReportPaths()...)
		if err != nil {
			return err
		}
		formatter.PrintReportList(reports, lc.listBase())
		return nil
	}

	_, result, err := lc.loadReports(cmd.Context(), nil)
	if err != nil {
		return err
	}
	suites := lc.filter.Filter(result.Suites, lc.cfg.Filter)
	formatter.PrintSuites(suites)
	if len(result.Skipped) > 0 {
		color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "Skipped %d unreadable report(s)\n", len(result.Skipped))
	}
	return nil
}

// listBase is the directory report paths are shown relative to
func (lc *ListCommand) listBase() string {
	paths := lc.cfg.ReportPaths()
	if len(paths) == 1 {
		if info, err := os.Stat(paths[0]); err == nil && info.IsDir() {
			return paths[0]
		}
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
