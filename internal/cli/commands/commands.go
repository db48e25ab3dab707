package commands

import (
	"context"
	"database/sql"
	"io"

	"github.com/spf13/cobra"

	"jsplit/internal/cli"
	"jsplit/internal/config"
	"jsplit/internal/discovery"
	"jsplit/internal/execution"
	"jsplit/internal/grouping"
	"jsplit/internal/logger"
	"jsplit/internal/migration"
	"jsplit/internal/parser"
	"jsplit/internal/storage"
	"jsplit/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Split   *SplitCommand
	List    *ListCommand
	Show    *ShowCommand
	Migrate *MigrateCommand
	Record  *RecordCommand
	History *HistoryCommand

	cfg *config.Config
}

// deps are the components shared by the commands. Components that depend on
// configuration values (scanner, loader pool) are built per run, after flags
// and config files have been merged into cfg.
type deps struct {
	cfg     *config.Config
	parser  parser.Parser
	filter  *discovery.SuiteFilter
	planner *grouping.Planner
	storage storage.Storage
	viewer  ui.Viewer
	openDB  func(ctx context.Context, dsn string) (*sql.DB, error)
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	d := &deps{
		cfg:     cfg,
		parser:  parser.NewJUnitParser(),
		filter:  discovery.NewSuiteFilter(),
		planner: grouping.NewPlanner(),
		storage: storage.NewJSONStorage(cfg),
		viewer:  ui.NewPlanViewer(),
		openDB:  migration.Connect,
	}

	return &Commands{
		Split:   &SplitCommand{deps: d},
		List:    &ListCommand{deps: d},
		Show:    &ShowCommand{deps: d},
		Migrate: &MigrateCommand{deps: d},
		Record:  &RecordCommand{deps: d},
		History: &HistoryCommand{deps: d},
		cfg:     cfg,
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command) {
	cli.AddGlobalFlags(rootCmd.PersistentFlags())

	// Split command
	splitCmd := &cobra.Command{
		Use:   "split [paths...]",
		Short: "Split test suites into balanced groups",
		Long: "Read JUnit XML reports, sum suite durations per first letter of the class name " +
			"and split the letters into groups of roughly equal duration",
		PreRunE: c.loadConfig,
		RunE:    c.Split.Execute,
	}
	cli.AddSplitFlags(splitCmd.Flags())
	rootCmd.AddCommand(splitCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list [paths...]",
		Short:   "List discovered report files",
		Long:    "Scan the report paths and list report files without splitting them",
		PreRunE: c.loadConfig,
		RunE:    c.List.Execute,
	}
	cli.AddDiscoveryFlags(listCmd.Flags())
	listCmd.Flags().StringP(cli.FlagFilter, "f", "", "Only list suites matching a name pattern (with --suites)")
	listCmd.Flags().BoolP(cli.FlagSuites, "s", false, "List parsed suites with their key and duration instead of files")
	rootCmd.AddCommand(listCmd)

	// Show command
	showCmd := &cobra.Command{
		Use:     "show",
		Short:   "Show the last saved plan",
		Long:    "Print the plan saved by split --save, or browse it interactively",
		Args:    cobra.NoArgs,
		PreRunE: c.loadConfig,
		RunE:    c.Show.Execute,
	}
	cli.AddFormatFlag(showCmd.Flags())
	showCmd.Flags().BoolP(cli.FlagInteractive, "i", false, "Open the interactive plan browser")
	rootCmd.AddCommand(showCmd)

	// Migrate command
	migrateCmd := &cobra.Command{
		Use:     "migrate",
		Short:   "Create the duration history table",
		Long:    "Create the MySQL table used by record and split --from-history",
		Args:    cobra.NoArgs,
		PreRunE: c.loadConfig,
		RunE:    c.Migrate.Execute,
	}
	rootCmd.AddCommand(migrateCmd)

	// Record command
	recordCmd := &cobra.Command{
		Use:     "record [paths...]",
		Short:   "Record suite durations as a history run",
		Long:    "Parse report files and store every suite duration in the history database as one run",
		PreRunE: c.loadConfig,
		RunE:    c.Record.Execute,
	}
	cli.AddDiscoveryFlags(recordCmd.Flags())
	rootCmd.AddCommand(recordCmd)

	// History command
	historyCmd := &cobra.Command{
		Use:     "history",
		Short:   "List recorded history runs",
		Long:    "List the most recent runs stored by record, newest first",
		Args:    cobra.NoArgs,
		PreRunE: c.loadConfig,
		RunE:    c.History.Execute,
	}
	historyCmd.Flags().IntP(cli.FlagLimit, "n", 10, "Number of runs to list")
	rootCmd.AddCommand(historyCmd)
}

// loadConfig merges defaults, config file, environment and flags into the
// shared config, then applies positional report paths and the log level.
func (c *Commands) loadConfig(cmd *cobra.Command, args []string) error {
	configPath, err := cmd.Flags().GetString(cli.FlagConfig)
	if err != nil {
		return err
	}

	loaded, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return err
	}
	if len(args) > 0 {
		loaded.Paths = args
	}
	*c.cfg = *loaded

	if err := logger.SetLevelString(c.cfg.LogLevel); err != nil {
		return err
	}
	if c.cfg.ConfigFile != "" {
		logger.Get().Debug(cmd.Context(), "config file loaded", logger.String("path", c.cfg.ConfigFile))
	}
	return nil
}

// loadReports scans the configured report paths and parses every report
// found. Progress goes to progressOut; pass nil to disable it.
func (d *deps) loadReports(ctx context.Context, progressOut io.Writer) ([]string, *execution.LoadResult, error) {
	reports, err := d.newScanner().Scan(ctx, d.cfg.ReportPaths()...)
	if err != nil {
		return nil, nil, err
	}
	if len(reports) == 0 {
		return reports, &execution.LoadResult{}, nil
	}

	pool := execution.NewLoaderPool(execution.NewRunner(d.parser), d.cfg.Workers)
	pool.SetLogger(logger.Named("loader"))
	if progressOut != nil {
		pool.SetProgress(ui.NewProgressBar(len(reports), progressOut))
	}

	result, err := pool.Load(ctx, reports)
	if err != nil {
		return nil, nil, err
	}
	return reports, result, nil
}

func (d *deps) newScanner() *discovery.Scanner {
	scanner := discovery.NewScanner(d.cfg.Prefix, d.cfg.Ext, d.cfg.Recursive, d.cfg.PathsToIgnore)
	scanner.SetLogger(logger.Named("scanner"))
	return scanner
}

// openHistory connects to the history database configured by history_dsn
func (d *deps) openHistory(ctx context.Context) (*sql.DB, error) {
	return d.openDB(ctx, d.cfg.HistoryDSN)
}
