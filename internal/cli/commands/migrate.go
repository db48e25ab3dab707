package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"jsplit/internal/migration"
)

// MigrateCommand handles the migrate command
type MigrateCommand struct {
	*deps
}

// Execute runs the command
func (mc *MigrateCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	db, err := mc.openHistory(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	migrator, err := migration.NewHistoryMigrator(db, mc.cfg.HistoryTable)
	if err != nil {
		return err
	}
	created, err := migrator.Run(ctx)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if created {
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Created table %s\n", mc.cfg.HistoryTable)
	} else {
		color.New(color.FgCyan).Fprintf(cmd.OutOrStdout(), "Table %s already exists\n", mc.cfg.HistoryTable)
	}
	return nil
}
