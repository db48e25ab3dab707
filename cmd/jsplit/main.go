package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"jsplit/internal/cli/commands"
	"jsplit/internal/config"
	"jsplit/internal/logger"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "jsplit",
		Short: "Split JUnit test suites into balanced groups",
		Long: `Reads JUnit XML reports, sums suite durations by the first letter of each class name
and splits the letters into groups of roughly equal duration, so test jobs can be spread
over parallel CI workers.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	logger.Init()

	// Config starts from defaults; each command merges file, env and flags before running
	cfg := config.New()

	commands.NewCommands(cfg).Register(rootCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
