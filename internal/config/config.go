package config

import (
	"fmt"
	"path/filepath"
	"slices"
)

// Config holds all configuration for the application
type Config struct {
	// Splitting
	Groups int    `koanf:"groups"`
	Filter string `koanf:"filter"`
	Only   int    `koanf:"only"`

	// Report discovery
	Paths         []string `koanf:"paths"`
	Prefix        string   `koanf:"prefix"`
	Ext           string   `koanf:"ext"`
	Recursive     bool     `koanf:"recursive"`
	PathsToIgnore []string `koanf:"paths_to_ignore"`
	Workers       int      `koanf:"workers"`

	// Output
	Format         string `koanf:"format"`
	Save           bool   `koanf:"save"`
	OutputJSONFile string `koanf:"output_file"`
	OutputJSONDir  string `koanf:"output_dir"`
	MetricsFile    string `koanf:"metrics_file"`
	LogLevel       string `koanf:"log_level"`

	// Duration history (MySQL)
	FromHistory   bool   `koanf:"from_history"`
	HistoryDSN    string `koanf:"history_dsn"`
	HistoryTable  string `koanf:"history_table"`
	HistoryWindow int    `koanf:"history_window"`

	// ConfigFile is the config file that was loaded, if any
	ConfigFile string `koanf:"-"`
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		Groups:         DefaultGroups,
		Prefix:         DefaultReportPrefix,
		Ext:            DefaultReportExt,
		Workers:        DefaultWorkers,
		Format:         DefaultFormat,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		LogLevel:       DefaultLogLevel,
		HistoryTable:   DefaultHistoryTable,
		HistoryWindow:  DefaultHistoryWindow,
	}
	cfg.Paths = slices.Clone(DefaultPaths)
	cfg.PathsToIgnore = slices.Clone(DefaultPathsToIgnore)
	return cfg
}

// Validate checks values that would make a run meaningless
func (c *Config) Validate() error {
	if c.Groups < 1 {
		return fmt.Errorf("groups must be at least 1, got %d", c.Groups)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("unknown format %q (supported: %v)", c.Format, Formats)
	}
	if c.Only < 0 {
		return fmt.Errorf("only must be a 1-based group index, got %d", c.Only)
	}
	if c.HistoryWindow < 1 {
		return fmt.Errorf("history window must be at least 1, got %d", c.HistoryWindow)
	}
	return nil
}

// ReportPaths returns the directories to scan, falling back to the defaults
func (c *Config) ReportPaths() []string {
	if len(c.Paths) == 0 {
		return slices.Clone(DefaultPaths)
	}
	return c.Paths
}

// GetOutputPath returns the absolute path of the plan JSON file.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
