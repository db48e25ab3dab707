package cli

import (
	"github.com/spf13/pflag"

	"jsplit/internal/config"
)

// Flag names. Config-backed flags are kebab-case versions of their koanf
// keys (metrics-file -> metrics_file) and only override the config file
// and environment when they are set explicitly.
const (
	FlagConfig      = "config"
	FlagLogLevel    = "log-level"
	FlagGroups      = "groups"
	FlagWorkers     = "workers"
	FlagFormat      = "format"
	FlagFilter      = "filter"
	FlagRecursive   = "recursive"
	FlagPrefix      = "prefix"
	FlagExt         = "ext"
	FlagSave        = "save"
	FlagMetricsFile = "metrics-file"
	FlagFromHistory = "from-history"
	FlagOnly        = "only"
	FlagSuites      = "suites"
	FlagInteractive = "interactive"
	FlagLimit       = "limit"
)

// AddGlobalFlags registers the flags shared by every command
func AddGlobalFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", "Path to a YAML config file (default ./"+config.DefaultConfigFile+" if present)")
	fs.String(FlagLogLevel, config.DefaultLogLevel, "Log level: debug, info, warn or error")
}

// AddDiscoveryFlags registers the flags that control which report files are read
func AddDiscoveryFlags(fs *pflag.FlagSet) {
	fs.IntP(FlagWorkers, "p", config.DefaultWorkers, "Number of workers parsing reports")
	fs.BoolP(FlagRecursive, "r", false, "Also search sub-directories of the report paths")
	fs.String(FlagPrefix, config.DefaultReportPrefix, "File name prefix of report files")
	fs.String(FlagExt, config.DefaultReportExt, "File extension of report files (case-insensitive)")
}

// AddSplitFlags registers the flags of the split command
func AddSplitFlags(fs *pflag.FlagSet) {
	AddDiscoveryFlags(fs)
	fs.IntP(FlagGroups, "c", config.DefaultGroups, "Number of groups to split suites into")
	AddFormatFlag(fs)
	fs.StringP(FlagFilter, "f", "", "Only keep suites matching a name pattern (supports wildcards, e.g. 'scenario.*' or '*Search*')")
	fs.Bool(FlagSave, false, "Save the plan to the output JSON file for the show command")
	fs.String(FlagMetricsFile, "", "Write group durations in Prometheus textfile format to this path")
	fs.Bool(FlagFromHistory, false, "Use average durations from the history database instead of reports")
	fs.Int(FlagOnly, 0, "Print only the keys of this 1-based group index")
}

// AddFormatFlag registers the output format flag
func AddFormatFlag(fs *pflag.FlagSet) {
	fs.StringP(FlagFormat, "o", config.DefaultFormat, "Output format: text, table, json or yaml")
}
