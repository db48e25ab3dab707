package config

const (
	// DefaultGroups is the default number of groups to split into
	DefaultGroups = 5
	// DefaultWorkers is the default number of report parsing workers
	DefaultWorkers = 4
	// DefaultReportPrefix is the file name prefix of JUnit reports
	DefaultReportPrefix = "TEST"
	// DefaultReportExt is the file extension of JUnit reports
	DefaultReportExt = ".xml"
	// DefaultFormat is the default output format
	DefaultFormat = "text"
	// DefaultOutputJSONFile is the default plan file name
	DefaultOutputJSONFile = "split-plan.json"
	// DefaultOutputJSONDir is the default plan directory
	DefaultOutputJSONDir = "storage"
	// DefaultLogLevel is the default diagnostics log level
	DefaultLogLevel = "warn"
	// DefaultHistoryWindow is the number of recorded runs averaged by --from-history
	DefaultHistoryWindow = 5
	// DefaultHistoryTable is the MySQL table holding recorded durations
	DefaultHistoryTable = "suite_durations"

	// EnvPrefix prefixes every environment variable read by jsplit
	EnvPrefix = "JSPLIT_"
	// DefaultConfigFile is looked up in the working directory when no config is given
	DefaultConfigFile = "jsplit.yaml"
)

// DefaultPaths are the report directories scanned when none are given
var DefaultPaths = []string{"."}

// DefaultPathsToIgnore are directories skipped by recursive scans
var DefaultPathsToIgnore = []string{
	"node_modules",
	"vendor",
}

// Formats lists the supported output formats
var Formats = []string{"text", "table", "json", "yaml"}
