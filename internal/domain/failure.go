package domain

// SkippedReport records a report file that could not be read or parsed.
// Skipped reports never reach grouping; they are only listed in the plan.
type SkippedReport struct {
	Path   string `json:"path" yaml:"path"`
	Reason string `json:"reason" yaml:"reason"`
}
