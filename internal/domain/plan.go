package domain

// PlanMeta contains metadata about a split run
type PlanMeta struct {
	ID              string  `json:"id" yaml:"id"`
	RequestedGroups int     `json:"requested_groups" yaml:"requested_groups"`
	ActualGroups    int     `json:"actual_groups" yaml:"actual_groups"`
	TotalSeconds    float64 `json:"total_seconds" yaml:"total_seconds"`
	TargetSeconds   float64 `json:"target_seconds" yaml:"target_seconds"`
	Suites          int     `json:"suites" yaml:"suites"`
	Reports         int     `json:"reports" yaml:"reports"`
	Source          string  `json:"source" yaml:"source"` // "reports" or "history"
	Timestamp       string  `json:"timestamp" yaml:"timestamp"`
}

// Plan is the complete output of a split run
type Plan struct {
	Meta    PlanMeta        `json:"meta" yaml:"meta"`
	Groups  []Group         `json:"groups" yaml:"groups"`
	Skipped []SkippedReport `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}
