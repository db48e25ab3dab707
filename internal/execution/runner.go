package execution

import (
	"jsplit/internal/domain"
)

// ReportParser parses a single report file
type ReportParser interface {
	ParseFile(path string) ([]domain.Suite, error)
}

// Runner parses a single report file
type Runner struct {
	parser ReportParser
}

// NewRunner creates a new Runner
func NewRunner(parser ReportParser) *Runner {
	return &Runner{parser: parser}
}

// Run parses one report. Errors are returned in the result, not raised.
func (r *Runner) Run(path string) FileResult {
	suites, err := r.parser.ParseFile(path)
	return FileResult{
		Path:   path,
		Suites: suites,
		Err:    err,
	}
}
