package execution

import (
	"context"

	"jsplit/internal/domain"
)

// Loader loads suites from report files
type Loader interface {
	Load(ctx context.Context, paths []string) (*LoadResult, error)
}

// Progress receives per-file progress from a Loader
type Progress interface {
	Update(parsed, skipped int)
	Finish()
}

// Compile-time check
var _ Loader = (*LoaderPool)(nil)

// FileResult is the outcome of parsing one report file
type FileResult struct {
	Path   string
	Suites []domain.Suite
	Err    error
}
