package execution

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"jsplit/internal/domain"
	"jsplit/internal/logger"
)

// LoadResult is the outcome of loading a batch of report files
type LoadResult struct {
	Suites   []domain.Suite         // In report path order
	Skipped  []domain.SkippedReport // Reports that could not be read or parsed
	Reports  int                    // Reports parsed successfully
	Duration time.Duration
}

// LoaderPool parses report files with a bounded number of workers
type LoaderPool struct {
	runner   *Runner
	workers  int
	progress Progress
	log      logger.Logger
}

// NewLoaderPool creates a new LoaderPool
func NewLoaderPool(runner *Runner, workers int) *LoaderPool {
	if workers <= 0 {
		workers = 1
	}
	return &LoaderPool{
		runner:  runner,
		workers: workers,
		log:     logger.Nop(),
	}
}

// SetProgress sets the progress reporter for the pool
func (lp *LoaderPool) SetProgress(progress Progress) {
	lp.progress = progress
}

// SetLogger sets the logger used for skipped reports
func (lp *LoaderPool) SetLogger(l logger.Logger) {
	lp.log = l
}

// Load parses all paths. Reports that fail to parse are logged and skipped;
// only cancellation of ctx makes Load fail.
func (lp *LoaderPool) Load(ctx context.Context, paths []string) (*LoadResult, error) {
	startTime := time.Now()
	results := make([]FileResult, len(paths))

	var mu sync.Mutex
	var parsed, skipped int

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lp.workers)

	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result := lp.runner.Run(path)
			results[i] = result

			mu.Lock()
			if result.Err != nil {
				skipped++
			} else {
				parsed++
			}
			if lp.progress != nil {
				lp.progress.Update(parsed, skipped)
			}
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	if lp.progress != nil {
		lp.progress.Finish()
	}
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := &LoadResult{}
	for _, r := range results {
		if r.Err != nil {
			lp.log.Warn(ctx, "can't parse report", logger.String("path", r.Path), logger.Error(r.Err))
			out.Skipped = append(out.Skipped, domain.SkippedReport{Path: r.Path, Reason: r.Err.Error()})
			continue
		}
		out.Reports++
		out.Suites = append(out.Suites, r.Suites...)
	}
	out.Duration = time.Since(startTime)

	lp.log.Debug(ctx, "reports loaded",
		logger.Int("reports", out.Reports),
		logger.Int("skipped", len(out.Skipped)),
		logger.Int("suites", len(out.Suites)),
		logger.Any("elapsed", out.Duration),
	)
	return out, nil
}
