package worker

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// runConcurrent converts jobs with bounded parallelism. The first failure
// cancels the jobs that have not started yet.
func runConcurrent(ctx context.Context, jobs []Options, maxConcurrent int) ([]*Result, error) {
	slog.Info("starting concurrent conversion",
		"files", len(jobs),
		"max_concurrent", maxConcurrent)

	results := make([]*Result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for i, job := range jobs {
		g.Go(func() error {
			res, err := Run(gctx, job)
			if err != nil {
				return fmt.Errorf("file %d/%d (%s): %w", i+1, len(jobs), job.InputPath, err)
			}
			// each goroutine owns its own slot
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
