package worker

import (
	"context"
	"fmt"
	"log/slog"
)

// runSequential converts jobs one at a time, stopping at the first failure.
func runSequential(ctx context.Context, jobs []Options) ([]*Result, error) {
	results := make([]*Result, len(jobs))

	for i, job := range jobs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		slog.Debug("batch file", "file", fmt.Sprintf("%d/%d", i+1, len(jobs)), "input", job.InputPath)

		res, err := Run(ctx, job)
		if err != nil {
			return nil, fmt.Errorf("file %d/%d (%s): %w", i+1, len(jobs), job.InputPath, err)
		}
		results[i] = res
	}

	return results, nil
}
