package transliteration

import (
	"context"
	"fmt"
	"time"

	"github.com/jusunglee/gurmukhi/internal/metrics"
	"golang.org/x/sync/errgroup"
)

// Batch converts reqs concurrently with at most workers in flight (unbounded
// when workers <= 0). Results are in request order. The first failure cancels
// the remaining work and is returned.
func (t *Transliterator) Batch(ctx context.Context, reqs []Request, workers int) ([]string, error) {
	start := time.Now()
	out := make([]string, len(reqs))

	eg, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		eg.SetLimit(workers)
	}
	for i, req := range reqs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := t.Transliterate(req)
			if err != nil {
				return fmt.Errorf("converting request %d: %w", i, err)
			}
			out[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	metrics.BatchDuration.Observe(elapsed.Seconds())
	t.log.Debug("batch complete", "requests", len(reqs), "workers", workers, "elapsed", elapsed)
	return out, nil
}
