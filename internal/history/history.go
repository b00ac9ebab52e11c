// Package history records conversions in the configured database.
package history

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jusunglee/gurmukhi/internal/db"
	"github.com/jusunglee/gurmukhi/internal/db/postgres"
	"github.com/jusunglee/gurmukhi/internal/db/sqlite"
	"github.com/jusunglee/gurmukhi/internal/metrics"
	"github.com/jusunglee/gurmukhi/internal/transliteration"
)

// Open picks the backend from url: postgres:// and postgresql:// URLs use
// PostgreSQL, anything else is a SQLite path (optionally prefixed sqlite://).
func Open(ctx context.Context, url string) (db.Repository, error) {
	if db.IsPostgresURL(url) {
		repo, err := postgres.New(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("opening postgres history: %w", err)
		}
		return repo, nil
	}

	repo, err := sqlite.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite history: %w", err)
	}
	return repo, nil
}

type Recorder struct {
	repo db.Repository
	log  *slog.Logger
}

func NewRecorder(repo db.Repository, log *slog.Logger) *Recorder {
	return &Recorder{repo: repo, log: log}
}

// Record saves each request with its result. Either all rows are written or
// none are.
func (r *Recorder) Record(ctx context.Context, reqs []transliteration.Request, results []string) error {
	if len(reqs) != len(results) {
		return fmt.Errorf("recording history: %d requests but %d results", len(reqs), len(results))
	}

	err := r.repo.WithTx(ctx, func(tx db.Repository) error {
		for i, req := range reqs {
			_, err := tx.SaveConversion(ctx, db.SaveConversionParams{
				Source:   req.Text,
				Encoding: req.EncodingName(),
				Style:    string(req.StyleOrDefault()),
				Result:   results[i],
			})
			if err != nil {
				return fmt.Errorf("saving conversion %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		metrics.HistoryWritesTotal.WithLabelValues("error").Add(float64(len(reqs)))
		return fmt.Errorf("recording history: %w", err)
	}

	metrics.HistoryWritesTotal.WithLabelValues("ok").Add(float64(len(reqs)))
	r.log.Debug("recorded conversions", "count", len(reqs))
	return nil
}

// Recent returns up to limit conversions, newest first. An empty style
// matches all styles. Limits beyond the int32 range are clamped.
func (r *Recorder) Recent(ctx context.Context, style transliteration.Style, limit int) ([]db.Conversion, error) {
	rows, err := r.repo.ListConversions(ctx, db.ListConversionsParams{
		Style: string(style),
		Limit: int32(min(limit, math.MaxInt32)),
	})
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	return rows, nil
}

// Prune deletes conversions older than maxAge. A zero maxAge keeps everything.
func (r *Recorder) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	if maxAge <= 0 {
		return 0, nil
	}
	n, err := r.repo.DeleteConversionsBefore(ctx, time.Now().Add(-maxAge))
	if err != nil {
		return 0, fmt.Errorf("pruning history: %w", err)
	}
	if n > 0 {
		metrics.HistoryPrunedTotal.Add(float64(n))
		r.log.Info("pruned history", "deleted", n, "max_age", maxAge)
	}
	return n, nil
}
