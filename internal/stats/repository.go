package stats

import (
	"context"
	"errors"
	"fmt"

	"github.com/verte-zerg/wordwise/internal/linestore"
	"github.com/verte-zerg/wordwise/internal/logger"
	"github.com/verte-zerg/wordwise/internal/model"
)

// Resource is the line-store resource holding the statistics record.
const Resource = "stats"

// Repository loads and saves the statistics record.
type Repository struct {
	lines linestore.Store
	log   *logger.Logger
}

// NewRepository returns a repository backed by lines.
func NewRepository(lines linestore.Store, log *logger.Logger) *Repository {
	if log == nil {
		log = logger.Nop()
	}
	return &Repository{lines: lines, log: log.With("resource", Resource)}
}

// Load returns the persisted statistics, or fresh statistics when none exist.
func (r *Repository) Load(ctx context.Context) (model.Statistics, error) {
	lines, err := r.lines.ReadLines(ctx, Resource)
	if err != nil {
		if errors.Is(err, linestore.ErrNotExist) {
			r.log.Info("no stats recorded yet; starting fresh")
			return model.NewStatistics(), nil
		}
		return model.Statistics{}, fmt.Errorf("failed to load stats: %w: %w", model.ErrIO, err)
	}
	return Decode(lines, r.log), nil
}

// Save replaces the persisted statistics.
func (r *Repository) Save(ctx context.Context, s model.Statistics) error {
	if err := r.lines.WriteLines(ctx, Resource, Encode(s)); err != nil {
		r.log.Error("failed to save stats", "error", err)
		return fmt.Errorf("failed to save stats: %w: %w", model.ErrIO, err)
	}
	return nil
}
