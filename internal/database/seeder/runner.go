package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"careerlink/internal/database"
)

type Runner struct {
	Seeders []Seeder
	Logger  *slog.Logger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return errors.New("nil db")
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		start := time.Now()
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		logger.Info("seeder finished", "seeder", s.Name(), "duration", time.Since(start))
	}
	return nil
}
