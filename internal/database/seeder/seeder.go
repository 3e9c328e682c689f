package seeder

import (
	"context"

	"careerlink/internal/database"
)

// Seeder writes reference data. Run must be idempotent; it is executed on
// every start when seeding is enabled.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
