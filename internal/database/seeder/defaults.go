package seeder

import (
	"log/slog"

	"careerlink/internal/config"
)

// Defaults returns the seeders run by the server when ADMIN_BOOTSTRAP is on
// and by cmd/provision-admin.
func Defaults(cfg config.Config, logger *slog.Logger) []Seeder {
	return []Seeder{
		NewAdminSeeder(cfg.Admin, logger),
	}
}
