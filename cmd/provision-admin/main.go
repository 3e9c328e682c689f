// Command provision-admin creates or promotes the operator account named by
// ADMIN_EMAIL/ADMIN_PASSWORD. It is safe to run repeatedly.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	"careerlink/internal/config"
	"careerlink/internal/database/migration"
	dbpostgres "careerlink/internal/database/postgres"
	"careerlink/internal/database/seeder"
	"careerlink/migrations"
)

func main() {
	email := flag.String("email", "", "admin email (overrides ADMIN_EMAIL)")
	password := flag.String("password", "", "admin password (overrides ADMIN_PASSWORD)")
	migrate := flag.Bool("migrate", true, "apply pending migrations first")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	if v := strings.TrimSpace(*email); v != "" {
		cfg.Admin.Email = v
	}
	if *password != "" {
		cfg.Admin.Password = *password
	}

	if err := run(cfg, *migrate, logger); err != nil {
		logger.Error("provisioning failed", "err", err)
		os.Exit(1)
	}
	logger.Info("admin provisioned", "email", cfg.Admin.Email)
}

func run(cfg config.Config, migrate bool, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if migrate {
		r := migration.Runner{FS: migrations.FS, Logger: logger}
		if err := r.Run(ctx, db.SQLDB()); err != nil {
			return err
		}
	}

	r := seeder.Runner{Seeders: seeder.Defaults(cfg, logger), Logger: logger}
	return r.Run(ctx, db)
}
