package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"careerlink/internal/config"
	"careerlink/internal/database"
	"careerlink/internal/database/migration"
	dbpostgres "careerlink/internal/database/postgres"
	"careerlink/internal/database/seeder"
	"careerlink/internal/infrastructure/cache"
	"careerlink/internal/infrastructure/persistence/postgres"
	"careerlink/internal/infrastructure/storage"
	"careerlink/internal/pkg/jwt"
	"careerlink/internal/repository"
	"careerlink/internal/usecase"
	ucauth "careerlink/internal/usecase/auth"
	"careerlink/migrations"
)

// Container owns the process-wide dependencies and the usecases built on them.
type Container struct {
	Config config.Config
	Logger *slog.Logger

	DB      *dbpostgres.Pool
	Cache   *cache.Redis
	Storage *storage.Local

	Auth          *usecase.Auth
	StudentProf   *usecase.StudentProfile
	StudentJobs   *usecase.StudentJobs
	Company       *usecase.Company
	Review        *usecase.ApplicationReview
	Notifications *usecase.Notifications
	Admin         *usecase.Admin
}

func NewContainer(cfg config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	c := &Container{Config: cfg, Logger: logger, DB: db}

	if err := c.prepareDatabase(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}

	files, err := storage.NewLocal(cfg.Upload, logger)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Storage = files
	c.Cache = cache.NewRedis(cfg.Redis, logger)

	c.wireUsecases()
	return c, nil
}

func (c *Container) prepareDatabase(ctx context.Context) error {
	if c.Config.App.AutoMigrate {
		runner := migration.Runner{FS: migrations.FS, Logger: c.Logger}
		if err := runner.Run(ctx, c.DB.SQLDB()); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	if c.Config.Admin.Bootstrap {
		runner := seeder.Runner{Seeders: seeder.Defaults(c.Config, c.Logger), Logger: c.Logger}
		if err := runner.Run(ctx, c.DB); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}
	return nil
}

func (c *Container) wireUsecases() {
	var db database.DB = c.DB
	tx := database.NewTxRunner(db)

	users := postgres.NewUserRepository(db)
	students := repository.NewPostgresStudentProfileRepository(db)
	companies := repository.NewPostgresCompanyProfileRepository(db)
	jobs := repository.NewPostgresJobRepository(db)
	apps := repository.NewPostgresApplicationRepository(db)
	notes := repository.NewPostgresNotificationRepository(db)
	stats := repository.NewPostgresStatisticsRepository(db)

	jwtSvc := jwt.NewHMACService(c.Config.JWT.Secret, c.Config.JWT.ExpiresIn)
	authSvc := ucauth.NewService(users, students, companies, tx, c.Config.Auth.AllowedEmailDomain)

	c.Auth = usecase.NewAuthUsecase(authSvc, users, jwtSvc, c.Logger)
	c.StudentProf = usecase.NewStudentProfileUsecase(students, users, c.Storage, c.Logger)
	c.StudentJobs = usecase.NewStudentJobsUsecase(jobs, apps, students, c.Cache, c.Config.Redis.TTL, c.Logger)
	c.Company = usecase.NewCompanyUsecase(companies, jobs, apps, students, users, c.Cache, c.Storage, c.Logger)
	c.Review = usecase.NewApplicationReviewUsecase(companies, jobs, apps, students, notes, tx, c.Logger)
	c.Notifications = usecase.NewNotificationUsecase(notes)
	c.Admin = usecase.NewAdminUsecase(usecase.AdminDeps{
		Users:         users,
		Students:      students,
		Companies:     companies,
		Jobs:          jobs,
		Applications:  apps,
		Notifications: notes,
		Stats:         stats,
		Tx:            tx,
		Cache:         c.Cache,
		Logger:        c.Logger,
	})
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
