//go:build integration

package repository_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"careerlink/internal/config"
	"careerlink/internal/database/migration"
	dbpostgres "careerlink/internal/database/postgres"
	"careerlink/internal/domain/application"
	"careerlink/internal/domain/job"
	"careerlink/internal/domain/user"
	"careerlink/internal/infrastructure/persistence/postgres"
	"careerlink/internal/repository"
	"careerlink/migrations"

	"github.com/google/uuid"
)

func connectTestDB(t *testing.T, ctx context.Context) *dbpostgres.Pool {
	t.Helper()

	cfg := config.DatabaseConfig{
		DBHost:     orEnv("CAREERLINK_TEST_DB_HOST", "DB_HOST"),
		DBPort:     orEnv("CAREERLINK_TEST_DB_PORT", "DB_PORT"),
		DBName:     orEnv("CAREERLINK_TEST_DB_NAME", "DB_NAME"),
		DBUser:     orEnv("CAREERLINK_TEST_DB_USER", "DB_USER"),
		DBPassword: orEnv("CAREERLINK_TEST_DB_PASSWORD", "DB_PASSWORD"),
		DBSSLMode:  orEnv("CAREERLINK_TEST_DB_SSL_MODE", "DB_SSL_MODE"),
	}
	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBName == "" || cfg.DBUser == "" {
		t.Skip("missing test DB env vars: set CAREERLINK_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if cfg.DBSSLMode == "" {
		cfg.DBSSLMode = "disable"
	}

	db, err := dbpostgres.Connect(ctx, cfg)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := (migration.Runner{FS: migrations.FS}).Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return db
}

func orEnv(primary, fallback string) string {
	if v := os.Getenv(primary); v != "" {
		return v
	}
	return os.Getenv(fallback)
}

type seeded struct {
	companyID uuid.UUID
	studentID uuid.UUID
	jobID     uuid.UUID
}

// seed creates a company with one active job and a student. Deleting the two
// users at cleanup cascades to everything else.
func seed(t *testing.T, ctx context.Context, db *dbpostgres.Pool) seeded {
	t.Helper()

	users := postgres.NewUserRepository(db)
	newUser := func(role user.Role) user.User {
		u := user.User{
			ID:           uuid.New(),
			Email:        uuid.NewString() + "@gmail.com",
			PasswordHash: "x",
			Role:         role,
			IsActive:     true,
			IsApproved:   true,
		}
		if err := users.Create(ctx, u); err != nil {
			t.Fatalf("create user: %v", err)
		}
		t.Cleanup(func() { _ = users.Delete(context.Background(), u.ID) })
		return u
	}
	corp := newUser(user.RoleCompany)
	stud := newUser(user.RoleStudent)

	cp, err := repository.NewPostgresCompanyProfileRepository(db).Create(ctx, corp.ID, "Acme")
	if err != nil {
		t.Fatalf("create company profile: %v", err)
	}
	sp, err := repository.NewPostgresStudentProfileRepository(db).Create(ctx, stud.ID)
	if err != nil {
		t.Fatalf("create student profile: %v", err)
	}
	j, err := repository.NewPostgresJobRepository(db).Create(ctx, job.Job{
		ID: uuid.New(), CompanyID: cp.ID, Title: "Backend", Description: "d", RequiredSkills: []string{"Java"},
		Salary: "10k", Position: "Engineer", JobType: job.TypeFullTime, ExperienceRequired: "1y",
		NumberOfPositions: 1, IsActive: true,
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	return seeded{companyID: cp.ID, studentID: sp.ID, jobID: j.ID}
}

func TestApplicationRepository_ConcurrentCreateKeepsOnePerPair(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	s := seed(t, ctx, db)
	apps := repository.NewPostgresApplicationRepository(db)

	const attempts = 8
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		created    int
		duplicates int
		others     []error
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := apps.Create(ctx, application.Application{
				ID: uuid.New(), JobID: s.jobID, StudentID: s.studentID, Status: application.StatusPending,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, repository.ErrDuplicateApplication):
				duplicates++
			default:
				others = append(others, err)
			}
		}()
	}
	wg.Wait()

	if len(others) > 0 {
		t.Fatalf("unexpected errors: %v", others)
	}
	if created != 1 || duplicates != attempts-1 {
		t.Fatalf("expected 1 created and %d duplicates, got %d and %d", attempts-1, created, duplicates)
	}
	items, err := apps.ListByJob(ctx, s.jobID)
	if err != nil {
		t.Fatalf("list applications: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected exactly one stored application, got %d", len(items))
	}
}

func TestApplicationRepository_CreateForMissingJob(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	s := seed(t, ctx, db)

	_, err := repository.NewPostgresApplicationRepository(db).Create(ctx, application.Application{
		ID: uuid.New(), JobID: uuid.New(), StudentID: s.studentID, Status: application.StatusPending,
	})
	if !errors.Is(err, repository.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestJobRepository_OwnershipAndBrowse(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	s := seed(t, ctx, db)
	jobs := repository.NewPostgresJobRepository(db)

	if _, err := jobs.GetOwned(ctx, s.jobID, uuid.New()); !errors.Is(err, repository.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound for a foreign owner, got %v", err)
	}
	if err := jobs.Delete(ctx, s.jobID, uuid.New()); !errors.Is(err, repository.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound for a foreign delete, got %v", err)
	}

	owned, err := jobs.GetOwned(ctx, s.jobID, s.companyID)
	if err != nil {
		t.Fatalf("get owned: %v", err)
	}
	owned.IsActive = false
	if _, err := jobs.Update(ctx, owned); err != nil {
		t.Fatalf("update: %v", err)
	}

	items, err := jobs.ListActive(ctx, job.Filter{JobType: job.TypeFullTime})
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	for _, it := range items {
		if it.ID == s.jobID {
			t.Fatalf("inactive job must be hidden from browsing")
		}
	}
}
