package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"careerlink/internal/config"
	"careerlink/internal/database"
	"careerlink/internal/domain/user"
	"careerlink/internal/infrastructure/persistence/postgres"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrAdminCredentials = errors.New("ADMIN_EMAIL and ADMIN_PASSWORD are required")

// AdminSeeder provisions the operator account. It creates the user when the
// email is unknown and otherwise promotes it to an active, approved admin,
// resetting the password hash when it no longer matches.
type AdminSeeder struct {
	Email    string
	Password string
	Logger   *slog.Logger

	// Users overrides the repository built from the db passed to Run.
	Users user.Repository
}

func NewAdminSeeder(cfg config.AdminConfig, logger *slog.Logger) AdminSeeder {
	return AdminSeeder{Email: cfg.Email, Password: cfg.Password, Logger: logger}
}

func (AdminSeeder) Name() string { return "admin" }

func (s AdminSeeder) Run(ctx context.Context, db database.DB) error {
	email := user.NormalizeEmail(s.Email)
	if email == "" || strings.TrimSpace(s.Password) == "" {
		return ErrAdminCredentials
	}
	if len(s.Password) < user.MinPasswordLength {
		return fmt.Errorf("ADMIN_PASSWORD must be at least %d characters", user.MinPasswordLength)
	}
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	users := s.Users
	if users == nil {
		if err := RequireColumns(ctx, db, "users", "id", "email", "password_hash", "role", "is_active", "is_approved"); err != nil {
			return err
		}
		users = postgres.NewUserRepository(db)
	}

	existing, err := users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, user.ErrNotFound):
		hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u := user.User{
			ID:           uuid.New(),
			Email:        email,
			PasswordHash: string(hash),
			Role:         user.RoleAdmin,
			IsActive:     true,
			IsApproved:   true,
		}
		if err := users.Create(ctx, u); err != nil {
			return err
		}
		logger.Info("admin created", "email", email, "user_id", u.ID)
		return nil
	case err != nil:
		return err
	}

	passwordOK := bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte(s.Password)) == nil
	if existing.Role == user.RoleAdmin && existing.IsActive && existing.IsApproved && passwordOK {
		logger.Info("admin already provisioned", "email", email)
		return nil
	}

	hash := existing.PasswordHash
	if !passwordOK {
		b, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		hash = string(b)
	}
	if err := users.Promote(ctx, existing.ID, hash); err != nil {
		return err
	}
	logger.Info("admin promoted", "email", email, "user_id", existing.ID, "previous_role", existing.Role, "password_reset", !passwordOK)
	return nil
}
