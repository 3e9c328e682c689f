package postgres

import (
	"context"
	"fmt"

	"careerlink/internal/database"
	dbpostgres "careerlink/internal/database/postgres"
	"careerlink/internal/domain/user"

	"github.com/google/uuid"
)

const userColumns = `id, email, password_hash, role, is_active, is_approved, created_at, updated_at`

type UserRepository struct {
	db database.DB
}

func NewUserRepository(db database.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ user.Repository = (*UserRepository)(nil)

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	_, err := database.Conn(ctx, r.db).Exec(
		ctx,
		`INSERT INTO users (id, email, password_hash, role, is_active, is_approved) VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Email, u.PasswordHash, string(u.Role), u.IsActive, u.IsApproved,
	)
	if err != nil {
		if dbpostgres.IsUniqueViolation(err) {
			return user.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := database.Conn(ctx, r.db).QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := database.Conn(ctx, r.db).QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *UserRepository) ListByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	rows, err := database.Conn(ctx, r.db).Query(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY created_at DESC`,
		string(role),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *UserRepository) SetApproval(ctx context.Context, id uuid.UUID, approved, active bool) (user.User, error) {
	row := database.Conn(ctx, r.db).QueryRow(
		ctx,
		`UPDATE users SET is_approved = $2, is_active = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, approved, active,
	)
	return scanUser(row)
}

func (r *UserRepository) Promote(ctx context.Context, id uuid.UUID, passwordHash string) error {
	n, err := database.Conn(ctx, r.db).Exec(
		ctx,
		`UPDATE users SET role = 'admin', is_active = TRUE, is_approved = TRUE, password_hash = $2, updated_at = now()
		 WHERE id = $1`,
		id, passwordHash,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	var role string
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &u.IsActive, &u.IsApproved, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if dbpostgres.IsNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.Role = user.Role(role)
	return u, nil
}
