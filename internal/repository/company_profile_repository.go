package repository

import (
	"context"
	"errors"
	"fmt"

	"careerlink/internal/database"
	dbpostgres "careerlink/internal/database/postgres"
	"careerlink/internal/domain/company"

	"github.com/google/uuid"
)

var ErrCompanyProfileNotFound = errors.New("company profile not found")

type CompanyProfileRepository interface {
	Create(ctx context.Context, userID uuid.UUID, companyName string) (company.Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (company.Profile, error)
	// GetOrCreate returns the profile of userID, creating one named
	// defaultName first when the user has none.
	GetOrCreate(ctx context.Context, userID uuid.UUID, defaultName string) (company.Profile, error)
	Update(ctx context.Context, p company.Profile) (company.Profile, error)
	SetLogo(ctx context.Context, id uuid.UUID, path string) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

const companyProfileColumns = `id, user_id, company_name, logo, address, description, created_at, updated_at`

type PostgresCompanyProfileRepository struct {
	db database.DB
}

func NewPostgresCompanyProfileRepository(db database.DB) *PostgresCompanyProfileRepository {
	return &PostgresCompanyProfileRepository{db: db}
}

func (r *PostgresCompanyProfileRepository) Create(ctx context.Context, userID uuid.UUID, companyName string) (company.Profile, error) {
	row := database.Conn(ctx, r.db).QueryRow(
		ctx,
		`INSERT INTO company_profiles (id, user_id, company_name) VALUES ($1, $2, $3) RETURNING `+companyProfileColumns,
		uuid.New(), userID, companyName,
	)
	p, err := scanCompanyProfile(row)
	if err != nil {
		return company.Profile{}, fmt.Errorf("insert company profile: %w", err)
	}
	return p, nil
}

func (r *PostgresCompanyProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (company.Profile, error) {
	row := database.Conn(ctx, r.db).QueryRow(ctx, `SELECT `+companyProfileColumns+` FROM company_profiles WHERE user_id = $1`, userID)
	return scanCompanyProfile(row)
}

func (r *PostgresCompanyProfileRepository) GetOrCreate(ctx context.Context, userID uuid.UUID, defaultName string) (company.Profile, error) {
	_, err := database.Conn(ctx, r.db).Exec(
		ctx,
		`INSERT INTO company_profiles (id, user_id, company_name) VALUES ($1, $2, $3) ON CONFLICT (user_id) DO NOTHING`,
		uuid.New(), userID, defaultName,
	)
	if err != nil {
		return company.Profile{}, err
	}
	return r.GetByUserID(ctx, userID)
}

func (r *PostgresCompanyProfileRepository) Update(ctx context.Context, p company.Profile) (company.Profile, error) {
	row := database.Conn(ctx, r.db).QueryRow(
		ctx,
		`UPDATE company_profiles SET company_name = $2, address = $3, description = $4, updated_at = now()
		 WHERE id = $1
		 RETURNING `+companyProfileColumns,
		p.ID, p.CompanyName, p.Address, p.Description,
	)
	return scanCompanyProfile(row)
}

func (r *PostgresCompanyProfileRepository) SetLogo(ctx context.Context, id uuid.UUID, path string) error {
	n, err := database.Conn(ctx, r.db).Exec(ctx, `UPDATE company_profiles SET logo = $2, updated_at = now() WHERE id = $1`, id, path)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCompanyProfileNotFound
	}
	return nil
}

// DeleteByUserID removes the profile row only; jobs and applications are
// removed by the caller first.
func (r *PostgresCompanyProfileRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	_, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM company_profiles WHERE user_id = $1`, userID)
	return err
}

func scanCompanyProfile(row database.Row) (company.Profile, error) {
	var p company.Profile
	if err := row.Scan(&p.ID, &p.UserID, &p.CompanyName, &p.Logo, &p.Address, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if dbpostgres.IsNoRows(err) {
			return company.Profile{}, ErrCompanyProfileNotFound
		}
		return company.Profile{}, err
	}
	return p, nil
}
