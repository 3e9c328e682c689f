package repository

import (
	"context"
	"errors"

	"careerlink/internal/database"
	dbpostgres "careerlink/internal/database/postgres"
	"careerlink/internal/domain/job"

	"github.com/google/uuid"
)

var (
	ErrJobNotFound = errors.New("job not found")
)

type JobRepository interface {
	Create(ctx context.Context, j job.Job) (job.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	// GetOwned returns the job only when companyID owns it.
	GetOwned(ctx context.Context, id, companyID uuid.UUID) (job.Job, error)
	Update(ctx context.Context, j job.Job) (job.Job, error)
	Delete(ctx context.Context, id, companyID uuid.UUID) error
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]job.Job, error)
	ListActive(ctx context.Context, f job.Filter) ([]job.Listing, error)
	ListIDsByCompany(ctx context.Context, companyID uuid.UUID) ([]uuid.UUID, error)
	DeleteByCompany(ctx context.Context, companyID uuid.UUID) (int64, error)
}

const jobColumns = `id, company_id, title, description, required_skills, salary, position, job_type,
	experience_required, number_of_positions, is_active, created_at, updated_at`

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) (job.Job, error) {
	if j.RequiredSkills == nil {
		j.RequiredSkills = []string{}
	}
	row := database.Conn(ctx, r.db).QueryRow(
		ctx,
		`INSERT INTO jobs (id, company_id, title, description, required_skills, salary, position, job_type,
			experience_required, number_of_positions, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+jobColumns,
		j.ID, j.CompanyID, j.Title, j.Description, j.RequiredSkills, j.Salary, j.Position, string(j.JobType),
		j.ExperienceRequired, j.NumberOfPositions, j.IsActive,
	)
	return scanJob(row)
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := database.Conn(ctx, r.db).QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJob(row)
}

func (r *PostgresJobRepository) GetOwned(ctx context.Context, id, companyID uuid.UUID) (job.Job, error) {
	row := database.Conn(ctx, r.db).QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1 AND company_id = $2`, id, companyID)
	return scanJob(row)
}

func (r *PostgresJobRepository) Update(ctx context.Context, j job.Job) (job.Job, error) {
	row := database.Conn(ctx, r.db).QueryRow(
		ctx,
		`UPDATE jobs SET title = $3, description = $4, required_skills = $5, salary = $6, position = $7, job_type = $8,
			experience_required = $9, number_of_positions = $10, is_active = $11, updated_at = now()
		 WHERE id = $1 AND company_id = $2
		 RETURNING `+jobColumns,
		j.ID, j.CompanyID, j.Title, j.Description, j.RequiredSkills, j.Salary, j.Position, string(j.JobType),
		j.ExperienceRequired, j.NumberOfPositions, j.IsActive,
	)
	return scanJob(row)
}

func (r *PostgresJobRepository) Delete(ctx context.Context, id, companyID uuid.UUID) error {
	n, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM jobs WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]job.Job, error) {
	rows, err := database.Conn(ctx, r.db).Query(
		ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE company_id = $1 ORDER BY created_at DESC`,
		companyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) ListActive(ctx context.Context, f job.Filter) ([]job.Listing, error) {
	rows, err := database.Conn(ctx, r.db).Query(
		ctx,
		`SELECT j.id, j.company_id, j.title, j.description, j.required_skills, j.salary, j.position, j.job_type,
			j.experience_required, j.number_of_positions, j.is_active, j.created_at, j.updated_at,
			c.company_name, c.logo
		 FROM jobs j
		 JOIN company_profiles c ON c.id = j.company_id
		 WHERE j.is_active = TRUE AND ($1 = '' OR j.job_type = $1)
		 ORDER BY j.created_at DESC`,
		string(f.JobType),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Listing, 0)
	for rows.Next() {
		var l job.Listing
		var jobType string
		if err := rows.Scan(
			&l.ID, &l.CompanyID, &l.Title, &l.Description, &l.RequiredSkills, &l.Salary, &l.Position, &jobType,
			&l.ExperienceRequired, &l.NumberOfPositions, &l.IsActive, &l.CreatedAt, &l.UpdatedAt,
			&l.CompanyName, &l.CompanyLogo,
		); err != nil {
			return nil, err
		}
		l.JobType = job.Type(jobType)
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) ListIDsByCompany(ctx context.Context, companyID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx, `SELECT id FROM jobs WHERE company_id = $1`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) DeleteByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	return database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM jobs WHERE company_id = $1`, companyID)
}

func scanJob(row database.Row) (job.Job, error) {
	var j job.Job
	var jobType string
	err := row.Scan(
		&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.RequiredSkills, &j.Salary, &j.Position, &jobType,
		&j.ExperienceRequired, &j.NumberOfPositions, &j.IsActive, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if dbpostgres.IsNoRows(err) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	j.JobType = job.Type(jobType)
	return j, nil
}
