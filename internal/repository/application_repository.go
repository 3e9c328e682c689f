package repository

import (
	"context"
	"errors"
	"fmt"

	"careerlink/internal/database"
	dbpostgres "careerlink/internal/database/postgres"
	"careerlink/internal/domain/application"

	"github.com/google/uuid"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("already applied for this job")
)

type ApplicationRepository interface {
	// Create fails with ErrDuplicateApplication when the student already
	// applied to the job; the pair is unique in the store.
	Create(ctx context.Context, a application.Application) (application.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (application.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) (application.Application, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]application.StudentView, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.CompanyView, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]application.CompanyView, error)
	HasAppliedToCompany(ctx context.Context, studentID, companyID uuid.UUID) (bool, error)
	DeleteByJobIDs(ctx context.Context, jobIDs []uuid.UUID) (int64, error)
	DeleteByStudent(ctx context.Context, studentID uuid.UUID) (int64, error)
}

const applicationColumns = `id, job_id, student_id, status, applied_at, created_at, updated_at`

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) (application.Application, error) {
	row := database.Conn(ctx, r.db).QueryRow(
		ctx,
		`INSERT INTO applications (id, job_id, student_id, status) VALUES ($1, $2, $3, $4) RETURNING `+applicationColumns,
		a.ID, a.JobID, a.StudentID, string(a.Status),
	)
	created, err := scanApplication(row)
	if err != nil {
		if dbpostgres.IsUniqueViolation(err) {
			return application.Application{}, ErrDuplicateApplication
		}
		if dbpostgres.IsForeignKeyViolation(err) {
			return application.Application{}, ErrJobNotFound
		}
		return application.Application{}, fmt.Errorf("insert application: %w", err)
	}
	return created, nil
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := database.Conn(ctx, r.db).QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	return scanApplication(row)
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) (application.Application, error) {
	row := database.Conn(ctx, r.db).QueryRow(
		ctx,
		`UPDATE applications SET status = $2, updated_at = now() WHERE id = $1 RETURNING `+applicationColumns,
		id, string(status),
	)
	return scanApplication(row)
}

func (r *PostgresApplicationRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]application.StudentView, error) {
	rows, err := database.Conn(ctx, r.db).Query(
		ctx,
		`SELECT a.id, a.job_id, a.student_id, a.status, a.applied_at, a.created_at, a.updated_at,
			j.title, j.job_type, j.position, j.salary, c.id, c.company_name, c.logo
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 JOIN company_profiles c ON c.id = j.company_id
		 WHERE a.student_id = $1
		 ORDER BY a.applied_at DESC`,
		studentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.StudentView, 0)
	for rows.Next() {
		var v application.StudentView
		var status string
		if err := rows.Scan(
			&v.ID, &v.JobID, &v.StudentID, &status, &v.AppliedAt, &v.CreatedAt, &v.UpdatedAt,
			&v.JobTitle, &v.JobType, &v.Position, &v.Salary, &v.CompanyID, &v.CompanyName, &v.CompanyLogo,
		); err != nil {
			return nil, err
		}
		v.Status = application.Status(status)
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

const companyViewQuery = `SELECT a.id, a.job_id, a.student_id, a.status, a.applied_at, a.created_at, a.updated_at,
	j.title, u.email, s.first_name, s.last_name, s.resume_uploaded
 FROM applications a
 JOIN jobs j ON j.id = a.job_id
 JOIN student_profiles s ON s.id = a.student_id
 JOIN users u ON u.id = s.user_id`

func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.CompanyView, error) {
	return r.listCompanyViews(ctx, companyViewQuery+` WHERE a.job_id = $1 ORDER BY a.applied_at DESC`, jobID)
}

func (r *PostgresApplicationRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]application.CompanyView, error) {
	return r.listCompanyViews(ctx, companyViewQuery+` WHERE j.company_id = $1 ORDER BY a.applied_at DESC`, companyID)
}

func (r *PostgresApplicationRepository) listCompanyViews(ctx context.Context, query string, arg uuid.UUID) ([]application.CompanyView, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.CompanyView, 0)
	for rows.Next() {
		var v application.CompanyView
		var status string
		if err := rows.Scan(
			&v.ID, &v.JobID, &v.StudentID, &status, &v.AppliedAt, &v.CreatedAt, &v.UpdatedAt,
			&v.JobTitle, &v.StudentEmail, &v.FirstName, &v.LastName, &v.Resume,
		); err != nil {
			return nil, err
		}
		v.Status = application.Status(status)
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) HasAppliedToCompany(ctx context.Context, studentID, companyID uuid.UUID) (bool, error) {
	var exists bool
	row := database.Conn(ctx, r.db).QueryRow(
		ctx,
		`SELECT EXISTS(
			SELECT 1 FROM applications a JOIN jobs j ON j.id = a.job_id
			WHERE a.student_id = $1 AND j.company_id = $2)`,
		studentID, companyID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresApplicationRepository) DeleteByJobIDs(ctx context.Context, jobIDs []uuid.UUID) (int64, error) {
	if len(jobIDs) == 0 {
		return 0, nil
	}
	ids := make([]string, 0, len(jobIDs))
	for _, id := range jobIDs {
		ids = append(ids, id.String())
	}
	return database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM applications WHERE job_id = ANY($1::uuid[])`, ids)
}

func (r *PostgresApplicationRepository) DeleteByStudent(ctx context.Context, studentID uuid.UUID) (int64, error) {
	return database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM applications WHERE student_id = $1`, studentID)
}

func scanApplication(row database.Row) (application.Application, error) {
	var a application.Application
	var status string
	if err := row.Scan(&a.ID, &a.JobID, &a.StudentID, &status, &a.AppliedAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if dbpostgres.IsNoRows(err) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	return a, nil
}
