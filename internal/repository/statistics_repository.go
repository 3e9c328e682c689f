package repository

import (
	"context"

	"careerlink/internal/database"
)

type Statistics struct {
	TotalUsers           int64
	TotalStudents        int64
	TotalCompanies       int64
	TotalJobs            int64
	ActiveJobs           int64
	TotalApplications    int64
	ApprovedApplications int64
	PendingApplications  int64
}

type StatisticsRepository interface {
	Statistics(ctx context.Context) (Statistics, error)
}

type PostgresStatisticsRepository struct {
	db database.DB
}

func NewPostgresStatisticsRepository(db database.DB) *PostgresStatisticsRepository {
	return &PostgresStatisticsRepository{db: db}
}

// Statistics counts every table in one round trip.
func (r *PostgresStatisticsRepository) Statistics(ctx context.Context) (Statistics, error) {
	var s Statistics
	row := database.Conn(ctx, r.db).QueryRow(ctx, `SELECT
		(SELECT COUNT(*) FROM users),
		(SELECT COUNT(*) FROM users WHERE role = 'student'),
		(SELECT COUNT(*) FROM users WHERE role = 'company'),
		(SELECT COUNT(*) FROM jobs),
		(SELECT COUNT(*) FROM jobs WHERE is_active),
		(SELECT COUNT(*) FROM applications),
		(SELECT COUNT(*) FROM applications WHERE status = 'Approved'),
		(SELECT COUNT(*) FROM applications WHERE status = 'Pending')`)
	err := row.Scan(
		&s.TotalUsers, &s.TotalStudents, &s.TotalCompanies,
		&s.TotalJobs, &s.ActiveJobs,
		&s.TotalApplications, &s.ApprovedApplications, &s.PendingApplications,
	)
	return s, err
}
