package usecase

import (
	"context"
	"errors"
	"log/slog"

	"careerlink/internal/database"
	"careerlink/internal/domain/application"
	"careerlink/internal/domain/notification"
	"careerlink/internal/repository"

	"github.com/google/uuid"
)

type ApplicationReviewUsecase interface {
	ListForJob(ctx context.Context, userID, jobID uuid.UUID) ([]application.CompanyView, error)
	ListForCompany(ctx context.Context, userID uuid.UUID) ([]application.CompanyView, error)
	// Decide moves an application of one of the caller's jobs to Approved or
	// Rejected and notifies the applicant. Decisions may be revised.
	Decide(ctx context.Context, userID, applicationID uuid.UUID, status application.Status) (application.Application, error)
}

type ApplicationReview struct {
	companies     repository.CompanyProfileRepository
	jobs          repository.JobRepository
	apps          repository.ApplicationRepository
	students      repository.StudentProfileRepository
	notifications repository.NotificationRepository
	tx            database.Transactor
	logger        *slog.Logger
}

func NewApplicationReviewUsecase(
	companies repository.CompanyProfileRepository,
	jobs repository.JobRepository,
	apps repository.ApplicationRepository,
	students repository.StudentProfileRepository,
	notifications repository.NotificationRepository,
	tx database.Transactor,
	logger *slog.Logger,
) *ApplicationReview {
	if logger == nil {
		logger = slog.Default()
	}
	return &ApplicationReview{
		companies:     companies,
		jobs:          jobs,
		apps:          apps,
		students:      students,
		notifications: notifications,
		tx:            tx,
		logger:        logger,
	}
}

func (u *ApplicationReview) companyID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	p, err := u.companies.GetByUserID(ctx, userID)
	if err != nil {
		return uuid.Nil, translate(err, repository.ErrCompanyProfileNotFound, ErrCompanyProfileNotFound)
	}
	return p.ID, nil
}

func (u *ApplicationReview) ListForJob(ctx context.Context, userID, jobID uuid.UUID) ([]application.CompanyView, error) {
	cid, err := u.companyID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := u.jobs.GetOwned(ctx, jobID, cid); err != nil {
		return nil, translate(err, repository.ErrJobNotFound, ErrJobNotFound)
	}
	items, err := u.apps.ListByJob(ctx, jobID)
	if err != nil {
		return nil, internal(err)
	}
	return items, nil
}

func (u *ApplicationReview) ListForCompany(ctx context.Context, userID uuid.UUID) ([]application.CompanyView, error) {
	cid, err := u.companyID(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, err := u.apps.ListByCompany(ctx, cid)
	if err != nil {
		return nil, internal(err)
	}
	return items, nil
}

func (u *ApplicationReview) Decide(ctx context.Context, userID, applicationID uuid.UUID, status application.Status) (application.Application, error) {
	if !status.IsDecision() {
		return application.Application{}, invalid("Status must be Approved or Rejected")
	}
	cid, err := u.companyID(ctx, userID)
	if err != nil {
		return application.Application{}, err
	}

	var out application.Application
	err = u.tx.InTx(ctx, func(ctx context.Context) error {
		a, err := u.apps.GetByID(ctx, applicationID)
		if err != nil {
			return translate(err, repository.ErrApplicationNotFound, ErrApplicationNotFound)
		}
		j, err := u.jobs.GetOwned(ctx, a.JobID, cid)
		if err != nil {
			if errors.Is(err, repository.ErrJobNotFound) {
				return ErrAccessDenied
			}
			return internal(err)
		}

		out, err = u.apps.UpdateStatus(ctx, a.ID, status)
		if err != nil {
			return translate(err, repository.ErrApplicationNotFound, ErrApplicationNotFound)
		}

		sp, err := u.students.GetByID(ctx, a.StudentID)
		if err != nil {
			if errors.Is(err, repository.ErrStudentProfileNotFound) {
				u.logger.Warn("applicant profile missing, no notification sent", "application_id", a.ID)
				return nil
			}
			return internal(err)
		}
		if err := u.notifications.Create(ctx, notification.ForApplicationDecision(sp.UserID, a.ID, j.Title, status)); err != nil {
			return internal(err)
		}
		return nil
	})
	if err != nil {
		return application.Application{}, err
	}

	u.logger.Info("application decided", "application_id", out.ID, "status", out.Status)
	return out, nil
}
