package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"careerlink/internal/domain/application"
	"careerlink/internal/domain/job"
	"careerlink/internal/repository"

	"github.com/google/uuid"
)

type StudentJobsUsecase interface {
	Browse(ctx context.Context, f job.Filter) ([]job.Listing, error)
	Apply(ctx context.Context, userID, jobID uuid.UUID) (application.Application, error)
	Applied(ctx context.Context, userID uuid.UUID) ([]application.StudentView, error)
}

type StudentJobs struct {
	jobs     repository.JobRepository
	apps     repository.ApplicationRepository
	profiles repository.StudentProfileRepository
	cache    JobCache
	cacheTTL time.Duration
	logger   *slog.Logger
}

func NewStudentJobsUsecase(
	jobs repository.JobRepository,
	apps repository.ApplicationRepository,
	profiles repository.StudentProfileRepository,
	cache JobCache,
	cacheTTL time.Duration,
	logger *slog.Logger,
) *StudentJobs {
	if logger == nil {
		logger = slog.Default()
	}
	return &StudentJobs{jobs: jobs, apps: apps, profiles: profiles, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// Browse lists active jobs, newest first, optionally narrowed to one job type.
func (u *StudentJobs) Browse(ctx context.Context, f job.Filter) ([]job.Listing, error) {
	if f.JobType != "" && !f.JobType.Valid() {
		return nil, invalid("Job type must be Full-time or Part-time")
	}

	// the generation is read before the store so a concurrent write always
	// moves readers past whatever this call caches
	cache := u.cache
	var key string
	if cache != nil {
		gen, err := cache.Generation(ctx, jobBrowseGenerationKey)
		if err != nil {
			u.logger.Warn("job browse cache generation unavailable", "err", err)
			cache = nil
		} else {
			key = JobBrowseCacheKey(f, gen)
			var cached []job.Listing
			hit, err := cache.GetJSON(ctx, key, &cached)
			if err == nil && hit {
				u.logger.Debug("job browse cache hit", "key", key)
				return cached, nil
			}
			u.logger.Debug("job browse cache miss", "key", key)
		}
	}

	items, err := u.jobs.ListActive(ctx, f)
	if err != nil {
		return nil, internal(err)
	}
	if items == nil {
		items = []job.Listing{}
	}

	if cache != nil {
		if err := cache.SetJSON(ctx, key, items, u.cacheTTL); err != nil {
			u.logger.Warn("job browse cache write failed", "key", key, "err", err)
		}
	}
	return items, nil
}

// Apply records a Pending application. The (job, student) pair is unique in
// the store, so concurrent duplicates lose with ErrAlreadyApplied.
func (u *StudentJobs) Apply(ctx context.Context, userID, jobID uuid.UUID) (application.Application, error) {
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		return application.Application{}, translate(err, repository.ErrJobNotFound, ErrJobNotFound)
	}
	if !j.IsActive {
		return application.Application{}, ErrJobNotFound
	}

	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return application.Application{}, translate(err, repository.ErrStudentProfileNotFound, ErrProfileNotFound)
	}

	a, err := u.apps.Create(ctx, application.Application{
		ID:        uuid.New(),
		JobID:     j.ID,
		StudentID: p.ID,
		Status:    application.StatusPending,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateApplication):
			return application.Application{}, ErrAlreadyApplied
		case errors.Is(err, repository.ErrJobNotFound):
			return application.Application{}, ErrJobNotFound
		}
		return application.Application{}, internal(err)
	}
	u.logger.Info("application submitted", "application_id", a.ID, "job_id", j.ID, "student_id", p.ID)
	return a, nil
}

func (u *StudentJobs) Applied(ctx context.Context, userID uuid.UUID) ([]application.StudentView, error) {
	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, translate(err, repository.ErrStudentProfileNotFound, ErrProfileNotFound)
	}
	items, err := u.apps.ListByStudent(ctx, p.ID)
	if err != nil {
		return nil, internal(err)
	}
	return items, nil
}
