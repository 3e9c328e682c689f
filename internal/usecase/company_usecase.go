package usecase

import (
	"context"
	"log/slog"
	"strings"

	"careerlink/internal/domain/company"
	"careerlink/internal/domain/job"
	"careerlink/internal/domain/skill"
	"careerlink/internal/domain/student"
	"careerlink/internal/domain/user"
	"careerlink/internal/repository"

	"github.com/google/uuid"
)

type CompanyUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (company.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, patch company.ProfilePatch) (company.Profile, error)
	SetLogo(ctx context.Context, userID uuid.UUID, path string) (string, error)

	CreateJob(ctx context.Context, userID uuid.UUID, j job.Job) (job.Job, error)
	ListJobs(ctx context.Context, userID uuid.UUID) ([]job.Job, error)
	UpdateJob(ctx context.Context, userID, jobID uuid.UUID, patch job.Patch) (job.Job, error)
	DeleteJob(ctx context.Context, userID, jobID uuid.UUID) error

	// StudentResume returns the profile of an applicant to one of the
	// caller's jobs.
	StudentResume(ctx context.Context, userID, studentID uuid.UUID) (StudentResume, error)
}

type StudentResume struct {
	Profile student.Profile
	Email   string
}

type Company struct {
	profiles repository.CompanyProfileRepository
	jobs     repository.JobRepository
	apps     repository.ApplicationRepository
	students repository.StudentProfileRepository
	users    user.Repository
	cache    JobCache
	files    FileRemover
	logger   *slog.Logger
}

func NewCompanyUsecase(
	profiles repository.CompanyProfileRepository,
	jobs repository.JobRepository,
	apps repository.ApplicationRepository,
	students repository.StudentProfileRepository,
	users user.Repository,
	cache JobCache,
	files FileRemover,
	logger *slog.Logger,
) *Company {
	if logger == nil {
		logger = slog.Default()
	}
	return &Company{
		profiles: profiles,
		jobs:     jobs,
		apps:     apps,
		students: students,
		users:    users,
		cache:    cache,
		files:    files,
		logger:   logger,
	}
}

func (u *Company) GetProfile(ctx context.Context, userID uuid.UUID) (company.Profile, error) {
	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return company.Profile{}, translate(err, repository.ErrCompanyProfileNotFound, ErrProfileNotFound)
	}
	return p, nil
}

// profile resolves the caller's company profile for job operations.
func (u *Company) profile(ctx context.Context, userID uuid.UUID) (company.Profile, error) {
	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return company.Profile{}, translate(err, repository.ErrCompanyProfileNotFound, ErrCompanyProfileNotFound)
	}
	return p, nil
}

func (u *Company) UpdateProfile(ctx context.Context, userID uuid.UUID, patch company.ProfilePatch) (company.Profile, error) {
	p, err := u.profiles.GetOrCreate(ctx, userID, company.DefaultName)
	if err != nil {
		return company.Profile{}, internal(err)
	}
	patch = company.ProfilePatch{
		CompanyName: strings.TrimSpace(patch.CompanyName),
		Address:     strings.TrimSpace(patch.Address),
		Description: strings.TrimSpace(patch.Description),
	}
	updated, err := u.profiles.Update(ctx, p.Apply(patch))
	if err != nil {
		return company.Profile{}, translate(err, repository.ErrCompanyProfileNotFound, ErrProfileNotFound)
	}
	if patch.CompanyName != "" && patch.CompanyName != p.CompanyName {
		u.invalidateJobs(ctx)
	}
	return updated, nil
}

func (u *Company) SetLogo(ctx context.Context, userID uuid.UUID, path string) (string, error) {
	p, err := u.profiles.GetOrCreate(ctx, userID, company.DefaultName)
	if err != nil {
		return "", internal(err)
	}
	if p.Logo != "" && u.files != nil {
		if err := u.files.Remove(p.Logo); err != nil {
			u.logger.Warn("remove replaced upload failed", "path", p.Logo, "err", err)
		}
	}
	if err := u.profiles.SetLogo(ctx, p.ID, path); err != nil {
		return "", internal(err)
	}
	u.invalidateJobs(ctx)
	return path, nil
}

func validateJob(j job.Job) error {
	if j.Title == "" || j.Description == "" || len(j.RequiredSkills) == 0 || j.Salary == "" ||
		j.Position == "" || j.JobType == "" || j.ExperienceRequired == "" || j.NumberOfPositions == 0 {
		return invalid("All fields are required")
	}
	if !j.JobType.Valid() {
		return invalid("Job type must be Full-time or Part-time")
	}
	if bad := skill.Invalid(j.RequiredSkills); len(bad) > 0 {
		return invalid("Unsupported skills: %s", strings.Join(bad, ", "))
	}
	if j.NumberOfPositions < 1 {
		return invalid("Number of positions must be at least 1")
	}
	return nil
}

func (u *Company) CreateJob(ctx context.Context, userID uuid.UUID, j job.Job) (job.Job, error) {
	j.Title = strings.TrimSpace(j.Title)
	j.Description = strings.TrimSpace(j.Description)
	j.Salary = strings.TrimSpace(j.Salary)
	j.Position = strings.TrimSpace(j.Position)
	j.ExperienceRequired = strings.TrimSpace(j.ExperienceRequired)
	if err := validateJob(j); err != nil {
		return job.Job{}, err
	}

	p, err := u.profile(ctx, userID)
	if err != nil {
		return job.Job{}, err
	}

	j.ID = uuid.New()
	j.CompanyID = p.ID
	j.IsActive = true
	created, err := u.jobs.Create(ctx, j)
	if err != nil {
		return job.Job{}, internal(err)
	}
	u.invalidateJobs(ctx)
	u.logger.Info("job created", "job_id", created.ID, "company_id", p.ID)
	return created, nil
}

func (u *Company) ListJobs(ctx context.Context, userID uuid.UUID) ([]job.Job, error) {
	p, err := u.profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, err := u.jobs.ListByCompany(ctx, p.ID)
	if err != nil {
		return nil, internal(err)
	}
	return items, nil
}

// UpdateJob changes one of the caller's jobs. A job owned by another company
// is reported as not found.
func (u *Company) UpdateJob(ctx context.Context, userID, jobID uuid.UUID, patch job.Patch) (job.Job, error) {
	p, err := u.profile(ctx, userID)
	if err != nil {
		return job.Job{}, err
	}
	current, err := u.jobs.GetOwned(ctx, jobID, p.ID)
	if err != nil {
		return job.Job{}, translate(err, repository.ErrJobNotFound, ErrJobNotFound)
	}

	if patch.JobType != nil && *patch.JobType != "" && !patch.JobType.Valid() {
		return job.Job{}, invalid("Job type must be Full-time or Part-time")
	}
	if bad := skill.Invalid(patch.RequiredSkills); len(bad) > 0 {
		return job.Job{}, invalid("Unsupported skills: %s", strings.Join(bad, ", "))
	}
	if patch.NumberOfPositions != nil && *patch.NumberOfPositions < 1 {
		return job.Job{}, invalid("Number of positions must be at least 1")
	}

	updated, err := u.jobs.Update(ctx, patch.Apply(current))
	if err != nil {
		return job.Job{}, translate(err, repository.ErrJobNotFound, ErrJobNotFound)
	}
	u.invalidateJobs(ctx)
	return updated, nil
}

func (u *Company) DeleteJob(ctx context.Context, userID, jobID uuid.UUID) error {
	p, err := u.profile(ctx, userID)
	if err != nil {
		return err
	}
	if err := u.jobs.Delete(ctx, jobID, p.ID); err != nil {
		return translate(err, repository.ErrJobNotFound, ErrJobNotFound)
	}
	u.invalidateJobs(ctx)
	u.logger.Info("job deleted", "job_id", jobID, "company_id", p.ID)
	return nil
}

func (u *Company) StudentResume(ctx context.Context, userID, studentID uuid.UUID) (StudentResume, error) {
	p, err := u.profile(ctx, userID)
	if err != nil {
		return StudentResume{}, err
	}
	applied, err := u.apps.HasAppliedToCompany(ctx, studentID, p.ID)
	if err != nil {
		return StudentResume{}, internal(err)
	}
	if !applied {
		return StudentResume{}, ErrStudentProfileNotFound
	}
	sp, err := u.students.GetByID(ctx, studentID)
	if err != nil {
		return StudentResume{}, translate(err, repository.ErrStudentProfileNotFound, ErrStudentProfileNotFound)
	}
	usr, err := u.users.GetByID(ctx, sp.UserID)
	if err != nil {
		return StudentResume{}, translate(err, user.ErrNotFound, ErrStudentProfileNotFound)
	}
	return StudentResume{Profile: sp, Email: usr.Email}, nil
}

func (u *Company) invalidateJobs(ctx context.Context) {
	invalidateJobBrowse(ctx, u.cache, u.logger)
}

func invalidateJobBrowse(ctx context.Context, cache JobCache, logger *slog.Logger) {
	if cache == nil {
		return
	}
	if _, err := cache.Bump(ctx, jobBrowseGenerationKey); err != nil {
		logger.Warn("job browse cache generation bump failed", "err", err)
	}
	if err := cache.DeleteByPattern(ctx, jobBrowseKeyPattern); err != nil {
		logger.Warn("job browse cache invalidation failed", "err", err)
	}
}
