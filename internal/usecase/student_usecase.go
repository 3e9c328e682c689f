package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"careerlink/internal/domain/skill"
	"careerlink/internal/domain/student"
	"careerlink/internal/domain/user"
	"careerlink/internal/repository"

	"github.com/google/uuid"
)

// FileRemover deletes files previously stored for a profile.
type FileRemover interface {
	Remove(publicPath string) error
}

type StudentProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (student.Profile, error)
	UpdatePersonalDetails(ctx context.Context, userID uuid.UUID, in student.PersonalDetails) (student.Profile, error)
	SetProfileImage(ctx context.Context, userID uuid.UUID, path string) (string, error)

	AddEducation(ctx context.Context, userID uuid.UUID, e student.Education) (student.Profile, error)
	UpdateEducation(ctx context.Context, userID, id uuid.UUID, p student.EducationPatch) (student.Profile, error)
	DeleteEducation(ctx context.Context, userID, id uuid.UUID) (student.Profile, error)

	AddSkill(ctx context.Context, userID uuid.UUID, s student.Skill) (student.Profile, error)
	UpdateSkill(ctx context.Context, userID, id uuid.UUID, p student.SkillPatch) (student.Profile, error)
	DeleteSkill(ctx context.Context, userID, id uuid.UUID) (student.Profile, error)

	AddExperience(ctx context.Context, userID uuid.UUID, e student.Experience) (student.Profile, error)
	UpdateExperience(ctx context.Context, userID, id uuid.UUID, p student.ExperiencePatch) (student.Profile, error)
	DeleteExperience(ctx context.Context, userID, id uuid.UUID) (student.Profile, error)

	SetUploadedResume(ctx context.Context, userID uuid.UUID, path string) (string, error)
	GenerateResume(ctx context.Context, userID uuid.UUID) (string, error)
}

type StudentProfile struct {
	profiles repository.StudentProfileRepository
	users    user.Repository
	files    FileRemover
	logger   *slog.Logger
	now      func() time.Time
}

func NewStudentProfileUsecase(profiles repository.StudentProfileRepository, users user.Repository, files FileRemover, logger *slog.Logger) *StudentProfile {
	if logger == nil {
		logger = slog.Default()
	}
	return &StudentProfile{profiles: profiles, users: users, files: files, logger: logger, now: time.Now}
}

func (u *StudentProfile) GetProfile(ctx context.Context, userID uuid.UUID) (student.Profile, error) {
	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return student.Profile{}, translate(err, repository.ErrStudentProfileNotFound, ErrProfileNotFound)
	}
	return p, nil
}

// owned returns the caller's profile, creating an empty one when missing.
func (u *StudentProfile) owned(ctx context.Context, userID uuid.UUID) (student.Profile, error) {
	p, err := u.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return student.Profile{}, internal(err)
	}
	return p, nil
}

func (u *StudentProfile) reload(ctx context.Context, userID uuid.UUID) (student.Profile, error) {
	return u.GetProfile(ctx, userID)
}

func (u *StudentProfile) UpdatePersonalDetails(ctx context.Context, userID uuid.UUID, in student.PersonalDetails) (student.Profile, error) {
	p, err := u.owned(ctx, userID)
	if err != nil {
		return student.Profile{}, err
	}
	in = student.PersonalDetails{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
	}
	if err := u.profiles.UpdatePersonalDetails(ctx, p.ID, p.PersonalDetails.Merge(in)); err != nil {
		return student.Profile{}, internal(err)
	}
	return u.reload(ctx, userID)
}

func (u *StudentProfile) SetProfileImage(ctx context.Context, userID uuid.UUID, path string) (string, error) {
	p, err := u.owned(ctx, userID)
	if err != nil {
		return "", err
	}
	u.removeQuietly(p.PersonalDetails.ProfileImage)
	if err := u.profiles.SetProfileImage(ctx, p.ID, path); err != nil {
		return "", internal(err)
	}
	return path, nil
}

func (u *StudentProfile) SetUploadedResume(ctx context.Context, userID uuid.UUID, path string) (string, error) {
	p, err := u.owned(ctx, userID)
	if err != nil {
		return "", err
	}
	u.removeQuietly(p.Resume.Uploaded)
	if err := u.profiles.SetUploadedResume(ctx, p.ID, path); err != nil {
		return "", internal(err)
	}
	return path, nil
}

// removeQuietly deletes a replaced upload. Failures are logged only; the new
// file is recorded regardless.
func (u *StudentProfile) removeQuietly(path string) {
	if path == "" || u.files == nil {
		return
	}
	if err := u.files.Remove(path); err != nil {
		u.logger.Warn("remove replaced upload failed", "path", path, "err", err)
	}
}

func (u *StudentProfile) GenerateResume(ctx context.Context, userID uuid.UUID) (string, error) {
	p, err := u.GetProfile(ctx, userID)
	if err != nil {
		return "", err
	}
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return "", translate(err, user.ErrNotFound, ErrUserNotFound)
	}
	text := p.RenderResume(usr.Email)
	if err := u.profiles.SetGeneratedResume(ctx, p.ID, text); err != nil {
		return "", internal(err)
	}
	return text, nil
}

func (u *StudentProfile) validateEducation(e student.Education) error {
	if !e.Degree.Valid() {
		return invalid("Degree must be BSC or MSC")
	}
	if !student.ValidCGPA(e.CGPA) {
		return invalid("CGPA must be a number between 0 and 10")
	}
	if !student.ValidPassingYear(e.PassingYear, u.now()) {
		return invalid("Passing year must be a valid number")
	}
	return nil
}

// validateEducationPatch checks only the fields being changed.
func (u *StudentProfile) validateEducationPatch(p student.EducationPatch) error {
	if p.Degree != nil && *p.Degree != "" && !p.Degree.Valid() {
		return invalid("Degree must be BSC or MSC")
	}
	if p.CGPA != nil && !student.ValidCGPA(*p.CGPA) {
		return invalid("CGPA must be a number between 0 and 10")
	}
	if p.PassingYear != nil && !student.ValidPassingYear(*p.PassingYear, u.now()) {
		return invalid("Passing year must be a valid number")
	}
	return nil
}

func (u *StudentProfile) AddEducation(ctx context.Context, userID uuid.UUID, e student.Education) (student.Profile, error) {
	e.Institute = strings.TrimSpace(e.Institute)
	if e.Institute == "" || e.Degree == "" || e.PassingYear == 0 {
		return student.Profile{}, invalid("All fields are required")
	}
	if err := u.validateEducation(e); err != nil {
		return student.Profile{}, err
	}
	p, err := u.owned(ctx, userID)
	if err != nil {
		return student.Profile{}, err
	}
	e.ID = uuid.New()
	if err := u.profiles.AddEducation(ctx, p.ID, e); err != nil {
		return student.Profile{}, internal(err)
	}
	return u.reload(ctx, userID)
}

func (u *StudentProfile) UpdateEducation(ctx context.Context, userID, id uuid.UUID, patch student.EducationPatch) (student.Profile, error) {
	p, err := u.GetProfile(ctx, userID)
	if err != nil {
		return student.Profile{}, err
	}
	var current *student.Education
	for i := range p.Education {
		if p.Education[i].ID == id {
			current = &p.Education[i]
			break
		}
	}
	if current == nil {
		return student.Profile{}, ErrEducationNotFound
	}
	if err := u.validateEducationPatch(patch); err != nil {
		return student.Profile{}, err
	}
	if err := u.profiles.UpdateEducation(ctx, p.ID, patch.Apply(*current)); err != nil {
		return student.Profile{}, translate(err, repository.ErrEducationNotFound, ErrEducationNotFound)
	}
	return u.reload(ctx, userID)
}

func (u *StudentProfile) DeleteEducation(ctx context.Context, userID, id uuid.UUID) (student.Profile, error) {
	p, err := u.GetProfile(ctx, userID)
	if err != nil {
		return student.Profile{}, err
	}
	if err := u.profiles.DeleteEducation(ctx, p.ID, id); err != nil {
		return student.Profile{}, translate(err, repository.ErrEducationNotFound, ErrEducationNotFound)
	}
	return u.reload(ctx, userID)
}

func validateSkill(s student.Skill) error {
	if !skill.IsValid(s.Skill) {
		return invalid("Skill must be one of the supported skills")
	}
	if !student.ValidYearsOfExperience(s.YearsOfExperience) {
		return invalid("Years of experience must be a valid number")
	}
	return nil
}

func validateSkillPatch(p student.SkillPatch) error {
	if p.Skill != nil && *p.Skill != "" && !skill.IsValid(*p.Skill) {
		return invalid("Skill must be one of the supported skills")
	}
	if p.YearsOfExperience != nil && !student.ValidYearsOfExperience(*p.YearsOfExperience) {
		return invalid("Years of experience must be a valid number")
	}
	return nil
}

func (u *StudentProfile) AddSkill(ctx context.Context, userID uuid.UUID, s student.Skill) (student.Profile, error) {
	s.Skill = strings.TrimSpace(s.Skill)
	if s.Skill == "" {
		return student.Profile{}, invalid("Skill and years of experience are required")
	}
	if err := validateSkill(s); err != nil {
		return student.Profile{}, err
	}
	p, err := u.owned(ctx, userID)
	if err != nil {
		return student.Profile{}, err
	}
	s.ID = uuid.New()
	if err := u.profiles.AddSkill(ctx, p.ID, s); err != nil {
		return student.Profile{}, internal(err)
	}
	return u.reload(ctx, userID)
}

func (u *StudentProfile) UpdateSkill(ctx context.Context, userID, id uuid.UUID, patch student.SkillPatch) (student.Profile, error) {
	p, err := u.GetProfile(ctx, userID)
	if err != nil {
		return student.Profile{}, err
	}
	var current *student.Skill
	for i := range p.Skills {
		if p.Skills[i].ID == id {
			current = &p.Skills[i]
			break
		}
	}
	if current == nil {
		return student.Profile{}, ErrSkillNotFound
	}
	if err := validateSkillPatch(patch); err != nil {
		return student.Profile{}, err
	}
	if err := u.profiles.UpdateSkill(ctx, p.ID, patch.Apply(*current)); err != nil {
		return student.Profile{}, translate(err, repository.ErrSkillNotFound, ErrSkillNotFound)
	}
	return u.reload(ctx, userID)
}

func (u *StudentProfile) DeleteSkill(ctx context.Context, userID, id uuid.UUID) (student.Profile, error) {
	p, err := u.GetProfile(ctx, userID)
	if err != nil {
		return student.Profile{}, err
	}
	if err := u.profiles.DeleteSkill(ctx, p.ID, id); err != nil {
		return student.Profile{}, translate(err, repository.ErrSkillNotFound, ErrSkillNotFound)
	}
	return u.reload(ctx, userID)
}

func (u *StudentProfile) AddExperience(ctx context.Context, userID uuid.UUID, e student.Experience) (student.Profile, error) {
	e.CompanyName = strings.TrimSpace(e.CompanyName)
	e.Role = strings.TrimSpace(e.Role)
	e.Position = strings.TrimSpace(e.Position)
	if e.CompanyName == "" || e.Role == "" || e.Position == "" || e.StartDate.IsZero() || e.EndDate.IsZero() {
		return student.Profile{}, invalid("All fields are required")
	}
	p, err := u.owned(ctx, userID)
	if err != nil {
		return student.Profile{}, err
	}
	e.ID = uuid.New()
	if err := u.profiles.AddExperience(ctx, p.ID, e); err != nil {
		return student.Profile{}, internal(err)
	}
	return u.reload(ctx, userID)
}

func (u *StudentProfile) UpdateExperience(ctx context.Context, userID, id uuid.UUID, patch student.ExperiencePatch) (student.Profile, error) {
	p, err := u.GetProfile(ctx, userID)
	if err != nil {
		return student.Profile{}, err
	}
	var current *student.Experience
	for i := range p.Experience {
		if p.Experience[i].ID == id {
			current = &p.Experience[i]
			break
		}
	}
	if current == nil {
		return student.Profile{}, ErrExperienceNotFound
	}
	if err := u.profiles.UpdateExperience(ctx, p.ID, patch.Apply(*current)); err != nil {
		return student.Profile{}, translate(err, repository.ErrExperienceNotFound, ErrExperienceNotFound)
	}
	return u.reload(ctx, userID)
}

func (u *StudentProfile) DeleteExperience(ctx context.Context, userID, id uuid.UUID) (student.Profile, error) {
	p, err := u.GetProfile(ctx, userID)
	if err != nil {
		return student.Profile{}, err
	}
	if err := u.profiles.DeleteExperience(ctx, p.ID, id); err != nil {
		return student.Profile{}, translate(err, repository.ErrExperienceNotFound, ErrExperienceNotFound)
	}
	return u.reload(ctx, userID)
}
