package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"careerlink/internal/domain/company"
	"careerlink/internal/domain/job"
	"careerlink/internal/domain/student"
	"careerlink/internal/domain/user"
	ucauth "careerlink/internal/usecase/auth"
)

// Presence rules live in the usecases so their messages stay stable; tags
// here only bound sizes and enumerations.

type RegisterRequest struct {
	Email       string `json:"email" validate:"max=254"`
	Password    string `json:"password" validate:"max=72"`
	Role        string `json:"role"`
	CompanyName string `json:"companyName" validate:"max=200"`
}

func (r RegisterRequest) Input() ucauth.RegisterInput {
	return ucauth.RegisterInput{
		Email:       r.Email,
		Password:    r.Password,
		Role:        user.Role(strings.TrimSpace(r.Role)),
		CompanyName: r.CompanyName,
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"max=254"`
	Password string `json:"password" validate:"max=72"`
	Role     string `json:"role"`
}

func (r LoginRequest) Input() ucauth.LoginInput {
	return ucauth.LoginInput{Email: r.Email, Password: r.Password, Role: user.Role(strings.TrimSpace(r.Role))}
}

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"max=254"`
	Password string `json:"password" validate:"max=72"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"max=254"`
}

type PersonalDetailsRequest struct {
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
	Phone     string `json:"phone" validate:"max=30"`
	Address   string `json:"address" validate:"max=500"`
}

func (r PersonalDetailsRequest) Details() student.PersonalDetails {
	return student.PersonalDetails{
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Phone:     strings.TrimSpace(r.Phone),
		Address:   strings.TrimSpace(r.Address),
	}
}

type EducationRequest struct {
	Institute   string  `json:"institute" validate:"max=200"`
	Degree      string  `json:"degree"`
	CGPA        float64 `json:"cgpa"`
	PassingYear int     `json:"passingYear"`
}

func (r EducationRequest) ToEducation() student.Education {
	return student.Education{
		Institute:   strings.TrimSpace(r.Institute),
		Degree:      student.Degree(strings.TrimSpace(r.Degree)),
		CGPA:        r.CGPA,
		PassingYear: r.PassingYear,
	}
}

type UpdateEducationRequest struct {
	Institute   *string  `json:"institute" validate:"omitempty,max=200"`
	Degree      *string  `json:"degree"`
	CGPA        *float64 `json:"cgpa"`
	PassingYear *int     `json:"passingYear"`
}

func (r UpdateEducationRequest) Patch() student.EducationPatch {
	p := student.EducationPatch{Institute: trimmed(r.Institute), CGPA: r.CGPA, PassingYear: r.PassingYear}
	if r.Degree != nil {
		d := student.Degree(strings.TrimSpace(*r.Degree))
		p.Degree = &d
	}
	return p
}

type SkillRequest struct {
	Skill             string  `json:"skill"`
	YearsOfExperience float64 `json:"yearsOfExperience"`
	RelatedProjects   string  `json:"relatedProjects" validate:"max=2000"`
}

func (r SkillRequest) ToSkill() student.Skill {
	return student.Skill{
		Skill:             strings.TrimSpace(r.Skill),
		YearsOfExperience: r.YearsOfExperience,
		RelatedProjects:   strings.TrimSpace(r.RelatedProjects),
	}
}

type UpdateSkillRequest struct {
	Skill             *string  `json:"skill"`
	YearsOfExperience *float64 `json:"yearsOfExperience"`
	RelatedProjects   *string  `json:"relatedProjects" validate:"omitempty,max=2000"`
}

func (r UpdateSkillRequest) Patch() student.SkillPatch {
	return student.SkillPatch{
		Skill:             trimmed(r.Skill),
		YearsOfExperience: r.YearsOfExperience,
		RelatedProjects:   trimmed(r.RelatedProjects),
	}
}

type ExperienceRequest struct {
	CompanyName string `json:"companyName" validate:"max=200"`
	Role        string `json:"role" validate:"max=200"`
	Position    string `json:"position" validate:"max=200"`
	StartDate   Date   `json:"startDate"`
	EndDate     Date   `json:"endDate"`
}

func (r ExperienceRequest) ToExperience() student.Experience {
	return student.Experience{
		CompanyName: strings.TrimSpace(r.CompanyName),
		Role:        strings.TrimSpace(r.Role),
		Position:    strings.TrimSpace(r.Position),
		StartDate:   r.StartDate.Time(),
		EndDate:     r.EndDate.Time(),
	}
}

type UpdateExperienceRequest struct {
	CompanyName *string `json:"companyName" validate:"omitempty,max=200"`
	Role        *string `json:"role" validate:"omitempty,max=200"`
	Position    *string `json:"position" validate:"omitempty,max=200"`
	StartDate   *Date   `json:"startDate"`
	EndDate     *Date   `json:"endDate"`
}

func (r UpdateExperienceRequest) Patch() student.ExperiencePatch {
	p := student.ExperiencePatch{
		CompanyName: trimmed(r.CompanyName),
		Role:        trimmed(r.Role),
		Position:    trimmed(r.Position),
	}
	if r.StartDate != nil && !r.StartDate.IsZero() {
		t := r.StartDate.Time()
		p.StartDate = &t
	}
	if r.EndDate != nil && !r.EndDate.IsZero() {
		t := r.EndDate.Time()
		p.EndDate = &t
	}
	return p
}

type JobRequest struct {
	Title              string   `json:"title" validate:"max=200"`
	Description        string   `json:"description" validate:"max=10000"`
	RequiredSkills     []string `json:"requiredSkills"`
	Salary             string   `json:"salary" validate:"max=100"`
	Position           string   `json:"position" validate:"max=200"`
	JobType            string   `json:"jobType"`
	ExperienceRequired string   `json:"experienceRequired" validate:"max=200"`
	NumberOfPositions  int      `json:"numberOfPositions"`
}

func (r JobRequest) ToJob() job.Job {
	return job.Job{
		Title:              strings.TrimSpace(r.Title),
		Description:        strings.TrimSpace(r.Description),
		RequiredSkills:     r.RequiredSkills,
		Salary:             strings.TrimSpace(r.Salary),
		Position:           strings.TrimSpace(r.Position),
		JobType:            job.Type(strings.TrimSpace(r.JobType)),
		ExperienceRequired: strings.TrimSpace(r.ExperienceRequired),
		NumberOfPositions:  r.NumberOfPositions,
	}
}

type UpdateJobRequest struct {
	Title              *string  `json:"title" validate:"omitempty,max=200"`
	Description        *string  `json:"description" validate:"omitempty,max=10000"`
	RequiredSkills     []string `json:"requiredSkills"`
	Salary             *string  `json:"salary" validate:"omitempty,max=100"`
	Position           *string  `json:"position" validate:"omitempty,max=200"`
	JobType            *string  `json:"jobType"`
	ExperienceRequired *string  `json:"experienceRequired" validate:"omitempty,max=200"`
	NumberOfPositions  *int     `json:"numberOfPositions"`
	IsActive           *bool    `json:"isActive"`
}

func (r UpdateJobRequest) Patch() job.Patch {
	p := job.Patch{
		Title:              trimmed(r.Title),
		Description:        trimmed(r.Description),
		RequiredSkills:     r.RequiredSkills,
		Salary:             trimmed(r.Salary),
		Position:           trimmed(r.Position),
		ExperienceRequired: trimmed(r.ExperienceRequired),
		NumberOfPositions:  r.NumberOfPositions,
		IsActive:           r.IsActive,
	}
	if r.JobType != nil {
		t := job.Type(strings.TrimSpace(*r.JobType))
		p.JobType = &t
	}
	return p
}

type CompanyProfileRequest struct {
	CompanyName string `json:"companyName" validate:"max=200"`
	Address     string `json:"address" validate:"max=500"`
	Description string `json:"description" validate:"max=5000"`
}

func (r CompanyProfileRequest) Patch() company.ProfilePatch {
	return company.ProfilePatch{
		CompanyName: strings.TrimSpace(r.CompanyName),
		Address:     strings.TrimSpace(r.Address),
		Description: strings.TrimSpace(r.Description),
	}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// Date accepts a calendar date ("2006-01-02") or an RFC 3339 timestamp.
// Empty strings and null decode to the zero time.
type Date time.Time

var errInvalidDate = errors.New("date must be YYYY-MM-DD or RFC 3339")

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errInvalidDate
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*d = Date{}
		return nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = Date(t.UTC())
			return nil
		}
	}
	return errInvalidDate
}

func (d Date) Time() time.Time { return time.Time(d) }

func (d Date) IsZero() bool { return time.Time(d).IsZero() }
