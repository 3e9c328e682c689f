package job

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeFullTime Type = "Full-time"
	TypePartTime Type = "Part-time"
)

func (t Type) Valid() bool {
	return t == TypeFullTime || t == TypePartTime
}

type Job struct {
	ID                 uuid.UUID
	CompanyID          uuid.UUID
	Title              string
	Description        string
	RequiredSkills     []string
	Salary             string
	Position           string
	JobType            Type
	ExperienceRequired string
	NumberOfPositions  int
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Listing is a job joined with the public fields of its company.
type Listing struct {
	Job
	CompanyName string
	CompanyLogo string
}

type Filter struct {
	JobType Type
}

// Patch is a partial update; nil fields are left unchanged.
type Patch struct {
	Title              *string
	Description        *string
	RequiredSkills     []string
	Salary             *string
	Position           *string
	JobType            *Type
	ExperienceRequired *string
	NumberOfPositions  *int
	IsActive           *bool
}

func (p Patch) Apply(j Job) Job {
	setString := func(dst *string, v *string) {
		if v != nil && *v != "" {
			*dst = *v
		}
	}
	setString(&j.Title, p.Title)
	setString(&j.Description, p.Description)
	setString(&j.Salary, p.Salary)
	setString(&j.Position, p.Position)
	setString(&j.ExperienceRequired, p.ExperienceRequired)
	if len(p.RequiredSkills) > 0 {
		j.RequiredSkills = append([]string(nil), p.RequiredSkills...)
	}
	if p.JobType != nil && *p.JobType != "" {
		j.JobType = *p.JobType
	}
	if p.NumberOfPositions != nil && *p.NumberOfPositions > 0 {
		j.NumberOfPositions = *p.NumberOfPositions
	}
	if p.IsActive != nil {
		j.IsActive = *p.IsActive
	}
	return j
}
