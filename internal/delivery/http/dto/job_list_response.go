package dto

import (
	"time"

	"careerlink/internal/domain/job"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID                 uuid.UUID `json:"id"`
	CompanyID          uuid.UUID `json:"companyId"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	RequiredSkills     []string  `json:"requiredSkills"`
	Salary             string    `json:"salary"`
	Position           string    `json:"position"`
	JobType            job.Type  `json:"jobType"`
	ExperienceRequired string    `json:"experienceRequired"`
	NumberOfPositions  int       `json:"numberOfPositions"`
	IsActive           bool      `json:"isActive"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func NewJobResponse(j job.Job) JobResponse {
	skills := j.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	return JobResponse{
		ID:                 j.ID,
		CompanyID:          j.CompanyID,
		Title:              j.Title,
		Description:        j.Description,
		RequiredSkills:     skills,
		Salary:             j.Salary,
		Position:           j.Position,
		JobType:            j.JobType,
		ExperienceRequired: j.ExperienceRequired,
		NumberOfPositions:  j.NumberOfPositions,
		IsActive:           j.IsActive,
		CreatedAt:          j.CreatedAt,
		UpdatedAt:          j.UpdatedAt,
	}
}

func NewJobResponses(items []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(items))
	for _, j := range items {
		out = append(out, NewJobResponse(j))
	}
	return out
}

// JobCompanyResponse is the public part of the company behind a listing.
type JobCompanyResponse struct {
	ID          uuid.UUID `json:"id"`
	CompanyName string    `json:"companyName"`
	Logo        string    `json:"logo"`
}

type JobListResponse struct {
	JobResponse
	Company JobCompanyResponse `json:"company"`
}

func NewJobListResponse(items []job.Listing) []JobListResponse {
	out := make([]JobListResponse, 0, len(items))
	for _, l := range items {
		out = append(out, JobListResponse{
			JobResponse: NewJobResponse(l.Job),
			Company:     JobCompanyResponse{ID: l.CompanyID, CompanyName: l.CompanyName, Logo: l.CompanyLogo},
		})
	}
	return out
}
