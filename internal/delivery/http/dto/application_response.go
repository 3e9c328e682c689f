package dto

import (
	"time"

	"careerlink/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicationResponse struct {
	ID        uuid.UUID          `json:"id"`
	JobID     uuid.UUID          `json:"jobId"`
	StudentID uuid.UUID          `json:"studentId"`
	Status    application.Status `json:"status"`
	AppliedAt time.Time          `json:"appliedAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:        a.ID,
		JobID:     a.JobID,
		StudentID: a.StudentID,
		Status:    a.Status,
		AppliedAt: a.AppliedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

type AppliedJobResponse struct {
	ID       uuid.UUID          `json:"id"`
	Title    string             `json:"title"`
	JobType  string             `json:"jobType"`
	Position string             `json:"position"`
	Salary   string             `json:"salary"`
	Company  JobCompanyResponse `json:"company"`
}

// AppliedResponse is one application as the applicant sees it.
type AppliedResponse struct {
	ApplicationResponse
	Job AppliedJobResponse `json:"job"`
}

type AppliedListResponse struct {
	TotalApplications int               `json:"totalApplications"`
	Applications      []AppliedResponse `json:"applications"`
}

func NewAppliedListResponse(items []application.StudentView) AppliedListResponse {
	out := AppliedListResponse{Applications: make([]AppliedResponse, 0, len(items))}
	for _, v := range items {
		out.Applications = append(out.Applications, AppliedResponse{
			ApplicationResponse: NewApplicationResponse(v.Application),
			Job: AppliedJobResponse{
				ID:       v.JobID,
				Title:    v.JobTitle,
				JobType:  v.JobType,
				Position: v.Position,
				Salary:   v.Salary,
				Company:  JobCompanyResponse{ID: v.CompanyID, CompanyName: v.CompanyName, Logo: v.CompanyLogo},
			},
		})
	}
	out.TotalApplications = len(out.Applications)
	return out
}

type ApplicantResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Resume    string    `json:"resume"`
}

// ReceivedApplicationResponse is an application as the hiring company sees it.
type ReceivedApplicationResponse struct {
	ApplicationResponse
	JobTitle string            `json:"jobTitle"`
	Student  ApplicantResponse `json:"student"`
}

func NewReceivedApplicationResponses(items []application.CompanyView) []ReceivedApplicationResponse {
	out := make([]ReceivedApplicationResponse, 0, len(items))
	for _, v := range items {
		out = append(out, ReceivedApplicationResponse{
			ApplicationResponse: NewApplicationResponse(v.Application),
			JobTitle:            v.JobTitle,
			Student: ApplicantResponse{
				ID:        v.StudentID,
				Email:     v.StudentEmail,
				FirstName: v.FirstName,
				LastName:  v.LastName,
				Resume:    v.Resume,
			},
		})
	}
	return out
}
