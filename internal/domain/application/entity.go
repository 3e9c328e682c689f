package application

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// IsDecision reports whether s is a state a company may move an application to.
// Decisions may be revised; Pending is only ever the initial state.
func (s Status) IsDecision() bool {
	return s == StatusApproved || s == StatusRejected
}

type Application struct {
	ID        uuid.UUID
	JobID     uuid.UUID
	StudentID uuid.UUID
	Status    Status
	AppliedAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StudentView is an application as shown to the applicant.
type StudentView struct {
	Application
	JobTitle    string
	JobType     string
	Position    string
	Salary      string
	CompanyID   uuid.UUID
	CompanyName string
	CompanyLogo string
}

// CompanyView is an application as shown to the company that owns the job.
type CompanyView struct {
	Application
	JobTitle     string
	StudentEmail string
	FirstName    string
	LastName     string
	Resume       string
}
