package notification

import (
	"time"

	"github.com/google/uuid"

	"careerlink/internal/domain/application"
)

type Type string

const (
	TypeApplicationApproved Type = "application_approved"
	TypeApplicationRejected Type = "application_rejected"
	TypeCompanyApproved     Type = "company_approved"
	TypeCompanyRejected     Type = "company_rejected"
)

// ListLimit caps how many notifications a user sees at once.
const ListLimit = 50

type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      Type
	Message   string
	RelatedID *uuid.UUID
	IsRead    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ForApplicationDecision builds the message sent to an applicant when a
// company decides on their application.
func ForApplicationDecision(userID, applicationID uuid.UUID, jobTitle string, status application.Status) Notification {
	n := Notification{
		ID:        uuid.New(),
		UserID:    userID,
		RelatedID: &applicationID,
	}
	if status == application.StatusApproved {
		n.Type = TypeApplicationApproved
		n.Message = "Your application for " + jobTitle + " has been approved"
	} else {
		n.Type = TypeApplicationRejected
		n.Message = "Your application for " + jobTitle + " has been rejected"
	}
	return n
}

func ForCompanyDecision(companyUserID uuid.UUID, approved bool) Notification {
	n := Notification{
		ID:        uuid.New(),
		UserID:    companyUserID,
		RelatedID: &companyUserID,
	}
	if approved {
		n.Type = TypeCompanyApproved
		n.Message = "Your company account has been approved"
	} else {
		n.Type = TypeCompanyRejected
		n.Message = "Your company account has been rejected"
	}
	return n
}
