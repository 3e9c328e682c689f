package dto

import (
	"time"

	"careerlink/internal/domain/student"

	"github.com/google/uuid"
)

type PersonalDetailsResponse struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	ProfileImage string `json:"profileImage"`
}

type EducationResponse struct {
	ID          uuid.UUID      `json:"id"`
	Institute   string         `json:"institute"`
	Degree      student.Degree `json:"degree"`
	CGPA        float64        `json:"cgpa"`
	PassingYear int            `json:"passingYear"`
}

type SkillResponse struct {
	ID                uuid.UUID `json:"id"`
	Skill             string    `json:"skill"`
	YearsOfExperience float64   `json:"yearsOfExperience"`
	RelatedProjects   string    `json:"relatedProjects"`
}

type ExperienceResponse struct {
	ID          uuid.UUID `json:"id"`
	CompanyName string    `json:"companyName"`
	Role        string    `json:"role"`
	Position    string    `json:"position"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
}

type ResumeResponse struct {
	Generated string `json:"generated"`
	Uploaded  string `json:"uploaded"`
}

type StudentProfileResponse struct {
	ID              uuid.UUID               `json:"id"`
	UserID          uuid.UUID               `json:"userId"`
	PersonalDetails PersonalDetailsResponse `json:"personalDetails"`
	Education       []EducationResponse     `json:"education"`
	Skills          []SkillResponse         `json:"skills"`
	Experience      []ExperienceResponse    `json:"experience"`
	Resume          ResumeResponse          `json:"resume"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

func NewStudentProfileResponse(p student.Profile) StudentProfileResponse {
	out := StudentProfileResponse{
		ID:     p.ID,
		UserID: p.UserID,
		PersonalDetails: PersonalDetailsResponse{
			FirstName:    p.PersonalDetails.FirstName,
			LastName:     p.PersonalDetails.LastName,
			Phone:        p.PersonalDetails.Phone,
			Address:      p.PersonalDetails.Address,
			ProfileImage: p.PersonalDetails.ProfileImage,
		},
		Education:  make([]EducationResponse, 0, len(p.Education)),
		Skills:     make([]SkillResponse, 0, len(p.Skills)),
		Experience: make([]ExperienceResponse, 0, len(p.Experience)),
		Resume:     ResumeResponse{Generated: p.Resume.Generated, Uploaded: p.Resume.Uploaded},
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	for _, e := range p.Education {
		out.Education = append(out.Education, EducationResponse{
			ID: e.ID, Institute: e.Institute, Degree: e.Degree, CGPA: e.CGPA, PassingYear: e.PassingYear,
		})
	}
	for _, s := range p.Skills {
		out.Skills = append(out.Skills, SkillResponse{
			ID: s.ID, Skill: s.Skill, YearsOfExperience: s.YearsOfExperience, RelatedProjects: s.RelatedProjects,
		})
	}
	for _, e := range p.Experience {
		out.Experience = append(out.Experience, ExperienceResponse{
			ID: e.ID, CompanyName: e.CompanyName, Role: e.Role, Position: e.Position, StartDate: e.StartDate, EndDate: e.EndDate,
		})
	}
	return out
}

// StudentResumeResponse is an applicant's profile as seen by a company.
type StudentResumeResponse struct {
	StudentProfileResponse
	Email string `json:"email"`
}
