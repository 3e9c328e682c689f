package student

import (
	"time"

	"github.com/google/uuid"
)

type Degree string

const (
	DegreeBSC Degree = "BSC"
	DegreeMSC Degree = "MSC"
)

func (d Degree) Valid() bool {
	return d == DegreeBSC || d == DegreeMSC
}

const (
	MinCGPA        = 0.0
	MaxCGPA        = 10.0
	MinPassingYear = 1900
	// passing years may lie this many years in the future
	passingYearHorizon = 10
)

type PersonalDetails struct {
	FirstName    string
	LastName     string
	Phone        string
	Address      string
	ProfileImage string
}

type Education struct {
	ID          uuid.UUID
	Institute   string
	Degree      Degree
	CGPA        float64
	PassingYear int
}

type Skill struct {
	ID                uuid.UUID
	Skill             string
	YearsOfExperience float64
	RelatedProjects   string
}

type Experience struct {
	ID          uuid.UUID
	CompanyName string
	Role        string
	Position    string
	StartDate   time.Time
	EndDate     time.Time
}

type Resume struct {
	Generated string
	Uploaded  string
}

// Profile is the student side record of a user. Sub-collections keep
// insertion order.
type Profile struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	PersonalDetails PersonalDetails
	Education       []Education
	Skills          []Skill
	Experience      []Experience
	Resume          Resume
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func ValidCGPA(v float64) bool {
	return v >= MinCGPA && v <= MaxCGPA
}

func ValidPassingYear(year int, now time.Time) bool {
	return year >= MinPassingYear && year <= now.Year()+passingYearHorizon
}

func ValidYearsOfExperience(v float64) bool {
	return v >= 0
}

// Merge copies the non-empty fields of in onto d. The profile image is
// managed by uploads only.
func (d PersonalDetails) Merge(in PersonalDetails) PersonalDetails {
	if in.FirstName != "" {
		d.FirstName = in.FirstName
	}
	if in.LastName != "" {
		d.LastName = in.LastName
	}
	if in.Phone != "" {
		d.Phone = in.Phone
	}
	if in.Address != "" {
		d.Address = in.Address
	}
	return d
}
