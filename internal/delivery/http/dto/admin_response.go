package dto

import (
	"careerlink/internal/repository"
	"careerlink/internal/usecase"
)

type StudentAccountResponse struct {
	UserResponse
	Profile *StudentProfileResponse `json:"profile"`
}

type CompanyAccountResponse struct {
	UserResponse
	Profile *CompanyProfileResponse `json:"profile"`
}

func NewStudentAccountResponses(items []usecase.StudentAccount) []StudentAccountResponse {
	out := make([]StudentAccountResponse, 0, len(items))
	for _, a := range items {
		r := StudentAccountResponse{UserResponse: NewUserResponse(a.User)}
		if a.Profile != nil {
			p := NewStudentProfileResponse(*a.Profile)
			r.Profile = &p
		}
		out = append(out, r)
	}
	return out
}

func NewCompanyAccountResponses(items []usecase.CompanyAccount) []CompanyAccountResponse {
	out := make([]CompanyAccountResponse, 0, len(items))
	for _, a := range items {
		r := CompanyAccountResponse{UserResponse: NewUserResponse(a.User)}
		if a.Profile != nil {
			p := NewCompanyProfileResponse(*a.Profile)
			r.Profile = &p
		}
		out = append(out, r)
	}
	return out
}

type StatisticsResponse struct {
	TotalUsers           int64 `json:"totalUsers"`
	TotalStudents        int64 `json:"totalStudents"`
	TotalCompanies       int64 `json:"totalCompanies"`
	TotalJobs            int64 `json:"totalJobs"`
	ActiveJobs           int64 `json:"activeJobs"`
	TotalApplications    int64 `json:"totalApplications"`
	ApprovedApplications int64 `json:"approvedApplications"`
	PendingApplications  int64 `json:"pendingApplications"`
}

func NewStatisticsResponse(s repository.Statistics) StatisticsResponse {
	return StatisticsResponse(s)
}
