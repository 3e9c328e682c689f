package validator

import (
	"errors"
	"testing"
)

type sample struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6"`
	Role     string   `json:"role" validate:"required,oneof=student company"`
	Skills   []string `json:"requiredSkills" validate:"omitempty,dive,skill"`
	Degree   string   `json:"degree" validate:"omitempty,degree"`
	JobType  string   `json:"jobType" validate:"omitempty,job_type"`
	CGPA     *float64 `json:"cgpa" validate:"omitempty,gte=0,lte=10"`
}

func valid() sample {
	return sample{Email: "a@gmail.com", Password: "secret1", Role: "student"}
}

func TestValidate_OK(t *testing.T) {
	s := valid()
	s.Skills = []string{"Java", "C / C++"}
	s.Degree = "MSC"
	s.JobType = "Part-time"
	if err := New().Validate(&s); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestValidate_Messages(t *testing.T) {
	high := 11.0
	cases := []struct {
		name   string
		mutate func(*sample)
		field  string
		msg    string
	}{
		{"missing email", func(s *sample) { s.Email = "" }, "email", "email is required"},
		{"short password", func(s *sample) { s.Password = "123" }, "password", "password must be at least 6 characters"},
		{"bad role", func(s *sample) { s.Role = "admin" }, "role", "role must be one of [student company]"},
		{"unknown skill", func(s *sample) { s.Skills = []string{"Java", "Cobol"} }, "requiredSkills[1]", "requiredSkills[1] is not a supported skill"},
		{"bad degree", func(s *sample) { s.Degree = "PHD" }, "degree", "degree must be BSC or MSC"},
		{"bad job type", func(s *sample) { s.JobType = "Contract" }, "jobType", "jobType must be Full-time or Part-time"},
		{"cgpa range", func(s *sample) { s.CGPA = &high }, "cgpa", "cgpa must be at most 10"},
	}

	v := New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := valid()
			tc.mutate(&s)

			err := v.Validate(&s)
			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if verr.Field != tc.field || verr.Message != tc.msg {
				t.Fatalf("got field=%q msg=%q", verr.Field, verr.Message)
			}
		})
	}
}
