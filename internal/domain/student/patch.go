package student

import "time"

// EducationPatch carries the fields of a partial education update; nil
// fields are left unchanged.
type EducationPatch struct {
	Institute   *string
	Degree      *Degree
	CGPA        *float64
	PassingYear *int
}

func (p EducationPatch) Apply(e Education) Education {
	if p.Institute != nil && *p.Institute != "" {
		e.Institute = *p.Institute
	}
	if p.Degree != nil && *p.Degree != "" {
		e.Degree = *p.Degree
	}
	if p.CGPA != nil {
		e.CGPA = *p.CGPA
	}
	if p.PassingYear != nil {
		e.PassingYear = *p.PassingYear
	}
	return e
}

type SkillPatch struct {
	Skill             *string
	YearsOfExperience *float64
	RelatedProjects   *string
}

func (p SkillPatch) Apply(s Skill) Skill {
	if p.Skill != nil && *p.Skill != "" {
		s.Skill = *p.Skill
	}
	if p.YearsOfExperience != nil {
		s.YearsOfExperience = *p.YearsOfExperience
	}
	if p.RelatedProjects != nil {
		s.RelatedProjects = *p.RelatedProjects
	}
	return s
}

type ExperiencePatch struct {
	CompanyName *string
	Role        *string
	Position    *string
	StartDate   *time.Time
	EndDate     *time.Time
}

func (p ExperiencePatch) Apply(e Experience) Experience {
	if p.CompanyName != nil && *p.CompanyName != "" {
		e.CompanyName = *p.CompanyName
	}
	if p.Role != nil && *p.Role != "" {
		e.Role = *p.Role
	}
	if p.Position != nil && *p.Position != "" {
		e.Position = *p.Position
	}
	if p.StartDate != nil {
		e.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		e.EndDate = *p.EndDate
	}
	return e
}
