package student

import (
	"strconv"
	"strings"
)

const resumeDateLayout = "Mon Jan 02 2006"

// RenderResume builds the plain text resume of p for the account email.
// Empty sections are omitted.
func (p Profile) RenderResume(email string) string {
	var b strings.Builder

	b.WriteString("RESUME\n")
	b.WriteString("===================\n\n")
	b.WriteString("Email: " + email + "\n\n")

	pd := p.PersonalDetails
	if pd.FirstName != "" || pd.LastName != "" {
		b.WriteString("Name: " + pd.FirstName + " " + pd.LastName + "\n")
	}
	if pd.Phone != "" {
		b.WriteString("Phone: " + pd.Phone + "\n")
	}
	if pd.Address != "" {
		b.WriteString("Address: " + pd.Address + "\n")
	}
	b.WriteString("\n")

	if len(p.Education) > 0 {
		b.WriteString("EDUCATION\n")
		b.WriteString("----------\n")
		for _, e := range p.Education {
			b.WriteString(string(e.Degree) + " - " + e.Institute + "\n")
			b.WriteString("CGPA: " + formatNumber(e.CGPA) + ", Passing Year: " + strconv.Itoa(e.PassingYear) + "\n\n")
		}
	}

	if len(p.Skills) > 0 {
		b.WriteString("SKILLS\n")
		b.WriteString("------\n")
		for _, s := range p.Skills {
			b.WriteString(s.Skill + " - " + formatNumber(s.YearsOfExperience) + " years\n")
			if s.RelatedProjects != "" {
				b.WriteString("  Projects: " + s.RelatedProjects + "\n")
			}
		}
		b.WriteString("\n")
	}

	if len(p.Experience) > 0 {
		b.WriteString("EXPERIENCE\n")
		b.WriteString("----------\n")
		for _, e := range p.Experience {
			b.WriteString(e.Position + " at " + e.CompanyName + "\n")
			b.WriteString("Role: " + e.Role + "\n")
			b.WriteString("Duration: " + e.StartDate.Format(resumeDateLayout) + " - " + e.EndDate.Format(resumeDateLayout) + "\n\n")
		}
	}

	return b.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
