package job

import "testing"

func TestPatchApply(t *testing.T) {
	j := Job{Title: "Backend", Salary: "10k", JobType: TypeFullTime, NumberOfPositions: 2, IsActive: true, RequiredSkills: []string{"Java"}}

	title := "Platform"
	empty := ""
	inactive := false
	zero := 0
	got := Patch{Title: &title, Salary: &empty, IsActive: &inactive, NumberOfPositions: &zero}.Apply(j)

	if got.Title != "Platform" || got.Salary != "10k" {
		t.Fatalf("unexpected strings %+v", got)
	}
	if got.IsActive {
		t.Fatalf("isActive=false must be applied")
	}
	if got.NumberOfPositions != 2 {
		t.Fatalf("zero positions must be ignored")
	}
	if len(got.RequiredSkills) != 1 || got.RequiredSkills[0] != "Java" {
		t.Fatalf("skills must be untouched")
	}
}

func TestTypeValid(t *testing.T) {
	if !TypePartTime.Valid() || Type("Contract").Valid() {
		t.Fatalf("unexpected job type validity")
	}
}
