package usecase

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"careerlink/internal/domain/application"
	"careerlink/internal/domain/job"
	"careerlink/internal/domain/user"

	"github.com/google/uuid"
)

func newStudentJobsFixture() (*store, *StudentJobs, *fakeCache) {
	s := newStore()
	cache := newFakeCache()
	uc := NewStudentJobsUsecase(fakeJobs{s}, fakeApps{s}, fakeStudents{s}, cache, time.Minute, nil)
	return s, uc, cache
}

func TestStudentJobs_Apply_Twice(t *testing.T) {
	s, uc, _ := newStudentJobsFixture()
	corp := seedUser(s, "corp@gmail.com", user.RoleCompany, true)
	stud := seedUser(s, "stud@gmail.com", user.RoleStudent, true)
	j := seedJob(s, corp.ID, "Backend", true)

	a, err := uc.Apply(context.Background(), stud.ID, j.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.Status != application.StatusPending {
		t.Fatalf("expected Pending, got %s", a.Status)
	}
	if _, err := uc.Apply(context.Background(), stud.ID, j.ID); !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
	if len(s.apps) != 1 {
		t.Fatalf("expected exactly one application, got %d", len(s.apps))
	}
}

func TestStudentJobs_Apply_Rejections(t *testing.T) {
	s, uc, _ := newStudentJobsFixture()
	corp := seedUser(s, "corp@gmail.com", user.RoleCompany, true)
	stud := seedUser(s, "stud@gmail.com", user.RoleStudent, true)
	closed := seedJob(s, corp.ID, "Closed", false)
	open := seedJob(s, corp.ID, "Open", true)

	if _, err := uc.Apply(context.Background(), stud.ID, uuid.New()); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound for unknown job, got %v", err)
	}
	if _, err := uc.Apply(context.Background(), stud.ID, closed.ID); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound for inactive job, got %v", err)
	}
	if _, err := uc.Apply(context.Background(), uuid.New(), open.ID); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestStudentJobs_Applied(t *testing.T) {
	s, uc, _ := newStudentJobsFixture()
	corp := seedUser(s, "corp@gmail.com", user.RoleCompany, true)
	stud := seedUser(s, "stud@gmail.com", user.RoleStudent, true)
	j := seedJob(s, corp.ID, "Backend", true)
	uc.Apply(context.Background(), stud.ID, j.ID)

	items, err := uc.Applied(context.Background(), stud.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 1 || items[0].JobTitle != "Backend" || items[0].CompanyName != "corp" {
		t.Fatalf("unexpected applications %+v", items)
	}
}

func TestStudentJobs_Browse(t *testing.T) {
	s, uc, cache := newStudentJobsFixture()
	corp := seedUser(s, "corp@gmail.com", user.RoleCompany, true)
	seedJob(s, corp.ID, "Old", true)
	seedJob(s, corp.ID, "Hidden", false)
	seedJob(s, corp.ID, "New", true)

	items, err := uc.Browse(context.Background(), job.Filter{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 2 || items[0].Title != "New" || items[1].Title != "Old" {
		t.Fatalf("expected active jobs newest first, got %+v", items)
	}
	if items[0].CompanyName != "corp" {
		t.Fatalf("expected company name on listing, got %q", items[0].CompanyName)
	}
	if cache.sets != 1 {
		t.Fatalf("expected cache fill, got %d sets", cache.sets)
	}

	seedJob(s, corp.ID, "Uncached", true)
	items, _ = uc.Browse(context.Background(), job.Filter{})
	if len(items) != 2 {
		t.Fatalf("expected cached listing, got %d items", len(items))
	}
}

func TestStudentJobs_Browse_InvalidType(t *testing.T) {
	_, uc, _ := newStudentJobsFixture()
	if _, err := uc.Browse(context.Background(), job.Filter{JobType: "Contract"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestStudentJobs_Browse_EmptyIsNotNil(t *testing.T) {
	s := newStore()
	uc := NewStudentJobsUsecase(fakeJobs{s}, fakeApps{s}, fakeStudents{s}, nil, time.Minute, nil)
	items, err := uc.Browse(context.Background(), job.Filter{JobType: job.TypePartTime})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if items == nil {
		t.Fatalf("expected empty slice, got nil")
	}
}

func TestJobBrowseCacheKey(t *testing.T) {
	if got := JobBrowseCacheKey(job.Filter{}, 0); got != "jobs:browse:0:all" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := JobBrowseCacheKey(job.Filter{JobType: job.TypeFullTime}, 3); got != "jobs:browse:3:full-time" {
		t.Fatalf("unexpected key %q", got)
	}
}

// listThenWrite lets a job write land between the store read and the cache
// fill of a browse.
type listThenWrite struct {
	fakeJobs
	write func()
}

func (j listThenWrite) ListActive(ctx context.Context, f job.Filter) ([]job.Listing, error) {
	items, err := j.fakeJobs.ListActive(ctx, f)
	if j.write != nil {
		j.write()
	}
	return items, err
}

func TestStudentJobs_Browse_WriteDuringMissIsNotServedStale(t *testing.T) {
	s := newStore()
	cache := newFakeCache()
	corp := seedUser(s, "corp@gmail.com", user.RoleCompany, true)
	seedJob(s, corp.ID, "Old", true)

	var wrote bool
	jobs := listThenWrite{fakeJobs: fakeJobs{s}}
	jobs.write = func() {
		if wrote {
			return
		}
		wrote = true
		seedJob(s, corp.ID, "New", true)
		invalidateJobBrowse(context.Background(), cache, slog.Default())
	}
	uc := NewStudentJobsUsecase(jobs, fakeApps{s}, fakeStudents{s}, cache, time.Minute, nil)

	items, err := uc.Browse(context.Background(), job.Filter{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected the listing read before the write, got %d items", len(items))
	}

	items, err = uc.Browse(context.Background(), job.Filter{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 2 || items[0].Title != "New" {
		t.Fatalf("expected the write to be visible, got %+v", items)
	}
}
