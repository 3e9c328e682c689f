package usecase

import (
	"context"
	"encoding/json"
	"slices"
	"sort"
	"strings"
	"time"

	"careerlink/internal/domain/application"
	"careerlink/internal/domain/company"
	"careerlink/internal/domain/job"
	"careerlink/internal/domain/notification"
	"careerlink/internal/domain/student"
	"careerlink/internal/domain/user"
	"careerlink/internal/repository"

	"github.com/google/uuid"
)

// store is an in-memory stand-in for the relational schema shared by the
// fake repositories below.
type store struct {
	users     map[uuid.UUID]user.User
	students  map[uuid.UUID]student.Profile
	companies map[uuid.UUID]company.Profile
	jobs      map[uuid.UUID]job.Job
	apps      map[uuid.UUID]application.Application
	notes     []notification.Notification

	clock time.Time
}

func newStore() *store {
	return &store{
		users:     map[uuid.UUID]user.User{},
		students:  map[uuid.UUID]student.Profile{},
		companies: map[uuid.UUID]company.Profile{},
		jobs:      map[uuid.UUID]job.Job{},
		apps:      map[uuid.UUID]application.Application{},
		clock:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

type fakeUsers struct{ s *store }

func (f fakeUsers) Create(_ context.Context, u user.User) error {
	for _, x := range f.s.users {
		if x.Email == u.Email {
			return user.ErrEmailTaken
		}
	}
	u.CreatedAt = f.s.tick()
	f.s.users[u.ID] = u
	return nil
}

func (f fakeUsers) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := f.s.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (f fakeUsers) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range f.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (f fakeUsers) ListByRole(_ context.Context, r user.Role) ([]user.User, error) {
	var out []user.User
	for _, u := range f.s.users {
		if u.Role == r {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f fakeUsers) SetApproval(_ context.Context, id uuid.UUID, approved, active bool) (user.User, error) {
	u, ok := f.s.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	u.IsApproved, u.IsActive = approved, active
	f.s.users[id] = u
	return u, nil
}

func (f fakeUsers) Promote(_ context.Context, id uuid.UUID, hash string) error {
	u, ok := f.s.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.Role, u.IsActive, u.IsApproved, u.PasswordHash = user.RoleAdmin, true, true, hash
	f.s.users[id] = u
	return nil
}

func (f fakeUsers) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.s.users[id]; !ok {
		return user.ErrNotFound
	}
	delete(f.s.users, id)
	return nil
}

type fakeStudents struct{ s *store }

func (f fakeStudents) Create(_ context.Context, userID uuid.UUID) (student.Profile, error) {
	p := student.Profile{ID: uuid.New(), UserID: userID, CreatedAt: f.s.tick()}
	f.s.students[p.ID] = p
	return p, nil
}

func (f fakeStudents) GetByUserID(_ context.Context, userID uuid.UUID) (student.Profile, error) {
	for _, p := range f.s.students {
		if p.UserID == userID {
			return p, nil
		}
	}
	return student.Profile{}, repository.ErrStudentProfileNotFound
}

func (f fakeStudents) GetByID(_ context.Context, id uuid.UUID) (student.Profile, error) {
	p, ok := f.s.students[id]
	if !ok {
		return student.Profile{}, repository.ErrStudentProfileNotFound
	}
	return p, nil
}

func (f fakeStudents) GetOrCreate(ctx context.Context, userID uuid.UUID) (student.Profile, error) {
	if p, err := f.GetByUserID(ctx, userID); err == nil {
		return p, nil
	}
	return f.Create(ctx, userID)
}

func (f fakeStudents) mutate(id uuid.UUID, fn func(p *student.Profile) error) error {
	p, ok := f.s.students[id]
	if !ok {
		return repository.ErrStudentProfileNotFound
	}
	if err := fn(&p); err != nil {
		return err
	}
	f.s.students[id] = p
	return nil
}

func (f fakeStudents) UpdatePersonalDetails(_ context.Context, id uuid.UUID, d student.PersonalDetails) error {
	return f.mutate(id, func(p *student.Profile) error {
		d.ProfileImage = p.PersonalDetails.ProfileImage
		p.PersonalDetails = d
		return nil
	})
}

func (f fakeStudents) SetProfileImage(_ context.Context, id uuid.UUID, path string) error {
	return f.mutate(id, func(p *student.Profile) error { p.PersonalDetails.ProfileImage = path; return nil })
}

func (f fakeStudents) SetUploadedResume(_ context.Context, id uuid.UUID, path string) error {
	return f.mutate(id, func(p *student.Profile) error { p.Resume.Uploaded = path; return nil })
}

func (f fakeStudents) SetGeneratedResume(_ context.Context, id uuid.UUID, text string) error {
	return f.mutate(id, func(p *student.Profile) error { p.Resume.Generated = text; return nil })
}

func (f fakeStudents) AddEducation(_ context.Context, id uuid.UUID, e student.Education) error {
	return f.mutate(id, func(p *student.Profile) error { p.Education = append(p.Education, e); return nil })
}

func (f fakeStudents) UpdateEducation(_ context.Context, id uuid.UUID, e student.Education) error {
	return f.mutate(id, func(p *student.Profile) error {
		i := slices.IndexFunc(p.Education, func(x student.Education) bool { return x.ID == e.ID })
		if i < 0 {
			return repository.ErrEducationNotFound
		}
		p.Education = slices.Clone(p.Education)
		p.Education[i] = e
		return nil
	})
}

func (f fakeStudents) DeleteEducation(_ context.Context, id, entry uuid.UUID) error {
	return f.mutate(id, func(p *student.Profile) error {
		i := slices.IndexFunc(p.Education, func(x student.Education) bool { return x.ID == entry })
		if i < 0 {
			return repository.ErrEducationNotFound
		}
		p.Education = slices.Delete(slices.Clone(p.Education), i, i+1)
		return nil
	})
}

func (f fakeStudents) AddSkill(_ context.Context, id uuid.UUID, s student.Skill) error {
	return f.mutate(id, func(p *student.Profile) error { p.Skills = append(p.Skills, s); return nil })
}

func (f fakeStudents) UpdateSkill(_ context.Context, id uuid.UUID, s student.Skill) error {
	return f.mutate(id, func(p *student.Profile) error {
		i := slices.IndexFunc(p.Skills, func(x student.Skill) bool { return x.ID == s.ID })
		if i < 0 {
			return repository.ErrSkillNotFound
		}
		p.Skills = slices.Clone(p.Skills)
		p.Skills[i] = s
		return nil
	})
}

func (f fakeStudents) DeleteSkill(_ context.Context, id, entry uuid.UUID) error {
	return f.mutate(id, func(p *student.Profile) error {
		i := slices.IndexFunc(p.Skills, func(x student.Skill) bool { return x.ID == entry })
		if i < 0 {
			return repository.ErrSkillNotFound
		}
		p.Skills = slices.Delete(slices.Clone(p.Skills), i, i+1)
		return nil
	})
}

func (f fakeStudents) AddExperience(_ context.Context, id uuid.UUID, e student.Experience) error {
	return f.mutate(id, func(p *student.Profile) error { p.Experience = append(p.Experience, e); return nil })
}

func (f fakeStudents) UpdateExperience(_ context.Context, id uuid.UUID, e student.Experience) error {
	return f.mutate(id, func(p *student.Profile) error {
		i := slices.IndexFunc(p.Experience, func(x student.Experience) bool { return x.ID == e.ID })
		if i < 0 {
			return repository.ErrExperienceNotFound
		}
		p.Experience = slices.Clone(p.Experience)
		p.Experience[i] = e
		return nil
	})
}

func (f fakeStudents) DeleteExperience(_ context.Context, id, entry uuid.UUID) error {
	return f.mutate(id, func(p *student.Profile) error {
		i := slices.IndexFunc(p.Experience, func(x student.Experience) bool { return x.ID == entry })
		if i < 0 {
			return repository.ErrExperienceNotFound
		}
		p.Experience = slices.Delete(slices.Clone(p.Experience), i, i+1)
		return nil
	})
}

func (f fakeStudents) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	for id, p := range f.s.students {
		if p.UserID == userID {
			delete(f.s.students, id)
		}
	}
	return nil
}

type fakeCompanies struct{ s *store }

func (f fakeCompanies) Create(_ context.Context, userID uuid.UUID, name string) (company.Profile, error) {
	p := company.Profile{ID: uuid.New(), UserID: userID, CompanyName: name, CreatedAt: f.s.tick()}
	f.s.companies[p.ID] = p
	return p, nil
}

func (f fakeCompanies) GetByUserID(_ context.Context, userID uuid.UUID) (company.Profile, error) {
	for _, p := range f.s.companies {
		if p.UserID == userID {
			return p, nil
		}
	}
	return company.Profile{}, repository.ErrCompanyProfileNotFound
}

func (f fakeCompanies) GetOrCreate(ctx context.Context, userID uuid.UUID, name string) (company.Profile, error) {
	if p, err := f.GetByUserID(ctx, userID); err == nil {
		return p, nil
	}
	return f.Create(ctx, userID, name)
}

func (f fakeCompanies) Update(_ context.Context, p company.Profile) (company.Profile, error) {
	if _, ok := f.s.companies[p.ID]; !ok {
		return company.Profile{}, repository.ErrCompanyProfileNotFound
	}
	f.s.companies[p.ID] = p
	return p, nil
}

func (f fakeCompanies) SetLogo(_ context.Context, id uuid.UUID, path string) error {
	p, ok := f.s.companies[id]
	if !ok {
		return repository.ErrCompanyProfileNotFound
	}
	p.Logo = path
	f.s.companies[id] = p
	return nil
}

func (f fakeCompanies) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	for id, p := range f.s.companies {
		if p.UserID == userID {
			delete(f.s.companies, id)
		}
	}
	return nil
}

type fakeJobs struct{ s *store }

func (f fakeJobs) Create(_ context.Context, j job.Job) (job.Job, error) {
	j.CreatedAt = f.s.tick()
	f.s.jobs[j.ID] = j
	return j, nil
}

func (f fakeJobs) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	j, ok := f.s.jobs[id]
	if !ok {
		return job.Job{}, repository.ErrJobNotFound
	}
	return j, nil
}

func (f fakeJobs) GetOwned(_ context.Context, id, companyID uuid.UUID) (job.Job, error) {
	j, ok := f.s.jobs[id]
	if !ok || j.CompanyID != companyID {
		return job.Job{}, repository.ErrJobNotFound
	}
	return j, nil
}

func (f fakeJobs) Update(_ context.Context, j job.Job) (job.Job, error) {
	cur, ok := f.s.jobs[j.ID]
	if !ok || cur.CompanyID != j.CompanyID {
		return job.Job{}, repository.ErrJobNotFound
	}
	f.s.jobs[j.ID] = j
	return j, nil
}

func (f fakeJobs) Delete(_ context.Context, id, companyID uuid.UUID) error {
	j, ok := f.s.jobs[id]
	if !ok || j.CompanyID != companyID {
		return repository.ErrJobNotFound
	}
	delete(f.s.jobs, id)
	return nil
}

func (f fakeJobs) sorted(keep func(job.Job) bool) []job.Job {
	var out []job.Job
	for _, j := range f.s.jobs {
		if keep(j) {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out
}

func (f fakeJobs) ListByCompany(_ context.Context, companyID uuid.UUID) ([]job.Job, error) {
	return f.sorted(func(j job.Job) bool { return j.CompanyID == companyID }), nil
}

func (f fakeJobs) ListActive(_ context.Context, flt job.Filter) ([]job.Listing, error) {
	var out []job.Listing
	for _, j := range f.sorted(func(j job.Job) bool { return j.IsActive && (flt.JobType == "" || j.JobType == flt.JobType) }) {
		c := f.s.companies[j.CompanyID]
		out = append(out, job.Listing{Job: j, CompanyName: c.CompanyName, CompanyLogo: c.Logo})
	}
	return out, nil
}

func (f fakeJobs) ListIDsByCompany(_ context.Context, companyID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, j := range f.s.jobs {
		if j.CompanyID == companyID {
			ids = append(ids, j.ID)
		}
	}
	return ids, nil
}

func (f fakeJobs) DeleteByCompany(_ context.Context, companyID uuid.UUID) (int64, error) {
	var n int64
	for id, j := range f.s.jobs {
		if j.CompanyID == companyID {
			delete(f.s.jobs, id)
			n++
		}
	}
	return n, nil
}

type fakeApps struct{ s *store }

func (f fakeApps) Create(_ context.Context, a application.Application) (application.Application, error) {
	if _, ok := f.s.jobs[a.JobID]; !ok {
		return application.Application{}, repository.ErrJobNotFound
	}
	for _, x := range f.s.apps {
		if x.JobID == a.JobID && x.StudentID == a.StudentID {
			return application.Application{}, repository.ErrDuplicateApplication
		}
	}
	a.AppliedAt = f.s.tick()
	f.s.apps[a.ID] = a
	return a, nil
}

func (f fakeApps) GetByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	a, ok := f.s.apps[id]
	if !ok {
		return application.Application{}, repository.ErrApplicationNotFound
	}
	return a, nil
}

func (f fakeApps) UpdateStatus(_ context.Context, id uuid.UUID, st application.Status) (application.Application, error) {
	a, ok := f.s.apps[id]
	if !ok {
		return application.Application{}, repository.ErrApplicationNotFound
	}
	a.Status = st
	f.s.apps[id] = a
	return a, nil
}

func (f fakeApps) ListByStudent(_ context.Context, studentID uuid.UUID) ([]application.StudentView, error) {
	var out []application.StudentView
	for _, a := range f.s.apps {
		if a.StudentID != studentID {
			continue
		}
		j := f.s.jobs[a.JobID]
		c := f.s.companies[j.CompanyID]
		out = append(out, application.StudentView{Application: a, JobTitle: j.Title, CompanyID: c.ID, CompanyName: c.CompanyName})
	}
	return out, nil
}

func (f fakeApps) companyView(a application.Application) application.CompanyView {
	sp := f.s.students[a.StudentID]
	return application.CompanyView{
		Application:  a,
		JobTitle:     f.s.jobs[a.JobID].Title,
		StudentEmail: f.s.users[sp.UserID].Email,
	}
}

func (f fakeApps) ListByJob(_ context.Context, jobID uuid.UUID) ([]application.CompanyView, error) {
	var out []application.CompanyView
	for _, a := range f.s.apps {
		if a.JobID == jobID {
			out = append(out, f.companyView(a))
		}
	}
	return out, nil
}

func (f fakeApps) ListByCompany(_ context.Context, companyID uuid.UUID) ([]application.CompanyView, error) {
	var out []application.CompanyView
	for _, a := range f.s.apps {
		if f.s.jobs[a.JobID].CompanyID == companyID {
			out = append(out, f.companyView(a))
		}
	}
	return out, nil
}

func (f fakeApps) HasAppliedToCompany(_ context.Context, studentID, companyID uuid.UUID) (bool, error) {
	for _, a := range f.s.apps {
		if a.StudentID == studentID && f.s.jobs[a.JobID].CompanyID == companyID {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeApps) DeleteByJobIDs(_ context.Context, ids []uuid.UUID) (int64, error) {
	var n int64
	for id, a := range f.s.apps {
		if slices.Contains(ids, a.JobID) {
			delete(f.s.apps, id)
			n++
		}
	}
	return n, nil
}

func (f fakeApps) DeleteByStudent(_ context.Context, studentID uuid.UUID) (int64, error) {
	var n int64
	for id, a := range f.s.apps {
		if a.StudentID == studentID {
			delete(f.s.apps, id)
			n++
		}
	}
	return n, nil
}

type fakeNotes struct{ s *store }

func (f fakeNotes) Create(_ context.Context, n notification.Notification) error {
	n.CreatedAt = f.s.tick()
	f.s.notes = append(f.s.notes, n)
	return nil
}

func (f fakeNotes) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]notification.Notification, error) {
	var out []notification.Notification
	for i := len(f.s.notes) - 1; i >= 0 && len(out) < limit; i-- {
		if f.s.notes[i].UserID == userID {
			out = append(out, f.s.notes[i])
		}
	}
	return out, nil
}

func (f fakeNotes) MarkRead(_ context.Context, id, userID uuid.UUID) (notification.Notification, error) {
	for i, n := range f.s.notes {
		if n.ID == id && n.UserID == userID {
			f.s.notes[i].IsRead = true
			return f.s.notes[i], nil
		}
	}
	return notification.Notification{}, repository.ErrNotificationNotFound
}

func (f fakeNotes) DeleteByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	kept := f.s.notes[:0]
	for _, x := range f.s.notes {
		if x.UserID == userID {
			n++
			continue
		}
		kept = append(kept, x)
	}
	f.s.notes = kept
	return n, nil
}

type fakeStats struct{ s *store }

func (f fakeStats) Statistics(context.Context) (repository.Statistics, error) {
	var st repository.Statistics
	for _, u := range f.s.users {
		st.TotalUsers++
		switch u.Role {
		case user.RoleStudent:
			st.TotalStudents++
		case user.RoleCompany:
			st.TotalCompanies++
		}
	}
	for _, j := range f.s.jobs {
		st.TotalJobs++
		if j.IsActive {
			st.ActiveJobs++
		}
	}
	for _, a := range f.s.apps {
		st.TotalApplications++
		switch a.Status {
		case application.StatusApproved:
			st.ApprovedApplications++
		case application.StatusPending:
			st.PendingApplications++
		}
	}
	return st, nil
}

type fakeTx struct{ calls int }

func (t *fakeTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type fakeCache struct {
	data        map[string][]byte
	gets, sets  int
	invalidated int
	generations map[string]int64
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}, generations: map[string]int64{}}
}

func (c *fakeCache) Generation(_ context.Context, key string) (int64, error) {
	return c.generations[key], nil
}

func (c *fakeCache) Bump(_ context.Context, key string) (int64, error) {
	c.generations[key]++
	return c.generations[key], nil
}

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.gets++
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, v any, _ time.Duration) error {
	c.sets++
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.invalidated++
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

type fakeFiles struct{ removed []string }

func (f *fakeFiles) Remove(p string) error {
	f.removed = append(f.removed, p)
	return nil
}

// seedUser inserts an account with a profile matching its role.
func seedUser(s *store, email string, role user.Role, approved bool) user.User {
	u := user.User{ID: uuid.New(), Email: email, Role: role, IsActive: true, IsApproved: approved, CreatedAt: s.tick()}
	s.users[u.ID] = u
	switch role {
	case user.RoleStudent:
		p := student.Profile{ID: uuid.New(), UserID: u.ID}
		s.students[p.ID] = p
	case user.RoleCompany:
		p := company.Profile{ID: uuid.New(), UserID: u.ID, CompanyName: strings.Split(email, "@")[0]}
		s.companies[p.ID] = p
	}
	return u
}

func seedJob(s *store, companyUserID uuid.UUID, title string, active bool) job.Job {
	var cid uuid.UUID
	for _, p := range s.companies {
		if p.UserID == companyUserID {
			cid = p.ID
		}
	}
	j := job.Job{
		ID: uuid.New(), CompanyID: cid, Title: title, Description: "d", RequiredSkills: []string{"Java"},
		Salary: "10k", Position: "Engineer", JobType: job.TypeFullTime, ExperienceRequired: "1y",
		NumberOfPositions: 1, IsActive: active, CreatedAt: s.tick(),
	}
	s.jobs[j.ID] = j
	return j
}

func studentProfileOf(s *store, userID uuid.UUID) student.Profile {
	for _, p := range s.students {
		if p.UserID == userID {
			return p
		}
	}
	return student.Profile{}
}

func applicationFor(jobID, studentID uuid.UUID) application.Application {
	return application.Application{ID: uuid.New(), JobID: jobID, StudentID: studentID, Status: application.StatusPending}
}
