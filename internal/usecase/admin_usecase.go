package usecase

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"

	"careerlink/internal/database"
	"careerlink/internal/domain/company"
	"careerlink/internal/domain/notification"
	"careerlink/internal/domain/student"
	"careerlink/internal/domain/user"
	"careerlink/internal/pkg/export"
	"careerlink/internal/repository"

	"github.com/google/uuid"
)

type AdminUsecase interface {
	ListStudents(ctx context.Context) ([]StudentAccount, error)
	ListCompanies(ctx context.Context) ([]CompanyAccount, error)
	ApproveCompany(ctx context.Context, userID uuid.UUID) (user.User, error)
	RejectCompany(ctx context.Context, userID uuid.UUID) (user.User, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
	Statistics(ctx context.Context) (repository.Statistics, error)
	ExportStudents(ctx context.Context) (*bytes.Buffer, error)
	ExportCompanies(ctx context.Context) (*bytes.Buffer, error)
}

// StudentAccount is a student user with its profile, when one exists.
type StudentAccount struct {
	User    user.User
	Profile *student.Profile
}

type CompanyAccount struct {
	User    user.User
	Profile *company.Profile
}

type Admin struct {
	users         user.Repository
	students      repository.StudentProfileRepository
	companies     repository.CompanyProfileRepository
	jobs          repository.JobRepository
	apps          repository.ApplicationRepository
	notifications repository.NotificationRepository
	stats         repository.StatisticsRepository
	tx            database.Transactor
	cache         JobCache
	logger        *slog.Logger
}

type AdminDeps struct {
	Users         user.Repository
	Students      repository.StudentProfileRepository
	Companies     repository.CompanyProfileRepository
	Jobs          repository.JobRepository
	Applications  repository.ApplicationRepository
	Notifications repository.NotificationRepository
	Stats         repository.StatisticsRepository
	Tx            database.Transactor
	Cache         JobCache
	Logger        *slog.Logger
}

func NewAdminUsecase(d AdminDeps) *Admin {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Admin{
		users:         d.Users,
		students:      d.Students,
		companies:     d.Companies,
		jobs:          d.Jobs,
		apps:          d.Applications,
		notifications: d.Notifications,
		stats:         d.Stats,
		tx:            d.Tx,
		cache:         d.Cache,
		logger:        logger,
	}
}

func (u *Admin) ListStudents(ctx context.Context) ([]StudentAccount, error) {
	users, err := u.users.ListByRole(ctx, user.RoleStudent)
	if err != nil {
		return nil, internal(err)
	}
	out := make([]StudentAccount, 0, len(users))
	for _, usr := range users {
		usr.PasswordHash = ""
		acc := StudentAccount{User: usr}
		p, err := u.students.GetByUserID(ctx, usr.ID)
		switch {
		case err == nil:
			acc.Profile = &p
		case !errors.Is(err, repository.ErrStudentProfileNotFound):
			return nil, internal(err)
		}
		out = append(out, acc)
	}
	return out, nil
}

func (u *Admin) ListCompanies(ctx context.Context) ([]CompanyAccount, error) {
	users, err := u.users.ListByRole(ctx, user.RoleCompany)
	if err != nil {
		return nil, internal(err)
	}
	out := make([]CompanyAccount, 0, len(users))
	for _, usr := range users {
		usr.PasswordHash = ""
		acc := CompanyAccount{User: usr}
		p, err := u.companies.GetByUserID(ctx, usr.ID)
		switch {
		case err == nil:
			acc.Profile = &p
		case !errors.Is(err, repository.ErrCompanyProfileNotFound):
			return nil, internal(err)
		}
		out = append(out, acc)
	}
	return out, nil
}

// ApproveCompany approves and re-activates the company account.
func (u *Admin) ApproveCompany(ctx context.Context, userID uuid.UUID) (user.User, error) {
	return u.decideCompany(ctx, userID, true)
}

// RejectCompany withdraws approval and deactivates the account.
func (u *Admin) RejectCompany(ctx context.Context, userID uuid.UUID) (user.User, error) {
	return u.decideCompany(ctx, userID, false)
}

func (u *Admin) decideCompany(ctx context.Context, userID uuid.UUID, approved bool) (user.User, error) {
	var out user.User
	err := u.tx.InTx(ctx, func(ctx context.Context) error {
		usr, err := u.users.GetByID(ctx, userID)
		if err != nil {
			return translate(err, user.ErrNotFound, ErrCompanyNotFound)
		}
		if usr.Role != user.RoleCompany {
			return ErrCompanyNotFound
		}
		out, err = u.users.SetApproval(ctx, usr.ID, approved, approved)
		if err != nil {
			return translate(err, user.ErrNotFound, ErrCompanyNotFound)
		}
		if err := u.notifications.Create(ctx, notification.ForCompanyDecision(usr.ID, approved)); err != nil {
			return internal(err)
		}
		return nil
	})
	if err != nil {
		return user.User{}, err
	}
	out.PasswordHash = ""
	u.logger.Info("company decided", "user_id", out.ID, "approved", approved)
	return out, nil
}

// DeleteUser removes the account and everything it owns in one transaction.
// For a company that is its profile, its jobs and the applications to them;
// for a student its profile, sub-records and applications.
func (u *Admin) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	var role user.Role
	err := u.tx.InTx(ctx, func(ctx context.Context) error {
		usr, err := u.users.GetByID(ctx, userID)
		if err != nil {
			return translate(err, user.ErrNotFound, ErrUserNotFound)
		}
		role = usr.Role

		switch usr.Role {
		case user.RoleCompany:
			if err := u.deleteCompanyData(ctx, usr.ID); err != nil {
				return err
			}
		case user.RoleStudent:
			if err := u.deleteStudentData(ctx, usr.ID); err != nil {
				return err
			}
		}

		if _, err := u.notifications.DeleteByUser(ctx, usr.ID); err != nil {
			return internal(err)
		}
		if err := u.users.Delete(ctx, usr.ID); err != nil {
			return translate(err, user.ErrNotFound, ErrUserNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if role == user.RoleCompany {
		invalidateJobBrowse(ctx, u.cache, u.logger)
	}
	u.logger.Info("user deleted", "user_id", userID, "role", role)
	return nil
}

func (u *Admin) deleteCompanyData(ctx context.Context, userID uuid.UUID) error {
	p, err := u.companies.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyProfileNotFound) {
			return nil
		}
		return internal(err)
	}
	jobIDs, err := u.jobs.ListIDsByCompany(ctx, p.ID)
	if err != nil {
		return internal(err)
	}
	apps, err := u.apps.DeleteByJobIDs(ctx, jobIDs)
	if err != nil {
		return internal(err)
	}
	jobs, err := u.jobs.DeleteByCompany(ctx, p.ID)
	if err != nil {
		return internal(err)
	}
	if err := u.companies.DeleteByUserID(ctx, userID); err != nil {
		return internal(err)
	}
	u.logger.Info("company data deleted", "company_id", p.ID, "jobs", jobs, "applications", apps)
	return nil
}

func (u *Admin) deleteStudentData(ctx context.Context, userID uuid.UUID) error {
	p, err := u.students.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrStudentProfileNotFound) {
			return nil
		}
		return internal(err)
	}
	apps, err := u.apps.DeleteByStudent(ctx, p.ID)
	if err != nil {
		return internal(err)
	}
	if err := u.students.DeleteByUserID(ctx, userID); err != nil {
		return internal(err)
	}
	u.logger.Info("student data deleted", "profile_id", p.ID, "applications", apps)
	return nil
}

func (u *Admin) Statistics(ctx context.Context) (repository.Statistics, error) {
	s, err := u.stats.Statistics(ctx)
	if err != nil {
		return repository.Statistics{}, internal(err)
	}
	return s, nil
}

func (u *Admin) ExportStudents(ctx context.Context) (*bytes.Buffer, error) {
	accounts, err := u.ListStudents(ctx)
	if err != nil {
		return nil, err
	}
	sheet := export.Sheet{
		Name: "Students",
		Header: []string{
			"User ID", "Email", "Active", "Registered", "First name", "Last name",
			"Phone", "Address", "Education", "Skills", "Experience", "Resume",
		},
	}
	for _, a := range accounts {
		row := []any{a.User.ID.String(), a.User.Email, a.User.IsActive, a.User.CreatedAt}
		if p := a.Profile; p != nil {
			skills := make([]string, 0, len(p.Skills))
			for _, s := range p.Skills {
				skills = append(skills, s.Skill)
			}
			row = append(row,
				p.PersonalDetails.FirstName, p.PersonalDetails.LastName,
				p.PersonalDetails.Phone, p.PersonalDetails.Address,
				len(p.Education), strings.Join(skills, ", "), len(p.Experience), p.Resume.Uploaded,
			)
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return u.render(sheet)
}

func (u *Admin) ExportCompanies(ctx context.Context) (*bytes.Buffer, error) {
	accounts, err := u.ListCompanies(ctx)
	if err != nil {
		return nil, err
	}
	sheet := export.Sheet{
		Name:   "Companies",
		Header: []string{"User ID", "Email", "Approved", "Active", "Registered", "Company name", "Address", "Description", "Logo"},
	}
	for _, a := range accounts {
		row := []any{a.User.ID.String(), a.User.Email, a.User.IsApproved, a.User.IsActive, a.User.CreatedAt}
		if p := a.Profile; p != nil {
			row = append(row, p.CompanyName, p.Address, p.Description, p.Logo)
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return u.render(sheet)
}

func (u *Admin) render(s export.Sheet) (*bytes.Buffer, error) {
	buf, err := export.XLSX(s)
	if err != nil {
		return nil, internal(err)
	}
	return buf, nil
}
