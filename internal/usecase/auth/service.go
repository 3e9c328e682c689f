package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"careerlink/internal/database"
	"careerlink/internal/domain/user"
	"careerlink/internal/repository"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrAccountDeactivated     = errors.New("account is deactivated")
	ErrPendingApproval        = errors.New("company account pending approval")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

// InputError carries a client-facing validation message and matches
// ErrInvalidInput.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

func invalid(msg string) error { return &InputError{Message: msg} }

func internal(err error) error { return fmt.Errorf("%w: %w", ErrInternal, err) }

type RegisterInput struct {
	Email       string
	Password    string
	Role        user.Role
	CompanyName string
}

type LoginInput struct {
	Email    string
	Password string
	Role     user.Role
}

type Service struct {
	users     user.Repository
	students  repository.StudentProfileRepository
	companies repository.CompanyProfileRepository
	tx        database.Transactor
	emails    user.EmailMatcher
	domain    string
	cost      int

	dummyOnce sync.Once
	dummyHash []byte
}

func NewService(
	users user.Repository,
	students repository.StudentProfileRepository,
	companies repository.CompanyProfileRepository,
	tx database.Transactor,
	allowedEmailDomain string,
) *Service {
	return &Service{
		users:     users,
		students:  students,
		companies: companies,
		tx:        tx,
		emails:    user.NewEmailMatcher(allowedEmailDomain),
		domain:    allowedEmailDomain,
		cost:      bcrypt.DefaultCost,
	}
}

// WithCost changes the bcrypt cost of new hashes.
func (s *Service) WithCost(cost int) *Service {
	s.cost = cost
	return s
}

// Register creates the account and its empty profile in one transaction.
// Students are approved at once; companies wait for an admin.
func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	email := user.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" || in.Role == "" {
		return user.User{}, invalid("All fields are required")
	}
	if !in.Role.SelfRegistrable() {
		return user.User{}, invalid("Invalid role")
	}
	if !s.emails.Match(email) {
		return user.User{}, invalid(fmt.Sprintf("Email must be a valid %s address", s.domain))
	}
	if len(in.Password) < user.MinPasswordLength {
		return user.User{}, invalid(fmt.Sprintf("Password must be at least %d characters", user.MinPasswordLength))
	}
	if len(in.Password) > user.MaxPasswordBytes {
		return user.User{}, invalid(fmt.Sprintf("Password must be at most %d bytes", user.MaxPasswordBytes))
	}
	companyName := strings.TrimSpace(in.CompanyName)
	if in.Role == user.RoleCompany && companyName == "" {
		return user.User{}, invalid("Company name is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return user.User{}, internal(err)
	}

	u := user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         in.Role,
		IsActive:     true,
		IsApproved:   user.ApprovedOnRegistration(in.Role),
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.users.Create(ctx, u); err != nil {
			return err
		}
		if in.Role == user.RoleCompany {
			_, err := s.companies.Create(ctx, u.ID, companyName)
			return err
		}
		_, err := s.students.Create(ctx, u.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, internal(err)
	}

	return sanitizeUser(u), nil
}

// Login checks credentials for the asserted role. Unknown email, role
// mismatch and wrong password all answer ErrInvalidCredentials after the same
// amount of hashing work.
func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := user.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" || in.Role == "" {
		return user.User{}, invalid("All fields are required")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			s.burnHash(in.Password)
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, internal(err)
	}

	passwordOK := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) == nil
	if !passwordOK || u.Role != in.Role {
		return user.User{}, ErrInvalidCredentials
	}
	if !u.IsActive {
		return user.User{}, ErrAccountDeactivated
	}
	if u.AwaitingApproval() {
		return user.User{}, ErrPendingApproval
	}

	return sanitizeUser(u), nil
}

// AdminLogin authenticates a stored admin account. Admin accounts are only
// ever provisioned out of band.
func (s *Service) AdminLogin(ctx context.Context, emailIn, password string) (user.User, error) {
	if strings.TrimSpace(emailIn) == "" || password == "" {
		return user.User{}, invalid("Email and password are required")
	}
	return s.Login(ctx, LoginInput{Email: emailIn, Password: password, Role: user.RoleAdmin})
}

// Known reports whether an account exists for email. Lookup failures count as
// unknown.
func (s *Service) Known(ctx context.Context, email string) bool {
	_, err := s.users.GetByEmail(ctx, user.NormalizeEmail(email))
	return err == nil
}

func (s *Service) burnHash(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("careerlink-placeholder"), s.cost)
	})
	_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
