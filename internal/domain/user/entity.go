package user

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleCompany Role = "company"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleCompany, RoleAdmin:
		return true
	}
	return false
}

// SelfRegistrable reports whether the role may be chosen at public registration.
func (r Role) SelfRegistrable() bool {
	return r == RoleStudent || r == RoleCompany
}

const MinPasswordLength = 6

// bcrypt only hashes the first 72 bytes and refuses longer input.
const MaxPasswordBytes = 72

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	IsApproved   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ApprovedOnRegistration is the initial approval flag for a newly registered
// account: students are approved at once, companies wait for an admin.
func ApprovedOnRegistration(r Role) bool {
	return r != RoleCompany
}

// AwaitingApproval reports a company that has not been approved yet.
func (u User) AwaitingApproval() bool {
	return u.Role == RoleCompany && !u.IsApproved
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EmailMatcher accepts addresses of exactly one mail domain.
type EmailMatcher struct {
	re *regexp.Regexp
}

func NewEmailMatcher(domain string) EmailMatcher {
	domain = strings.ToLower(strings.TrimSpace(domain))
	return EmailMatcher{re: regexp.MustCompile(`^[^\s@]+@` + regexp.QuoteMeta(domain) + `$`)}
}

func (m EmailMatcher) Match(email string) bool {
	if m.re == nil {
		return false
	}
	return m.re.MatchString(email)
}
