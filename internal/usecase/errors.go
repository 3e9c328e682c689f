package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInternal     = errors.New("internal error")

	ErrUserNotFound           = errors.New("user not found")
	ErrCompanyNotFound        = errors.New("company not found")
	ErrProfileNotFound        = errors.New("profile not found")
	ErrCompanyProfileNotFound = errors.New("company profile not found")
	ErrStudentProfileNotFound = errors.New("student profile not found")
	ErrEducationNotFound      = errors.New("education not found")
	ErrSkillNotFound          = errors.New("skill not found")
	ErrExperienceNotFound     = errors.New("experience not found")
	ErrJobNotFound            = errors.New("job not found")
	ErrApplicationNotFound    = errors.New("application not found")
	ErrNotificationNotFound   = errors.New("notification not found")

	ErrAlreadyApplied = errors.New("already applied for this job")
	ErrAccessDenied   = errors.New("access denied")
)

// ValidationError is a caller-correctable input problem. Message is safe to
// show to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// internal marks err as unexpected while keeping it in the chain for logging.
func internal(err error) error {
	return fmt.Errorf("%w: %w", ErrInternal, err)
}

// translate maps from to to, and anything else to an internal error.
func translate(err, from, to error) error {
	if errors.Is(err, from) {
		return to
	}
	return internal(err)
}
