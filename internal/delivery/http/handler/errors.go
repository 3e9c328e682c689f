package handler

import (
	"errors"

	"careerlink/internal/delivery/http/middleware"
	"careerlink/internal/pkg/validator"
	"careerlink/internal/usecase"
	ucauth "careerlink/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const msgInvalidPayload = "Invalid request payload"

var notFoundMessages = []struct {
	err error
	msg string
}{
	{usecase.ErrJobNotFound, "Job not found"},
	{usecase.ErrProfileNotFound, "Profile not found"},
	{usecase.ErrCompanyProfileNotFound, "Company profile not found"},
	{usecase.ErrStudentProfileNotFound, "Student profile not found"},
	{usecase.ErrApplicationNotFound, "Application not found"},
	{usecase.ErrCompanyNotFound, "Company not found"},
	{usecase.ErrUserNotFound, "User not found"},
	{usecase.ErrNotificationNotFound, "Notification not found"},
	{usecase.ErrEducationNotFound, "Education not found"},
	{usecase.ErrSkillNotFound, "Skill not found"},
	{usecase.ErrExperienceNotFound, "Experience not found"},
}

// mapUsecaseError turns a usecase or auth error into the AppError the error
// middleware renders. Unknown errors become a 500 carrying the cause.
func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var verr *usecase.ValidationError
	if errors.As(err, &verr) {
		return middleware.NewAppError(fiber.StatusBadRequest, verr.Message, nil, err)
	}
	var ierr *ucauth.InputError
	if errors.As(err, &ierr) {
		return middleware.NewAppError(fiber.StatusBadRequest, ierr.Message, nil, err)
	}

	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "User already exists", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid credentials", nil, err)
	case errors.Is(err, ucauth.ErrAccountDeactivated):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Account is deactivated", nil, err)
	case errors.Is(err, ucauth.ErrPendingApproval):
		return middleware.NewAppError(fiber.StatusForbidden, "Company account pending approval", nil, err)
	case errors.Is(err, usecase.ErrAlreadyApplied):
		return middleware.NewAppError(fiber.StatusConflict, "Already applied for this job", nil, err)
	case errors.Is(err, usecase.ErrAccessDenied), errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Access denied", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "", nil, err)
	}

	for _, nf := range notFoundMessages {
		if errors.Is(err, nf.err) {
			return middleware.NewAppError(fiber.StatusNotFound, nf.msg, nil, err)
		}
	}

	return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
}

// bindBody decodes and validates the JSON body into out.
func bindBody(c fiber.Ctx, out any) error {
	err := c.Bind().Body(out)
	if err == nil {
		return nil
	}
	var verr *validator.Error
	if errors.As(err, &verr) {
		return middleware.NewAppError(fiber.StatusBadRequest, verr.Message, nil, err)
	}
	return middleware.NewAppError(fiber.StatusBadRequest, msgInvalidPayload, nil, err)
}

// pathID parses a uuid route parameter. A malformed id cannot name an
// existing record, so it answers like a missing one.
func pathID(c fiber.Ctx, name, notFound string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusNotFound, notFound, nil, err)
	}
	return id, nil
}

func currentUserID(c fiber.Ctx) (uuid.UUID, error) {
	usr, ok := middleware.CurrentUser(c)
	if !ok {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return usr.ID, nil
}
