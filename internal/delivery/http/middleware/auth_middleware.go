package middleware

import (
	"errors"
	"slices"
	"strings"

	"careerlink/internal/domain/user"
	"careerlink/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const CtxUserKey = "user"

type AuthMiddleware struct {
	auth usecase.AuthUsecase
}

func NewAuthMiddleware(auth usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Middleware resolves the bearer token to an active account and stores it
// for the handlers behind it.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "No token, authorization denied", nil, nil)
		}

		usr, err := m.auth.Authenticate(c.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrTokenInvalid):
				return NewAppError(fiber.StatusUnauthorized, "Token is not valid", nil, err)
			case errors.Is(err, usecase.ErrInactiveAccount):
				return NewAppError(fiber.StatusUnauthorized, "Invalid or inactive token", nil, err)
			case errors.Is(err, usecase.ErrUnauthorized):
				return NewAppError(fiber.StatusUnauthorized, "No token, authorization denied", nil, err)
			}
			return NewAppError(fiber.StatusInternalServerError, "", nil, err)
		}

		c.Locals(CtxUserKey, usr)
		return c.Next()
	}
}

// RequireRoles admits callers holding one of roles. A company must also be
// approved; the role check comes first so the two denials stay distinct.
func RequireRoles(roles ...user.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		usr, ok := CurrentUser(c)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
		if !slices.Contains(roles, usr.Role) {
			return NewAppError(fiber.StatusForbidden, "Access denied. Insufficient permissions.", nil, nil)
		}
		if usr.AwaitingApproval() {
			return NewAppError(fiber.StatusForbidden, "Company account pending approval", nil, nil)
		}
		return c.Next()
	}
}

func CurrentUser(c fiber.Ctx) (user.User, bool) {
	usr, ok := c.Locals(CtxUserKey).(user.User)
	return usr, ok
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
