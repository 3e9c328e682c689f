package handler

import (
	"careerlink/internal/delivery/http/dto"
	"careerlink/internal/pkg/response"
	"careerlink/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const msgForgotPassword = "If email exists, password reset instructions will be sent"

type AuthHandler struct {
	uc           usecase.AuthUsecase
	loginLimiter fiber.Handler
}

// NewAuthHandler wires the auth endpoints. loginLimiter guards both login
// routes; nil leaves them unlimited.
func NewAuthHandler(uc usecase.AuthUsecase, loginLimiter fiber.Handler) *AuthHandler {
	if loginLimiter == nil {
		loginLimiter = func(c fiber.Ctx) error { return c.Next() }
	}
	return &AuthHandler{uc: uc, loginLimiter: loginLimiter}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.loginLimiter, h.Login)
	r.Post("/admin/login", h.loginLimiter, h.AdminLogin)
	r.Post("/forgot-password", h.ForgotPassword)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	usr, token, err := h.uc.Register(c.Context(), req.Input())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, "Registration successful", dto.NewAuthResponse(usr, token))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	usr, token, err := h.uc.Login(c.Context(), req.Input())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, "Login successful", dto.NewAuthResponse(usr, token))
}

func (h *AuthHandler) AdminLogin(c fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	usr, token, err := h.uc.AdminLogin(c.Context(), req.Email, req.Password)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, "Admin login successful", dto.NewAuthResponse(usr, token))
}

// ForgotPassword answers the same way whether or not the email is known.
func (h *AuthHandler) ForgotPassword(c fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	if err := h.uc.ForgotPassword(c.Context(), req.Email); err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, msgForgotPassword, nil)
}
