package handler

import (
	"bytes"

	"careerlink/internal/delivery/http/dto"
	"careerlink/internal/pkg/export"
	"careerlink/internal/pkg/response"
	"careerlink/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AdminHandler struct {
	uc usecase.AdminUsecase
}

func NewAdminHandler(uc usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

func (h *AdminHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/students/export", h.ExportStudents)
	r.Get("/companies/export", h.ExportCompanies)
	r.Get("/students", h.ListStudents)
	r.Get("/companies", h.ListCompanies)
	r.Put("/companies/:companyId/approve", h.ApproveCompany)
	r.Put("/companies/:companyId/reject", h.RejectCompany)
	r.Delete("/users/:userId", h.DeleteUser)
	r.Get("/statistics", h.Statistics)
}

func (h *AdminHandler) ListStudents(c fiber.Ctx) error {
	items, err := h.uc.ListStudents(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, response.MessageOK, dto.NewStudentAccountResponses(items))
}

func (h *AdminHandler) ListCompanies(c fiber.Ctx) error {
	items, err := h.uc.ListCompanies(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, response.MessageOK, dto.NewCompanyAccountResponses(items))
}

func (h *AdminHandler) ApproveCompany(c fiber.Ctx) error {
	id, err := pathID(c, "companyId", "Company not found")
	if err != nil {
		return err
	}
	usr, err := h.uc.ApproveCompany(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, "Company approved", dto.NewUserResponse(usr))
}

func (h *AdminHandler) RejectCompany(c fiber.Ctx) error {
	id, err := pathID(c, "companyId", "Company not found")
	if err != nil {
		return err
	}
	usr, err := h.uc.RejectCompany(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, "Company rejected", dto.NewUserResponse(usr))
}

func (h *AdminHandler) DeleteUser(c fiber.Ctx) error {
	id, err := pathID(c, "userId", "User not found")
	if err != nil {
		return err
	}
	if err := h.uc.DeleteUser(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, "User deleted successfully", nil)
}

func (h *AdminHandler) Statistics(c fiber.Ctx) error {
	s, err := h.uc.Statistics(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, response.MessageOK, dto.NewStatisticsResponse(s))
}

func (h *AdminHandler) ExportStudents(c fiber.Ctx) error {
	buf, err := h.uc.ExportStudents(c.Context())
	return sendXLSX(c, "students.xlsx", buf, err)
}

func (h *AdminHandler) ExportCompanies(c fiber.Ctx) error {
	buf, err := h.uc.ExportCompanies(c.Context())
	return sendXLSX(c, "companies.xlsx", buf, err)
}

func sendXLSX(c fiber.Ctx, filename string, buf *bytes.Buffer, err error) error {
	if err != nil {
		return mapUsecaseError(err)
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, export.ContentTypeXLSX)
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}
