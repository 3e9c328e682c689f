package handler

import (
	"careerlink/internal/domain/skill"
	"careerlink/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// SkillHandler publishes the fixed skill catalogue so clients can offer the
// exact names profiles and jobs accept.
type SkillHandler struct{}

func NewSkillHandler() *SkillHandler {
	return &SkillHandler{}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/skills", h.List)
}

func (h *SkillHandler) List(c fiber.Ctx) error {
	return response.OK(c, response.MessageOK, skill.All())
}
