package handler

import (
	"careerlink/internal/delivery/http/dto"
	"careerlink/internal/pkg/response"
	"careerlink/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// NotificationHandler serves the caller's own notifications. It is mounted
// under both the student and the company groups.
type NotificationHandler struct {
	uc usecase.NotificationUsecase
}

func NewNotificationHandler(uc usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

func (h *NotificationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/notifications", h.List)
	r.Put("/notifications/:id/read", h.MarkRead)
}

func (h *NotificationHandler) List(c fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return err
	}
	items, err := h.uc.List(c.Context(), uid)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, response.MessageOK, dto.NewNotificationResponses(items))
}

func (h *NotificationHandler) MarkRead(c fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "Notification not found")
	if err != nil {
		return err
	}
	n, err := h.uc.MarkRead(c.Context(), uid, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, "Notification marked as read", dto.NewNotificationResponse(n))
}
