package usecase

import (
	"context"

	"careerlink/internal/domain/notification"
	"careerlink/internal/repository"

	"github.com/google/uuid"
)

type NotificationUsecase interface {
	List(ctx context.Context, userID uuid.UUID) ([]notification.Notification, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) (notification.Notification, error)
}

type Notifications struct {
	repo repository.NotificationRepository
}

func NewNotificationUsecase(repo repository.NotificationRepository) *Notifications {
	return &Notifications{repo: repo}
}

// List returns the newest notifications of userID.
func (u *Notifications) List(ctx context.Context, userID uuid.UUID) ([]notification.Notification, error) {
	items, err := u.repo.ListByUser(ctx, userID, notification.ListLimit)
	if err != nil {
		return nil, internal(err)
	}
	if items == nil {
		items = []notification.Notification{}
	}
	return items, nil
}

func (u *Notifications) MarkRead(ctx context.Context, userID, id uuid.UUID) (notification.Notification, error) {
	n, err := u.repo.MarkRead(ctx, id, userID)
	if err != nil {
		return notification.Notification{}, translate(err, repository.ErrNotificationNotFound, ErrNotificationNotFound)
	}
	return n, nil
}
