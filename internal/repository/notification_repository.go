package repository

import (
	"context"
	"errors"

	"careerlink/internal/database"
	dbpostgres "careerlink/internal/database/postgres"
	"careerlink/internal/domain/notification"

	"github.com/google/uuid"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepository interface {
	Create(ctx context.Context, n notification.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]notification.Notification, error)
	// MarkRead only touches notifications addressed to userID.
	MarkRead(ctx context.Context, id, userID uuid.UUID) (notification.Notification, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

const notificationColumns = `id, user_id, type, message, related_id, is_read, created_at, updated_at`

type PostgresNotificationRepository struct {
	db database.DB
}

func NewPostgresNotificationRepository(db database.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

func (r *PostgresNotificationRepository) Create(ctx context.Context, n notification.Notification) error {
	_, err := database.Conn(ctx, r.db).Exec(
		ctx,
		`INSERT INTO notifications (id, user_id, type, message, related_id) VALUES ($1, $2, $3, $4, $5)`,
		n.ID, n.UserID, string(n.Type), n.Message, n.RelatedID,
	)
	return err
}

func (r *PostgresNotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]notification.Notification, error) {
	if limit <= 0 || limit > notification.ListLimit {
		limit = notification.ListLimit
	}

	rows, err := database.Conn(ctx, r.db).Query(
		ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]notification.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresNotificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) (notification.Notification, error) {
	row := database.Conn(ctx, r.db).QueryRow(
		ctx,
		`UPDATE notifications SET is_read = TRUE, updated_at = now() WHERE id = $1 AND user_id = $2 RETURNING `+notificationColumns,
		id, userID,
	)
	return scanNotification(row)
}

func (r *PostgresNotificationRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	return database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM notifications WHERE user_id = $1`, userID)
}

func scanNotification(row database.Row) (notification.Notification, error) {
	var n notification.Notification
	var typ string
	if err := row.Scan(&n.ID, &n.UserID, &typ, &n.Message, &n.RelatedID, &n.IsRead, &n.CreatedAt, &n.UpdatedAt); err != nil {
		if dbpostgres.IsNoRows(err) {
			return notification.Notification{}, ErrNotificationNotFound
		}
		return notification.Notification{}, err
	}
	n.Type = notification.Type(typ)
	return n, nil
}
