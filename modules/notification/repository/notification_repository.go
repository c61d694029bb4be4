package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"team-scheduler-api/core/database"
	"team-scheduler-api/core/logger"
	"team-scheduler-api/core/params"
	"team-scheduler-api/modules/notification/entity"
)

// NotificationRepository handles notification persistence.
type NotificationRepository struct {
	DB database.Database
}

func NewNotificationRepository(db database.Database) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) CreateNotification(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, user_email, type, title, body, reference, read, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, NOW(), NOW())
	`
	err := r.DB.ExecContext(ctx, query,
		n.ID, strings.ToLower(n.UserEmail), n.Type, n.Title, n.Body, n.Reference)
	if err != nil {
		logger.Error("NotificationRepository:CreateNotification:Error", "error", err, "email", n.UserEmail)
		return err
	}
	return nil
}

// ListByEmail returns a user's notifications, newest first.
func (r *NotificationRepository) ListByEmail(ctx context.Context, email string, p params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	email = strings.ToLower(email)

	var total int
	countQuery := `SELECT COUNT(*) FROM notifications WHERE user_email = $1`
	if err := r.DB.GetContext(ctx, &total, countQuery, email); err != nil {
		logger.Error("NotificationRepository:ListByEmail:Count:Error", "error", err)
		return nil, err
	}

	var notifications []entity.Notification
	query := `
		SELECT id, user_email, type, title, body, reference, read, created_at, updated_at
		FROM notifications
		WHERE user_email = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	offset := (p.PageNumber - 1) * p.PageSize
	if err := r.DB.SelectContext(ctx, &notifications, query, email, p.PageSize, offset); err != nil {
		logger.Error("NotificationRepository:ListByEmail:Select:Error", "error", err)
		return nil, err
	}

	return &entity.PaginatedNotificationEntity{
		Items:      notifications,
		TotalItems: total,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}, nil
}

// MarkAsRead flips a notification read flag, scoped to the owner's email.
func (r *NotificationRepository) MarkAsRead(ctx context.Context, id uuid.UUID, email string) error {
	query := `UPDATE notifications SET read = TRUE, updated_at = NOW() WHERE id = $1 AND user_email = $2`
	err := r.DB.ExecContext(ctx, query, id, strings.ToLower(email))
	if err != nil {
		logger.Error("NotificationRepository:MarkAsRead:Error", "error", err, "id", id)
		return err
	}
	return nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, email string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE user_email = $1 AND read = FALSE`
	if err := r.DB.GetContext(ctx, &count, query, strings.ToLower(email)); err != nil {
		logger.Error("NotificationRepository:CountUnread:Error", "error", err)
		return 0, err
	}
	return count, nil
}
