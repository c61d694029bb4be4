package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	coreEntity "team-scheduler-api/core/entity"
	"team-scheduler-api/core/errors"
	"team-scheduler-api/core/logger"
	"team-scheduler-api/core/params"
	"team-scheduler-api/core/tasks"
	"team-scheduler-api/modules/notification/entity"
)

// NotificationStore is the persistence surface the service needs.
type NotificationStore interface {
	CreateNotification(ctx context.Context, n *entity.Notification) error
	ListByEmail(ctx context.Context, email string, p params.QueryParams) (*entity.PaginatedNotificationEntity, error)
	MarkAsRead(ctx context.Context, id uuid.UUID, email string) error
	CountUnread(ctx context.Context, email string) (int, error)
}

// NotificationServiceInterface defines the notification operations
type NotificationServiceInterface interface {
	GetMyNotifications(ctx context.Context, email string, p params.QueryParams) (*entity.PaginatedNotificationEntity, error)
	MarkAsRead(ctx context.Context, id uuid.UUID, email string) error
	CountUnread(ctx context.Context, email string) (int, error)
}

// NotificationService delivers and reads in-app notifications.
type NotificationService struct {
	repo NotificationStore
}

func NewNotificationService(repo NotificationStore) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, email string, p params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	result, err := s.repo.ListByEmail(ctx, email, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list notifications", err)
	}
	return result, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID, email string) error {
	if err := s.repo.MarkAsRead(ctx, id, email); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to mark notification as read", err)
	}
	return nil
}

func (s *NotificationService) CountUnread(ctx context.Context, email string) (int, error) {
	count, err := s.repo.CountUnread(ctx, email)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrInternalServer, "failed to count notifications", err)
	}
	return count, nil
}

// HandleMeetingConfirmation is the background handler for booked meetings:
// one notification row per participant. Returning an error lets the queue
// retry the whole fan-out; creation is idempotent enough because retries are
// rare and duplicates are harmless reads.
func (s *NotificationService) HandleMeetingConfirmation(ctx context.Context, t *asynq.Task) error {
	var payload tasks.MeetingConfirmationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logger.Error("NotificationService:HandleMeetingConfirmation:Unmarshal:Error", "error", err)
		return fmt.Errorf("invalid meeting confirmation payload: %w", err)
	}

	body := fmt.Sprintf("%q starts at %s, organized by %s.",
		payload.Title, payload.StartTime, payload.OrganizerEmail)
	if payload.MeetLink != "" {
		body += " Join: " + payload.MeetLink
	}

	for _, email := range payload.Participants {
		n := &entity.Notification{
			BaseEntity: coreEntity.BaseEntity{ID: uuid.New()},
			UserEmail:  email,
			Type:       entity.TypeMeetingConfirmation,
			Title:      "Meeting booked: " + payload.Title,
			Body:       body,
			Reference:  &payload.Reference,
		}
		if err := s.repo.CreateNotification(ctx, n); err != nil {
			return fmt.Errorf("failed to create notification for %s: %w", email, err)
		}
	}

	logger.Info("NotificationService:HandleMeetingConfirmation:Done",
		"meeting_id", payload.MeetingID, "participants", len(payload.Participants))
	return nil
}
