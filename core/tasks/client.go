package tasks

import (
	"context"

	"github.com/hibiken/asynq"

	"team-scheduler-api/core/config"
	"team-scheduler-api/core/logger"
)

// TaskClient enqueues background work.
type TaskClient interface {
	EnqueueMeetingConfirmation(ctx context.Context, payload MeetingConfirmationPayload) error
	Close() error
}

type taskClient struct {
	client *asynq.Client
}

func NewTaskClient(cfg config.RedisConfig) TaskClient {
	return &taskClient{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

func (c *taskClient) EnqueueMeetingConfirmation(ctx context.Context, payload MeetingConfirmationPayload) error {
	task, err := NewMeetingConfirmationTask(payload)
	if err != nil {
		return err
	}

	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}

	logger.Info("TaskClient:EnqueueMeetingConfirmation",
		"task_id", info.ID, "queue", info.Queue, "meeting_id", payload.MeetingID)
	return nil
}

func (c *taskClient) Close() error {
	return c.client.Close()
}
