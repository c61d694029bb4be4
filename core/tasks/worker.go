package tasks

import (
	"context"

	"github.com/hibiken/asynq"

	"team-scheduler-api/core/config"
	"team-scheduler-api/core/logger"
)

// Worker runs the background task server plus the periodic scheduler.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
}

func NewWorker(cfg config.RedisConfig) *Worker {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 5,
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.Error("Worker:TaskFailed", "type", task.Type(), "error", err)
		}),
	})

	return &Worker{
		server:    server,
		scheduler: asynq.NewScheduler(redisOpt, nil),
		mux:       asynq.NewServeMux(),
	}
}

// Handle registers a handler for a task type.
func (w *Worker) Handle(taskType string, handler func(context.Context, *asynq.Task) error) {
	w.mux.HandleFunc(taskType, handler)
}

// Start launches the worker and the periodic credential sweep. Non-blocking;
// failures to start are returned so the caller can decide whether the process
// survives without background processing.
func (w *Worker) Start() error {
	// Sweep every five minutes so tokens are usually refreshed before an
	// interactive request needs them.
	if _, err := w.scheduler.Register("*/5 * * * *", NewCredentialRefreshSweepTask()); err != nil {
		return err
	}

	if err := w.server.Start(w.mux); err != nil {
		return err
	}
	if err := w.scheduler.Start(); err != nil {
		w.server.Shutdown()
		return err
	}

	logger.Info("Background worker started")
	return nil
}

// Shutdown stops the scheduler and drains in-flight tasks.
func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
	logger.Info("Background worker stopped")
}
