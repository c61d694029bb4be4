package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"team-scheduler-api/core/cache"
	"team-scheduler-api/core/config"
	"team-scheduler-api/core/constants"
	"team-scheduler-api/core/database"
	"team-scheduler-api/core/logger"
	"team-scheduler-api/core/middleware"
	"team-scheduler-api/core/tasks"
	"team-scheduler-api/modules/auth"
	authRepository "team-scheduler-api/modules/auth/repository"
	"team-scheduler-api/modules/availability"
	availabilityService "team-scheduler-api/modules/availability/service"
	"team-scheduler-api/modules/meeting"
	"team-scheduler-api/modules/notification"
	"team-scheduler-api/modules/team"
)

// Run boots the API server and the background worker and blocks until the
// process receives a termination signal.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Log.Level)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}

	redisCache, err := cache.NewCache(cfg.Redis)
	if err != nil {
		return err
	}
	defer redisCache.Close()

	taskClient := tasks.NewTaskClient(cfg.Redis)
	defer taskClient.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())
	e.Use(echoMiddleware.CORS())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	mw := middleware.NewMiddleware(redisCache)

	auth.Init(e, db, redisCache, mw)
	availability.Init(e, db, redisCache, mw)
	meeting.Init(e, db, taskClient, mw)
	team.Init(e, db, mw)
	notificationSvc := notification.Init(e, db, mw)

	worker := tasks.NewWorker(cfg.Redis)
	worker.Handle(tasks.TypeMeetingConfirmation, notificationSvc.HandleMeetingConfirmation)

	broker := availabilityService.NewCredentialBroker(authRepository.NewAuthRepository(db))
	worker.Handle(tasks.TypeCredentialRefreshSweep, func(ctx context.Context, t *asynq.Task) error {
		refreshed, dropped, err := broker.RefreshExpiring(ctx)
		if err != nil {
			return err
		}
		logger.Info("CredentialRefreshSweep:Done", "refreshed", refreshed, "dropped", dropped)
		return nil
	})

	if err := worker.Start(); err != nil {
		return fmt.Errorf("failed to start background worker: %w", err)
	}

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Start:Error", "error", err)
		}
	}()

	logger.Info("Server started", "host", cfg.Server.Host, "port", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	worker.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server:Shutdown:Error", "error", err)
		return err
	}

	logger.Info("Server stopped")
	return nil
}
