package notification

import (
	"team-scheduler-api/core/database"
	"team-scheduler-api/core/middleware"
	"team-scheduler-api/modules/notification/controller"
	"team-scheduler-api/modules/notification/repository"
	"team-scheduler-api/modules/notification/router"
	"team-scheduler-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the notification module and registers routes. The returned
// service also carries the background task handlers so the server can attach
// them to the worker mux.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) *service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)
	rtr := router.NewNotificationRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
