package meeting

import (
	"team-scheduler-api/core/database"
	"team-scheduler-api/core/middleware"
	"team-scheduler-api/core/tasks"
	authRepository "team-scheduler-api/modules/auth/repository"
	availabilityService "team-scheduler-api/modules/availability/service"
	"team-scheduler-api/modules/meeting/controller"
	"team-scheduler-api/modules/meeting/repository"
	"team-scheduler-api/modules/meeting/router"
	"team-scheduler-api/modules/meeting/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the meeting module and registers routes
func Init(e *echo.Echo, db database.Database, taskClient tasks.TaskClient, mw *middleware.Middleware) {
	repo := repository.NewMeetingRepository(db)
	authRepo := authRepository.NewAuthRepository(db)
	broker := availabilityService.NewCredentialBroker(authRepo)
	creator := service.NewEventCreator()
	svc := service.NewMeetingService(repo, broker, creator, taskClient)
	ctrl := controller.NewMeetingController(svc)
	rtr := router.NewMeetingRouter(ctrl)

	rtr.Setup(e, mw)
}
