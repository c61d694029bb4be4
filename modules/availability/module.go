package availability

import (
	"team-scheduler-api/core/cache"
	"team-scheduler-api/core/database"
	"team-scheduler-api/core/middleware"
	authRepository "team-scheduler-api/modules/auth/repository"
	"team-scheduler-api/modules/availability/controller"
	"team-scheduler-api/modules/availability/router"
	"team-scheduler-api/modules/availability/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the availability module and registers routes
func Init(e *echo.Echo, db database.Database, c cache.Cache, mw *middleware.Middleware) {
	authRepo := authRepository.NewAuthRepository(db)
	broker := service.NewCredentialBroker(authRepo)
	source := service.NewBusySource()
	svc := service.NewAvailabilityService(broker, source)
	ctrl := controller.NewAvailabilityController(svc)
	rtr := router.NewAvailabilityRouter(ctrl)

	rtr.Setup(e, mw)
}
