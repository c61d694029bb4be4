package auth

import (
	"team-scheduler-api/core/cache"
	"team-scheduler-api/core/database"
	"team-scheduler-api/core/middleware"
	"team-scheduler-api/modules/auth/controller"
	"team-scheduler-api/modules/auth/repository"
	"team-scheduler-api/modules/auth/router"
	"team-scheduler-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the auth module and registers routes
func Init(e *echo.Echo, db database.Database, c cache.Cache, mw *middleware.Middleware) {
	repo := repository.NewAuthRepository(db)
	svc := service.NewAuthService(repo, c)
	ctrl := controller.NewAuthController(svc)
	rtr := router.NewAuthRouter(ctrl)

	rtr.Setup(e, mw)
}
