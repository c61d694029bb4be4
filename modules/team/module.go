package team

import (
	"team-scheduler-api/core/database"
	"team-scheduler-api/core/middleware"
	authRepository "team-scheduler-api/modules/auth/repository"
	"team-scheduler-api/modules/team/controller"
	"team-scheduler-api/modules/team/repository"
	"team-scheduler-api/modules/team/router"
	"team-scheduler-api/modules/team/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the team module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	repo := repository.NewTeamRepository(db)
	authRepo := authRepository.NewAuthRepository(db)
	svc := service.NewTeamService(repo, authRepo)
	ctrl := controller.NewTeamController(svc)
	rtr := router.NewTeamRouter(ctrl)

	rtr.Setup(e, mw)
}
