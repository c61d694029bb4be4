package router

import (
	"team-scheduler-api/core/middleware"
	"team-scheduler-api/modules/team/controller"

	"github.com/labstack/echo/v4"
)

// TeamRouter handles team routes
type TeamRouter struct {
	TeamController *controller.TeamController
}

func NewTeamRouter(teamController *controller.TeamController) *TeamRouter {
	return &TeamRouter{TeamController: teamController}
}

// Setup registers team routes
func (r *TeamRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	privateRoutes := v1.Group("/private/teammates", mw.AuthMiddleware())
	privateRoutes.GET("", r.TeamController.ListTeammates)
	privateRoutes.POST("", r.TeamController.AddTeammate)
	privateRoutes.DELETE("/:id", r.TeamController.RemoveTeammate)
}
