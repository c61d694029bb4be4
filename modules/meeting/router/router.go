package router

import (
	"team-scheduler-api/core/middleware"
	"team-scheduler-api/modules/meeting/controller"

	"github.com/labstack/echo/v4"
)

// MeetingRouter handles meeting routes
type MeetingRouter struct {
	MeetingController *controller.MeetingController
}

func NewMeetingRouter(meetingController *controller.MeetingController) *MeetingRouter {
	return &MeetingRouter{MeetingController: meetingController}
}

// Setup registers meeting routes
func (r *MeetingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	privateRoutes := v1.Group("/private", mw.AuthMiddleware())
	privateRoutes.POST("/book-meeting", r.MeetingController.BookMeeting)
	privateRoutes.GET("/meetings", r.MeetingController.ListMyMeetings)
	privateRoutes.GET("/meetings/:reference", r.MeetingController.GetMeeting)
}
