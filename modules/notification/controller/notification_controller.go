package controller

import (
	"team-scheduler-api/core/constants"
	"team-scheduler-api/core/controller"
	"team-scheduler-api/core/errors"
	"team-scheduler-api/core/params"
	"team-scheduler-api/core/utils"
	"team-scheduler-api/modules/notification/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// NotificationController handles notification HTTP requests
type NotificationController struct {
	controller.BaseController
	NotificationService service.NotificationServiceInterface
}

func NewNotificationController(svc service.NotificationServiceInterface) *NotificationController {
	return &NotificationController{
		BaseController:      controller.NewBaseController(),
		NotificationService: svc,
	}
}

func (c *NotificationController) getRequesterEmail(ctx echo.Context) (string, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return "", errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}

	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok || claims.Email == "" {
		return "", errors.NewAppError(errors.ErrUnauthorized, "Invalid token data", nil)
	}

	return claims.Email, nil
}

// GetMyNotifications handles GET /private/notifications
// @Summary List my notifications
// @Tags Notifications
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} entity.PaginatedNotificationEntity
// @Router /private/notifications [get]
func (c *NotificationController) GetMyNotifications(ctx echo.Context) error {
	email, err := c.getRequesterEmail(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	p := params.FromContext(ctx)
	result, appErr := c.NotificationService.GetMyNotifications(ctx.Request().Context(), email, p)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// MarkAsRead handles POST /private/notifications/:id/read
// @Summary Mark a notification as read
// @Tags Notifications
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} map[string]string
// @Router /private/notifications/{id}/read [post]
func (c *NotificationController) MarkAsRead(ctx echo.Context) error {
	email, err := c.getRequesterEmail(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid notification id")
	}

	if appErr := c.NotificationService.MarkAsRead(ctx.Request().Context(), id, email); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Notification marked as read")
}

// CountUnread handles GET /private/notifications/unread-count
// @Summary Count my unread notifications
// @Tags Notifications
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]int
// @Router /private/notifications/unread-count [get]
func (c *NotificationController) CountUnread(ctx echo.Context) error {
	email, err := c.getRequesterEmail(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	count, appErr := c.NotificationService.CountUnread(ctx.Request().Context(), email)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, map[string]int{"unread": count}, "Success")
}
