package controller

import (
	"team-scheduler-api/core/constants"
	"team-scheduler-api/core/controller"
	"team-scheduler-api/core/errors"
	"team-scheduler-api/core/params"
	"team-scheduler-api/core/utils"
	"team-scheduler-api/modules/meeting/dto"
	"team-scheduler-api/modules/meeting/service"

	"github.com/labstack/echo/v4"
)

// MeetingController handles booking HTTP requests
type MeetingController struct {
	controller.BaseController
	MeetingService service.MeetingServiceInterface
}

func NewMeetingController(svc service.MeetingServiceInterface) *MeetingController {
	return &MeetingController{
		BaseController: controller.NewBaseController(),
		MeetingService: svc,
	}
}

func (c *MeetingController) getClaims(ctx echo.Context) (*utils.TokenClaims, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}

	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token data", nil)
	}

	return claims, nil
}

// BookMeeting handles POST /private/book-meeting
// @Summary Book a meeting slot
// @Tags Meetings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.BookMeetingRequest true "Meeting details"
// @Success 200 {object} dto.BookMeetingResponse
// @Failure 400 {object} errors.AppError
// @Failure 403 {object} errors.AppError
// @Failure 502 {object} errors.AppError
// @Router /private/book-meeting [post]
func (c *MeetingController) BookMeeting(ctx echo.Context) error {
	claims, err := c.getClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	req := new(dto.BookMeetingRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.MeetingService.BookMeeting(ctx.Request().Context(), claims.UserID, claims.Email, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Meeting booked")
}

// GetMeeting handles GET /private/meetings/:reference
// @Summary Get a booked meeting by reference
// @Tags Meetings
// @Security BearerAuth
// @Produce json
// @Param reference path string true "Meeting reference"
// @Success 200 {object} entity.Meeting
// @Failure 404 {object} errors.AppError
// @Router /private/meetings/{reference} [get]
func (c *MeetingController) GetMeeting(ctx echo.Context) error {
	claims, err := c.getClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	reference := ctx.Param("reference")
	if reference == "" {
		return c.BadRequest(errors.ErrInvalidRequestData, "Meeting reference is required")
	}

	meeting, appErr := c.MeetingService.GetMeeting(ctx.Request().Context(), claims.UserID, claims.Email, reference)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, meeting, "Success")
}

// ListMyMeetings handles GET /private/meetings
// @Summary List my booked meetings
// @Tags Meetings
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} entity.PaginatedMeetingEntity
// @Router /private/meetings [get]
func (c *MeetingController) ListMyMeetings(ctx echo.Context) error {
	claims, err := c.getClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	p := params.FromContext(ctx)
	result, appErr := c.MeetingService.ListMyMeetings(ctx.Request().Context(), claims.UserID, claims.Email, p)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}
