package controller

import (
	"team-scheduler-api/core/constants"
	"team-scheduler-api/core/controller"
	"team-scheduler-api/core/errors"
	"team-scheduler-api/core/utils"
	"team-scheduler-api/modules/availability/dto"
	"team-scheduler-api/modules/availability/service"

	"github.com/labstack/echo/v4"
)

// AvailabilityController handles slot-search HTTP requests
type AvailabilityController struct {
	controller.BaseController
	AvailabilityService service.AvailabilityServiceInterface
}

func NewAvailabilityController(svc service.AvailabilityServiceInterface) *AvailabilityController {
	return &AvailabilityController{
		BaseController:      controller.NewBaseController(),
		AvailabilityService: svc,
	}
}

func (c *AvailabilityController) getRequesterEmail(ctx echo.Context) (string, error) {
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

// FindAvailability handles POST /private/availability
// @Summary Find mutually free meeting slots
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.FindAvailabilityRequest true "Search parameters"
// @Success 200 {object} dto.FindAvailabilityResponse
// @Failure 400 {object} errors.AppError
// @Failure 403 {object} errors.AppError
// @Failure 502 {object} errors.AppError
// @Router /private/availability [post]
func (c *AvailabilityController) FindAvailability(ctx echo.Context) error {
	requesterEmail, err := c.getRequesterEmail(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	req := new(dto.FindAvailabilityRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.AvailabilityService.FindAvailability(ctx.Request().Context(), requesterEmail, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Availability computed")
}
