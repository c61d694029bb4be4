package controller

import (
	"team-scheduler-api/core/constants"
	"team-scheduler-api/core/controller"
	"team-scheduler-api/core/errors"
	"team-scheduler-api/core/params"
	"team-scheduler-api/core/utils"
	"team-scheduler-api/modules/team/dto"
	"team-scheduler-api/modules/team/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TeamController handles teammate directory HTTP requests
type TeamController struct {
	controller.BaseController
	TeamService service.TeamServiceInterface
}

func NewTeamController(svc service.TeamServiceInterface) *TeamController {
	return &TeamController{
		BaseController: controller.NewBaseController(),
		TeamService:    svc,
	}
}

func (c *TeamController) getRequesterEmail(ctx echo.Context) (string, error) {
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

// ListTeammates handles GET /private/teammates
// @Summary List teammates on my domain
// @Tags Team
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.PaginatedTeammates
// @Router /private/teammates [get]
func (c *TeamController) ListTeammates(ctx echo.Context) error {
	requesterEmail, err := c.getRequesterEmail(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	p := params.FromContext(ctx)
	result, appErr := c.TeamService.ListTeammates(ctx.Request().Context(), requesterEmail, p)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// AddTeammate handles POST /private/teammates
// @Summary Pre-provision a teammate
// @Tags Team
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.AddTeammateRequest true "Teammate details"
// @Success 200 {object} dto.TeammateResponse
// @Failure 403 {object} errors.AppError
// @Router /private/teammates [post]
func (c *TeamController) AddTeammate(ctx echo.Context) error {
	requesterEmail, err := c.getRequesterEmail(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	req := new(dto.AddTeammateRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.TeamService.AddTeammate(ctx.Request().Context(), requesterEmail, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Teammate added")
}

// RemoveTeammate handles DELETE /private/teammates/:id
// @Summary Remove a teammate from the directory
// @Tags Team
// @Security BearerAuth
// @Param id path string true "Teammate ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.AppError
// @Router /private/teammates/{id} [delete]
func (c *TeamController) RemoveTeammate(ctx echo.Context) error {
	requesterEmail, err := c.getRequesterEmail(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	teammateID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid teammate id")
	}

	if appErr := c.TeamService.RemoveTeammate(ctx.Request().Context(), requesterEmail, teammateID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Teammate removed")
}
