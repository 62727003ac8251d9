package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/invoice_analytics/internal/core/ports/services"
	"github.com/SscSPs/invoice_analytics/internal/dto"
	"github.com/SscSPs/invoice_analytics/internal/middleware"
	"github.com/gin-gonic/gin"
)

// workplaceHandler handles HTTP requests related to workplaces.
type workplaceHandler struct {
	workplaceService portssvc.WorkplaceSvcFacade
}

func newWorkplaceHandler(ws portssvc.WorkplaceSvcFacade) *workplaceHandler {
	return &workplaceHandler{workplaceService: ws}
}

// registerWorkplaceRoutes registers workplace routes and returns the group for a single workplace,
// under which customer, invoice and analytics routes are nested.
func registerWorkplaceRoutes(rg *gin.RouterGroup, workplaceService portssvc.WorkplaceSvcFacade) *gin.RouterGroup {
	h := newWorkplaceHandler(workplaceService)

	workplaces := rg.Group("/workplaces")
	{
		workplaces.POST("", h.createWorkplace)
		workplaces.GET("", h.listUserWorkplaces)
	}

	workplace := rg.Group("/workplaces/:workplace_id")
	{
		workplace.GET("", h.getWorkplace)
		workplace.POST("/users", h.addUserToWorkplace)
	}
	return workplace
}

// createWorkplace godoc
// @Summary Create a new workplace
// @Description Creates a new workplace and assigns the creator as admin.
// @Tags workplaces
// @Accept  json
// @Produce  json
// @Param   workplace body dto.CreateWorkplaceRequest true "Workplace details"
// @Success 201 {object} dto.WorkplaceResponse
// @Failure 400 {object} handlers.ErrorResponse "Unsupported default currency"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 422 {object} handlers.ErrorResponse "Invalid input"
// @Security BearerAuth
// @Router /workplaces [post]
func (h *workplaceHandler) createWorkplace(c *gin.Context) {
	var req dto.CreateWorkplaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := requestUser(c)
	if !ok {
		return
	}

	workplace, err := h.workplaceService.CreateWorkplace(c.Request.Context(), req.Name, req.Description, req.DefaultCurrencyCode, userID)
	if err != nil {
		respondError(c, err, "Failed to create workplace")
		return
	}
	c.JSON(http.StatusCreated, dto.ToWorkplaceResponse(workplace))
}

// listUserWorkplaces godoc
// @Summary List workplaces for current user
// @Description Retrieves all active workplaces the authenticated user is a member of.
// @Tags workplaces
// @Produce  json
// @Success 200 {object} dto.ListWorkplacesResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /workplaces [get]
func (h *workplaceHandler) listUserWorkplaces(c *gin.Context) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}

	workplaces, err := h.workplaceService.ListUserWorkplaces(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list workplaces")
		return
	}
	c.JSON(http.StatusOK, dto.ToListWorkplacesResponse(workplaces))
}

// getWorkplace godoc
// @Summary Get a workplace
// @Tags workplaces
// @Produce  json
// @Param   workplace_id path string true "Workplace ID"
// @Success 200 {object} dto.WorkplaceResponse
// @Failure 404 {object} handlers.ErrorResponse "Workplace not found or caller not a member"
// @Security BearerAuth
// @Router /workplaces/{workplace_id} [get]
func (h *workplaceHandler) getWorkplace(c *gin.Context) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}

	workplace, err := h.workplaceService.GetWorkplace(c.Request.Context(), c.Param("workplace_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to get workplace")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkplaceResponse(workplace))
}

// addUserToWorkplace godoc
// @Summary Add a user to a workplace
// @Description Adds a user with a role. Requires ADMIN.
// @Tags workplaces
// @Accept  json
// @Param   workplace_id path string true "Workplace ID"
// @Param   membership body dto.AddUserToWorkplaceRequest true "Membership"
// @Success 204 "No Content"
// @Failure 403 {object} handlers.ErrorResponse "Caller is not an admin"
// @Failure 404 {object} handlers.ErrorResponse "Workplace not found"
// @Failure 409 {object} handlers.ErrorResponse "User already a member"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/users [post]
func (h *workplaceHandler) addUserToWorkplace(c *gin.Context) {
	var req dto.AddUserToWorkplaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := requestUser(c)
	if !ok {
		return
	}
	workplaceID := c.Param("workplace_id")

	if err := h.workplaceService.AddUserToWorkplace(c.Request.Context(), userID, req.UserID, workplaceID, req.Role); err != nil {
		respondError(c, err, "Failed to add user to workplace")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User added to workplace", slog.String("workplace_id", workplaceID), slog.String("target_user_id", req.UserID))
	c.Status(http.StatusNoContent)
}
