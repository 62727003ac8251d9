package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/invoice_analytics/internal/gqlapi"
	"github.com/SscSPs/invoice_analytics/internal/middleware"
	"github.com/gin-gonic/gin"
)

type graphqlHandler struct {
	executor *gqlapi.Executor
}

func registerGraphQLRoutes(rg *gin.RouterGroup, executor *gqlapi.Executor) {
	h := &graphqlHandler{executor: executor}
	rg.POST("/graphql", h.execute)
}

// execute godoc
// @Summary Run a GraphQL query
// @Description Read-only queries over customers and invoices of the workplace.
// @Tags graphql
// @Accept  json
// @Produce  json
// @Param   workplace_id path string true "Workplace ID"
// @Param   request body gqlapi.Request true "GraphQL request"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} handlers.ErrorResponse "Missing query"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/graphql [post]
func (h *graphqlHandler) execute(c *gin.Context) {
	var req gqlapi.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := requestUser(c)
	if !ok {
		return
	}

	result := h.executor.Execute(c.Request.Context(), c.Param("workplace_id"), userID, req)
	if result.HasErrors() {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("GraphQL query returned errors", slog.Int("count", len(result.Errors)))
	}
	c.JSON(http.StatusOK, result)
}
