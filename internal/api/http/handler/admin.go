package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/projecthub-server/internal/api/http/response"
	"github.com/dtroode/projecthub-server/internal/apperr"
	"github.com/dtroode/projecthub-server/internal/logger"
)

type updateStatusRequest struct {
	Status *string `json:"status"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Admin handles moderation endpoints. Access control happens in middleware.
type Admin struct {
	projectService ProjectService
	logger         *logger.Logger
}

func NewAdmin(projectService ProjectService, logger *logger.Logger) *Admin {
	return &Admin{
		projectService: projectService,
		logger:         logger,
	}
}

// List handles GET /api/admin/projects.
func (h *Admin) List(c *gin.Context) {
	projects, err := h.projectService.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, projectsResponse{Success: true, Projects: projects})
}

// UpdateStatus handles PUT /api/admin/projects/:id. Any status string is accepted.
func (h *Admin) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	if req.Status == nil {
		response.Error(c, h.logger, apperr.NewErrValidation("Status is required"))
		return
	}

	project, err := h.projectService.UpdateStatus(c.Request.Context(), c.Param("id"), *req.Status)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, projectResponse{Success: true, Project: project})
}

// Delete handles DELETE /api/admin/projects/:id.
func (h *Admin) Delete(c *gin.Context) {
	if err := h.projectService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Project deleted successfully"})
}
