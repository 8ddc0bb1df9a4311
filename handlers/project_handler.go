package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/TaskForge/taskforge-backend/errors"
	"github.com/TaskForge/taskforge-backend/logger"
	"github.com/TaskForge/taskforge-backend/middleware"
	"github.com/TaskForge/taskforge-backend/models"
	"github.com/TaskForge/taskforge-backend/types"
)

type ProjectHandler struct {
	projectModel *models.ProjectModel
}

func NewProjectHandler(model *models.ProjectModel) *ProjectHandler {
	return &ProjectHandler{projectModel: model}
}

// CreateProjectHandler handles POST /v1/projects. The route carries a
// RequireRoles gate for manager-and-above; staff never reach this handler.
func (h *ProjectHandler) CreateProjectHandler(c *gin.Context) {
	log := logger.GetLogger()

	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req types.ProjectCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid request body", "error", err)
		_ = c.Error(apperrors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	project, err := h.projectModel.CreateProject(c.Request.Context(), principal, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// GetProjectHandler handles GET /v1/projects/:id.
func (h *ProjectHandler) GetProjectHandler(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	project, err := h.projectModel.GetProject(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// ListProjectsHandler handles GET /v1/projects, filtered by the caller's
// visibility scope.
func (h *ProjectHandler) ListProjectsHandler(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	params := getPaginationParams(c, 20, 0)
	resp, err := h.projectModel.ListProjects(c.Request.Context(), principal, params.Limit, params.Offset)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AddCollaboratorHandler handles POST /v1/projects/:id/collaborators.
func (h *ProjectHandler) AddCollaboratorHandler(c *gin.Context) {
	log := logger.GetLogger()

	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req types.ProjectCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid request body", "error", err)
		_ = c.Error(apperrors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	project, err := h.projectModel.AddCollaborator(c.Request.Context(), principal, c.Param("id"), req.UserID, req.Role)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// ArchiveProjectHandler handles POST /v1/projects/:id/archive.
func (h *ProjectHandler) ArchiveProjectHandler(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	project, err := h.projectModel.ArchiveProject(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, project)
}
