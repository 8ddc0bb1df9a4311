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

type SubtaskHandler struct {
	subtaskModel *models.SubtaskModel
}

func NewSubtaskHandler(model *models.SubtaskModel) *SubtaskHandler {
	return &SubtaskHandler{subtaskModel: model}
}

// CreateSubtaskHandler handles POST /v1/tasks/:id/subtasks. The parent task
// id comes from the route; authorization runs against the parent.
func (h *SubtaskHandler) CreateSubtaskHandler(c *gin.Context) {
	log := logger.GetLogger()

	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	parentTaskID := c.Param("id")
	if parentTaskID == "" {
		_ = c.Error(apperrors.ValidationFailed("Missing parameters", "task id is required"))
		return
	}

	var req types.SubtaskCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid request body", "error", err)
		_ = c.Error(apperrors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	subtask, err := h.subtaskModel.CreateSubtask(c.Request.Context(), principal, parentTaskID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, subtask)
}

// ListSubtasksHandler handles GET /v1/tasks/:id/subtasks.
func (h *SubtaskHandler) ListSubtasksHandler(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	subtasks, err := h.subtaskModel.ListSubtasks(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, subtasks)
}

// UpdateSubtaskStatusHandler handles PATCH /v1/subtasks/:subtaskID/status.
// Every successful change stamps the subtask's status breadcrumb.
func (h *SubtaskHandler) UpdateSubtaskStatusHandler(c *gin.Context) {
	log := logger.GetLogger()

	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req types.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid request body", "error", err)
		_ = c.Error(apperrors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	subtask, err := h.subtaskModel.UpdateSubtaskStatus(c.Request.Context(), principal, c.Param("subtaskID"), req.Status)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, subtask)
}

// AssignSubtaskHandler handles POST /v1/subtasks/:subtaskID/assign.
func (h *SubtaskHandler) AssignSubtaskHandler(c *gin.Context) {
	log := logger.GetLogger()

	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req types.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid request body", "error", err)
		_ = c.Error(apperrors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	subtask, err := h.subtaskModel.AssignSubtask(c.Request.Context(), principal, c.Param("subtaskID"), req.AssigneeID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, subtask)
}

// AddCollaboratorHandler handles POST /v1/subtasks/:subtaskID/collaborators.
func (h *SubtaskHandler) AddCollaboratorHandler(c *gin.Context) {
	log := logger.GetLogger()

	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req types.CollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid request body", "error", err)
		_ = c.Error(apperrors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	subtask, err := h.subtaskModel.AddCollaborator(c.Request.Context(), principal, c.Param("subtaskID"), req.UserID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, subtask)
}

// DeleteSubtaskHandler handles DELETE /v1/subtasks/:subtaskID.
func (h *SubtaskHandler) DeleteSubtaskHandler(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.subtaskModel.DeleteSubtask(c.Request.Context(), principal, c.Param("subtaskID")); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subtask deleted successfully"})
}
