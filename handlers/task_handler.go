package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/TaskForge/taskforge-backend/errors"
	"github.com/TaskForge/taskforge-backend/logger"
	"github.com/TaskForge/taskforge-backend/middleware"
	"github.com/TaskForge/taskforge-backend/models"
	"github.com/TaskForge/taskforge-backend/types"
)

// PaginationParams defines pagination parameters
type PaginationParams struct {
	Limit  int
	Offset int
}

type TaskHandler struct {
	taskModel *models.TaskModel
}

func NewTaskHandler(model *models.TaskModel) *TaskHandler {
	return &TaskHandler{taskModel: model}
}

// CreateTaskHandler handles POST /v1/tasks. Any authenticated user can
// create a task; it lands unassigned in their org unit.
func (h *TaskHandler) CreateTaskHandler(c *gin.Context) {
	log := logger.GetLogger()

	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req types.TaskCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid request body", "error", err)
		_ = c.Error(apperrors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	task, err := h.taskModel.CreateTask(c.Request.Context(), principal, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// GetTaskHandler handles GET /v1/tasks/:id.
func (h *TaskHandler) GetTaskHandler(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	task, err := h.taskModel.GetTask(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// ListTasksHandler handles GET /v1/tasks. The result set is filtered by the
// caller's resolved visibility scope.
func (h *TaskHandler) ListTasksHandler(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	params := getPaginationParams(c, 20, 0)
	resp, err := h.taskModel.ListTasks(c.Request.Context(), principal, params.Limit, params.Offset)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateTaskHandler handles PUT /v1/tasks/:id.
func (h *TaskHandler) UpdateTaskHandler(c *gin.Context) {
	log := logger.GetLogger()

	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req types.TaskUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid request body", "error", err)
		_ = c.Error(apperrors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	task, err := h.taskModel.UpdateTask(c.Request.Context(), principal, c.Param("id"), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTaskStatusHandler handles PATCH /v1/tasks/:id/status. Status is the
// one field party members most often touch, so it gets its own route; the
// authorization rules are the same as a full update.
func (h *TaskHandler) UpdateTaskStatusHandler(c *gin.Context) {
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

	task, err := h.taskModel.UpdateTask(c.Request.Context(), principal, c.Param("id"), &types.TaskUpdate{Status: &req.Status})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// AssignTaskHandler handles POST /v1/tasks/:id/assign.
func (h *TaskHandler) AssignTaskHandler(c *gin.Context) {
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

	task, err := h.taskModel.AssignTask(c.Request.Context(), principal, c.Param("id"), req.AssigneeID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// AddCollaboratorHandler handles POST /v1/tasks/:id/collaborators.
func (h *TaskHandler) AddCollaboratorHandler(c *gin.Context) {
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

	task, err := h.taskModel.AddCollaborator(c.Request.Context(), principal, c.Param("id"), req.UserID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTaskHandler handles DELETE /v1/tasks/:id. Deletion is a soft
// delete; the row stays behind the is_deleted flag.
func (h *TaskHandler) DeleteTaskHandler(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.taskModel.DeleteTask(c.Request.Context(), principal, c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// getPaginationParams extracts and validates pagination parameters from the request
func getPaginationParams(c *gin.Context, defaultLimit, defaultOffset int) PaginationParams {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit <= 0 || limit > 100 {
		limit = defaultLimit
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", strconv.Itoa(defaultOffset)))
	if err != nil || offset < 0 {
		offset = defaultOffset
	}

	return PaginationParams{
		Limit:  limit,
		Offset: offset,
	}
}
