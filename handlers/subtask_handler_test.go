package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/TaskForge/taskforge-backend/middleware"
	"github.com/TaskForge/taskforge-backend/models"
	"github.com/TaskForge/taskforge-backend/types"
)

func setupSubtaskRouter(p *types.Principal, subtaskStore *MockSubtaskStore, taskStore *MockTaskStore, userStore *MockUserStore) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	if p != nil {
		r.Use(injectPrincipal(p))
	}

	h := NewSubtaskHandler(models.NewSubtaskModel(subtaskStore, taskStore, userStore))
	r.POST("/v1/tasks/:id/subtasks", h.CreateSubtaskHandler)
	r.GET("/v1/tasks/:id/subtasks", h.ListSubtasksHandler)
	r.PATCH("/v1/subtasks/:subtaskID/status", h.UpdateSubtaskStatusHandler)
	r.DELETE("/v1/subtasks/:subtaskID", h.DeleteSubtaskHandler)
	return r
}

func parentTask() *types.Task {
	return &types.Task{
		ID:            "task-1",
		Title:         "Quarterly report",
		Status:        types.TaskStatusOngoing,
		AssigneeID:    "staff-1",
		CreatedBy:     "mgr-1",
		Collaborators: []string{"staff-1"},
		TeamID:        "t1",
		DepartmentID:  "d1",
	}
}

func ongoingSubtask() *types.Subtask {
	return &types.Subtask{
		ID:            "sub-1",
		ParentTaskID:  "task-1",
		Title:         "Collect figures",
		Status:        types.TaskStatusOngoing,
		AssigneeID:    "staff-1",
		CreatedBy:     "mgr-1",
		Collaborators: []string{"staff-1"},
		TeamID:        "t1",
		DepartmentID:  "d1",
		Version:       1,
	}
}

func TestSubtaskHandler_CreateSubtask(t *testing.T) {
	assignee := &types.Principal{ID: "staff-1", Role: types.RoleStaff, TeamID: "t1", DepartmentID: "d1"}

	t.Run("parent assignee creates", func(t *testing.T) {
		subtaskStore := new(MockSubtaskStore)
		taskStore := new(MockTaskStore)
		router := setupSubtaskRouter(assignee, subtaskStore, taskStore, new(MockUserStore))

		taskStore.On("GetTask", mock.Anything, "task-1").Return(parentTask(), nil).Once()
		subtaskStore.On("CreateSubtask", mock.Anything, mock.AnythingOfType("*types.Subtask")).Return(nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/tasks/task-1/subtasks", jsonBody(t, gin.H{
			"title":   "Collect figures",
			"dueDate": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		}))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var subtask types.Subtask
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &subtask))
		assert.Equal(t, "task-1", subtask.ParentTaskID)
		assert.Equal(t, "staff-1", subtask.CreatedBy)
		assert.Equal(t, "t1", subtask.TeamID, "org unit inherited from parent")
	})

	t.Run("no principal is a 401", func(t *testing.T) {
		router := setupSubtaskRouter(nil, new(MockSubtaskStore), new(MockTaskStore), new(MockUserStore))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/tasks/task-1/subtasks", jsonBody(t, gin.H{
			"title":   "Collect figures",
			"dueDate": time.Now().Format(time.RFC3339),
		}))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "User not authenticated")
	})
}

func TestSubtaskHandler_UpdateStatus(t *testing.T) {
	t.Run("hr completion attempt is a 403", func(t *testing.T) {
		hr := &types.Principal{ID: "hr-1", Role: types.RoleHR}
		subtaskStore := new(MockSubtaskStore)
		router := setupSubtaskRouter(hr, subtaskStore, new(MockTaskStore), new(MockUserStore))

		subtaskStore.On("GetSubtask", mock.Anything, "sub-1").Return(ongoingSubtask(), nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/v1/subtasks/sub-1/status", jsonBody(t, gin.H{"status": "completed"}))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Access denied: insufficient permissions")
	})

	t.Run("assignee completes and stamps breadcrumb", func(t *testing.T) {
		assignee := &types.Principal{ID: "staff-1", Role: types.RoleStaff, TeamID: "t1", DepartmentID: "d1"}
		subtaskStore := new(MockSubtaskStore)
		router := setupSubtaskRouter(assignee, subtaskStore, new(MockTaskStore), new(MockUserStore))

		subtaskStore.On("GetSubtask", mock.Anything, "sub-1").Return(ongoingSubtask(), nil).Once()
		subtaskStore.On("UpdateSubtask", mock.Anything, mock.AnythingOfType("*types.Subtask")).Return(nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/v1/subtasks/sub-1/status", jsonBody(t, gin.H{"status": "completed"}))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var subtask types.Subtask
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &subtask))
		assert.Equal(t, types.TaskStatusCompleted, subtask.Status)
		require.NotNil(t, subtask.LastStatusUpdate)
		assert.Equal(t, types.TaskStatusCompleted, subtask.LastStatusUpdate.Status)
	})
}

func TestSubtaskHandler_DeleteSubtask(t *testing.T) {
	t.Run("unrelated staff cannot delete", func(t *testing.T) {
		stranger := &types.Principal{ID: "stranger", Role: types.RoleStaff, TeamID: "t2", DepartmentID: "d2"}
		subtaskStore := new(MockSubtaskStore)
		router := setupSubtaskRouter(stranger, subtaskStore, new(MockTaskStore), new(MockUserStore))

		subtaskStore.On("GetSubtask", mock.Anything, "sub-1").Return(ongoingSubtask(), nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/v1/subtasks/sub-1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Access denied: insufficient permissions")
	})
}
