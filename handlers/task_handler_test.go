package handlers

import (
	"bytes"
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
	"github.com/TaskForge/taskforge-backend/store"
	"github.com/TaskForge/taskforge-backend/types"
)

func setupTaskRouter(p *types.Principal, taskStore *MockTaskStore, userStore *MockUserStore) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.Use(injectPrincipal(p))

	h := NewTaskHandler(models.NewTaskModel(taskStore, userStore))
	r.POST("/v1/tasks", h.CreateTaskHandler)
	r.GET("/v1/tasks", h.ListTasksHandler)
	r.GET("/v1/tasks/:id", h.GetTaskHandler)
	r.PUT("/v1/tasks/:id", h.UpdateTaskHandler)
	r.POST("/v1/tasks/:id/assign", h.AssignTaskHandler)
	r.DELETE("/v1/tasks/:id", h.DeleteTaskHandler)
	return r
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func TestTaskHandler_CreateTask(t *testing.T) {
	staff := &types.Principal{ID: "staff-1", Role: types.RoleStaff, TeamID: "t1", DepartmentID: "d1"}

	t.Run("created", func(t *testing.T) {
		taskStore := new(MockTaskStore)
		router := setupTaskRouter(staff, taskStore, new(MockUserStore))

		taskStore.On("CreateTask", mock.Anything, mock.AnythingOfType("*types.Task")).Return(nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/tasks", jsonBody(t, gin.H{
			"title":   "Draft agenda",
			"dueDate": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		}))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var task types.Task
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
		assert.Equal(t, "staff-1", task.CreatedBy)
		assert.Equal(t, types.TaskStatusUnassigned, task.Status)
		assert.Equal(t, "t1", task.TeamID)
	})

	t.Run("missing title is a 400", func(t *testing.T) {
		router := setupTaskRouter(staff, new(MockTaskStore), new(MockUserStore))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/tasks", jsonBody(t, gin.H{
			"dueDate": time.Now().Format(time.RFC3339),
		}))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTaskHandler_GetTask(t *testing.T) {
	staff := &types.Principal{ID: "staff-1", Role: types.RoleStaff, TeamID: "t1", DepartmentID: "d1"}

	t.Run("denied with contract message", func(t *testing.T) {
		taskStore := new(MockTaskStore)
		router := setupTaskRouter(staff, taskStore, new(MockUserStore))

		other := &types.Task{
			ID:            "task-1",
			Title:         "Not yours",
			Status:        types.TaskStatusOngoing,
			AssigneeID:    "someone-else",
			CreatedBy:     "mgr-1",
			Collaborators: []string{"someone-else"},
			TeamID:        "t1",
			DepartmentID:  "d1",
		}
		taskStore.On("GetTask", mock.Anything, "task-1").Return(other, nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/tasks/task-1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Access denied: insufficient permissions")
	})

	t.Run("not found is a 404", func(t *testing.T) {
		taskStore := new(MockTaskStore)
		router := setupTaskRouter(staff, taskStore, new(MockUserStore))

		taskStore.On("GetTask", mock.Anything, "missing").Return(nil, store.ErrNotFound).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/tasks/missing", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTaskHandler_AssignTask(t *testing.T) {
	manager := &types.Principal{ID: "mgr-1", Role: types.RoleManager, TeamID: "t1", DepartmentID: "d1"}
	staff := &types.Principal{ID: "staff-1", Role: types.RoleStaff, TeamID: "t1", DepartmentID: "d1"}

	unassigned := func() *types.Task {
		return &types.Task{
			ID:            "task-1",
			Title:         "Quarterly report",
			Status:        types.TaskStatusUnassigned,
			CreatedBy:     "mgr-1",
			Collaborators: []string{},
			TeamID:        "t1",
			DepartmentID:  "d1",
			Version:       1,
		}
	}

	t.Run("manager assigns team member", func(t *testing.T) {
		taskStore := new(MockTaskStore)
		userStore := new(MockUserStore)
		router := setupTaskRouter(manager, taskStore, userStore)

		taskStore.On("GetTask", mock.Anything, "task-1").Return(unassigned(), nil).Once()
		userStore.On("GetUser", mock.Anything, "staff-2").
			Return(&types.User{ID: "staff-2", Role: types.RoleStaff, TeamID: "t1", DepartmentID: "d1", IsActive: true}, nil).Once()
		taskStore.On("UpdateTask", mock.Anything, mock.AnythingOfType("*types.Task")).Return(nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/tasks/task-1/assign", jsonBody(t, gin.H{"assigneeId": "staff-2"}))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var task types.Task
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
		assert.Equal(t, "staff-2", task.AssigneeID)
		assert.Equal(t, types.TaskStatusOngoing, task.Status)
	})

	t.Run("staff assignment attempt is a 403", func(t *testing.T) {
		taskStore := new(MockTaskStore)
		router := setupTaskRouter(staff, taskStore, new(MockUserStore))

		taskStore.On("GetTask", mock.Anything, "task-1").Return(unassigned(), nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/tasks/task-1/assign", jsonBody(t, gin.H{"assigneeId": "staff-2"}))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Access denied: insufficient permissions")
	})
}
