package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/TaskForge/taskforge-backend/middleware"
	"github.com/TaskForge/taskforge-backend/models"
	"github.com/TaskForge/taskforge-backend/types"
)

func setupUserRouter(p *types.Principal, userStore *MockUserStore) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.Use(injectPrincipal(p))

	h := NewUserHandler(models.NewUserModel(userStore))
	r.GET("/v1/users/me", h.GetMeHandler)
	r.GET("/v1/team/members",
		middleware.RequireRoles(types.RoleManager, types.RoleDirector, types.RoleHR, types.RoleSeniorManagement),
		h.ListMembersHandler)
	return r
}

func TestUserHandler_GetMe(t *testing.T) {
	staff := &types.Principal{ID: "staff-1", Role: types.RoleStaff, TeamID: "t1", DepartmentID: "d1"}
	userStore := new(MockUserStore)
	router := setupUserRouter(staff, userStore)

	userStore.On("GetUser", mock.Anything, "staff-1").
		Return(&types.User{ID: "staff-1", Email: "staff@corp.test", Name: "Sam", Role: types.RoleStaff, TeamID: "t1", IsActive: true}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/users/me", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "staff-1", resp.ID)
	assert.Equal(t, "staff@corp.test", resp.Email)
}

func TestUserHandler_ListMembers(t *testing.T) {
	t.Run("manager lists their team", func(t *testing.T) {
		manager := &types.Principal{ID: "mgr-1", Role: types.RoleManager, TeamID: "t1", DepartmentID: "d1"}
		userStore := new(MockUserStore)
		router := setupUserRouter(manager, userStore)

		userStore.On("ListTeamMembers", mock.Anything, "t1").Return([]*types.User{
			{ID: "staff-1", Role: types.RoleStaff, TeamID: "t1"},
			{ID: "staff-2", Role: types.RoleStaff, TeamID: "t1"},
		}, nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/team/members", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"count":2`)
	})

	t.Run("staff blocked at the route gate", func(t *testing.T) {
		staff := &types.Principal{ID: "staff-1", Role: types.RoleStaff, TeamID: "t1", DepartmentID: "d1"}
		userStore := new(MockUserStore)
		router := setupUserRouter(staff, userStore)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/team/members", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Insufficient permissions")
		userStore.AssertNotCalled(t, "ListTeamMembers", mock.Anything, mock.Anything)
	})

	t.Run("missing role is a 403 with the role message", func(t *testing.T) {
		noRole := &types.Principal{ID: "ghost-1"}
		router := setupUserRouter(noRole, new(MockUserStore))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/team/members", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "user role not found")
	})
}
