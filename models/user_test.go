package models

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TaskForge/taskforge-backend/store"
	"github.com/TaskForge/taskforge-backend/types"
)

func TestUserModel_GetUser(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mockUsers := new(MockUserStore)
		model := NewUserModel(mockUsers)

		mockUsers.On("GetUser", ctx, "staff-1").
			Return(&types.User{ID: "staff-1", Role: types.RoleStaff, IsActive: true}, nil).Once()

		user, err := model.GetUser(ctx, "staff-1")
		require.NoError(t, err)
		assert.Equal(t, "staff-1", user.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mockUsers := new(MockUserStore)
		model := NewUserModel(mockUsers)

		mockUsers.On("GetUser", ctx, "ghost").Return(nil, store.ErrNotFound).Once()

		_, err := model.GetUser(ctx, "ghost")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "User not found")
	})
}

func TestUserModel_ListMembers(t *testing.T) {
	ctx := context.Background()

	t.Run("manager lists team", func(t *testing.T) {
		mockUsers := new(MockUserStore)
		model := NewUserModel(mockUsers)

		mockUsers.On("ListTeamMembers", ctx, "t1").
			Return([]*types.User{{ID: "staff-1"}, {ID: "staff-2"}}, nil).Once()

		users, err := model.ListMembers(ctx, managerPrincipal())
		require.NoError(t, err)
		assert.Len(t, users, 2)
		mockUsers.AssertExpectations(t)
	})

	t.Run("director lists department", func(t *testing.T) {
		mockUsers := new(MockUserStore)
		model := NewUserModel(mockUsers)

		director := &types.Principal{ID: "dir-1", Role: types.RoleDirector, DepartmentID: "d1"}
		mockUsers.On("ListDepartmentMembers", ctx, "d1").
			Return([]*types.User{{ID: "staff-1"}}, nil).Once()

		users, err := model.ListMembers(ctx, director)
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})

	t.Run("hr lists everyone", func(t *testing.T) {
		mockUsers := new(MockUserStore)
		model := NewUserModel(mockUsers)

		mockUsers.On("ListAllMembers", ctx).
			Return([]*types.User{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil).Once()

		users, err := model.ListMembers(ctx, hrPrincipal())
		require.NoError(t, err)
		assert.Len(t, users, 3)
	})

	t.Run("staff denied", func(t *testing.T) {
		model := NewUserModel(new(MockUserStore))

		_, err := model.ListMembers(ctx, staffPrincipal())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Access denied: insufficient permissions")
	})
}
