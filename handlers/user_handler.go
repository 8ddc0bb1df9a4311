package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TaskForge/taskforge-backend/middleware"
	"github.com/TaskForge/taskforge-backend/models"
	"github.com/TaskForge/taskforge-backend/types"
)

type UserHandler struct {
	userModel *models.UserModel
}

func NewUserHandler(model *models.UserModel) *UserHandler {
	return &UserHandler{userModel: model}
}

// GetMeHandler handles GET /v1/users/me.
func (h *UserHandler) GetMeHandler(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	user, err := h.userModel.GetUser(c.Request.Context(), principal.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user.Response())
}

// ListMembersHandler handles GET /v1/team/members. The route gate restricts
// it to manager-and-above; the listing itself follows the caller's scope, so
// a manager sees their team and a director their department.
func (h *UserHandler) ListMembersHandler(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	users, err := h.userModel.ListMembers(c.Request.Context(), principal)
	if err != nil {
		_ = c.Error(err)
		return
	}

	responses := make([]types.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, user.Response())
	}

	c.JSON(http.StatusOK, gin.H{"members": responses, "count": len(responses)})
}
