package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/TaskForge/taskforge-backend/config"
	"github.com/TaskForge/taskforge-backend/handlers"
	"github.com/TaskForge/taskforge-backend/middleware"
	"github.com/TaskForge/taskforge-backend/types"
)

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config         *config.Config
	RedisClient    *redis.Client
	TaskHandler    *handlers.TaskHandler
	SubtaskHandler *handlers.SubtaskHandler
	ProjectHandler *handlers.ProjectHandler
	UserHandler    *handlers.UserHandler
	HealthHandler  *handlers.HealthHandler
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Global middleware
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	if deps.RedisClient != nil {
		window := time.Duration(deps.Config.RateLimit.WindowSeconds) * time.Second
		r.Use(middleware.RateLimiter(deps.RedisClient, deps.Config.RateLimit.RequestsPerMinute, window))
	}

	// Health and metrics routes stay outside the auth boundary
	r.GET("/health", deps.HealthHandler.ReadinessCheck)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/health/readiness", deps.HealthHandler.ReadinessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Versioned API group, fully authenticated
	v1 := r.Group("/v1")
	v1.Use(middleware.AuthMiddleware(&deps.Config.Server))
	{
		// Task routes. Resource-level decisions happen in the model against
		// the concrete task, so the routes carry no extra gating.
		taskRoutes := v1.Group("/tasks")
		{
			taskRoutes.POST("", deps.TaskHandler.CreateTaskHandler)
			taskRoutes.GET("", deps.TaskHandler.ListTasksHandler)
			taskRoutes.GET("/:id", deps.TaskHandler.GetTaskHandler)
			taskRoutes.PUT("/:id", deps.TaskHandler.UpdateTaskHandler)
			taskRoutes.DELETE("/:id", deps.TaskHandler.DeleteTaskHandler)
			taskRoutes.PATCH("/:id/status", deps.TaskHandler.UpdateTaskStatusHandler)
			taskRoutes.POST("/:id/assign", deps.TaskHandler.AssignTaskHandler)
			taskRoutes.POST("/:id/collaborators", deps.TaskHandler.AddCollaboratorHandler)

			// Subtask routes nested under the parent task
			subtaskRoutes := taskRoutes.Group("/:id/subtasks")
			{
				subtaskRoutes.POST("", deps.SubtaskHandler.CreateSubtaskHandler)
				subtaskRoutes.GET("", deps.SubtaskHandler.ListSubtasksHandler)
			}
		}

		// Subtask routes addressed by subtask id
		subtaskRoutes := v1.Group("/subtasks")
		{
			subtaskRoutes.PATCH("/:subtaskID/status", deps.SubtaskHandler.UpdateSubtaskStatusHandler)
			subtaskRoutes.POST("/:subtaskID/assign", deps.SubtaskHandler.AssignSubtaskHandler)
			subtaskRoutes.POST("/:subtaskID/collaborators", deps.SubtaskHandler.AddCollaboratorHandler)
			subtaskRoutes.DELETE("/:subtaskID", deps.SubtaskHandler.DeleteSubtaskHandler)
		}

		// Project routes. Creation is coarse-gated to manager and above.
		projectRoutes := v1.Group("/projects")
		{
			projectRoutes.POST("",
				middleware.RequireRoles(types.RoleManager, types.RoleDirector, types.RoleHR, types.RoleSeniorManagement),
				deps.ProjectHandler.CreateProjectHandler)
			projectRoutes.GET("", deps.ProjectHandler.ListProjectsHandler)
			projectRoutes.GET("/:id", deps.ProjectHandler.GetProjectHandler)
			projectRoutes.POST("/:id/collaborators", deps.ProjectHandler.AddCollaboratorHandler)
			projectRoutes.POST("/:id/archive", deps.ProjectHandler.ArchiveProjectHandler)
		}

		// User routes
		v1.GET("/users/me", deps.UserHandler.GetMeHandler)
		v1.GET("/team/members",
			middleware.RequireRoles(types.RoleManager, types.RoleDirector, types.RoleHR, types.RoleSeniorManagement),
			deps.UserHandler.ListMembersHandler)
	}

	return r
}
