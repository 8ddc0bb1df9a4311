package store

import (
	"context"

	"github.com/TaskForge/taskforge-backend/types"
)

// TaskStore persists tasks. List queries take the caller's resolved
// ScopeDescriptor and must honor its fail-closed contract: a scoped
// descriptor with an empty org-unit id matches nothing.
type TaskStore interface {
	CreateTask(ctx context.Context, task *types.Task) error
	GetTask(ctx context.Context, id string) (*types.Task, error)
	ListTasks(ctx context.Context, scope types.ScopeDescriptor, principalID string, limit, offset int) ([]*types.Task, int, error)
	// UpdateTask performs a compare-and-swap on the task's version and
	// returns ErrVersionConflict when a concurrent writer won.
	UpdateTask(ctx context.Context, task *types.Task) error
	SoftDeleteTask(ctx context.Context, id string) error
}

// SubtaskStore persists subtasks under their parent task.
type SubtaskStore interface {
	CreateSubtask(ctx context.Context, subtask *types.Subtask) error
	GetSubtask(ctx context.Context, id string) (*types.Subtask, error)
	ListSubtasks(ctx context.Context, parentTaskID string) ([]*types.Subtask, error)
	UpdateSubtask(ctx context.Context, subtask *types.Subtask) error
	SoftDeleteSubtask(ctx context.Context, id string) error
}

// ProjectStore persists projects and their collaborator entries.
type ProjectStore interface {
	CreateProject(ctx context.Context, project *types.Project) error
	GetProject(ctx context.Context, id string) (*types.Project, error)
	ListProjects(ctx context.Context, scope types.ScopeDescriptor, principalID string, limit, offset int) ([]*types.Project, int, error)
	UpdateProject(ctx context.Context, project *types.Project) error
}

// UserStore reads persisted users for principal reconstruction and member
// listings.
type UserStore interface {
	GetUser(ctx context.Context, id string) (*types.User, error)
	ListTeamMembers(ctx context.Context, teamID string) ([]*types.User, error)
	ListDepartmentMembers(ctx context.Context, departmentID string) ([]*types.User, error)
	ListAllMembers(ctx context.Context) ([]*types.User, error)
}
