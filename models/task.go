package models

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/TaskForge/taskforge-backend/errors"
	"github.com/TaskForge/taskforge-backend/logger"
	"github.com/TaskForge/taskforge-backend/store"
	"github.com/TaskForge/taskforge-backend/types"
)

// TaskModel orchestrates task lifecycle operations: validation, an
// authorization decision against the concrete resource, the domain mutation,
// and finally persistence. Every write goes through the store's
// compare-and-swap, so a lost race surfaces as a conflict instead of a
// silent overwrite.
type TaskModel struct {
	store     store.TaskStore
	userStore store.UserStore
}

func NewTaskModel(store store.TaskStore, userStore store.UserStore) *TaskModel {
	return &TaskModel{
		store:     store,
		userStore: userStore,
	}
}

func (tm *TaskModel) CreateTask(ctx context.Context, principal *types.Principal, req *types.TaskCreate) (*types.Task, error) {
	log := logger.GetLogger()

	if !principal.IsAuthenticated() {
		return nil, apperrors.AuthenticationFailed("Unauthorized access")
	}
	if err := validateTaskCreate(req); err != nil {
		return nil, err
	}

	// tasks land in the creator's org unit unless the payload says otherwise
	if req.TeamID == "" {
		req.TeamID = principal.TeamID
	}
	if req.DepartmentID == "" {
		req.DepartmentID = principal.DepartmentID
	}

	task := types.NewTask(uuid.NewString(), req, principal.ID)
	if err := tm.store.CreateTask(ctx, task); err != nil {
		log.Errorw("Failed to create task",
			"userId", principal.ID,
			"error", err,
		)
		return nil, apperrors.NewDatabaseError(err)
	}

	return task, nil
}

func (tm *TaskModel) GetTask(ctx context.Context, principal *types.Principal, id string) (*types.Task, error) {
	task, err := tm.fetchTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if !types.Authorize(principal, task.Ref(), types.ActionRead) {
		return nil, apperrors.AccessDenied("task is outside your visibility scope")
	}
	return task, nil
}

// ListTasks returns the tasks the principal's resolved scope covers. The
// scope descriptor travels into the store, where it becomes a SQL predicate;
// a staff principal only ever sees work they are a party to.
func (tm *TaskModel) ListTasks(ctx context.Context, principal *types.Principal, limit, offset int) (*types.PaginatedResponse, error) {
	if !principal.IsAuthenticated() {
		return nil, apperrors.AuthenticationFailed("Unauthorized access")
	}

	scope := types.ResolveScope(principal)
	tasks, total, err := tm.store.ListTasks(ctx, scope, principal.ID, limit, offset)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	return &types.PaginatedResponse{
		Data: tasks,
		Pagination: types.Pagination{
			Limit:  limit,
			Offset: offset,
			Total:  total,
		},
	}, nil
}

func (tm *TaskModel) UpdateTask(ctx context.Context, principal *types.Principal, id string, update *types.TaskUpdate) (*types.Task, error) {
	log := logger.GetLogger()

	task, err := tm.fetchTask(ctx, id)
	if err != nil {
		return nil, err
	}

	action := types.ActionEdit
	if update.Status != nil && *update.Status == types.TaskStatusCompleted {
		action = types.ActionComplete
	}
	if !types.Authorize(principal, task.Ref(), action) {
		return nil, apperrors.AccessDenied("you are not the assignee or a collaborator on this task")
	}

	if err := applyTaskUpdate(task, update); err != nil {
		return nil, err
	}

	if err := tm.store.UpdateTask(ctx, task); err != nil {
		if errors.Is(err, store.ErrVersionConflict) {
			return nil, apperrors.NewConflictError(
				"Task was modified concurrently",
				"fetch the task again and retry",
			)
		}
		log.Errorw("Failed to update task", "taskId", id, "error", err)
		return nil, apperrors.NewDatabaseError(err)
	}

	return task, nil
}

// AssignTask sets the assignee. The decision is double-checked: the
// principal must be able to assign within the task's org unit, and within
// the target user's org unit. Assigning an unassigned task moves it to
// ongoing.
func (tm *TaskModel) AssignTask(ctx context.Context, principal *types.Principal, id string, assigneeID string) (*types.Task, error) {
	log := logger.GetLogger()

	task, err := tm.fetchTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if !types.Authorize(principal, task.Ref(), types.ActionAssign) {
		return nil, apperrors.AccessDenied("you cannot assign tasks in this team or department")
	}

	assignee, err := tm.fetchUser(ctx, assigneeID)
	if err != nil {
		return nil, err
	}
	if !types.CanAssignWithin(principal, assignee.TeamID, assignee.DepartmentID) {
		return nil, apperrors.AccessDenied("assignee is outside your team or department")
	}

	task.AssignTo(assignee.ID)
	if err := tm.store.UpdateTask(ctx, task); err != nil {
		if errors.Is(err, store.ErrVersionConflict) {
			return nil, apperrors.NewConflictError(
				"Task was modified concurrently",
				"fetch the task again and retry",
			)
		}
		log.Errorw("Failed to assign task", "taskId", id, "assigneeId", assigneeID, "error", err)
		return nil, apperrors.NewDatabaseError(err)
	}

	return task, nil
}

func (tm *TaskModel) AddCollaborator(ctx context.Context, principal *types.Principal, id string, userID string) (*types.Task, error) {
	task, err := tm.fetchTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if !types.Authorize(principal, task.Ref(), types.ActionAddCollaborator) {
		return nil, apperrors.AccessDenied("only assigners or the creator can add collaborators")
	}

	collaborator, err := tm.fetchUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	task.AddCollaborator(collaborator.ID)
	if err := tm.store.UpdateTask(ctx, task); err != nil {
		if errors.Is(err, store.ErrVersionConflict) {
			return nil, apperrors.NewConflictError(
				"Task was modified concurrently",
				"fetch the task again and retry",
			)
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	return task, nil
}

func (tm *TaskModel) DeleteTask(ctx context.Context, principal *types.Principal, id string) error {
	log := logger.GetLogger()

	task, err := tm.fetchTask(ctx, id)
	if err != nil {
		return err
	}

	if !types.Authorize(principal, task.Ref(), types.ActionDelete) {
		return apperrors.AccessDenied("only management roles or the creator can delete a task")
	}

	if err := tm.store.SoftDeleteTask(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.TaskNotFound(id)
		}
		log.Errorw("Failed to delete task", "taskId", id, "error", err)
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

func (tm *TaskModel) fetchTask(ctx context.Context, id string) (*types.Task, error) {
	task, err := tm.store.GetTask(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.TaskNotFound(id)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return task, nil
}

func (tm *TaskModel) fetchUser(ctx context.Context, id string) (*types.User, error) {
	user, err := tm.userStore.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("User", id)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return user, nil
}

// Helper functions
func validateTaskCreate(req *types.TaskCreate) error {
	var validationErrors []string

	if strings.TrimSpace(req.Title) == "" {
		validationErrors = append(validationErrors, "task title is required")
	}
	if len(req.Title) > 255 {
		validationErrors = append(validationErrors, "task title exceeds 255 characters")
	}
	if req.DueDate.IsZero() {
		validationErrors = append(validationErrors, "due date is required")
	}

	if len(validationErrors) > 0 {
		return apperrors.ValidationFailed(
			"Invalid task data",
			strings.Join(validationErrors, "; "),
		)
	}
	return nil
}

func applyTaskUpdate(task *types.Task, update *types.TaskUpdate) error {
	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			return apperrors.ValidationFailed("Invalid update", "task title cannot be empty")
		}
		if len(*update.Title) > 255 {
			return apperrors.ValidationFailed("Invalid update", "task title exceeds 255 characters")
		}
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.DueDate != nil {
		task.DueDate = *update.DueDate
	}
	if update.Status != nil {
		if !task.UpdateStatus(*update.Status) {
			return apperrors.ValidationFailed("Invalid update", "unknown task status: "+string(*update.Status))
		}
	}
	return nil
}
