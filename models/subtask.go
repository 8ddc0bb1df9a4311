package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/TaskForge/taskforge-backend/errors"
	"github.com/TaskForge/taskforge-backend/logger"
	"github.com/TaskForge/taskforge-backend/store"
	"github.com/TaskForge/taskforge-backend/types"
)

// SubtaskModel handles subtask lifecycle under a parent task. Authorization
// for create and list runs against the parent; mutations of an existing
// subtask run against the subtask itself. Status changes stamp the
// breadcrumb that subtasks keep and tasks do not.
type SubtaskModel struct {
	store     store.SubtaskStore
	taskStore store.TaskStore
	userStore store.UserStore
}

func NewSubtaskModel(store store.SubtaskStore, taskStore store.TaskStore, userStore store.UserStore) *SubtaskModel {
	return &SubtaskModel{
		store:     store,
		taskStore: taskStore,
		userStore: userStore,
	}
}

func (sm *SubtaskModel) CreateSubtask(ctx context.Context, principal *types.Principal, parentTaskID string, req *types.SubtaskCreate) (*types.Subtask, error) {
	log := logger.GetLogger()

	if err := validateSubtaskCreate(req); err != nil {
		return nil, err
	}

	parent, err := sm.fetchParent(ctx, parentTaskID)
	if err != nil {
		return nil, err
	}

	// breaking down a task is editing it
	if !types.Authorize(principal, parent.Ref(), types.ActionEdit) {
		return nil, apperrors.AccessDenied("you are not the assignee or a collaborator on the parent task")
	}

	subtask := types.NewSubtask(uuid.NewString(), req, parent, principal.ID)
	if err := sm.store.CreateSubtask(ctx, subtask); err != nil {
		log.Errorw("Failed to create subtask",
			"parentTaskId", parentTaskID,
			"error", err,
		)
		return nil, apperrors.NewDatabaseError(err)
	}

	return subtask, nil
}

func (sm *SubtaskModel) ListSubtasks(ctx context.Context, principal *types.Principal, parentTaskID string) ([]*types.Subtask, error) {
	parent, err := sm.fetchParent(ctx, parentTaskID)
	if err != nil {
		return nil, err
	}

	if !types.Authorize(principal, parent.Ref(), types.ActionRead) {
		return nil, apperrors.AccessDenied("parent task is outside your visibility scope")
	}

	subtasks, err := sm.store.ListSubtasks(ctx, parentTaskID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return subtasks, nil
}

func (sm *SubtaskModel) UpdateSubtaskStatus(ctx context.Context, principal *types.Principal, id string, status types.TaskStatus) (*types.Subtask, error) {
	log := logger.GetLogger()

	subtask, err := sm.fetchSubtask(ctx, id)
	if err != nil {
		return nil, err
	}

	action := types.ActionEdit
	if status == types.TaskStatusCompleted {
		action = types.ActionComplete
	}
	if !types.Authorize(principal, subtask.Ref(), action) {
		return nil, apperrors.AccessDenied("you are not the assignee or a collaborator on this subtask")
	}

	if !subtask.UpdateStatus(status, time.Now().UTC()) {
		return nil, apperrors.ValidationFailed("Invalid update", "unknown subtask status: "+string(status))
	}

	if err := sm.store.UpdateSubtask(ctx, subtask); err != nil {
		if errors.Is(err, store.ErrVersionConflict) {
			return nil, apperrors.NewConflictError(
				"Subtask was modified concurrently",
				"fetch the subtask again and retry",
			)
		}
		log.Errorw("Failed to update subtask status", "subtaskId", id, "error", err)
		return nil, apperrors.NewDatabaseError(err)
	}

	return subtask, nil
}

func (sm *SubtaskModel) AssignSubtask(ctx context.Context, principal *types.Principal, id string, assigneeID string) (*types.Subtask, error) {
	subtask, err := sm.fetchSubtask(ctx, id)
	if err != nil {
		return nil, err
	}

	if !types.Authorize(principal, subtask.Ref(), types.ActionAssign) {
		return nil, apperrors.AccessDenied("you cannot assign subtasks in this team or department")
	}

	assignee, err := sm.fetchUser(ctx, assigneeID)
	if err != nil {
		return nil, err
	}
	if !types.CanAssignWithin(principal, assignee.TeamID, assignee.DepartmentID) {
		return nil, apperrors.AccessDenied("assignee is outside your team or department")
	}

	subtask.AssignTo(assignee.ID)
	return subtask, sm.persist(ctx, subtask)
}

func (sm *SubtaskModel) AddCollaborator(ctx context.Context, principal *types.Principal, id string, userID string) (*types.Subtask, error) {
	subtask, err := sm.fetchSubtask(ctx, id)
	if err != nil {
		return nil, err
	}

	if !types.Authorize(principal, subtask.Ref(), types.ActionAddCollaborator) {
		return nil, apperrors.AccessDenied("only assigners or the creator can add collaborators")
	}

	collaborator, err := sm.fetchUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	subtask.AddCollaborator(collaborator.ID)
	return subtask, sm.persist(ctx, subtask)
}

func (sm *SubtaskModel) DeleteSubtask(ctx context.Context, principal *types.Principal, id string) error {
	subtask, err := sm.fetchSubtask(ctx, id)
	if err != nil {
		return err
	}

	if !types.Authorize(principal, subtask.Ref(), types.ActionDelete) {
		return apperrors.AccessDenied("only management roles or the creator can delete a subtask")
	}

	if err := sm.store.SoftDeleteSubtask(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("Subtask", id)
		}
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

func (sm *SubtaskModel) persist(ctx context.Context, subtask *types.Subtask) error {
	if err := sm.store.UpdateSubtask(ctx, subtask); err != nil {
		if errors.Is(err, store.ErrVersionConflict) {
			return apperrors.NewConflictError(
				"Subtask was modified concurrently",
				"fetch the subtask again and retry",
			)
		}
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

func (sm *SubtaskModel) fetchSubtask(ctx context.Context, id string) (*types.Subtask, error) {
	subtask, err := sm.store.GetSubtask(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Subtask", id)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return subtask, nil
}

func (sm *SubtaskModel) fetchParent(ctx context.Context, parentTaskID string) (*types.Task, error) {
	parent, err := sm.taskStore.GetTask(ctx, parentTaskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.TaskNotFound(parentTaskID)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return parent, nil
}

func (sm *SubtaskModel) fetchUser(ctx context.Context, id string) (*types.User, error) {
	user, err := sm.userStore.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("User", id)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return user, nil
}

func validateSubtaskCreate(req *types.SubtaskCreate) error {
	var validationErrors []string

	if strings.TrimSpace(req.Title) == "" {
		validationErrors = append(validationErrors, "subtask title is required")
	}
	if len(req.Title) > 255 {
		validationErrors = append(validationErrors, "subtask title exceeds 255 characters")
	}
	if req.DueDate.IsZero() {
		validationErrors = append(validationErrors, "due date is required")
	}

	if len(validationErrors) > 0 {
		return apperrors.ValidationFailed(
			"Invalid subtask data",
			strings.Join(validationErrors, "; "),
		)
	}
	return nil
}
