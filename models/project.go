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

// ProjectModel orchestrates project operations. Creation is gated to
// manager-and-above at the route level; the model owns visibility and
// collaborator rules.
type ProjectModel struct {
	store     store.ProjectStore
	userStore store.UserStore
}

func NewProjectModel(store store.ProjectStore, userStore store.UserStore) *ProjectModel {
	return &ProjectModel{
		store:     store,
		userStore: userStore,
	}
}

func (pm *ProjectModel) CreateProject(ctx context.Context, principal *types.Principal, req *types.ProjectCreate) (*types.Project, error) {
	log := logger.GetLogger()

	if !principal.IsAuthenticated() {
		return nil, apperrors.AuthenticationFailed("Unauthorized access")
	}
	if err := validateProjectCreate(req); err != nil {
		return nil, err
	}

	if req.DepartmentID == "" {
		req.DepartmentID = principal.DepartmentID
	}

	project := types.NewProject(uuid.NewString(), req, principal.ID)
	if err := pm.store.CreateProject(ctx, project); err != nil {
		log.Errorw("Failed to create project",
			"ownerId", principal.ID,
			"error", err,
		)
		return nil, apperrors.NewDatabaseError(err)
	}

	return project, nil
}

func (pm *ProjectModel) GetProject(ctx context.Context, principal *types.Principal, id string) (*types.Project, error) {
	project, err := pm.fetchProject(ctx, id)
	if err != nil {
		return nil, err
	}

	if !types.Authorize(principal, project.Ref(), types.ActionRead) {
		return nil, apperrors.AccessDenied("project is outside your visibility scope")
	}
	return project, nil
}

func (pm *ProjectModel) ListProjects(ctx context.Context, principal *types.Principal, limit, offset int) (*types.PaginatedResponse, error) {
	if !principal.IsAuthenticated() {
		return nil, apperrors.AuthenticationFailed("Unauthorized access")
	}

	scope := types.ResolveScope(principal)
	projects, total, err := pm.store.ListProjects(ctx, scope, principal.ID, limit, offset)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	return &types.PaginatedResponse{
		Data: projects,
		Pagination: types.Pagination{
			Limit:  limit,
			Offset: offset,
			Total:  total,
		},
	}, nil
}

// AddCollaborator grants project membership. Re-adding an existing
// collaborator changes their project role in place. Ownership never moves.
func (pm *ProjectModel) AddCollaborator(ctx context.Context, principal *types.Principal, id string, userID string, role types.ProjectRole) (*types.Project, error) {
	log := logger.GetLogger()

	project, err := pm.fetchProject(ctx, id)
	if err != nil {
		return nil, err
	}

	if !types.Authorize(principal, project.Ref(), types.ActionAddCollaborator) {
		return nil, apperrors.AccessDenied("only assigners or the project owner can add collaborators")
	}

	if !role.IsValid() {
		return nil, apperrors.ValidationFailed("Invalid collaborator data", "unknown project role: "+string(role))
	}

	collaborator, err := pm.fetchUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	project.AddCollaborator(collaborator.ID, role, principal.ID, time.Now().UTC())
	if err := pm.store.UpdateProject(ctx, project); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ProjectNotFound(id)
		}
		log.Errorw("Failed to add project collaborator",
			"projectId", id,
			"userId", userID,
			"error", err,
		)
		return nil, apperrors.NewDatabaseError(err)
	}

	return project, nil
}

// ArchiveProject retires a project. Archival follows the deletion rule:
// management roles or the owner.
func (pm *ProjectModel) ArchiveProject(ctx context.Context, principal *types.Principal, id string) (*types.Project, error) {
	project, err := pm.fetchProject(ctx, id)
	if err != nil {
		return nil, err
	}

	if !types.Authorize(principal, project.Ref(), types.ActionDelete) {
		return nil, apperrors.AccessDenied("only management roles or the owner can archive a project")
	}

	project.IsArchived = true
	if err := pm.store.UpdateProject(ctx, project); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ProjectNotFound(id)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return project, nil
}

func (pm *ProjectModel) fetchProject(ctx context.Context, id string) (*types.Project, error) {
	project, err := pm.store.GetProject(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ProjectNotFound(id)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return project, nil
}

func (pm *ProjectModel) fetchUser(ctx context.Context, id string) (*types.User, error) {
	user, err := pm.userStore.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("User", id)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return user, nil
}

func validateProjectCreate(req *types.ProjectCreate) error {
	var validationErrors []string

	if strings.TrimSpace(req.Name) == "" {
		validationErrors = append(validationErrors, "project name is required")
	}
	if len(req.Name) > 255 {
		validationErrors = append(validationErrors, "project name exceeds 255 characters")
	}
	if req.Deadline.IsZero() {
		validationErrors = append(validationErrors, "deadline is required")
	}

	if len(validationErrors) > 0 {
		return apperrors.ValidationFailed(
			"Invalid project data",
			strings.Join(validationErrors, "; "),
		)
	}
	return nil
}
