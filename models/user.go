package models

import (
	"context"
	"errors"

	apperrors "github.com/TaskForge/taskforge-backend/errors"
	"github.com/TaskForge/taskforge-backend/store"
	"github.com/TaskForge/taskforge-backend/types"
)

// UserModel serves profile lookups and member listings. The member listing
// follows the caller's resolved scope: managers see their team, directors
// their department, hr and senior management everyone. Staff never reach
// this path; the route gate rejects them first.
type UserModel struct {
	store store.UserStore
}

func NewUserModel(store store.UserStore) *UserModel {
	return &UserModel{store: store}
}

func (um *UserModel) GetUser(ctx context.Context, id string) (*types.User, error) {
	user, err := um.store.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("User", id)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return user, nil
}

func (um *UserModel) ListMembers(ctx context.Context, principal *types.Principal) ([]*types.User, error) {
	if !principal.IsAuthenticated() {
		return nil, apperrors.AuthenticationFailed("Unauthorized access")
	}

	scope := types.ResolveScope(principal)

	var users []*types.User
	var err error
	switch scope.Kind {
	case types.ScopeAll:
		users, err = um.store.ListAllMembers(ctx)
	case types.ScopeDepartment:
		users, err = um.store.ListDepartmentMembers(ctx, scope.DepartmentID)
	case types.ScopeTeam:
		users, err = um.store.ListTeamMembers(ctx, scope.TeamID)
	default:
		return nil, apperrors.AccessDenied("member listings require a management role")
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return users, nil
}
