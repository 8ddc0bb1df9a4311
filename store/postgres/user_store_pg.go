package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/TaskForge/taskforge-backend/store"
	"github.com/TaskForge/taskforge-backend/types"
	"github.com/jackc/pgx/v5"
)

var _ store.UserStore = (*pgUserStore)(nil)

type pgUserStore struct {
	db PgxIface
}

// NewPgUserStore creates a new PostgreSQL user store.
func NewPgUserStore(db PgxIface) store.UserStore {
	return &pgUserStore{db: db}
}

const userColumns = `id, email, name, role, team_id, department_id, is_active, created_at, updated_at`

func (s *pgUserStore) GetUser(ctx context.Context, id string) (*types.User, error) {
	row := s.db.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM users WHERE id = $1 AND is_active = TRUE`, userColumns), id)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return user, nil
}

func (s *pgUserStore) ListTeamMembers(ctx context.Context, teamID string) ([]*types.User, error) {
	if teamID == "" {
		// empty org-unit filters match nothing
		return []*types.User{}, nil
	}
	return s.listUsers(ctx, `team_id = $1`, teamID)
}

func (s *pgUserStore) ListDepartmentMembers(ctx context.Context, departmentID string) ([]*types.User, error) {
	if departmentID == "" {
		return []*types.User{}, nil
	}
	return s.listUsers(ctx, `department_id = $1`, departmentID)
}

func (s *pgUserStore) ListAllMembers(ctx context.Context) ([]*types.User, error) {
	return s.listUsers(ctx, `TRUE`)
}

func (s *pgUserStore) listUsers(ctx context.Context, cond string, args ...any) ([]*types.User, error) {
	rows, err := s.db.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM users
		WHERE is_active = TRUE AND %s
		ORDER BY name ASC`, userColumns, cond), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []*types.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func scanUser(row pgx.Row) (*types.User, error) {
	var user types.User
	var teamID, departmentID *string

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Role,
		&teamID,
		&departmentID,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if teamID != nil {
		user.TeamID = *teamID
	}
	if departmentID != nil {
		user.DepartmentID = *departmentID
	}

	return &user, nil
}
