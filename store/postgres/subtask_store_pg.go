package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/TaskForge/taskforge-backend/store"
	"github.com/TaskForge/taskforge-backend/types"
	"github.com/jackc/pgx/v5"
)

var _ store.SubtaskStore = (*pgSubtaskStore)(nil)

type pgSubtaskStore struct {
	db PgxIface
}

// NewPgSubtaskStore creates a new PostgreSQL subtask store.
func NewPgSubtaskStore(db PgxIface) store.SubtaskStore {
	return &pgSubtaskStore{db: db}
}

const subtaskColumns = `id, parent_task_id, title, description, status, assignee_id, created_by,
	collaborators, team_id, department_id, due_date, is_deleted, version,
	last_status, last_status_at, created_at, updated_at`

func (s *pgSubtaskStore) CreateSubtask(ctx context.Context, subtask *types.Subtask) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO subtasks (
			id, parent_task_id, title, description, status, assignee_id, created_by,
			collaborators, team_id, department_id, due_date, is_deleted, version, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, NULLIF($9, ''), NULLIF($10, ''), $11, $12, $13, $14, $15)`,
		subtask.ID,
		subtask.ParentTaskID,
		subtask.Title,
		subtask.Description,
		string(subtask.Status),
		subtask.AssigneeID,
		subtask.CreatedBy,
		subtask.Collaborators,
		subtask.TeamID,
		subtask.DepartmentID,
		subtask.DueDate,
		subtask.IsDeleted,
		subtask.Version,
		subtask.CreatedAt,
		subtask.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert subtask: %w", err)
	}
	return nil
}

func (s *pgSubtaskStore) GetSubtask(ctx context.Context, id string) (*types.Subtask, error) {
	row := s.db.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM subtasks
		WHERE id = $1 AND is_deleted = FALSE`, subtaskColumns), id)

	subtask, err := scanSubtask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get subtask %s: %w", id, err)
	}
	return subtask, nil
}

func (s *pgSubtaskStore) ListSubtasks(ctx context.Context, parentTaskID string) ([]*types.Subtask, error) {
	rows, err := s.db.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM subtasks
		WHERE parent_task_id = $1 AND is_deleted = FALSE
		ORDER BY created_at ASC`, subtaskColumns), parentTaskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subtasks for task %s: %w", parentTaskID, err)
	}
	defer rows.Close()

	var subtasks []*types.Subtask
	for rows.Next() {
		subtask, err := scanSubtask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subtask row: %w", err)
		}
		subtasks = append(subtasks, subtask)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("subtask rows iteration failed: %w", err)
	}

	return subtasks, nil
}

func (s *pgSubtaskStore) UpdateSubtask(ctx context.Context, subtask *types.Subtask) error {
	var lastStatus *string
	var lastStatusAt *time.Time
	if subtask.LastStatusUpdate != nil {
		status := string(subtask.LastStatusUpdate.Status)
		lastStatus = &status
		lastStatusAt = &subtask.LastStatusUpdate.UpdatedAt
	}

	tag, err := s.db.Exec(ctx, `
		UPDATE subtasks
		SET title = $1, description = $2, status = $3, assignee_id = NULLIF($4, ''),
			collaborators = $5, due_date = $6, last_status = $7, last_status_at = $8,
			version = version + 1, updated_at = NOW()
		WHERE id = $9 AND version = $10 AND is_deleted = FALSE`,
		subtask.Title,
		subtask.Description,
		string(subtask.Status),
		subtask.AssigneeID,
		subtask.Collaborators,
		subtask.DueDate,
		lastStatus,
		lastStatusAt,
		subtask.ID,
		subtask.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update subtask %s: %w", subtask.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrVersionConflict
	}
	subtask.Version++
	return nil
}

func (s *pgSubtaskStore) SoftDeleteSubtask(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE subtasks SET is_deleted = TRUE, updated_at = NOW()
		WHERE id = $1 AND is_deleted = FALSE`, id)
	if err != nil {
		return fmt.Errorf("failed to delete subtask %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanSubtask(row pgx.Row) (*types.Subtask, error) {
	var subtask types.Subtask
	var assigneeID, teamID, departmentID, lastStatus *string
	var lastStatusAt *time.Time

	err := row.Scan(
		&subtask.ID,
		&subtask.ParentTaskID,
		&subtask.Title,
		&subtask.Description,
		&subtask.Status,
		&assigneeID,
		&subtask.CreatedBy,
		&subtask.Collaborators,
		&teamID,
		&departmentID,
		&subtask.DueDate,
		&subtask.IsDeleted,
		&subtask.Version,
		&lastStatus,
		&lastStatusAt,
		&subtask.CreatedAt,
		&subtask.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if assigneeID != nil {
		subtask.AssigneeID = *assigneeID
	}
	if teamID != nil {
		subtask.TeamID = *teamID
	}
	if departmentID != nil {
		subtask.DepartmentID = *departmentID
	}
	if subtask.Collaborators == nil {
		subtask.Collaborators = []string{}
	}
	if lastStatus != nil && lastStatusAt != nil {
		subtask.LastStatusUpdate = &types.StatusUpdate{
			Status:    types.TaskStatus(*lastStatus),
			UpdatedAt: *lastStatusAt,
		}
	}

	return &subtask, nil
}
