package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/TaskForge/taskforge-backend/store"
	"github.com/TaskForge/taskforge-backend/types"
	"github.com/jackc/pgx/v5"
)

var _ store.TaskStore = (*pgTaskStore)(nil)

type pgTaskStore struct {
	db PgxIface
}

// NewPgTaskStore creates a new PostgreSQL task store.
func NewPgTaskStore(db PgxIface) store.TaskStore {
	return &pgTaskStore{db: db}
}

const taskColumns = `id, title, description, status, assignee_id, created_by, collaborators,
	project_id, team_id, department_id, due_date, is_deleted, version, created_at, updated_at`

func (s *pgTaskStore) CreateTask(ctx context.Context, task *types.Task) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO tasks (
			id, title, description, status, assignee_id, created_by, collaborators,
			project_id, team_id, department_id, due_date, is_deleted, version, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), $11, $12, $13, $14, $15)`,
		task.ID,
		task.Title,
		task.Description,
		string(task.Status),
		task.AssigneeID,
		task.CreatedBy,
		task.Collaborators,
		task.ProjectID,
		task.TeamID,
		task.DepartmentID,
		task.DueDate,
		task.IsDeleted,
		task.Version,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

func (s *pgTaskStore) GetTask(ctx context.Context, id string) (*types.Task, error) {
	row := s.db.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM tasks
		WHERE id = $1 AND is_deleted = FALSE`, taskColumns), id)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task %s: %w", id, err)
	}
	return task, nil
}

func (s *pgTaskStore) ListTasks(ctx context.Context, scope types.ScopeDescriptor, principalID string, limit, offset int) ([]*types.Task, int, error) {
	cond, args := scopeCondition(scope, principalID, 0)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM tasks WHERE is_deleted = FALSE AND %s`, cond)
	if err := s.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM tasks
		WHERE is_deleted = FALSE AND %s
		ORDER BY due_date ASC, created_at DESC
		LIMIT $%d OFFSET $%d`, taskColumns, cond, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*types.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("task rows iteration failed: %w", err)
	}

	return tasks, total, nil
}

// UpdateTask writes the task back using compare-and-swap on the version
// column. A zero-row update means a concurrent writer got there first.
func (s *pgTaskStore) UpdateTask(ctx context.Context, task *types.Task) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, assignee_id = NULLIF($4, ''),
			collaborators = $5, due_date = $6, version = version + 1, updated_at = NOW()
		WHERE id = $7 AND version = $8 AND is_deleted = FALSE`,
		task.Title,
		task.Description,
		string(task.Status),
		task.AssigneeID,
		task.Collaborators,
		task.DueDate,
		task.ID,
		task.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update task %s: %w", task.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrVersionConflict
	}
	task.Version++
	return nil
}

func (s *pgTaskStore) SoftDeleteTask(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE tasks SET is_deleted = TRUE, updated_at = NOW()
		WHERE id = $1 AND is_deleted = FALSE`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (*types.Task, error) {
	var task types.Task
	var assigneeID, projectID, teamID, departmentID *string

	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&assigneeID,
		&task.CreatedBy,
		&task.Collaborators,
		&projectID,
		&teamID,
		&departmentID,
		&task.DueDate,
		&task.IsDeleted,
		&task.Version,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if assigneeID != nil {
		task.AssigneeID = *assigneeID
	}
	if projectID != nil {
		task.ProjectID = *projectID
	}
	if teamID != nil {
		task.TeamID = *teamID
	}
	if departmentID != nil {
		task.DepartmentID = *departmentID
	}
	if task.Collaborators == nil {
		task.Collaborators = []string{}
	}

	return &task, nil
}
