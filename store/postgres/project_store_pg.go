package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/TaskForge/taskforge-backend/store"
	"github.com/TaskForge/taskforge-backend/types"
	"github.com/jackc/pgx/v5"
)

var _ store.ProjectStore = (*pgProjectStore)(nil)

type pgProjectStore struct {
	db PgxIface
}

// NewPgProjectStore creates a new PostgreSQL project store.
func NewPgProjectStore(db PgxIface) store.ProjectStore {
	return &pgProjectStore{db: db}
}

const projectColumns = `p.id, p.name, p.description, p.owner_id, p.department_id,
	p.is_archived, p.deadline, p.created_at, p.updated_at`

func (s *pgProjectStore) CreateProject(ctx context.Context, project *types.Project) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO projects (id, name, description, owner_id, department_id, is_archived, deadline, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9)`,
		project.ID,
		project.Name,
		project.Description,
		project.OwnerID,
		project.DepartmentID,
		project.IsArchived,
		project.Deadline,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}
	return nil
}

func (s *pgProjectStore) GetProject(ctx context.Context, id string) (*types.Project, error) {
	row := s.db.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM projects p WHERE p.id = $1`, projectColumns), id)

	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project %s: %w", id, err)
	}

	if err := s.loadCollaborators(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *pgProjectStore) ListProjects(ctx context.Context, scope types.ScopeDescriptor, principalID string, limit, offset int) ([]*types.Project, int, error) {
	cond, args := projectScopeCondition(scope, principalID, 0)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM projects p WHERE %s`, cond)
	if err := s.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM projects p
		WHERE %s
		ORDER BY p.deadline ASC
		LIMIT $%d OFFSET $%d`, projectColumns, cond, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*types.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("project rows iteration failed: %w", err)
	}

	for _, project := range projects {
		if err := s.loadCollaborators(ctx, project); err != nil {
			return nil, 0, err
		}
	}

	return projects, total, nil
}

// UpdateProject rewrites the project row and reconciles its collaborator
// entries. Collaborator rows are upserted; removal is not part of the
// domain, membership only grows or changes role.
func (s *pgProjectStore) UpdateProject(ctx context.Context, project *types.Project) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE projects
		SET name = $1, description = $2, is_archived = $3, deadline = $4, updated_at = NOW()
		WHERE id = $5`,
		project.Name,
		project.Description,
		project.IsArchived,
		project.Deadline,
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project %s: %w", project.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	for _, c := range project.Collaborators {
		_, err := s.db.Exec(ctx, `
			INSERT INTO project_collaborators (project_id, user_id, role, assigned_by, assigned_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (project_id, user_id)
			DO UPDATE SET role = EXCLUDED.role, assigned_by = EXCLUDED.assigned_by, assigned_at = EXCLUDED.assigned_at`,
			project.ID, c.UserID, string(c.Role), c.AssignedBy, c.AssignedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert collaborator %s on project %s: %w", c.UserID, project.ID, err)
		}
	}

	return nil
}

func (s *pgProjectStore) loadCollaborators(ctx context.Context, project *types.Project) error {
	rows, err := s.db.Query(ctx, `
		SELECT user_id, role, assigned_by, assigned_at
		FROM project_collaborators
		WHERE project_id = $1
		ORDER BY assigned_at ASC`, project.ID)
	if err != nil {
		return fmt.Errorf("failed to load collaborators for project %s: %w", project.ID, err)
	}
	defer rows.Close()

	project.Collaborators = []types.ProjectCollaborator{}
	for rows.Next() {
		var c types.ProjectCollaborator
		if err := rows.Scan(&c.UserID, &c.Role, &c.AssignedBy, &c.AssignedAt); err != nil {
			return fmt.Errorf("failed to scan collaborator row: %w", err)
		}
		project.Collaborators = append(project.Collaborators, c)
	}
	return rows.Err()
}

func scanProject(row pgx.Row) (*types.Project, error) {
	var project types.Project
	var departmentID *string

	err := row.Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.OwnerID,
		&departmentID,
		&project.IsArchived,
		&project.Deadline,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if departmentID != nil {
		project.DepartmentID = *departmentID
	}
	project.Collaborators = []types.ProjectCollaborator{}

	return &project, nil
}
