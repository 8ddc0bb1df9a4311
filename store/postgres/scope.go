package postgres

import (
	"fmt"

	"github.com/TaskForge/taskforge-backend/types"
)

// scopeCondition translates a ScopeDescriptor into a SQL predicate over a
// table that carries team_id, department_id, assignee_id, created_by and
// collaborators columns. Placeholders start at argOffset+1.
//
// The fail-closed contract lives here: a department or team scope with an
// empty id yields FALSE (match nothing), never an unfiltered query. Unknown
// kinds also yield FALSE.
func scopeCondition(scope types.ScopeDescriptor, principalID string, argOffset int) (string, []any) {
	switch scope.Kind {
	case types.ScopeAll:
		return "TRUE", nil
	case types.ScopeDepartment:
		if scope.DepartmentID == "" {
			return "FALSE", nil
		}
		return fmt.Sprintf("department_id = $%d", argOffset+1), []any{scope.DepartmentID}
	case types.ScopeTeam:
		if scope.TeamID == "" {
			return "FALSE", nil
		}
		return fmt.Sprintf("team_id = $%d", argOffset+1), []any{scope.TeamID}
	case types.ScopeOwn:
		if principalID == "" {
			return "FALSE", nil
		}
		p := argOffset + 1
		cond := fmt.Sprintf("(assignee_id = $%d OR created_by = $%d OR $%d = ANY(collaborators))", p, p, p)
		return cond, []any{principalID}
	default:
		return "FALSE", nil
	}
}

// projectScopeCondition is the project variant: projects have an owner
// instead of an assignee, and collaborators live in a join table.
func projectScopeCondition(scope types.ScopeDescriptor, principalID string, argOffset int) (string, []any) {
	switch scope.Kind {
	case types.ScopeAll:
		return "TRUE", nil
	case types.ScopeDepartment:
		if scope.DepartmentID == "" {
			return "FALSE", nil
		}
		return fmt.Sprintf("p.department_id = $%d", argOffset+1), []any{scope.DepartmentID}
	case types.ScopeTeam:
		// projects are department-level resources; a team scope only ever
		// reaches projects the principal is attached to
		fallthrough
	case types.ScopeOwn:
		if principalID == "" {
			return "FALSE", nil
		}
		p := argOffset + 1
		cond := fmt.Sprintf(
			"(p.owner_id = $%d OR EXISTS (SELECT 1 FROM project_collaborators pc WHERE pc.project_id = p.id AND pc.user_id = $%d))",
			p, p)
		return cond, []any{principalID}
	default:
		return "FALSE", nil
	}
}
