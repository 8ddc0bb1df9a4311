package types

// Action represents an operation a principal may attempt on a resource.
type Action string

const (
	ActionRead            Action = "read"
	ActionEdit            Action = "edit"
	ActionComplete        Action = "complete"
	ActionAssign          Action = "assign"
	ActionAddCollaborator Action = "add_collaborator"
	ActionDelete          Action = "delete"
)

// String returns the string representation of an Action.
func (a Action) String() string {
	return string(a)
}

// IsValid checks if the action is a recognized permission action.
func (a Action) IsValid() bool {
	switch a {
	case ActionRead, ActionEdit, ActionComplete, ActionAssign,
		ActionAddCollaborator, ActionDelete:
		return true
	}
	return false
}

// ResourceRef is the projection of a task, subtask or project that the
// authorizer needs: who is attached to it and which org unit it belongs to.
// The persistence layer builds one before asking for a decision.
type ResourceRef struct {
	ID            string   `json:"id"`
	AssigneeID    string   `json:"assigneeId,omitempty"`
	CreatedBy     string   `json:"createdBy"`
	TeamID        string   `json:"teamId,omitempty"`
	DepartmentID  string   `json:"departmentId,omitempty"`
	Collaborators []string `json:"collaborators"`
}

// IsParty reports whether the principal is attached to the resource as
// assignee, collaborator or creator. Party status is independent of role
// rank: a staff member is a party to their own tasks, an executive is not a
// party to a task they never touched.
func IsParty(p *Principal, r *ResourceRef) bool {
	if p == nil || r == nil || p.ID == "" {
		return false
	}
	if p.ID == r.AssigneeID || p.ID == r.CreatedBy {
		return true
	}
	for _, c := range r.Collaborators {
		if c == p.ID {
			return true
		}
	}
	return false
}

// CanAssignWithin reports whether the principal may assign work to a user
// sitting in the given team/department. Senior management assigns anywhere,
// a director within their department, a manager within their team. A
// director or manager with no org unit of their own can assign nowhere.
func CanAssignWithin(p *Principal, teamID, departmentID string) bool {
	if !CanAssignTasks(p) {
		return false
	}
	switch p.Role {
	case RoleSeniorManagement:
		return true
	case RoleDirector:
		return p.DepartmentID != "" && p.DepartmentID == departmentID
	case RoleManager:
		return p.TeamID != "" && p.TeamID == teamID
	}
	return false
}

// isEditParty reports whether the principal holds the narrower party status
// that edit and complete require: the assignee or a collaborator. Creating a
// task attaches the creator for reads and deletion, not for edits; a creator
// who wants to keep touching the work stays on as a collaborator.
func isEditParty(p *Principal, r *ResourceRef) bool {
	if p == nil || r == nil || p.ID == "" {
		return false
	}
	if r.AssigneeID != "" && p.ID == r.AssigneeID {
		return true
	}
	for _, c := range r.Collaborators {
		if c == p.ID {
			return true
		}
	}
	return false
}

// canOverrideParty gates the management override on edit/complete. It is
// narrower than CanManageTasks: hr holds a management role for listing and
// deletion purposes but may not touch work it is not a party to.
func canOverrideParty(p *Principal) bool {
	return CanManageTasks(p) && CanAssignTasks(p)
}

// Authorize decides whether the principal may perform the action on the
// concrete resource. It is a total function: nil inputs and unknown actions
// always produce false, never a panic. Rules are evaluated in the order
// below; the first applicable rule decides.
func Authorize(p *Principal, r *ResourceRef, action Action) bool {
	if !p.IsAuthenticated() || r == nil {
		return false
	}

	switch action {
	case ActionDelete:
		return CanManageTasks(p) || p.ID == r.CreatedBy

	case ActionAssign:
		// the target assignee must fall inside the principal's own scope
		return CanAssignWithin(p, r.TeamID, r.DepartmentID)

	case ActionEdit, ActionComplete:
		// assignee-or-collaborator rule; management roles that can direct
		// work get an override path, observers (hr) do not
		if isEditParty(p, r) {
			return true
		}
		return canOverrideParty(p)

	case ActionAddCollaborator:
		return CanAssignTasks(p) || p.ID == r.CreatedBy

	case ActionRead:
		// scope covers the resource's org unit, or the principal is already
		// attached to this specific resource regardless of scope
		if ResolveScope(p).Covers(r.TeamID, r.DepartmentID) {
			return true
		}
		return IsParty(p, r)
	}

	return false
}
