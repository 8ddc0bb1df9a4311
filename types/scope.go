package types

// ScopeKind classifies the slice of the resource collection a principal may
// list.
type ScopeKind string

const (
	ScopeAll        ScopeKind = "all"
	ScopeDepartment ScopeKind = "department"
	ScopeTeam       ScopeKind = "team"
	ScopeOwn        ScopeKind = "own"
	ScopeNone       ScopeKind = "none"
)

// ScopeDescriptor tells the query layer how to filter a listing for a
// principal. It is computed fresh per request and never persisted.
//
// A department or team descriptor with an empty id is valid output: it means
// the principal holds a scoped role but has no org unit assigned. Consumers
// MUST translate that into "match nothing", never "match everything".
type ScopeDescriptor struct {
	Kind         ScopeKind `json:"kind"`
	DepartmentID string    `json:"departmentId,omitempty"`
	TeamID       string    `json:"teamId,omitempty"`
}

// ResolveScope derives the listing scope for a principal. The kind is a
// deterministic function of the role alone; ties at rank 4 are broken by the
// explicit role, not the rank (hr and sm both resolve to all).
func ResolveScope(p *Principal) ScopeDescriptor {
	if p == nil {
		return ScopeDescriptor{Kind: ScopeNone}
	}
	switch p.Role {
	case RoleHR, RoleSeniorManagement:
		return ScopeDescriptor{Kind: ScopeAll}
	case RoleDirector:
		return ScopeDescriptor{Kind: ScopeDepartment, DepartmentID: p.DepartmentID}
	case RoleManager:
		return ScopeDescriptor{Kind: ScopeTeam, TeamID: p.TeamID}
	default:
		// staff and unrecognized roles see only what they are a party to
		return ScopeDescriptor{Kind: ScopeOwn}
	}
}

// Covers reports whether a resource in the given team/department falls
// inside the scope. Own and none scopes never cover anything here; party
// membership is the authorizer's concern, not the scope's.
func (s ScopeDescriptor) Covers(teamID, departmentID string) bool {
	switch s.Kind {
	case ScopeAll:
		return true
	case ScopeDepartment:
		return s.DepartmentID != "" && s.DepartmentID == departmentID
	case ScopeTeam:
		return s.TeamID != "" && s.TeamID == teamID
	default:
		return false
	}
}
