package types

// Role represents an organizational role assigned to a user.
type Role string

const (
	RoleStaff            Role = "staff"
	RoleManager          Role = "manager"
	RoleDirector         Role = "director"
	RoleHR               Role = "hr"
	RoleSeniorManagement Role = "sm"
)

// roleRanks is the fixed ordering over roles used for coarse comparisons.
// hr and sm deliberately share rank 4: they are equal in seniority but carry
// different capability sets (hr sees everything, sm sees and manages
// everything). Capability checks must therefore use the predicates below,
// never the rank alone.
var roleRanks = map[Role]int{
	RoleStaff:            1,
	RoleManager:          2,
	RoleDirector:         3,
	RoleHR:               4,
	RoleSeniorManagement: 4,
}

// String returns the string representation of a Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the role is one of the five organizational roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleStaff, RoleManager, RoleDirector, RoleHR, RoleSeniorManagement:
		return true
	}
	return false
}

// Rank returns the integer rank of a role. Unknown roles rank 0 so that any
// comparison against them fails closed.
func Rank(r Role) int {
	return roleRanks[r]
}

// IsHigherRole reports whether a outranks b strictly. A nil principal on
// either side always yields false.
func IsHigherRole(a, b *Principal) bool {
	if a == nil || b == nil {
		return false
	}
	return Rank(a.Role) > Rank(b.Role)
}

// IsHigherOrEqualRole reports whether a ranks at least as high as b. A nil
// principal on either side always yields false.
func IsHigherOrEqualRole(a, b *Principal) bool {
	if a == nil || b == nil {
		return false
	}
	return Rank(a.Role) >= Rank(b.Role)
}

// CanAssignTasks reports whether the principal may assign tasks to other
// users. hr is excluded: it observes the whole company but does not direct
// work.
func CanAssignTasks(p *Principal) bool {
	return HasRoles(p, []Role{RoleManager, RoleDirector, RoleSeniorManagement})
}

// CanSeeAllTasks reports whether the principal's listing scope is
// company-wide.
func CanSeeAllTasks(p *Principal) bool {
	return HasRoles(p, []Role{RoleHR, RoleSeniorManagement})
}

// CanSeeDepartmentTasks reports whether the principal lists tasks across
// their department.
func CanSeeDepartmentTasks(p *Principal) bool {
	return HasRole(p, RoleDirector)
}

// CanSeeTeamTasks reports whether the principal lists tasks across their
// team.
func CanSeeTeamTasks(p *Principal) bool {
	return HasRole(p, RoleManager)
}

// CanManageTasks reports whether the principal holds a management-level role.
// This is an explicit set, not a rank threshold: hr is a member even though
// it cannot assign tasks, so this predicate is a strict superset of the
// see-team/see-department/see-all predicates.
func CanManageTasks(p *Principal) bool {
	return HasRoles(p, []Role{RoleManager, RoleHR, RoleDirector, RoleSeniorManagement})
}

// CanSeeTasks reports whether the principal may list tasks beyond the ones
// they are a party to. Staff are excluded; their access is decided per
// resource by the authorizer.
func CanSeeTasks(p *Principal) bool {
	return HasRoles(p, []Role{RoleHR, RoleDirector, RoleManager, RoleSeniorManagement})
}

// HasRole reports whether the principal holds exactly the given role.
// False for a nil principal.
func HasRole(p *Principal, role Role) bool {
	if p == nil {
		return false
	}
	return p.Role == role
}

// HasRoles reports whether the principal's role appears in the given set.
// False for a nil principal or an empty set.
func HasRoles(p *Principal, roles []Role) bool {
	if p == nil {
		return false
	}
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// HasAnyRole is an alias for HasRoles kept for call sites that read better
// with variadic arguments.
func HasAnyRole(p *Principal, roles ...Role) bool {
	return HasRoles(p, roles)
}
