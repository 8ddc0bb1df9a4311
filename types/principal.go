package types

// Principal is the authenticated actor behind a request: user id, role and
// org-unit memberships. It is reconstructed per request from the auth token
// and never mutated afterwards.
type Principal struct {
	ID           string `json:"id"`
	Role         Role   `json:"role"`
	TeamID       string `json:"teamId,omitempty"`
	DepartmentID string `json:"departmentId,omitempty"`
}

// IsAuthenticated reports whether the principal carries a usable identity
// and role. Everything downstream fails closed without one.
func (p *Principal) IsAuthenticated() bool {
	return p != nil && p.ID != "" && p.Role != ""
}
