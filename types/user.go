package types

import "time"

// User is the persisted account a Principal is reconstructed from at
// request time.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	TeamID       string    `json:"teamId,omitempty"`
	DepartmentID string    `json:"departmentId,omitempty"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Principal projects the persisted user into the request-scoped actor the
// policy engine consumes.
func (u *User) Principal() *Principal {
	if u == nil {
		return nil
	}
	return &Principal{
		ID:           u.ID,
		Role:         u.Role,
		TeamID:       u.TeamID,
		DepartmentID: u.DepartmentID,
	}
}

// UserResponse is the API projection of a user.
type UserResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	TeamID       string `json:"teamId,omitempty"`
	DepartmentID string `json:"departmentId,omitempty"`
}

// Response converts the user to its API projection.
func (u *User) Response() UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		TeamID:       u.TeamID,
		DepartmentID: u.DepartmentID,
	}
}
