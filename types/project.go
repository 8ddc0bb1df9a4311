package types

import (
	"time"
)

// ProjectRole is the role a collaborator holds inside a project, distinct
// from their organizational Role.
type ProjectRole string

const (
	ProjectRoleViewer ProjectRole = "viewer"
	ProjectRoleEditor ProjectRole = "editor"
)

// IsValid checks if the project role is recognized.
func (r ProjectRole) IsValid() bool {
	return r == ProjectRoleViewer || r == ProjectRoleEditor
}

// ProjectCollaborator records a user's membership in a project and who
// granted it. Membership is a back-reference: it never transfers ownership.
type ProjectCollaborator struct {
	UserID     string      `json:"userId"`
	Role       ProjectRole `json:"role"`
	AssignedBy string      `json:"assignedBy"`
	AssignedAt time.Time   `json:"assignedAt"`
}

// Project groups tasks under an owner and a department. Project owners are
// manager-or-above at creation time; the route gating enforces that, the
// domain object does not re-check it.
type Project struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Description   string                `json:"description,omitempty"`
	OwnerID       string                `json:"ownerId"`
	DepartmentID  string                `json:"departmentId,omitempty"`
	Collaborators []ProjectCollaborator `json:"collaborators"`
	IsArchived    bool                  `json:"isArchived"`
	Deadline      time.Time             `json:"deadline"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// ProjectCreate is the inbound payload for creating a project.
type ProjectCreate struct {
	Name         string    `json:"name" binding:"required"`
	Description  string    `json:"description"`
	DepartmentID string    `json:"departmentId"`
	Deadline     time.Time `json:"deadline" binding:"required"`
}

// NewProject builds an active project owned by its creator.
func NewProject(id string, req *ProjectCreate, ownerID string) *Project {
	now := time.Now().UTC()
	return &Project{
		ID:            id,
		Name:          req.Name,
		Description:   req.Description,
		OwnerID:       ownerID,
		DepartmentID:  req.DepartmentID,
		Collaborators: []ProjectCollaborator{},
		Deadline:      req.Deadline,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// AddCollaborator inserts or updates a collaborator entry. Re-adding an
// existing collaborator updates their project role instead of duplicating
// the entry.
func (p *Project) AddCollaborator(userID string, role ProjectRole, assignedBy string, now time.Time) {
	if userID == "" || !role.IsValid() {
		return
	}
	for i, c := range p.Collaborators {
		if c.UserID == userID {
			p.Collaborators[i].Role = role
			p.Collaborators[i].AssignedBy = assignedBy
			p.Collaborators[i].AssignedAt = now
			return
		}
	}
	p.Collaborators = append(p.Collaborators, ProjectCollaborator{
		UserID:     userID,
		Role:       role,
		AssignedBy: assignedBy,
		AssignedAt: now,
	})
}

// CollaboratorIDs returns the flat user-id list for authorizer consumption.
func (p *Project) CollaboratorIDs() []string {
	ids := make([]string, 0, len(p.Collaborators))
	for _, c := range p.Collaborators {
		ids = append(ids, c.UserID)
	}
	return ids
}

// Ref projects the project into the descriptor the authorizer consumes; the
// owner plays the creator slot.
func (p *Project) Ref() *ResourceRef {
	return &ResourceRef{
		ID:            p.ID,
		CreatedBy:     p.OwnerID,
		DepartmentID:  p.DepartmentID,
		Collaborators: p.CollaboratorIDs(),
	}
}
