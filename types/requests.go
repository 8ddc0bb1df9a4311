package types

// AssignRequest is the inbound payload for assigning a task or subtask.
type AssignRequest struct {
	AssigneeID string `json:"assigneeId" binding:"required"`
}

// CollaboratorRequest is the inbound payload for attaching a collaborator to
// a task or subtask.
type CollaboratorRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// ProjectCollaboratorRequest is the inbound payload for attaching a
// collaborator to a project with a project-level role.
type ProjectCollaboratorRequest struct {
	UserID string      `json:"userId" binding:"required"`
	Role   ProjectRole `json:"role" binding:"required"`
}

// StatusRequest is the inbound payload for a status change.
type StatusRequest struct {
	Status TaskStatus `json:"status" binding:"required"`
}
