package types

import (
	"time"
)

// TaskStatus is the lifecycle status of a task or subtask.
type TaskStatus string

const (
	TaskStatusUnassigned  TaskStatus = "unassigned"
	TaskStatusOngoing     TaskStatus = "ongoing"
	TaskStatusUnderReview TaskStatus = "under_review"
	TaskStatusCompleted   TaskStatus = "completed"
)

// IsValid checks if the status is one of the four lifecycle statuses.
// Status is a free-form enum guarded only by membership and authorization;
// there is deliberately no transition table.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusUnassigned, TaskStatusOngoing, TaskStatusUnderReview, TaskStatusCompleted:
		return true
	}
	return false
}

// Ptr returns a pointer to the status, for optional update payloads.
func (s TaskStatus) Ptr() *TaskStatus {
	return &s
}

// Task is a unit of work inside a team or department. Tasks are soft-deleted
// only; the IsDeleted flag is honored by every query, and nothing in the
// domain ever removes a row.
//
// Invariant: Status == unassigned exactly when AssigneeID is empty. AssignTo
// maintains it; direct field writes bypass it and belong to tests only.
type Task struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Status        TaskStatus `json:"status"`
	AssigneeID    string     `json:"assigneeId,omitempty"`
	CreatedBy     string     `json:"createdBy"`
	Collaborators []string   `json:"collaborators"`
	ProjectID     string     `json:"projectId,omitempty"`
	TeamID        string     `json:"teamId,omitempty"`
	DepartmentID  string     `json:"departmentId,omitempty"`
	DueDate       time.Time  `json:"dueDate"`
	IsDeleted     bool       `json:"isDeleted"`
	Version       int        `json:"version"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// TaskCreate is the inbound payload for creating a task.
type TaskCreate struct {
	Title        string    `json:"title" binding:"required"`
	Description  string    `json:"description"`
	ProjectID    string    `json:"projectId"`
	TeamID       string    `json:"teamId"`
	DepartmentID string    `json:"departmentId"`
	DueDate      time.Time `json:"dueDate" binding:"required"`
}

// TaskUpdate is the inbound payload for editing task fields.
type TaskUpdate struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	DueDate     *time.Time  `json:"dueDate,omitempty"`
	Status      *TaskStatus `json:"status,omitempty"`
}

// NewTask builds an unassigned task owned by its creator.
func NewTask(id string, req *TaskCreate, createdBy string) *Task {
	now := time.Now().UTC()
	return &Task{
		ID:            id,
		Title:         req.Title,
		Description:   req.Description,
		Status:        TaskStatusUnassigned,
		CreatedBy:     createdBy,
		Collaborators: []string{},
		ProjectID:     req.ProjectID,
		TeamID:        req.TeamID,
		DepartmentID:  req.DepartmentID,
		DueDate:       req.DueDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// AssignTo sets the assignee and guarantees they appear in the collaborator
// list, without duplicating them on repeat calls. Assigning moves an
// unassigned task to ongoing so the status/assignee invariant holds.
func (t *Task) AssignTo(userID string) {
	if userID == "" {
		return
	}
	t.AssigneeID = userID
	t.AddCollaborator(userID)
	if t.Status == TaskStatusUnassigned {
		t.Status = TaskStatusOngoing
	}
}

// AddCollaborator inserts the user into the collaborator set. Idempotent;
// adding a collaborator never transfers ownership.
func (t *Task) AddCollaborator(userID string) {
	if userID == "" {
		return
	}
	for _, c := range t.Collaborators {
		if c == userID {
			return
		}
	}
	t.Collaborators = append(t.Collaborators, userID)
}

// UpdateStatus sets the status if it is a member of the enum. Any status is
// reachable from any status; authorization is the only guard.
func (t *Task) UpdateStatus(status TaskStatus) bool {
	if !status.IsValid() {
		return false
	}
	t.Status = status
	return true
}

// IsOverdue reports whether the task is past due and not completed, as of
// the given instant. A completed task is never overdue.
func (t *Task) IsOverdue(now time.Time) bool {
	return now.After(t.DueDate) && t.Status != TaskStatusCompleted
}

// IsCompleted reports whether the task has reached the completed status.
func (t *Task) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}

// CanBeEditedBy reports whether the principal is a party entitled to edit:
// the assignee or any collaborator. Role rank never enters this rule; the
// management override lives in Authorize, not here. A task with no assignee
// is still editable by its collaborators.
func (t *Task) CanBeEditedBy(p *Principal) bool {
	if p == nil || p.ID == "" {
		return false
	}
	if t.AssigneeID != "" && p.ID == t.AssigneeID {
		return true
	}
	for _, c := range t.Collaborators {
		if c == p.ID {
			return true
		}
	}
	return false
}

// Ref projects the task into the descriptor the authorizer consumes.
func (t *Task) Ref() *ResourceRef {
	return &ResourceRef{
		ID:            t.ID,
		AssigneeID:    t.AssigneeID,
		CreatedBy:     t.CreatedBy,
		TeamID:        t.TeamID,
		DepartmentID:  t.DepartmentID,
		Collaborators: t.Collaborators,
	}
}
