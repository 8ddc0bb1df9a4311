package types

import (
	"time"
)

// StatusUpdate is the audit breadcrumb a subtask keeps about its most recent
// status change.
type StatusUpdate struct {
	Status    TaskStatus `json:"status"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Subtask is a unit of work nested under a parent task. It carries the same
// status enum and collaborator/assignee invariant as Task, plus an audit
// breadcrumb stamped on every status change. Task deliberately does not
// carry that breadcrumb; only subtasks do.
type Subtask struct {
	ID               string        `json:"id"`
	ParentTaskID     string        `json:"parentTaskId"`
	Title            string        `json:"title"`
	Description      string        `json:"description,omitempty"`
	Status           TaskStatus    `json:"status"`
	AssigneeID       string        `json:"assigneeId,omitempty"`
	CreatedBy        string        `json:"createdBy"`
	Collaborators    []string      `json:"collaborators"`
	TeamID           string        `json:"teamId,omitempty"`
	DepartmentID     string        `json:"departmentId,omitempty"`
	DueDate          time.Time     `json:"dueDate"`
	IsDeleted        bool          `json:"isDeleted"`
	Version          int           `json:"version"`
	LastStatusUpdate *StatusUpdate `json:"lastStatusUpdate,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// SubtaskCreate is the inbound payload for creating a subtask under a task.
type SubtaskCreate struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate" binding:"required"`
}

// NewSubtask builds an unassigned subtask under the given parent, inheriting
// the parent's org unit so scope filtering treats them alike.
func NewSubtask(id string, req *SubtaskCreate, parent *Task, createdBy string) *Subtask {
	now := time.Now().UTC()
	return &Subtask{
		ID:            id,
		ParentTaskID:  parent.ID,
		Title:         req.Title,
		Description:   req.Description,
		Status:        TaskStatusUnassigned,
		CreatedBy:     createdBy,
		Collaborators: []string{},
		TeamID:        parent.TeamID,
		DepartmentID:  parent.DepartmentID,
		DueDate:       req.DueDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// AssignTo sets the assignee and idempotently adds them as a collaborator,
// moving an unassigned subtask to ongoing.
func (s *Subtask) AssignTo(userID string) {
	if userID == "" {
		return
	}
	s.AssigneeID = userID
	s.AddCollaborator(userID)
	if s.Status == TaskStatusUnassigned {
		s.Status = TaskStatusOngoing
	}
}

// AddCollaborator inserts the user into the collaborator set. Idempotent.
func (s *Subtask) AddCollaborator(userID string) {
	if userID == "" {
		return
	}
	for _, c := range s.Collaborators {
		if c == userID {
			return
		}
	}
	s.Collaborators = append(s.Collaborators, userID)
}

// UpdateStatus sets the status if it is a member of the enum and stamps the
// audit breadcrumb. Any status is reachable from any status.
func (s *Subtask) UpdateStatus(status TaskStatus, now time.Time) bool {
	if !status.IsValid() {
		return false
	}
	s.Status = status
	s.LastStatusUpdate = &StatusUpdate{Status: status, UpdatedAt: now}
	return true
}

// IsOverdue reports whether the subtask is past due and not completed, as of
// the given instant.
func (s *Subtask) IsOverdue(now time.Time) bool {
	return now.After(s.DueDate) && s.Status != TaskStatusCompleted
}

// IsCompleted reports whether the subtask has reached the completed status.
func (s *Subtask) IsCompleted() bool {
	return s.Status == TaskStatusCompleted
}

// CanBeEditedBy reports whether the principal is the assignee or a
// collaborator. Identical to the Task rule.
func (s *Subtask) CanBeEditedBy(p *Principal) bool {
	if p == nil || p.ID == "" {
		return false
	}
	if s.AssigneeID != "" && p.ID == s.AssigneeID {
		return true
	}
	for _, c := range s.Collaborators {
		if c == p.ID {
			return true
		}
	}
	return false
}

// Ref projects the subtask into the descriptor the authorizer consumes.
func (s *Subtask) Ref() *ResourceRef {
	return &ResourceRef{
		ID:            s.ID,
		AssigneeID:    s.AssigneeID,
		CreatedBy:     s.CreatedBy,
		TeamID:        s.TeamID,
		DepartmentID:  s.DepartmentID,
		Collaborators: s.Collaborators,
	}
}
