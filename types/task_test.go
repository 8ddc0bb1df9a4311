package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTask(t *testing.T) *Task {
	t.Helper()
	return NewTask("task-1", &TaskCreate{
		Title:        "Quarterly report",
		TeamID:       "t1",
		DepartmentID: "d1",
		DueDate:      time.Now().UTC().Add(72 * time.Hour),
	}, "creator-1")
}

func TestNewTask_StartsUnassigned(t *testing.T) {
	task := newTestTask(t)

	assert.Equal(t, TaskStatusUnassigned, task.Status)
	assert.Empty(t, task.AssigneeID)
	assert.Empty(t, task.Collaborators)
	assert.False(t, task.IsDeleted)
}

func TestTask_AssignTo(t *testing.T) {
	task := newTestTask(t)

	task.AssignTo("user-1")

	assert.Equal(t, "user-1", task.AssigneeID)
	assert.Contains(t, task.Collaborators, "user-1")
	// assigning lifts the task out of unassigned, keeping the
	// status/assignee invariant
	assert.Equal(t, TaskStatusOngoing, task.Status)
}

func TestTask_AssignTo_Idempotent(t *testing.T) {
	task := newTestTask(t)

	task.AssignTo("user-1")
	task.AssignTo("user-1")

	require.Len(t, task.Collaborators, 1)
	assert.Equal(t, "user-1", task.Collaborators[0])
}

func TestTask_AssignTo_EmptyUserIgnored(t *testing.T) {
	task := newTestTask(t)

	task.AssignTo("")

	assert.Empty(t, task.AssigneeID)
	assert.Equal(t, TaskStatusUnassigned, task.Status)
}

func TestTask_AddCollaborator(t *testing.T) {
	task := newTestTask(t)

	task.AddCollaborator("user-1")
	task.AddCollaborator("user-2")
	task.AddCollaborator("user-1")

	assert.Equal(t, []string{"user-1", "user-2"}, task.Collaborators)
}

func TestTask_UpdateStatus(t *testing.T) {
	task := newTestTask(t)

	// no transition table: any status is reachable from any status
	assert.True(t, task.UpdateStatus(TaskStatusCompleted))
	assert.Equal(t, TaskStatusCompleted, task.Status)

	assert.True(t, task.UpdateStatus(TaskStatusOngoing))
	assert.Equal(t, TaskStatusOngoing, task.Status)

	assert.False(t, task.UpdateStatus(TaskStatus("cancelled")))
	assert.Equal(t, TaskStatusOngoing, task.Status, "invalid status leaves task untouched")
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name     string
		due      time.Time
		status   TaskStatus
		expected bool
	}{
		{"past due and ongoing", now.Add(-time.Hour), TaskStatusOngoing, true},
		{"past due and under review", now.Add(-time.Hour), TaskStatusUnderReview, true},
		{"past due but completed", now.Add(-time.Hour), TaskStatusCompleted, false},
		{"not yet due", now.Add(time.Hour), TaskStatusOngoing, false},
		{"not due and completed", now.Add(time.Hour), TaskStatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := newTestTask(t)
			task.DueDate = tt.due
			task.Status = tt.status
			assert.Equal(t, tt.expected, task.IsOverdue(now))
		})
	}
}

func TestTask_CanBeEditedBy(t *testing.T) {
	task := newTestTask(t)
	task.AssignTo("assignee-1")
	task.AddCollaborator("collab-1")

	tests := []struct {
		name      string
		principal *Principal
		expected  bool
	}{
		{"assignee can edit", &Principal{ID: "assignee-1", Role: RoleStaff}, true},
		{"collaborator can edit", &Principal{ID: "collab-1", Role: RoleStaff}, true},
		{"unrelated principal cannot edit regardless of role", &Principal{ID: "boss", Role: RoleSeniorManagement}, false},
		{"unrelated hr cannot edit", &Principal{ID: "hr-1", Role: RoleHR}, false},
		{"nil principal cannot edit", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, task.CanBeEditedBy(tt.principal))
		})
	}
}

func TestTask_CanBeEditedBy_NoAssignee(t *testing.T) {
	// no assignee does not mean no party
	task := newTestTask(t)
	task.AddCollaborator("collab-1")

	assert.True(t, task.CanBeEditedBy(&Principal{ID: "collab-1", Role: RoleStaff}))
	assert.False(t, task.CanBeEditedBy(&Principal{ID: "stranger", Role: RoleStaff}))
}

func TestTask_Ref(t *testing.T) {
	task := newTestTask(t)
	task.AssignTo("assignee-1")

	ref := task.Ref()

	assert.Equal(t, task.ID, ref.ID)
	assert.Equal(t, "assignee-1", ref.AssigneeID)
	assert.Equal(t, "creator-1", ref.CreatedBy)
	assert.Equal(t, "t1", ref.TeamID)
	assert.Equal(t, "d1", ref.DepartmentID)
	assert.Equal(t, task.Collaborators, ref.Collaborators)
}

func TestTaskStatus_IsValid(t *testing.T) {
	for _, s := range []TaskStatus{TaskStatusUnassigned, TaskStatusOngoing, TaskStatusUnderReview, TaskStatusCompleted} {
		assert.True(t, s.IsValid(), "status %s", s)
	}
	assert.False(t, TaskStatus("archived").IsValid())
	assert.False(t, TaskStatus("").IsValid())
}
