package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_AddCollaborator(t *testing.T) {
	now := time.Now().UTC()
	p := NewProject("proj-1", &ProjectCreate{
		Name:         "Rollout",
		DepartmentID: "d1",
		Deadline:     now.Add(30 * 24 * time.Hour),
	}, "owner-1")

	p.AddCollaborator("user-1", ProjectRoleViewer, "owner-1", now)
	require.Len(t, p.Collaborators, 1)
	assert.Equal(t, ProjectRoleViewer, p.Collaborators[0].Role)

	// re-adding updates the role in place instead of duplicating
	later := now.Add(time.Hour)
	p.AddCollaborator("user-1", ProjectRoleEditor, "owner-1", later)
	require.Len(t, p.Collaborators, 1)
	assert.Equal(t, ProjectRoleEditor, p.Collaborators[0].Role)
	assert.Equal(t, later, p.Collaborators[0].AssignedAt)

	// adding a collaborator never transfers ownership
	assert.Equal(t, "owner-1", p.OwnerID)

	p.AddCollaborator("user-2", ProjectRole("admin"), "owner-1", now)
	assert.Len(t, p.Collaborators, 1, "unknown project role is rejected")
}

func TestProject_Ref(t *testing.T) {
	now := time.Now().UTC()
	p := NewProject("proj-1", &ProjectCreate{Name: "Rollout", DepartmentID: "d1", Deadline: now}, "owner-1")
	p.AddCollaborator("user-1", ProjectRoleEditor, "owner-1", now)

	ref := p.Ref()

	assert.Equal(t, "owner-1", ref.CreatedBy)
	assert.Equal(t, "d1", ref.DepartmentID)
	assert.Equal(t, []string{"user-1"}, ref.Collaborators)
	assert.Empty(t, ref.AssigneeID)
}
