package projects

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProject(t *testing.T) {
	t.Parallel()

	teacherID := uuid.New()

	t.Run("creates a valid project", func(t *testing.T) {
		project, err := NewProject(teacherID, "Bridge Building")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, project.ID)
		assert.Equal(t, teacherID, project.TeacherID)
		assert.Equal(t, "Bridge Building", project.Name)
		assert.Nil(t, project.SchoolID)
	})

	t.Run("rejects missing teacher", func(t *testing.T) {
		_, err := NewProject(uuid.Nil, "Bridge Building")
		assert.ErrorIs(t, err, ErrEmptyTeacherID)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProject(teacherID, "")
		assert.ErrorIs(t, err, ErrEmptyName)
	})
}

func TestNewMilestone(t *testing.T) {
	t.Parallel()

	projectID := uuid.New()

	t.Run("creates a valid milestone", func(t *testing.T) {
		milestone, err := NewMilestone(projectID, "First prototype")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, milestone.ID)
		assert.Equal(t, projectID, milestone.ProjectID)
	})

	t.Run("rejects missing project", func(t *testing.T) {
		_, err := NewMilestone(uuid.Nil, "First prototype")
		assert.ErrorIs(t, err, ErrEmptyMilestoneProjectID)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewMilestone(projectID, "")
		assert.ErrorIs(t, err, ErrEmptyMilestoneName)
	})
}
