package assessments

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/schoolforge/schoolforge-api/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway is a hand-written ProjectGateway backed by maps. It records
// which methods were called so tests can assert the fast path issues no
// lookups at all.
type fakeGateway struct {
	milestones      map[uuid.UUID]*MilestoneRef
	projects        map[uuid.UUID]*ProjectRef
	studentProjects map[uuid.UUID][]uuid.UUID

	milestoneErr error
	projectErr   error
	studentErr   error

	calls []string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		milestones:      make(map[uuid.UUID]*MilestoneRef),
		projects:        make(map[uuid.UUID]*ProjectRef),
		studentProjects: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (g *fakeGateway) GetMilestone(ctx context.Context, id uuid.UUID) (*MilestoneRef, error) {
	g.calls = append(g.calls, "GetMilestone")
	if g.milestoneErr != nil {
		return nil, g.milestoneErr
	}
	if m, ok := g.milestones[id]; ok {
		return m, nil
	}
	return nil, ErrMilestoneNotFound
}

func (g *fakeGateway) GetProject(ctx context.Context, id uuid.UUID) (*ProjectRef, error) {
	g.calls = append(g.calls, "GetProject")
	if g.projectErr != nil {
		return nil, g.projectErr
	}
	if p, ok := g.projects[id]; ok {
		return p, nil
	}
	return nil, ErrProjectNotFound
}

func (g *fakeGateway) GetStudentProjectIDs(
	ctx context.Context,
	studentID uuid.UUID,
) ([]uuid.UUID, error) {
	g.calls = append(g.calls, "GetStudentProjectIDs")
	if g.studentErr != nil {
		return nil, g.studentErr
	}
	return g.studentProjects[studentID], nil
}

// testID builds a stable UUID from a small integer so chains read naturally
// in the tests below.
func testID(n int) uuid.UUID {
	return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", n))
}

func ptr(id uuid.UUID) *uuid.UUID { return &id }

// chainGateway wires milestone 50 → project 70 → teacher 303.
func chainGateway() *fakeGateway {
	gw := newFakeGateway()
	gw.milestones[testID(50)] = &MilestoneRef{ID: testID(50), ProjectID: testID(70)}
	gw.projects[testID(70)] = &ProjectRef{ID: testID(70), TeacherID: testID(303)}
	return gw
}

func TestCanTeacherManageAssessment(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("direct owner is allowed without gateway calls", func(t *testing.T) {
		gw := newFakeGateway()
		teacherID := testID(303)
		assessment := &Assessment{
			ID:          uuid.New(),
			Title:       "Quiz",
			CreatedBy:   ptr(teacherID),
			MilestoneID: ptr(testID(50)), // present but must not be consulted
		}

		allowed, err := CanTeacherManageAssessment(ctx, gw, assessment, teacherID)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Empty(t, gw.calls)
	})

	t.Run("different direct owner and no milestone is denied", func(t *testing.T) {
		gw := newFakeGateway()
		assessment := &Assessment{
			ID:        uuid.New(),
			Title:     "Quiz",
			CreatedBy: ptr(testID(404)),
		}

		allowed, err := CanTeacherManageAssessment(ctx, gw, assessment, testID(303))
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("ownership via milestone chain", func(t *testing.T) {
		assessment := &Assessment{
			ID:          uuid.New(),
			Title:       "Quiz",
			MilestoneID: ptr(testID(50)),
		}

		allowed, err := CanTeacherManageAssessment(ctx, chainGateway(), assessment, testID(303))
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = CanTeacherManageAssessment(ctx, chainGateway(), assessment, testID(404))
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("standalone assessment is denied for everyone", func(t *testing.T) {
		gw := newFakeGateway()
		assessment := &Assessment{ID: uuid.New(), Title: "Quiz"}

		allowed, err := CanTeacherManageAssessment(ctx, gw, assessment, testID(303))
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Empty(t, gw.calls)
	})

	t.Run("missing milestone fails closed", func(t *testing.T) {
		gw := newFakeGateway() // no milestones registered
		assessment := &Assessment{
			ID:          uuid.New(),
			Title:       "Quiz",
			MilestoneID: ptr(testID(50)),
		}

		allowed, err := CanTeacherManageAssessment(ctx, gw, assessment, testID(303))
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("missing project fails closed", func(t *testing.T) {
		gw := newFakeGateway()
		gw.milestones[testID(50)] = &MilestoneRef{ID: testID(50), ProjectID: testID(70)}
		// project 70 not registered
		assessment := &Assessment{
			ID:          uuid.New(),
			Title:       "Quiz",
			MilestoneID: ptr(testID(50)),
		}

		allowed, err := CanTeacherManageAssessment(ctx, gw, assessment, testID(303))
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("gateway failure propagates instead of denying silently", func(t *testing.T) {
		gw := newFakeGateway()
		gw.milestoneErr = errors.New("connection refused")
		assessment := &Assessment{
			ID:          uuid.New(),
			Title:       "Quiz",
			MilestoneID: ptr(testID(50)),
		}

		allowed, err := CanTeacherManageAssessment(ctx, gw, assessment, testID(303))
		require.Error(t, err)
		assert.False(t, allowed)
	})
}

func TestCanUserAccessAssessment(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	user := func(id uuid.UUID, role auth.Role, tier auth.Tier) *auth.User {
		return &auth.User{ID: id, Email: "user@school.example", Role: role, Tier: tier}
	}

	chainAssessment := &Assessment{
		ID:          uuid.New(),
		Title:       "Quiz",
		MilestoneID: ptr(testID(50)),
	}

	t.Run("enterprise admin is always allowed", func(t *testing.T) {
		gw := newFakeGateway() // chain unresolvable on purpose
		standalone := &Assessment{ID: uuid.New(), Title: "Quiz"}

		for _, assessment := range []*Assessment{chainAssessment, standalone} {
			allowed, err := CanUserAccessAssessment(
				ctx, gw, assessment, user(testID(1), auth.RoleAdmin, auth.TierEnterprise))
			require.NoError(t, err)
			assert.True(t, allowed)
		}
		assert.Empty(t, gw.calls, "tier bypass must not resolve the chain")
	})

	t.Run("free admin is access-equivalent to a teacher with the same id", func(t *testing.T) {
		ids := []uuid.UUID{testID(303), testID(404)}
		for _, id := range ids {
			adminAllowed, err := CanUserAccessAssessment(
				ctx, chainGateway(), chainAssessment, user(id, auth.RoleAdmin, auth.TierFree))
			require.NoError(t, err)

			teacherAllowed, err := CanUserAccessAssessment(
				ctx, chainGateway(), chainAssessment, user(id, auth.RoleTeacher, auth.TierFree))
			require.NoError(t, err)

			assert.Equal(t, teacherAllowed, adminAllowed)
		}
	})

	t.Run("teacher outcome is tier-independent", func(t *testing.T) {
		for _, tier := range []auth.Tier{auth.TierFree, auth.TierEnterprise} {
			allowed, err := CanUserAccessAssessment(
				ctx, chainGateway(), chainAssessment, user(testID(303), auth.RoleTeacher, tier))
			require.NoError(t, err)
			assert.True(t, allowed, "tier %s", tier)
		}
	})

	t.Run("student allowed via project membership", func(t *testing.T) {
		gw := newFakeGateway()
		gw.milestones[testID(50)] = &MilestoneRef{ID: testID(50), ProjectID: testID(20)}
		studentID := testID(7)
		gw.studentProjects[studentID] = []uuid.UUID{testID(20)}

		assessment := &Assessment{ID: uuid.New(), Title: "Quiz", MilestoneID: ptr(testID(50))}

		allowed, err := CanUserAccessAssessment(
			ctx, gw, assessment, user(studentID, auth.RoleStudent, auth.TierFree))
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("student denied when milestone points outside their projects", func(t *testing.T) {
		gw := newFakeGateway()
		gw.milestones[testID(50)] = &MilestoneRef{ID: testID(50), ProjectID: testID(999)}
		studentID := testID(7)
		gw.studentProjects[studentID] = []uuid.UUID{testID(20)}

		assessment := &Assessment{ID: uuid.New(), Title: "Quiz", MilestoneID: ptr(testID(50))}

		allowed, err := CanUserAccessAssessment(
			ctx, gw, assessment, user(studentID, auth.RoleStudent, auth.TierFree))
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("student denied when milestone does not resolve", func(t *testing.T) {
		gw := newFakeGateway() // milestone 50 missing
		studentID := testID(7)
		gw.studentProjects[studentID] = []uuid.UUID{testID(20)}

		assessment := &Assessment{ID: uuid.New(), Title: "Quiz", MilestoneID: ptr(testID(50))}

		allowed, err := CanUserAccessAssessment(
			ctx, gw, assessment, user(studentID, auth.RoleStudent, auth.TierFree))
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("student denied for standalone assessment", func(t *testing.T) {
		gw := newFakeGateway()
		assessment := &Assessment{ID: uuid.New(), Title: "Quiz"}

		allowed, err := CanUserAccessAssessment(
			ctx, gw, assessment, user(testID(7), auth.RoleStudent, auth.TierFree))
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Empty(t, gw.calls)
	})

	t.Run("every role and tier combination has a defined outcome", func(t *testing.T) {
		roles := []auth.Role{auth.RoleAdmin, auth.RoleTeacher, auth.RoleStudent}
		tiers := []auth.Tier{auth.TierFree, auth.TierEnterprise}

		for _, role := range roles {
			for _, tier := range tiers {
				_, err := CanUserAccessAssessment(
					ctx, chainGateway(), chainAssessment, user(testID(303), role, tier))
				assert.NoError(t, err, "role=%s tier=%s", role, tier)
			}
		}
	})

	t.Run("unknown role is denied", func(t *testing.T) {
		allowed, err := CanUserAccessAssessment(
			ctx, chainGateway(), chainAssessment,
			user(testID(303), auth.Role("superuser"), auth.TierFree))
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("unknown tier on admin is denied", func(t *testing.T) {
		allowed, err := CanUserAccessAssessment(
			ctx, chainGateway(), chainAssessment,
			user(testID(303), auth.RoleAdmin, auth.Tier("trial")))
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("student gateway failure propagates", func(t *testing.T) {
		gw := newFakeGateway()
		gw.milestones[testID(50)] = &MilestoneRef{ID: testID(50), ProjectID: testID(20)}
		gw.studentErr = errors.New("connection refused")

		assessment := &Assessment{ID: uuid.New(), Title: "Quiz", MilestoneID: ptr(testID(50))}

		_, err := CanUserAccessAssessment(
			ctx, gw, assessment, user(testID(7), auth.RoleStudent, auth.TierFree))
		assert.Error(t, err)
	})
}
