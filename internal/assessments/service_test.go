package assessments

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/schoolforge/schoolforge-api/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccessService(t *testing.T) {
	t.Parallel()

	t.Run("requires a gateway", func(t *testing.T) {
		_, err := NewAccessService(nil, nil, nil)
		assert.ErrorIs(t, err, ErrNilGateway)
	})

	t.Run("works without logger and metrics", func(t *testing.T) {
		svc, err := NewAccessService(newFakeGateway(), nil, nil)
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})
}

func TestAccessServiceCanManage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	assessment := &Assessment{
		ID:          testID(500),
		Title:       "Quiz",
		MilestoneID: ptr(testID(50)),
	}

	tests := []struct {
		name    string
		user    *auth.User
		allowed bool
	}{
		{
			name:    "enterprise admin manages anything",
			user:    &auth.User{ID: testID(1), Role: auth.RoleAdmin, Tier: auth.TierEnterprise},
			allowed: true,
		},
		{
			name:    "free admin needs ownership",
			user:    &auth.User{ID: testID(404), Role: auth.RoleAdmin, Tier: auth.TierFree},
			allowed: false,
		},
		{
			name:    "free admin owning the chain manages",
			user:    &auth.User{ID: testID(303), Role: auth.RoleAdmin, Tier: auth.TierFree},
			allowed: true,
		},
		{
			name:    "owning teacher manages",
			user:    &auth.User{ID: testID(303), Role: auth.RoleTeacher, Tier: auth.TierEnterprise},
			allowed: true,
		},
		{
			name:    "non-owning teacher is denied",
			user:    &auth.User{ID: testID(404), Role: auth.RoleTeacher, Tier: auth.TierFree},
			allowed: false,
		},
		{
			name:    "student never manages",
			user:    &auth.User{ID: testID(303), Role: auth.RoleStudent, Tier: auth.TierEnterprise},
			allowed: false,
		},
		{
			name:    "unknown role is denied",
			user:    &auth.User{ID: testID(303), Role: auth.Role("ghost"), Tier: auth.TierFree},
			allowed: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, err := NewAccessService(chainGateway(), nil, nil)
			require.NoError(t, err)

			allowed, err := svc.CanManage(ctx, assessment, tc.user)
			require.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}

func TestAccessServiceRecordsDecisions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	svc, err := NewAccessService(chainGateway(), nil, metrics)
	require.NoError(t, err)

	assessment := &Assessment{ID: testID(500), Title: "Quiz", MilestoneID: ptr(testID(50))}
	owner := &auth.User{ID: testID(303), Role: auth.RoleTeacher, Tier: auth.TierFree}
	stranger := &auth.User{ID: testID(404), Role: auth.RoleTeacher, Tier: auth.TierFree}

	_, err = svc.CanAccess(ctx, assessment, owner)
	require.NoError(t, err)
	_, err = svc.CanAccess(ctx, assessment, stranger)
	require.NoError(t, err)

	allow := testutil.ToFloat64(
		metrics.decisions.WithLabelValues("access", "teacher", outcomeAllow))
	deny := testutil.ToFloat64(
		metrics.decisions.WithLabelValues("access", "teacher", outcomeDeny))

	assert.Equal(t, 1.0, allow)
	assert.Equal(t, 1.0, deny)
}
