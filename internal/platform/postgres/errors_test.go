package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRecordNotFound = errors.New("record not found")

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{
			name:     "nil error maps to nil",
			err:      nil,
			expected: nil,
		},
		{
			name:     "sql.ErrNoRows maps to the caller's not-found sentinel",
			err:      sql.ErrNoRows,
			expected: errRecordNotFound,
		},
		{
			name:     "wrapped sql.ErrNoRows maps to the caller's not-found sentinel",
			err:      fmt.Errorf("query failed: %w", sql.ErrNoRows),
			expected: errRecordNotFound,
		},
		{
			name:     "unique violation maps to ErrDuplicate",
			err:      &pgconn.PgError{Code: uniqueViolationCode},
			expected: ErrDuplicate,
		},
		{
			name:     "foreign key violation maps to ErrInvalidEntity",
			err:      &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "fk_project"},
			expected: ErrInvalidEntity,
		},
		{
			name:     "check violation maps to ErrInvalidEntity",
			err:      &pgconn.PgError{Code: checkViolationCode},
			expected: ErrInvalidEntity,
		},
		{
			name:     "not null violation maps to ErrInvalidEntity",
			err:      &pgconn.PgError{Code: notNullViolationCode, ColumnName: "teacher_id"},
			expected: ErrInvalidEntity,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mapped := MapError(tc.err, errRecordNotFound)
			if tc.expected == nil {
				assert.NoError(t, mapped)
				return
			}
			assert.ErrorIs(t, mapped, tc.expected)
		})
	}
}

func TestMapErrorPassesThroughUnknownErrors(t *testing.T) {
	t.Parallel()

	unknown := errors.New("connection refused")
	mapped := MapError(unknown, errRecordNotFound)

	require.Error(t, mapped)
	assert.Same(t, unknown, mapped)
	assert.NotErrorIs(t, mapped, errRecordNotFound)
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.True(
		t,
		IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: uniqueViolationCode})),
	)
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: foreignKeyViolationCode}))
	assert.False(t, IsUniqueViolation(errors.New("other")))
}

func TestIsForeignKeyViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: foreignKeyViolationCode}))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.False(t, IsForeignKeyViolation(nil))
}
