// Package postgres implements the auth domain's persistence using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/schoolforge/schoolforge-api/internal/auth"
	"github.com/schoolforge/schoolforge-api/internal/platform/logger"
	platformpg "github.com/schoolforge/schoolforge-api/internal/platform/postgres"
)

// UserStore implements the auth.UserStore interface using a PostgreSQL
// database as the storage backend.
type UserStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewUserStore creates a new PostgreSQL implementation of the auth.UserStore
// interface. It accepts a database connection that should be initialized and
// managed by the caller. If logger is nil, a default logger will be used.
func NewUserStore(db *sql.DB, log *slog.Logger) *UserStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &UserStore{
		db:     db,
		logger: log.With(slog.String("component", "user_store")),
	}
}

// Ensure UserStore implements auth.UserStore interface
var _ auth.UserStore = (*UserStore)(nil)

// Create implements auth.UserStore.Create
func (s *UserStore) Create(ctx context.Context, user *auth.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	query := `
		INSERT INTO users (id, email, hashed_password, role, tier, school_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.HashedPassword,
		user.Role,
		user.Tier,
		user.SchoolID,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if platformpg.IsUniqueViolation(err) {
			log.Warn("duplicate email during user creation",
				slog.String("user_id", user.ID.String()))
			return auth.ErrEmailExists
		}

		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return platformpg.MapError(err, auth.ErrUserNotFound)
	}

	log.Info("user created",
		slog.String("user_id", user.ID.String()),
		slog.String("role", string(user.Role)),
		slog.String("tier", string(user.Tier)))
	return nil
}

// GetByID implements auth.UserStore.GetByID
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	query := `
		SELECT id, email, hashed_password, role, tier, school_id, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return s.scanUser(ctx, query, id)
}

// GetByEmail implements auth.UserStore.GetByEmail
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	query := `
		SELECT id, email, hashed_password, role, tier, school_id, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return s.scanUser(ctx, query, email)
}

// scanUser runs a single-row user query and maps driver errors to the
// domain's sentinels.
func (s *UserStore) scanUser(ctx context.Context, query string, arg any) (*auth.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var user auth.User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.Role,
		&user.Tier,
		&user.SchoolID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		mapped := platformpg.MapError(err, auth.ErrUserNotFound)
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error("failed to query user", slog.String("error", err.Error()))
		}
		return nil, mapped
	}

	return &user, nil
}
