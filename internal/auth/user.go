// Package auth is the public facade of the identity domain. It owns the User
// record (role and subscription tier) and the interfaces other domains use to
// resolve the acting user. Other domains import this package only; the
// persistence and token subpackages are internal to the domain.
package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Role defines the baseline behavioral category of a user.
type Role string

// Roles recognized by the application.
const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// Tier is a subscription level that modulates privilege independent of role.
type Tier string

// Subscription tiers recognized by the application.
const (
	TierFree       Tier = "free"
	TierEnterprise Tier = "enterprise"
)

// Common validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrInvalidRole         = errors.New("role must be admin, teacher, or student")
	ErrInvalidTier         = errors.New("tier must be free or enterprise")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a provisioned account: an identity plus the two independent
// privilege axes (role, tier) the policy layer dispatches on. A user may be
// associated with a school; SchoolID is nil for accounts provisioned outside
// any school.
type User struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	HashedPassword string     `json:"-"` // Never expose password hash in JSON
	Role           Role       `json:"role"`
	Tier           Tier       `json:"tier"`
	SchoolID       *uuid.UUID `json:"school_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewUser creates a new User with the given email, role, and tier.
// It generates a new UUID for the user ID and sets the creation/update
// timestamps. The caller is responsible for setting HashedPassword before
// the user is stored.
func NewUser(email string, role Role, tier Tier) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Email:     email,
		Role:      role,
		Tier:      tier,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := user.validateIdentity(); err != nil {
		return nil, err
	}

	return user, nil
}

// Valid reports whether the role is one of the recognized roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// Valid reports whether the tier is one of the recognized tiers.
func (t Tier) Valid() bool {
	switch t {
	case TierFree, TierEnterprise:
		return true
	}
	return false
}

// Validate checks if the User has valid data, including a stored credential.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if err := u.validateIdentity(); err != nil {
		return err
	}

	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}

	return nil
}

// validateIdentity checks the identity fields only, so that a freshly built
// user can be validated before its password has been hashed.
func (u *User) validateIdentity() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !u.Role.Valid() {
		return ErrInvalidRole
	}

	if !u.Tier.Valid() {
		return ErrInvalidTier
	}

	return nil
}
