// Package projects is the public facade of the projects domain. It owns the
// Project and Milestone records and the read interface other domains use to
// resolve the milestone→project ownership chain. Other domains must import
// this package only, never its subpackages.
package projects

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyProjectID = errors.New("project ID cannot be empty")
	ErrEmptyTeacherID = errors.New("project teacher ID cannot be empty")
	ErrEmptyName      = errors.New("project name cannot be empty")
)

// Project is a unit of coursework owned by exactly one teacher, optionally
// attached to a school. It is the authoritative anchor of assessment
// ownership when an assessment has no direct creator.
type Project struct {
	ID        uuid.UUID  `json:"id"`
	TeacherID uuid.UUID  `json:"teacher_id"`
	SchoolID  *uuid.UUID `json:"school_id,omitempty"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewProject creates a new Project owned by the given teacher.
func NewProject(teacherID uuid.UUID, name string) (*Project, error) {
	project := &Project{
		ID:        uuid.New(),
		TeacherID: teacherID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := project.Validate(); err != nil {
		return nil, err
	}

	return project, nil
}

// Validate checks if the Project has valid data.
func (p *Project) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyProjectID
	}

	if p.TeacherID == uuid.Nil {
		return ErrEmptyTeacherID
	}

	if p.Name == "" {
		return ErrEmptyName
	}

	return nil
}
