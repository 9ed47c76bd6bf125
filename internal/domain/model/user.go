package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"marvel-tutor/internal/domain"
)

type UserRole string

const (
	RoleLearner    UserRole = "Learner"
	RoleInstructor UserRole = "Instructor"
)

// User is a durable record of an LMS identity. Created on first launch for
// a given lms_user_id and not updated thereafter.
type User struct {
	ID        string
	LMSUserID string
	Name      string
	Role      UserRole
	CreatedAt time.Time
}

func NewUser(id, lmsUserID, name string, role UserRole) (*User, error) {
	if lmsUserID == "" {
		return nil, domain.ErrInvalidArgument
	}
	if id == "" {
		id = uuid.NewString()
	}
	if name == "" {
		name = "Student"
	}
	if role == "" {
		role = RoleLearner
	}
	return &User{
		ID:        id,
		LMSUserID: lmsUserID,
		Name:      name,
		Role:      role,
		CreatedAt: time.Now(),
	}, nil
}

// RoleFromClaims maps the launch roles claim: Instructor if any role string
// contains "Instructor", Learner otherwise.
func RoleFromClaims(roles []string) UserRole {
	for _, r := range roles {
		if strings.Contains(r, "Instructor") {
			return RoleInstructor
		}
	}
	return RoleLearner
}
