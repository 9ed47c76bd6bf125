package model

import (
	"time"

	"github.com/oklog/ulid/v2"

	"marvel-tutor/internal/domain"
)

// Message is one durably logged chat line attributed to a (User, Course)
// pair. Append-only; two are written per completed turn.
type Message struct {
	ID        string
	UserID    string
	CourseID  string
	Role      Role
	Content   string
	Timestamp time.Time
}

// NewMessage assigns a ULID so message IDs sort by creation time, which
// keeps the append-only log cheap to page through.
func NewMessage(userID, courseID string, role Role, content string) (*Message, error) {
	if userID == "" || courseID == "" {
		return nil, domain.ErrInvalidArgument
	}
	if role != RoleUser && role != RoleAssistant {
		return nil, domain.ErrInvalidArgument
	}
	return &Message{
		ID:        ulid.Make().String(),
		UserID:    userID,
		CourseID:  courseID,
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}, nil
}
