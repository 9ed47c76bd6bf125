package model

import (
	"time"

	"github.com/google/uuid"

	"marvel-tutor/internal/domain"
)

// Course is a durable record of an LMS course context, created on first
// sight like User.
type Course struct {
	ID          string
	LMSCourseID string
	Title       string
	CreatedAt   time.Time
}

func NewCourse(id, lmsCourseID, title string) (*Course, error) {
	if lmsCourseID == "" {
		return nil, domain.ErrInvalidArgument
	}
	if id == "" {
		id = uuid.NewString()
	}
	if title == "" {
		title = "Course"
	}
	return &Course{
		ID:          id,
		LMSCourseID: lmsCourseID,
		Title:       title,
		CreatedAt:   time.Now(),
	}, nil
}
