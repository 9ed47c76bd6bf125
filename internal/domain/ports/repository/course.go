package repository

import (
	"context"

	"marvel-tutor/internal/domain/model"
)

type CourseRepository interface {
	// GetOrCreate resolves the row for c.LMSCourseID, inserting c when
	// absent. Title is never updated after first sight.
	GetOrCreate(ctx context.Context, qx Tx, c *model.Course) (*model.Course, error)
	FindByLMSID(ctx context.Context, qx Tx, lmsCourseID string) (*model.Course, error)
}
