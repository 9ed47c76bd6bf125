// File: internal/usecase/history_uc.go
package usecase

import (
	"context"
	"errors"
	"fmt"

	"marvel-tutor/internal/domain"
	"marvel-tutor/internal/domain/model"
	"marvel-tutor/internal/domain/ports/repository"
	"marvel-tutor/internal/infra/metrics"
)

const (
	myHistoryLimit     = 50
	courseHistoryLimit = 100
)

// LaunchIdentity is the LMS attribution carried by a launched session.
type LaunchIdentity struct {
	LMSUserID   string
	Name        string
	Role        model.UserRole
	LMSCourseID string
	CourseTitle string
}

// Compile-time check
var _ HistoryUseCase = (*historyUC)(nil)

type HistoryUseCase interface {
	// RecordTurn resolves (or creates) the User and Course and appends the
	// user+assistant message pair, all in one transaction.
	RecordTurn(ctx context.Context, id LaunchIdentity, userText, assistantText string) error
	// MyHistory returns the identity's own newest messages (up to 50).
	MyHistory(ctx context.Context, lmsUserID string) ([]*model.Message, error)
	// CourseHistory returns the course's newest messages (up to 100).
	// Rejected with domain.ErrForbidden unless role is Instructor.
	CourseHistory(ctx context.Context, lmsCourseID string, role model.UserRole) ([]*model.Message, error)
}

type historyUC struct {
	txm      repository.TransactionManager
	users    repository.UserRepository
	courses  repository.CourseRepository
	messages repository.MessageRepository
}

func NewHistoryUseCase(
	txm repository.TransactionManager,
	users repository.UserRepository,
	courses repository.CourseRepository,
	messages repository.MessageRepository,
) *historyUC {
	return &historyUC{txm: txm, users: users, courses: courses, messages: messages}
}

func (h *historyUC) RecordTurn(ctx context.Context, id LaunchIdentity, userText, assistantText string) error {
	candidateUser, err := model.NewUser("", id.LMSUserID, id.Name, id.Role)
	if err != nil {
		return err
	}
	candidateCourse, err := model.NewCourse("", id.LMSCourseID, id.CourseTitle)
	if err != nil {
		return err
	}

	return h.txm.WithTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		user, err := h.users.GetOrCreate(ctx, tx, candidateUser)
		if err != nil {
			return fmt.Errorf("resolve user: %w", err)
		}
		course, err := h.courses.GetOrCreate(ctx, tx, candidateCourse)
		if err != nil {
			return fmt.Errorf("resolve course: %w", err)
		}

		for _, part := range []struct {
			role    model.Role
			content string
		}{
			{model.RoleUser, userText},
			{model.RoleAssistant, assistantText},
		} {
			msg, err := model.NewMessage(user.ID, course.ID, part.role, part.content)
			if err != nil {
				return err
			}
			if err := h.messages.Insert(ctx, tx, msg); err != nil {
				return err
			}
		}
		return nil
	})
}

func (h *historyUC) MyHistory(ctx context.Context, lmsUserID string) ([]*model.Message, error) {
	user, err := h.users.FindByLMSID(ctx, repository.NoTX, lmsUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Nothing logged yet for this identity.
			metrics.HistoryRead("me", "empty")
			return []*model.Message{}, nil
		}
		return nil, err
	}
	msgs, err := h.messages.ListByUser(ctx, repository.NoTX, user.ID, myHistoryLimit)
	if err != nil {
		return nil, err
	}
	metrics.HistoryRead("me", "ok")
	return msgs, nil
}

func (h *historyUC) CourseHistory(ctx context.Context, lmsCourseID string, role model.UserRole) ([]*model.Message, error) {
	if role != model.RoleInstructor {
		metrics.HistoryRead("course", "forbidden")
		return nil, domain.ErrForbidden
	}
	course, err := h.courses.FindByLMSID(ctx, repository.NoTX, lmsCourseID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.HistoryRead("course", "empty")
			return []*model.Message{}, nil
		}
		return nil, err
	}
	msgs, err := h.messages.ListByCourse(ctx, repository.NoTX, course.ID, courseHistoryLimit)
	if err != nil {
		return nil, err
	}
	metrics.HistoryRead("course", "ok")
	return msgs, nil
}
