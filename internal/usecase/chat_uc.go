// File: internal/usecase/chat_uc.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"marvel-tutor/internal/domain"
	"marvel-tutor/internal/domain/model"
	"marvel-tutor/internal/domain/ports/adapter"
	"marvel-tutor/internal/domain/ports/repository"
	"marvel-tutor/internal/infra/logging"
	"marvel-tutor/internal/infra/metrics"
	"marvel-tutor/internal/tutor"
)

const (
	// contextTurns is the history window fed to the prompt. It is smaller
	// than model.MaxStoredTurns on purpose: the store keeps 10 turns, the
	// model sees 8. Do not unify them without noting the behavior change.
	contextTurns = 8

	// MissingCredentialReply is returned verbatim, with no service call,
	// when no completion credential is configured. Surfaced as a normal
	// reply rather than an HTTP error.
	MissingCredentialReply = "Falta la clave del modelo. Añádela a config.yaml como ai.openai_key (o ai.gemini_key)."
)

// Compile-time check
var _ ChatUseCase = (*chatUC)(nil)

// TurnRequest carries one inbound student message plus the session's
// launch attribution (empty LMSUserID means no durable logging).
type TurnRequest struct {
	SessionID string
	Message   string
	Level     model.Level

	LMSUserID   string
	LMSUserName string
	LMSCourseID string
	CourseTitle string
	Role        model.UserRole
}

// TurnResult is the orchestrator's reply contract: every path yields one.
type TurnResult struct {
	Reply     string
	TurnCount int
	Focus     tutor.Focus
}

type ChatUseCase interface {
	SendMessage(ctx context.Context, req TurnRequest) (*TurnResult, error)
}

type chatUC struct {
	convs         repository.ConversationStore
	ai            adapter.AIServiceAdapter
	history       HistoryUseCase
	model         string
	hasCredential bool
	log           *zerolog.Logger
}

func NewChatUseCase(
	convs repository.ConversationStore,
	ai adapter.AIServiceAdapter,
	history HistoryUseCase,
	modelName string,
	hasCredential bool,
	logger *zerolog.Logger,
) *chatUC {
	return &chatUC{
		convs:         convs,
		ai:            ai,
		history:       history,
		model:         modelName,
		hasCredential: hasCredential,
		log:           logger,
	}
}

// SendMessage runs one conversational turn:
// classify -> compose -> call -> cap -> append -> count -> persist.
// It never returns an error for a completion failure; the failure text
// becomes the reply, exactly like a successful one.
func (c *chatUC) SendMessage(ctx context.Context, req TurnRequest) (*TurnResult, error) {
	defer logging.TraceDuration(c.log, "ChatUC.SendMessage")()

	if !c.hasCredential {
		return &TurnResult{Reply: MissingCredentialReply}, nil
	}

	userText := strings.TrimSpace(req.Message)
	if userText == "" {
		return nil, domain.ErrInvalidArgument
	}

	focus := tutor.DetectFocus(userText)

	conv, err := c.convs.Get(ctx, req.SessionID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		conv = model.NewConversation(req.SessionID)
	}

	messages := tutor.ComposeMessages(userText, req.Level, focus, conv.Context(contextTurns))

	if tokens, err := c.ai.CountTokens(ctx, c.model, messages); err == nil {
		metrics.ObservePromptTokens("chat", c.model, tokens)
		logging.With(ctx, c.log).Trace().Int("prompt_tokens", tokens).Msg("composed prompt")
	}

	reply, err := c.ai.Chat(ctx, c.model, messages)
	if err != nil {
		// Both call shapes failed. The diagnostic becomes the reply text;
		// the caller inspects content, not status, to detect it.
		reply = fmt.Sprintf("Hubo un error con el modelo: %v", err)
		logging.With(ctx, c.log).Warn().Err(err).Msg("completion failed")
	}
	reply = tutor.CapWords(reply)

	conv.AppendExchange(userText, reply)
	if err := c.convs.Save(ctx, conv); err != nil {
		return nil, err
	}
	turnCount, err := c.convs.IncrementTurns(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	if req.LMSUserID != "" && c.history != nil {
		id := LaunchIdentity{
			LMSUserID:   req.LMSUserID,
			Name:        req.LMSUserName,
			Role:        req.Role,
			LMSCourseID: req.LMSCourseID,
			CourseTitle: req.CourseTitle,
		}
		if err := c.history.RecordTurn(ctx, id, userText, reply); err != nil {
			// Durable logging must not sink an otherwise completed turn.
			logging.With(ctx, c.log).Error().Err(err).Msg("record turn failed")
		}
	}

	metrics.TurnCompleted(string(focus), string(req.Level))
	return &TurnResult{Reply: reply, TurnCount: turnCount, Focus: focus}, nil
}
