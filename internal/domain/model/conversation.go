package model

import (
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// MaxStoredTurns caps the per-session rolling history. Note the prompt
// context window is smaller (see usecase.contextTurns); the store keeps
// 10 turns while only the last 8 are fed back to the model.
const MaxStoredTurns = 10

// Turn is one user or assistant message unit. Immutable once appended.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Conversation is the session-scoped rolling history used as model context.
// It lives for the lifetime of the browser session (Redis TTL) and is owned
// exclusively by that session, so no cross-request locking is needed.
type Conversation struct {
	SessionID string    `json:"session_id"`
	Turns     []Turn    `json:"turns"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewConversation(sessionID string) *Conversation {
	return &Conversation{
		SessionID: sessionID,
		Turns:     make([]Turn, 0, MaxStoredTurns),
		UpdatedAt: time.Now(),
	}
}

// AppendExchange records one completed turn: the student's text followed by
// the assistant's reply, trimming to the newest MaxStoredTurns entries.
func (c *Conversation) AppendExchange(userText, assistantText string) {
	c.Turns = append(c.Turns,
		Turn{Role: RoleUser, Content: userText},
		Turn{Role: RoleAssistant, Content: assistantText},
	)
	if n := len(c.Turns); n > MaxStoredTurns {
		c.Turns = c.Turns[n-MaxStoredTurns:]
	}
	c.UpdatedAt = time.Now()
}

// Context returns the most recent n turns in original order.
func (c *Conversation) Context(n int) []Turn {
	if n <= 0 || len(c.Turns) <= n {
		return c.Turns
	}
	return c.Turns[len(c.Turns)-n:]
}
