package usecase

import (
	"context"
	"errors"
	"sync"

	"marvel-tutor/internal/domain"
	"marvel-tutor/internal/domain/model"
	"marvel-tutor/internal/domain/ports/adapter"
	"marvel-tutor/internal/domain/ports/repository"
)

// ---- Conversation store ----

type memConvStore struct {
	mu    sync.Mutex
	byID  map[string]*model.Conversation
	turns map[string]int

	saveErr error
}

func newMemConvStore() *memConvStore {
	return &memConvStore{
		byID:  map[string]*model.Conversation{},
		turns: map[string]int{},
	}
}

func (m *memConvStore) Get(ctx context.Context, sessionID string) (*model.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c := m.byID[sessionID]; c != nil {
		cp := *c
		cp.Turns = append([]model.Turn(nil), c.Turns...)
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memConvStore) Save(ctx context.Context, conv *model.Conversation) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *conv
	cp.Turns = append([]model.Turn(nil), conv.Turns...)
	m.byID[conv.SessionID] = &cp
	return nil
}

func (m *memConvStore) IncrementTurns(ctx context.Context, sessionID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns[sessionID]++
	return m.turns[sessionID], nil
}

func (m *memConvStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, sessionID)
	delete(m.turns, sessionID)
	return nil
}

var _ repository.ConversationStore = (*memConvStore)(nil)

// ---- AI adapter ----

type fakeAI struct {
	reply   string
	chatErr error

	mu       sync.Mutex
	requests [][]adapter.Message
}

func (f *fakeAI) Chat(ctx context.Context, model string, messages []adapter.Message) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, messages)
	f.mu.Unlock()
	if f.chatErr != nil {
		return "", f.chatErr
	}
	return f.reply, nil
}

func (f *fakeAI) CountTokens(ctx context.Context, model string, messages []adapter.Message) (int, error) {
	return 42, nil
}

var _ adapter.AIServiceAdapter = (*fakeAI)(nil)

// ---- History ----

type recordedTurn struct {
	id            LaunchIdentity
	userText      string
	assistantText string
}

type fakeHistory struct {
	mu       sync.Mutex
	recorded []recordedTurn
	err      error
}

func (f *fakeHistory) RecordTurn(ctx context.Context, id LaunchIdentity, userText, assistantText string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.recorded = append(f.recorded, recordedTurn{id: id, userText: userText, assistantText: assistantText})
	return nil
}

func (f *fakeHistory) MyHistory(ctx context.Context, lmsUserID string) ([]*model.Message, error) {
	return []*model.Message{}, nil
}

func (f *fakeHistory) CourseHistory(ctx context.Context, lmsCourseID string, role model.UserRole) ([]*model.Message, error) {
	return []*model.Message{}, nil
}

var _ HistoryUseCase = (*fakeHistory)(nil)

// ---- Relational repositories ----

type memTxManager struct{}

func (memTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, repository.NoTX)
}

var _ repository.TransactionManager = memTxManager{}

type memUserRepo struct {
	mu      sync.Mutex
	byLMSID map[string]*model.User
	created int
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{byLMSID: map[string]*model.User{}} }

func (m *memUserRepo) GetOrCreate(ctx context.Context, qx repository.Tx, u *model.User) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing := m.byLMSID[u.LMSUserID]; existing != nil {
		return existing, nil
	}
	cp := *u
	m.byLMSID[u.LMSUserID] = &cp
	m.created++
	return &cp, nil
}

func (m *memUserRepo) FindByLMSID(ctx context.Context, qx repository.Tx, lmsUserID string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u := m.byLMSID[lmsUserID]; u != nil {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

var _ repository.UserRepository = (*memUserRepo)(nil)

type memCourseRepo struct {
	mu      sync.Mutex
	byLMSID map[string]*model.Course
	created int
}

func newMemCourseRepo() *memCourseRepo { return &memCourseRepo{byLMSID: map[string]*model.Course{}} }

func (m *memCourseRepo) GetOrCreate(ctx context.Context, qx repository.Tx, c *model.Course) (*model.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing := m.byLMSID[c.LMSCourseID]; existing != nil {
		return existing, nil
	}
	cp := *c
	m.byLMSID[c.LMSCourseID] = &cp
	m.created++
	return &cp, nil
}

func (m *memCourseRepo) FindByLMSID(ctx context.Context, qx repository.Tx, lmsCourseID string) (*model.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c := m.byLMSID[lmsCourseID]; c != nil {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

var _ repository.CourseRepository = (*memCourseRepo)(nil)

type memMessageRepo struct {
	mu        sync.Mutex
	all       []*model.Message
	insertErr error
}

func (m *memMessageRepo) Insert(ctx context.Context, qx repository.Tx, msg *model.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	cp := *msg
	m.all = append(m.all, &cp)
	return nil
}

func (m *memMessageRepo) ListByUser(ctx context.Context, qx repository.Tx, userID string, limit int) ([]*model.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Message
	for i := len(m.all) - 1; i >= 0 && len(out) < limit; i-- {
		if m.all[i].UserID == userID {
			out = append(out, m.all[i])
		}
	}
	return out, nil
}

func (m *memMessageRepo) ListByCourse(ctx context.Context, qx repository.Tx, courseID string, limit int) ([]*model.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Message
	for i := len(m.all) - 1; i >= 0 && len(out) < limit; i-- {
		if m.all[i].CourseID == courseID {
			out = append(out, m.all[i])
		}
	}
	return out, nil
}

var _ repository.MessageRepository = (*memMessageRepo)(nil)

var errBoom = errors.New("boom")
