package quiz

import (
	"context"
	"sync"

	"github.com/lexprep/lexprep/internal/examapi"
	"github.com/lexprep/lexprep/internal/logger"
)

// Manager keys active quiz engines by web session; one active gamified quiz
// per session.
type Manager struct {
	api examapi.TopicQuizAPI
	log *logger.Logger

	mu      sync.Mutex
	engines map[string]*Engine
}

func NewManager(api examapi.TopicQuizAPI) *Manager {
	return &Manager{
		api:     api,
		log:     logger.Default().WithPrefix("quiz-manager"),
		engines: map[string]*Engine{},
	}
}

// Start begins a new attempt for the topic, replacing any previous engine.
func (m *Manager) Start(ctx context.Context, sessionID string, auth examapi.Auth, topicID int64) (*Engine, error) {
	engine := NewEngine(m.api, auth)
	if err := engine.Start(ctx, topicID); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.engines[sessionID] = engine
	m.mu.Unlock()
	return engine, nil
}

// Resume reloads an existing attempt into a fresh engine.
func (m *Manager) Resume(ctx context.Context, sessionID string, auth examapi.Auth, attemptID int64) (*Engine, error) {
	engine := NewEngine(m.api, auth)
	if err := engine.Resume(ctx, attemptID); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.engines[sessionID] = engine
	m.mu.Unlock()
	return engine, nil
}

// Get returns the session's active engine, or nil.
func (m *Manager) Get(sessionID string) *Engine {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engines[sessionID]
}

// Remove drops the session's engine.
func (m *Manager) Remove(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.engines, sessionID)
}
