package exam

import (
	"context"
	"sync"

	"github.com/lexprep/lexprep/internal/examapi"
	"github.com/lexprep/lexprep/internal/logger"
	"github.com/lexprep/lexprep/internal/submitqueue"
)

// Manager keys active exam engines by web session. One active mock exam per
// session: starting a new one closes the previous engine, so a late response
// from the old attempt can never land on the new one.
type Manager struct {
	api      examapi.ExamAPI
	queue    submitqueue.Enqueuer
	defaults Defaults
	log      *logger.Logger

	mu      sync.Mutex
	engines map[string]*Engine
}

func NewManager(api examapi.ExamAPI, queue submitqueue.Enqueuer, defaults Defaults) *Manager {
	return &Manager{
		api:      api,
		queue:    queue,
		defaults: defaults,
		log:      logger.Default().WithPrefix("exam-manager"),
		engines:  map[string]*Engine{},
	}
}

// Start creates and loads a new engine for the session, replacing any
// previous one, and starts its clock.
func (m *Manager) Start(ctx context.Context, sessionID string, auth examapi.Auth) (*Engine, error) {
	engine := NewEngine(m.api, m.queue, auth, m.defaults)
	if err := engine.Start(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	if old, ok := m.engines[sessionID]; ok {
		m.log.Debug("replacing active exam session")
		old.Close()
	}
	m.engines[sessionID] = engine
	m.mu.Unlock()

	go engine.RunClock()
	return engine, nil
}

// Get returns the session's active engine, or nil.
func (m *Manager) Get(sessionID string) *Engine {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engines[sessionID]
}

// Remove closes and drops the session's engine, if any.
func (m *Manager) Remove(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.engines[sessionID]; ok {
		e.Close()
		delete(m.engines, sessionID)
	}
}

// Shutdown closes every engine; used on server stop.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.engines {
		e.Close()
		delete(m.engines, id)
	}
	m.log.Info("all exam sessions closed")
}
