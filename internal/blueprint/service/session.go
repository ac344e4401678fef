package service

import (
	"errors"
	"sync"

	"blueprint-editor/internal/blueprint/editor"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrSessionNotFound = errors.New("session not found")

// ============================================================
// Session Manager
// ============================================================

// entry serializes access to one editing session.
type entry struct {
	mu      sync.Mutex
	session *editor.Session
}

// SessionManager owns the live editing sessions. Every operation on a session
// runs under that session's lock, one at a time.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*entry
	tuning   editor.Tuning
	log      *zap.Logger
}

func NewSessionManager(tuning editor.Tuning, log *zap.Logger) *SessionManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionManager{
		sessions: make(map[uuid.UUID]*entry),
		tuning:   tuning,
		log:      log,
	}
}

// Create opens a new session and returns its id.
func (m *SessionManager) Create() uuid.UUID {
	s := editor.NewSession(m.tuning,
		editor.WithLogger(m.log),
		editor.WithRenderFactory(&editor.NopFactory{}),
	)

	m.mu.Lock()
	m.sessions[s.ID] = &entry{session: s}
	m.mu.Unlock()

	m.log.Info("session created", zap.String("session", s.ID.String()))
	return s.ID
}

// With runs fn with exclusive access to the session.
func (m *SessionManager) With(id uuid.UUID, fn func(*editor.Session) error) error {
	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session)
}

func (m *SessionManager) Close(id uuid.UUID) error {
	m.mu.Lock()
	e, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	e.mu.Lock()
	e.session.PreviewLayer().Clear()
	e.mu.Unlock()

	m.log.Info("session closed", zap.String("session", id.String()))
	return nil
}

func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
