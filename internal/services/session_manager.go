package services

import (
	"context"
	"sync"
	"time"

	"github.com/ArowuTest/gaspay-backend/internal/session"
	"github.com/ArowuTest/gaspay-backend/internal/utils"
	log "github.com/sirupsen/logrus"
)

// DefaultIdleTimeout is how long an untouched session is kept
const DefaultIdleTimeout = 2 * time.Hour

// SessionManager keeps the live login sessions in memory
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
	cfg      session.Config
	verifier session.CodeVerifier
	opts     []session.Option
}

// NewSessionManager creates a SessionManager whose sessions verify login codes with verifier
func NewSessionManager(cfg session.Config, verifier session.CodeVerifier, opts ...session.Option) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*session.Session),
		cfg:      cfg,
		verifier: verifier,
		opts:     opts,
	}
}

// Create starts a new session on the login screen
func (m *SessionManager) Create() *session.Session {
	id := utils.GenerateID()
	s := session.New(id, m.cfg, m.verifier, m.opts...)

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	return s
}

// Get finds a session by id
func (m *SessionManager) Get(id string) (*session.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Remove closes and forgets a session
func (m *SessionManager) Remove(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		s.Close()
	}
}

// Count returns the number of live sessions
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep removes sessions idle for longer than maxIdle and returns how many
func (m *SessionManager) Sweep(now time.Time, maxIdle time.Duration) int {
	m.mu.Lock()
	var stale []*session.Session
	for id, s := range m.sessions {
		if now.Sub(s.LastActivity()) > maxIdle {
			stale = append(stale, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range stale {
		s.Close()
	}
	return len(stale)
}

// RunJanitor sweeps idle sessions every interval until ctx is done
func (m *SessionManager) RunJanitor(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := m.Sweep(now, maxIdle); n > 0 {
				log.WithField("count", n).Info("removed idle sessions")
			}
		}
	}
}
