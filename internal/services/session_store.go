package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/ShrijalShrestha/Mockly-Ai-based-interviewing-system/internal/models"
	"github.com/ShrijalShrestha/Mockly-Ai-based-interviewing-system/internal/repositories"
)

// SessionStore tracks live interview state keyed by (user_id, session_id).
// Primary storage is the durable sessions table; when the database is
// unreachable it degrades to a process-local map so callers never see store
// failures on the read path. Entries expire after the configured timeout,
// enforced by a background reaper.
type SessionStore interface {
	Get(userID, sessionID string) (*models.SessionData, bool)
	GetAll(userID string) map[string]models.SessionData
	Set(userID, sessionID string, data models.SessionData)
	Update(userID, sessionID string, apply func(*models.SessionData))
	Delete(userID, sessionID string)
	DeleteUser(userID string)
	Start(ctx context.Context)
	Stop()
}

type fallbackEntry struct {
	data   models.SessionData
	expiry time.Time
}

type sessionStore struct {
	repo         repositories.SessionRepository
	timeout      time.Duration
	reapInterval time.Duration

	mu       sync.RWMutex
	fallback map[string]map[string]*fallbackEntry

	wg       sync.WaitGroup
	stopChan chan struct{}
}

func NewSessionStore(repo repositories.SessionRepository, timeout, reapInterval time.Duration) SessionStore {
	if timeout <= 0 {
		timeout = time.Hour
	}
	if reapInterval <= 0 {
		reapInterval = time.Minute
	}

	return &sessionStore{
		repo:         repo,
		timeout:      timeout,
		reapInterval: reapInterval,
		fallback:     make(map[string]map[string]*fallbackEntry),
		stopChan:     make(chan struct{}),
	}
}

// Get implements SessionStore. A missing session is reported as absent, never
// as an error.
func (s *sessionStore) Get(userID, sessionID string) (*models.SessionData, bool) {
	session, err := s.repo.Find(userID, sessionID)
	if err != nil {
		log.Printf("⚠️  Error retrieving session, using in-memory fallback: %v\n", err)
		return s.fallbackGet(userID, sessionID)
	}
	if session == nil {
		return nil, false
	}

	data := session.Data
	return &data, true
}

// GetAll implements SessionStore.
func (s *sessionStore) GetAll(userID string) map[string]models.SessionData {
	sessions, err := s.repo.FindAll(userID)
	if err != nil {
		log.Printf("⚠️  Error retrieving user sessions, using in-memory fallback: %v\n", err)
		return s.fallbackGetAll(userID)
	}

	result := make(map[string]models.SessionData, len(sessions))
	for _, session := range sessions {
		result[session.SessionID] = session.Data
	}
	return result
}

// Set implements SessionStore. Upserts the session and refreshes last_updated
// and the expiry timestamp.
func (s *sessionStore) Set(userID, sessionID string, data models.SessionData) {
	now := time.Now()
	session := &models.Session{
		UserID:      userID,
		SessionID:   sessionID,
		Expiry:      now.Add(s.timeout),
		LastUpdated: now,
		Data:        data,
	}

	if err := s.repo.Upsert(session); err != nil {
		log.Printf("⚠️  Error setting session, using in-memory fallback: %v\n", err)
		s.fallbackSet(userID, sessionID, data)
	}
}

// Update implements SessionStore. Applies a partial mutation to an existing
// session and extends its expiry; missing sessions are left untouched.
func (s *sessionStore) Update(userID, sessionID string, apply func(*models.SessionData)) {
	session, err := s.repo.Find(userID, sessionID)
	if err != nil {
		log.Printf("⚠️  Error updating session, using in-memory fallback: %v\n", err)
		s.fallbackUpdate(userID, sessionID, apply)
		return
	}
	if session == nil {
		return
	}

	apply(&session.Data)
	now := time.Now()
	session.LastUpdated = now
	session.Expiry = now.Add(s.timeout)

	if err := s.repo.Upsert(session); err != nil {
		log.Printf("⚠️  Error updating session, using in-memory fallback: %v\n", err)
		s.fallbackUpdate(userID, sessionID, apply)
	}
}

// Delete implements SessionStore.
func (s *sessionStore) Delete(userID, sessionID string) {
	if err := s.repo.Delete(userID, sessionID); err != nil {
		log.Printf("⚠️  Error deleting session: %v\n", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sessions, ok := s.fallback[userID]; ok {
		delete(sessions, sessionID)
	}
}

// DeleteUser implements SessionStore.
func (s *sessionStore) DeleteUser(userID string) {
	if err := s.repo.DeleteAll(userID); err != nil {
		log.Printf("⚠️  Error deleting user sessions: %v\n", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.fallback, userID)
}

// Start launches the background reaper that drops expired live sessions. The
// durable completed-interview records are untouched by expiry.
func (s *sessionStore) Start(ctx context.Context) {
	s.wg.Add(1)
	go s.reapLoop(ctx)
}

// Stop implements SessionStore.
func (s *sessionStore) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}

func (s *sessionStore) reapLoop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.reapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now()
			if purged, err := s.repo.DeleteExpired(now); err != nil {
				log.Printf("⚠️  Failed to reap expired sessions: %v\n", err)
			} else if purged > 0 {
				log.Printf("🧹 Reaped %d expired sessions\n", purged)
			}
			s.reapFallback(now)
		}
	}
}

func (s *sessionStore) reapFallback(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, sessions := range s.fallback {
		for sessionID, entry := range sessions {
			if entry.expiry.Before(now) {
				delete(sessions, sessionID)
			}
		}
		if len(sessions) == 0 {
			delete(s.fallback, userID)
		}
	}
}

func (s *sessionStore) fallbackGet(userID, sessionID string) (*models.SessionData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.fallback[userID][sessionID]
	if !ok {
		return nil, false
	}

	data := entry.data
	return &data, true
}

func (s *sessionStore) fallbackGetAll(userID string) map[string]models.SessionData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[string]models.SessionData, len(s.fallback[userID]))
	for sessionID, entry := range s.fallback[userID] {
		result[sessionID] = entry.data
	}
	return result
}

func (s *sessionStore) fallbackSet(userID, sessionID string, data models.SessionData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fallback[userID] == nil {
		s.fallback[userID] = make(map[string]*fallbackEntry)
	}
	s.fallback[userID][sessionID] = &fallbackEntry{
		data:   data,
		expiry: time.Now().Add(s.timeout),
	}
}

func (s *sessionStore) fallbackUpdate(userID, sessionID string, apply func(*models.SessionData)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.fallback[userID][sessionID]
	if !ok {
		return
	}
	apply(&entry.data)
	entry.expiry = time.Now().Add(s.timeout)
}
