package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// session is one server-side login session
type session struct {
	username  string
	expiresAt time.Time
}

// SessionStore issues and resolves HMAC-signed session tokens backed by an
// in-memory table with TTL expiry and background cleanup.
type SessionStore struct {
	secret      []byte
	ttl         time.Duration
	sessions    map[string]*session
	mu          sync.RWMutex
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

// NewSessionStore creates a new session store signing tokens with the given
// secret key
func NewSessionStore(secret string, ttl time.Duration, cleanupFreq time.Duration, logger *zap.Logger) *SessionStore {
	store := &SessionStore{
		secret:      []byte(secret),
		ttl:         ttl,
		sessions:    make(map[string]*session),
		logger:      logger,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	// Start background cleanup
	go store.startCleanupTask()

	return store
}

// Issue creates a session for a username and returns the signed token to be
// set as the cookie value
func (s *SessionStore) Issue(username string) string {
	id := uuid.NewString()

	s.mu.Lock()
	s.sessions[id] = &session{
		username:  username,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()

	return id + "." + s.sign(id)
}

// Resolve verifies a token's signature and returns the session's username.
// The second return is false for forged, unknown, or expired tokens.
func (s *SessionStore) Resolve(token string) (string, bool) {
	id, ok := s.verify(token)
	if !ok {
		return "", false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return "", false
	}
	if time.Now().After(sess.expiresAt) {
		return "", false
	}

	return sess.username, true
}

// Revoke drops the session behind a token. Forged tokens are ignored.
func (s *SessionStore) Revoke(token string) {
	id, ok := s.verify(token)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Cleanup removes expired sessions
func (s *SessionStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	expiredCount := 0

	for id, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			delete(s.sessions, id)
			expiredCount++
		}
	}

	if expiredCount > 0 {
		s.logger.Debug("Cleaned up expired sessions", zap.Int("expired_count", expiredCount))
	}
}

// startCleanupTask starts a background task to clean up expired sessions
func (s *SessionStore) startCleanupTask() {
	ticker := time.NewTicker(s.cleanupFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// Stop stops the background cleanup task
func (s *SessionStore) Stop() {
	close(s.stopCh)
}

func (s *SessionStore) sign(id string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(id))
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *SessionStore) verify(token string) (string, bool) {
	id, sig, found := strings.Cut(token, ".")
	if !found || id == "" {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(s.sign(id))) {
		return "", false
	}
	return id, true
}
