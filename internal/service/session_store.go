package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/reachsuite/emailbuilder/internal/domain"
	"github.com/reachsuite/emailbuilder/pkg/cache"
	"github.com/reachsuite/emailbuilder/pkg/emailblocks"
	"github.com/reachsuite/emailbuilder/pkg/logger"
)

// builderSession pairs an editing session with the template it was opened from.
// mu serializes every operation on the session.
type builderSession struct {
	mu         sync.Mutex
	id         string
	templateID string
	session    *emailblocks.Session
}

// SessionStore keeps editing sessions in memory. Idle sessions expire after the TTL.
type SessionStore struct {
	sessions *cache.Cache[*builderSession]
	ttl      time.Duration
	newID    func() string
}

func NewSessionStore(ttl time.Duration, log logger.Logger) *SessionStore {
	return &SessionStore{
		sessions: cache.New[*builderSession](
			cache.WithSlidingExpiration[*builderSession](),
			cache.WithOnEvict(func(id string, _ *builderSession) {
				log.WithField("session_id", id).Debug("Builder session expired")
			}),
		),
		ttl:   ttl,
		newID: func() string { return uuid.New().String() },
	}
}

// Create registers session under a fresh id
func (s *SessionStore) Create(templateID string, session *emailblocks.Session) *builderSession {
	bs := &builderSession{
		id:         s.newID(),
		templateID: templateID,
		session:    session,
	}
	s.sessions.Set(bs.id, bs, s.ttl)
	return bs
}

func (s *SessionStore) Get(id string) (*builderSession, error) {
	bs, ok := s.sessions.Get(id)
	if !ok {
		return nil, &domain.ErrSessionNotFound{SessionID: id}
	}
	return bs, nil
}

func (s *SessionStore) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	s.sessions.Delete(id)
	return nil
}

func (s *SessionStore) Len() int {
	return s.sessions.Len()
}

func (s *SessionStore) Stop() {
	s.sessions.Stop()
}
