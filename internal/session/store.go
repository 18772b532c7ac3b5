package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/proxx/internal/holes"
)

var ErrNotFound = errors.New("session not found")

// Store keeps sessions in memory. Sessions idle for longer than ttl are
// dropped by [Store.Sweep].
type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	rnd      *rand.Rand
	ttl      time.Duration
	log      *logrus.Logger
	now      func() time.Time
}

func NewStore(rnd *rand.Rand, ttl time.Duration, log *logrus.Logger) *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		rnd:      rnd,
		ttl:      ttl,
		log:      log,
		now:      time.Now,
	}
}

// Create starts a new initialized game.
func (s *Store) Create(side, holeCount int) (*Session, error) {
	game, err := holes.New(side, holeCount)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := game.Initialize(s.rnd); err != nil {
		return nil, err
	}

	now := s.now()
	session := &Session{
		ID:        uuid.New(),
		StartedAt: now,
		game:      game,
		lastSeen:  now,
		now:       s.now,
	}
	s.sessions[session.ID] = session

	s.log.WithFields(logrus.Fields{
		"session_id": session.ID,
		"side":       side,
		"holes":      holeCount,
	}).Debug("session created")

	return session, nil
}

func (s *Store) Get(id uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return session, nil
}

func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops idle sessions and returns how many were dropped.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	deadline := s.now().Add(-s.ttl)
	dropped := 0
	for id, session := range s.sessions {
		if session.idleSince().Before(deadline) {
			delete(s.sessions, id)
			dropped++
		}
	}
	return dropped
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.log.WithFields(logrus.Fields{
					"dropped": n,
					"left":    s.Len(),
				}).Info("idle sessions swept")
			}
		}
	}
}
