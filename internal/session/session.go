package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/proxx/internal/command"
	"github.com/vancomm/proxx/internal/holes"
)

// Session owns one game and serializes every action on it.
type Session struct {
	ID        uuid.UUID
	StartedAt time.Time

	mu       sync.Mutex
	game     *holes.Game
	moves    int
	endedAt  time.Time
	lastSeen time.Time
	finished bool
	now      func() time.Time
}

// Snapshot is a consistent read-only copy of a session.
type Snapshot struct {
	ID        uuid.UUID
	Side      int
	HoleCount int
	Flags     int
	Remaining int
	Moves     int
	State     holes.State
	Grid      []holes.Status
	StartedAt time.Time
	EndedAt   time.Time
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		ID:        s.ID,
		Side:      s.game.Side(),
		HoleCount: s.game.HoleCount(),
		Flags:     s.game.Flags(),
		Remaining: s.game.Remaining(),
		Moves:     s.moves,
		State:     s.game.State(),
		Grid:      s.game.Statuses(),
		StartedAt: s.StartedAt,
		EndedAt:   s.endedAt,
	}
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Apply runs cmds against the game. The returned snapshot reflects every
// command applied before an error, if any.
func (s *Session) Apply(cmds ...command.Command) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasOver := s.game.State().Terminal()
	n, state, err := command.Run(s.game, cmds)
	s.moves += n
	s.lastSeen = s.now()
	if !wasOver && state.Terminal() {
		s.endedAt = s.lastSeen
	}
	return s.snapshot(), err
}

// Finish reports the final snapshot of a game that is over. It succeeds
// only once per session.
func (s *Session) Finish() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished || !s.game.State().Terminal() {
		return Snapshot{}, false
	}
	s.finished = true
	return s.snapshot(), true
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
