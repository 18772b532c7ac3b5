package handlers

import (
	"github.com/google/uuid"
	"github.com/gorilla/schema"

	"github.com/vancomm/proxx/internal/holes"
	"github.com/vancomm/proxx/internal/repository"
	"github.com/vancomm/proxx/internal/session"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type NewGameParams struct {
	Side  int `schema:"side,required"`
	Holes int `schema:"holes,required"`
}

type PositionParams struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func (p PositionParams) Point() holes.Point {
	return holes.Point{X: p.X, Y: p.Y}
}

type RecordsParams struct {
	Side  *int `schema:"side"`
	Holes *int `schema:"holes"`
	Limit int  `schema:"limit"`
}

func (p RecordsParams) Filter() repository.RecordFilter {
	return repository.RecordFilter{
		Side:      p.Side,
		HoleCount: p.Holes,
		Limit:     p.Limit,
	}
}

func decode[T any](src map[string][]string) (T, error) {
	var dto T
	err := decoder.Decode(&dto, src)
	return dto, err
}

// SessionDTO never exposes hidden cell contents: the grid holds status codes
// only.
type SessionDTO struct {
	SessionID uuid.UUID      `json:"session_id"`
	Side      int            `json:"side"`
	HoleCount int            `json:"hole_count"`
	Flags     int            `json:"flags"`
	Remaining int            `json:"remaining"`
	Moves     int            `json:"moves"`
	State     string         `json:"state"`
	Grid      []holes.Status `json:"grid"`
	StartedAt int64          `json:"started_at"`
	EndedAt   *int64         `json:"ended_at,omitempty"`
	Token     string         `json:"token,omitempty"`
}

func NewSessionDTO(s session.Snapshot) *SessionDTO {
	var endedAt *int64
	if !s.EndedAt.IsZero() {
		e := s.EndedAt.UnixMilli()
		endedAt = &e
	}
	return &SessionDTO{
		SessionID: s.ID,
		Side:      s.Side,
		HoleCount: s.HoleCount,
		Flags:     s.Flags,
		Remaining: s.Remaining,
		Moves:     s.Moves,
		State:     s.State.String(),
		Grid:      s.Grid,
		StartedAt: s.StartedAt.UnixMilli(),
		EndedAt:   endedAt,
	}
}
