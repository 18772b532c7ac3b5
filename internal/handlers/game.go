package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/proxx/internal/command"
	"github.com/vancomm/proxx/internal/config"
	"github.com/vancomm/proxx/internal/holes"
	"github.com/vancomm/proxx/internal/middleware"
	"github.com/vancomm/proxx/internal/repository"
	"github.com/vancomm/proxx/internal/session"
)

const maxBatchBytes = 64 << 10

// RecordStore persists finished games. *repository.Queries implements it.
type RecordStore interface {
	CreateRecord(ctx context.Context, r repository.Record) error
	GetRecords(ctx context.Context, filter repository.RecordFilter) ([]repository.Highscore, error)
}

type GameHandler struct {
	log     *logrus.Logger
	store   *session.Store
	jwt     *config.JWT
	cookies *config.Cookies
	ws      *config.WebSocket
	records RecordStore
}

// NewGameHandler serves games from store. A nil records disables the
// records endpoint.
func NewGameHandler(
	log *logrus.Logger,
	store *session.Store,
	jwt *config.JWT,
	cookies *config.Cookies,
	ws *config.WebSocket,
	records RecordStore,
) *GameHandler {
	return &GameHandler{
		log:     log,
		store:   store,
		jwt:     jwt,
		cookies: cookies,
		ws:      ws,
		records: records,
	}
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	params, err := decode[NewGameParams](r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(err))
		return
	}

	s, err := g.store.Create(params.Side, params.Holes)
	if err != nil {
		sendError(w, g.log, err)
		return
	}

	token, err := g.jwt.Sign(s.ID, time.Now())
	if err != nil {
		g.store.Delete(s.ID)
		sendError(w, g.log, err)
		return
	}
	if err := g.cookies.Refresh(w, token); err != nil {
		g.store.Delete(s.ID)
		sendError(w, g.log, err)
		return
	}

	g.log.WithFields(logrus.Fields{
		"session_id": s.ID,
		"side":       params.Side,
		"holes":      params.Holes,
	}).Info("new game")

	dto := NewSessionDTO(s.Snapshot())
	dto.Token = token
	sendJSONOrLog(w, g.log, dto)
}

func (g GameHandler) lookup(r *http.Request) (*session.Session, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return nil, session.ErrNotFound
	}
	return g.store.Get(id)
}

// owned returns the session only when the request carries its token.
func (g GameHandler) owned(r *http.Request) (*session.Session, error) {
	s, err := g.lookup(r)
	if err != nil {
		return nil, err
	}
	claims, ok := middleware.SessionClaims(r.Context())
	if !ok || claims.SessionID != s.ID {
		return nil, ErrForbidden
	}
	return s, nil
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, err := g.lookup(r)
	if err != nil {
		sendError(w, g.log, err)
		return
	}
	sendJSONOrLog(w, g.log, NewSessionDTO(s.Snapshot()))
}

// apply runs cmds and stores the result once the game is over.
func (g GameHandler) apply(
	ctx context.Context, s *session.Session, cmds ...command.Command,
) (session.Snapshot, error) {
	snapshot, err := s.Apply(cmds...)
	if final, ok := s.Finish(); ok {
		g.log.WithFields(logrus.Fields{
			"session_id": s.ID,
			"state":      final.State,
			"moves":      final.Moves,
		}).Info("game over")
		g.saveRecord(ctx, final)
	}
	return snapshot, err
}

func (g GameHandler) saveRecord(ctx context.Context, s session.Snapshot) {
	if g.records == nil {
		return
	}
	err := g.records.CreateRecord(ctx, repository.Record{
		SessionID: s.ID,
		Side:      s.Side,
		HoleCount: s.HoleCount,
		Won:       s.State == holes.Won,
		Moves:     s.Moves,
		StartedAt: s.StartedAt,
		EndedAt:   s.EndedAt,
	})
	if err != nil && !errors.Is(err, repository.ErrRecordExists) {
		g.log.WithError(err).WithField("session_id", s.ID).Error("unable to save record")
	}
}

func (g GameHandler) move(verb command.Verb) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := g.owned(r)
		if err != nil {
			sendError(w, g.log, err)
			return
		}
		pos, err := decode[PositionParams](r.URL.Query())
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			sendJSONOrLog(w, g.log, wrapError(err))
			return
		}
		snapshot, err := g.apply(r.Context(), s, command.Command{
			Verb: verb, Point: pos.Point(),
		})
		if err != nil {
			sendError(w, g.log, err)
			return
		}
		sendJSONOrLog(w, g.log, NewSessionDTO(snapshot))
	}
}

func (g GameHandler) Open(w http.ResponseWriter, r *http.Request) {
	g.move(command.Open)(w, r)
}

func (g GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	g.move(command.Flag)(w, r)
}

func (g GameHandler) Unflag(w http.ResponseWriter, r *http.Request) {
	g.move(command.Unflag)(w, r)
}

// Batch applies a newline-separated script. The whole script is validated
// first so a bad line leaves the game untouched.
func (g GameHandler) Batch(w http.ResponseWriter, r *http.Request) {
	s, err := g.owned(r)
	if err != nil {
		sendError(w, g.log, err)
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBatchBytes))
	if err != nil {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		sendJSONOrLog(w, g.log, wrapError(err))
		return
	}
	cmds, err := g.parse(string(body), s.Snapshot().Side)
	if err != nil {
		sendError(w, g.log, err)
		return
	}
	snapshot, err := g.apply(r.Context(), s, cmds...)
	if err != nil {
		sendError(w, g.log, err)
		return
	}
	sendJSONOrLog(w, g.log, NewSessionDTO(snapshot))
}

func (g GameHandler) parse(script string, side int) ([]command.Command, error) {
	cmds, err := command.ParseAll(strings.TrimSpace(script))
	if err != nil {
		return nil, err
	}
	if err := command.Check(cmds, side); err != nil {
		return nil, err
	}
	return cmds, nil
}

func (g GameHandler) Records(w http.ResponseWriter, r *http.Request) {
	if g.records == nil {
		sendError(w, g.log, ErrRecordsDisabled)
		return
	}
	params, err := decode[RecordsParams](r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(err))
		return
	}
	records, err := g.records.GetRecords(r.Context(), params.Filter())
	if err != nil {
		sendError(w, g.log, err)
		return
	}
	if records == nil {
		records = []repository.Highscore{}
	}
	sendJSONOrLog(w, g.log, records)
}
