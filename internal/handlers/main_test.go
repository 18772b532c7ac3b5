package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/proxx/internal/config"
	"github.com/vancomm/proxx/internal/middleware"
	"github.com/vancomm/proxx/internal/repository"
	"github.com/vancomm/proxx/internal/session"
)

type fakeRecords struct {
	mu      sync.Mutex
	records []repository.Record
	filter  repository.RecordFilter
}

func (f *fakeRecords) CreateRecord(ctx context.Context, r repository.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.records {
		if existing.SessionID == r.SessionID {
			return repository.ErrRecordExists
		}
	}
	f.records = append(f.records, r)
	return nil
}

func (f *fakeRecords) GetRecords(
	ctx context.Context, filter repository.RecordFilter,
) ([]repository.Highscore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filter = filter
	var out []repository.Highscore
	for _, r := range f.records {
		if !r.Won {
			continue
		}
		out = append(out, repository.Highscore{
			SessionID:  r.SessionID,
			Side:       r.Side,
			HoleCount:  r.HoleCount,
			Moves:      r.Moves,
			EndedAt:    r.EndedAt,
			PlaytimeMs: float64(r.Playtime().Milliseconds()),
		})
	}
	return out, nil
}

func (f *fakeRecords) saved() []repository.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]repository.Record(nil), f.records...)
}

type testEnv struct {
	handler *GameHandler
	jwt     *config.JWT
	router  http.Handler
}

func newTestEnv(t *testing.T, records RecordStore) *testEnv {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	jwt, err := config.NewJWT("test-secret", time.Hour)
	require.NoError(t, err)
	cfg := config.Default()
	cookies := config.NewCookies(cfg, jwt)

	store := session.NewStore(rand.New(rand.NewPCG(1, 2)), time.Hour, log)
	h := NewGameHandler(log, store, jwt, cookies, config.NewWebSocket(cfg), records)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/game", h.NewGame)
	mux.HandleFunc("GET /v1/game/{id}", h.Fetch)
	mux.HandleFunc("POST /v1/game/{id}/open", h.Open)
	mux.HandleFunc("POST /v1/game/{id}/flag", h.Flag)
	mux.HandleFunc("POST /v1/game/{id}/unflag", h.Unflag)
	mux.HandleFunc("POST /v1/game/{id}/batch", h.Batch)
	mux.HandleFunc("GET /v1/game/{id}/connect", h.ConnectWS)
	mux.HandleFunc("GET /v1/records", h.Records)
	mux.HandleFunc("GET /v1/healthz", Health)

	return &testEnv{
		handler: h,
		jwt:     jwt,
		router:  middleware.Wrap(mux, middleware.Auth(cookies)),
	}
}

func (e *testEnv) do(t *testing.T, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) newGame(t *testing.T, side, holes int) SessionDTO {
	t.Helper()
	rec := e.do(t, http.MethodPost, gameURL(side, holes), "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decodeBody[SessionDTO](t, rec)
}

func (e *testEnv) foreignToken(t *testing.T) string {
	t.Helper()
	token, err := e.jwt.Sign(uuid.New(), time.Now())
	require.NoError(t, err)
	return token
}

func gameURL(side, holes int) string {
	return fmt.Sprintf("/v1/game?side=%d&holes=%d", side, holes)
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
