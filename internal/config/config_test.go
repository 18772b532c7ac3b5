package config

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRead(t *testing.T) {
	path := writeConfig(t, `
mode: production
addr: ":8080"
domain: proxx.example
session_ttl: 30m
sweep_interval: 15
postgres:
  host: db
  port: 5433
  user: proxx
  password: secret
  db_name: proxx
jwt:
  token_lifetime: 2h
  secret: from-file
`)

	config, err := Read(path)
	require.NoError(t, err)

	assert.True(t, config.Production())
	assert.Equal(t, ":8080", config.Addr)
	assert.Equal(t, 30*time.Minute, config.SessionTTL.Duration)
	assert.Equal(t, 15*time.Second, config.SweepInterval.Duration)
	assert.Equal(t, 2*time.Hour, config.JWT.TokenLifetime.Duration)
	assert.Equal(t, "from-file", config.JWT.Secret)
	assert.True(t, config.Postgres.Enabled())
	assert.Equal(t,
		"postgres://proxx:secret@db:5433/proxx?sslmode=disable",
		config.Postgres.DatabaseURL(),
	)
	assert.Equal(t, http.SameSiteStrictMode, config.HttpCookieSameSite())
	assert.Equal(t, 50, config.Log.MaxSizeMB, "defaults are kept")
}

func TestReadEnvOverrides(t *testing.T) {
	secretPath := filepath.Join(t.TempDir(), "jwt")
	require.NoError(t, os.WriteFile(secretPath, []byte("from-env-file\n"), 0o600))

	t.Setenv("DATABASE_URL", "postgres://u:p@h:1/d")
	t.Setenv("JWT_SECRET_FILE", secretPath)

	config, err := Read(writeConfig(t, "jwt:\n  secret: from-file\n"))
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@h:1/d", config.Postgres.DatabaseURL())
	assert.Equal(t, "from-env-file", config.JWT.Secret)
	assert.True(t, config.Development())
}

func TestReadErrors(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Read(writeConfig(t, "session_ttl: soon\n"))
	assert.Error(t, err)

	t.Setenv("POSTGRES_PORT", "port")
	_, err = Read(writeConfig(t, "mode: development\n"))
	assert.Error(t, err)
}

func TestRecordsDisabledByDefault(t *testing.T) {
	assert.False(t, Default().Postgres.Enabled())
}

func TestJWT(t *testing.T) {
	_, err := NewJWT("", time.Hour)
	assert.Error(t, err)

	j, err := NewJWT("secret", time.Hour)
	require.NoError(t, err)

	id := uuid.New()
	token, err := j.Sign(id, time.Now())
	require.NoError(t, err)

	claims, err := j.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.SessionID)

	other, err := NewJWT("other", time.Hour)
	require.NoError(t, err)
	_, err = other.Parse(token)
	assert.Error(t, err)

	expired, err := j.Sign(id, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	_, err = j.Parse(expired)
	assert.Error(t, err)
}

func TestCookies(t *testing.T) {
	j, err := NewJWT("secret", time.Hour)
	require.NoError(t, err)
	cookies := NewCookies(Default(), j)

	id := uuid.New()
	token, err := j.Sign(id, time.Now())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, cookies.Refresh(rec, token))
	set := rec.Result().Cookies()
	require.Len(t, set, 2)
	assert.False(t, set[0].HttpOnly)
	assert.True(t, set[1].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range set {
		req.AddCookie(c)
	}
	claims, err := cookies.ParseClaims(req)
	require.NoError(t, err)
	assert.Equal(t, id, claims.SessionID)

	assert.Error(t, cookies.Refresh(httptest.NewRecorder(), "not-a-token"))
}

func TestParseClaimsBearer(t *testing.T) {
	j, err := NewJWT("secret", time.Hour)
	require.NoError(t, err)
	cookies := NewCookies(Default(), j)

	id := uuid.New()
	token, err := j.Sign(id, time.Now())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	claims, err := cookies.ParseClaims(req)
	require.NoError(t, err)
	assert.Equal(t, id, claims.SessionID)

	req.Header.Set("Authorization", "Basic Zm9vOmJhcg==")
	_, err = cookies.ParseClaims(req)
	assert.Error(t, err)

	_, err = cookies.ParseClaims(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, ErrNoToken)
}
