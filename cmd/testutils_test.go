package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Revanthsudeeep/waterconservation/internal/auth"
	"github.com/Revanthsudeeep/waterconservation/internal/config"
	"github.com/Revanthsudeeep/waterconservation/internal/core"
	"github.com/Revanthsudeeep/waterconservation/internal/storage"
	"github.com/Revanthsudeeep/waterconservation/internal/utils/databaseutils"
	"github.com/Revanthsudeeep/waterconservation/internal/weather"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	fixedTime   = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	profileCols = []string{"id", "username", "full_name", "avatar_url", "bio", "role", "level", "following_count", "followers_count", "created_at", "updated_at"}
	userCols    = []string{"id", "email", "password", "full_name", "avatar_url"}
)

type stubModerator struct {
	relevant bool
	err      error
	calls    int
}

func (m *stubModerator) IsRelevant(context.Context, string) (bool, error) {
	m.calls++
	return m.relevant, m.err
}

func newTestApplication(t *testing.T) (*application, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	bucket, err := storage.NewDiskBucket(t.TempDir(), "http://localhost:4000")
	require.NoError(t, err)

	cfg := config.Config{Env: "testing", Version: "test"}
	app := &application{
		config:    cfg,
		logger:    logger,
		core:      core.NewCore(db, logger, databaseutils.NewSQLTemplate(db, time.Second)),
		auth:      auth.New("test-secret", time.Hour),
		weather:   weather.NewClient(weather.Options{}, weather.NoCache{}, logger),
		moderator: &stubModerator{relevant: true},
		bucket:    bucket,
	}

	t.Cleanup(func() {
		app.wg.Wait()
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	return app, mock
}

// signedIn returns a token for a fresh user and queues the lookup the authenticate middleware performs.
func signedIn(t *testing.T, app *application, mock sqlmock.Sqlmock) (*auth.User, string) {
	t.Helper()

	user := &auth.User{ID: uuid.New(), Email: "asha@example.com"}
	token, err := app.auth.GenerateToken(user)
	require.NoError(t, err)

	mock.ExpectQuery(`FROM users WHERE id = \$1`).WithArgs(user.ID).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(user.ID.String(), user.Email, []byte("hash"), nil, nil))

	return user, token
}

func profileRows(id uuid.UUID, username string) *sqlmock.Rows {
	return sqlmock.NewRows(profileCols).
		AddRow(id.String(), username, "Asha Rao", nil, "", "member", 1, 0, 0, fixedTime, fixedTime)
}

func do(t *testing.T, app *application, method, target string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		js, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(js)
	}

	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	rr := httptest.NewRecorder()
	app.routes().ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}
