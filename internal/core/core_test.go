package core

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Revanthsudeeep/waterconservation/internal/utils/databaseutils"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	fixedTime   = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	profileCols = []string{"id", "username", "full_name", "avatar_url", "bio", "role", "level", "following_count", "followers_count", "created_at", "updated_at"}
)

func newTestCore(t *testing.T) (*Core, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCore(db, logger, databaseutils.NewSQLTemplate(db, time.Second)), mock
}

func profileRows(id uuid.UUID, username string) *sqlmock.Rows {
	return sqlmock.NewRows(profileCols).
		AddRow(id.String(), username, "Asha Rao", nil, "", "member", 1, 0, 0, fixedTime, fixedTime)
}

func TestPqErrorClassification(t *testing.T) {
	unique := &pq.Error{Code: pqUniqueViolation, Constraint: "users_email_key"}
	assert.True(t, isUniqueViolation(unique, "users_email_key"))
	assert.True(t, isUniqueViolation(unique, ""))
	assert.False(t, isUniqueViolation(unique, "profiles_username_key"))
	assert.False(t, isForeignKeyViolation(unique))

	assert.True(t, isForeignKeyViolation(&pq.Error{Code: pqForeignKeyViolation}))
	assert.False(t, isUniqueViolation(io.EOF, ""))
}
