package main

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthcheck(t *testing.T) {
	t.Run("available", func(t *testing.T) {
		app, mock := newTestApplication(t)

		rows := sqlmock.NewRows([]string{"table_name"})
		for _, table := range []string{"users", "profiles", "user_follows", "articles", "video_tutorials", "posts", "comments", "water_zones"} {
			rows.AddRow(table)
		}
		mock.ExpectQuery(`FROM information_schema.tables`).WillReturnRows(rows)

		rr := do(t, app, http.MethodGet, "/api/healthcheck", nil, "")
		require.Equal(t, http.StatusOK, rr.Code)

		body := decode(t, rr)
		assert.Equal(t, "available", body["status"])
		assert.Empty(t, body["missing_tables"])
		assert.Equal(t, "testing", body["system_info"].(map[string]any)["environment"])
	})

	t.Run("degraded", func(t *testing.T) {
		app, mock := newTestApplication(t)

		mock.ExpectQuery(`FROM information_schema.tables`).
			WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("users").AddRow("profiles"))

		rr := do(t, app, http.MethodGet, "/api/healthcheck", nil, "")
		require.Equal(t, http.StatusOK, rr.Code)

		body := decode(t, rr)
		assert.Equal(t, "degraded", body["status"])
		assert.Contains(t, body["missing_tables"], "water_zones")
	})
}
