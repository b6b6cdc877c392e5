package core

import (
	"context"
	"database/sql"

	"github.com/Revanthsudeeep/waterconservation/internal/database"
	"github.com/Revanthsudeeep/waterconservation/internal/utils/collectionutils"
	"github.com/Revanthsudeeep/waterconservation/internal/utils/databaseutils"
	"github.com/Revanthsudeeep/waterconservation/internal/utils/functional"
	"github.com/lib/pq"
	"github.com/mdobak/go-xerrors"
)

// CheckTables reports which of database.RequiredTables are missing from the public schema.
func (c *Core) CheckTables(ctx context.Context) ([]string, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name = ANY($1)
	`

	present, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, func(rows *sql.Rows) (string, error) {
		var name string
		if err := rows.Scan(&name); err != nil {
			return "", xerrors.New(err)
		}
		return name, nil
	}, pq.Array(database.RequiredTables))
	if err != nil {
		return nil, xerrors.New(err)
	}

	missing := functional.Filter(database.RequiredTables, func(table string) bool {
		return !collectionutils.Contains(present, table)
	})
	return missing, nil
}
