package core

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Revanthsudeeep/waterconservation/internal/utils/databaseutils"
	"github.com/Revanthsudeeep/waterconservation/models"
	"github.com/mdobak/go-xerrors"
)

// ZoneQuery narrows ListZones. Empty State or City and a zero Since leave that dimension open.
type ZoneQuery struct {
	State string
	City  string
	Since time.Time
}

const zoneColumns = `id, location, sub_city, state, position, severity, water_level, rainfall_data, groundwater_level, last_updated`

func scanZone(rows *sql.Rows) (*models.ZoneRecord, error) {
	zone := &models.ZoneRecord{}
	var position string
	if err := rows.Scan(
		&zone.ID,
		&zone.Location,
		&zone.SubCity,
		&zone.State,
		&position,
		&zone.Severity,
		&zone.WaterLevel,
		&zone.RainfallData,
		&zone.GroundwaterLevel,
		&zone.LastUpdated,
	); err != nil {
		return nil, xerrors.New(err)
	}
	zone.Position = json.RawMessage(position)
	return zone, nil
}

// ListZones returns raw zone rows; positions are left for geo.NormalizeZones.
func (c *Core) ListZones(ctx context.Context, q ZoneQuery) ([]*models.ZoneRecord, error) {
	var (
		conditions []string
		args       []any
	)
	if q.State != "" {
		args = append(args, q.State)
		conditions = append(conditions, fmt.Sprintf("state = $%d", len(args)))
	}
	if q.City != "" {
		args = append(args, q.City)
		conditions = append(conditions, fmt.Sprintf("location = $%d", len(args)))
	}
	if !q.Since.IsZero() {
		args = append(args, q.Since)
		conditions = append(conditions, fmt.Sprintf("last_updated >= $%d", len(args)))
	}

	query := `SELECT ` + zoneColumns + ` FROM water_zones`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY state, location`

	zones, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanZone, args...)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return zones, nil
}

func (c *Core) CreateZone(ctx context.Context, zone *models.ZoneRecord) (*models.ZoneRecord, error) {
	lastUpdated := zone.LastUpdated
	if lastUpdated.IsZero() {
		lastUpdated = time.Now()
	}

	query := `
		INSERT INTO water_zones (location, sub_city, state, position, severity, water_level, rainfall_data, groundwater_level, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + zoneColumns

	created, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanZone,
		zone.Location, zone.SubCity, zone.State, string(zone.Position), zone.Severity,
		zone.WaterLevel, zone.RainfallData, zone.GroundwaterLevel, lastUpdated)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return created, nil
}
