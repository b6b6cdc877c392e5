package geo

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"

	"github.com/Revanthsudeeep/waterconservation/models"
	"github.com/mdobak/go-xerrors"
)

var ErrInvalidPosition = xerrors.Message("position is not a pair of finite numbers")

// Position is a (latitude, longitude) pair.
type Position [2]float64

// NormalizePosition accepts the three encodings found in water_zones.position:
// a JSON string holding an array ("[12.9,77.6]"), a two-element array, or an
// object keyed "0" and "1".
func NormalizePosition(raw json.RawMessage) (Position, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Position{}, xerrors.New(ErrInvalidPosition)
	}

	switch raw[0] {
	case '"':
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return Position{}, xerrors.New(ErrInvalidPosition)
		}
		inner := bytes.TrimSpace([]byte(encoded))
		if len(inner) == 0 || inner[0] != '[' {
			return Position{}, xerrors.New(ErrInvalidPosition)
		}
		return fromArray(inner)
	case '[':
		return fromArray(raw)
	case '{':
		return fromObject(raw)
	default:
		return Position{}, xerrors.New(ErrInvalidPosition)
	}
}

func fromArray(raw []byte) (Position, error) {
	var values []json.RawMessage
	if err := json.Unmarshal(raw, &values); err != nil || len(values) != 2 {
		return Position{}, xerrors.New(ErrInvalidPosition)
	}
	return pair(values[0], values[1])
}

func fromObject(raw []byte) (Position, error) {
	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keyed); err != nil {
		return Position{}, xerrors.New(ErrInvalidPosition)
	}
	lat, okLat := keyed["0"]
	lon, okLon := keyed["1"]
	if !okLat || !okLon {
		return Position{}, xerrors.New(ErrInvalidPosition)
	}
	return pair(lat, lon)
}

// pair only accepts JSON numbers; numeric strings and nulls are rejected.
func pair(a, b json.RawMessage) (Position, error) {
	var p Position
	for i, raw := range []json.RawMessage{a, b} {
		var n json.Number
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&n); err != nil {
			return Position{}, xerrors.New(ErrInvalidPosition)
		}
		if bytes.HasPrefix(bytes.TrimSpace(raw), []byte(`"`)) {
			return Position{}, xerrors.New(ErrInvalidPosition)
		}
		f, err := n.Float64()
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return Position{}, xerrors.New(ErrInvalidPosition)
		}
		p[i] = f
	}
	return p, nil
}

// NormalizeZones converts stored records into map markers, logging and
// dropping any record whose position cannot be normalized.
func NormalizeZones(records []*models.ZoneRecord, logger *slog.Logger) []*models.WaterZone {
	zones := make([]*models.WaterZone, 0, len(records))
	for _, record := range records {
		position, err := NormalizePosition(record.Position)
		if err != nil {
			logger.Warn("dropping water zone with invalid position",
				slog.Int64("zone_id", record.ID),
				slog.String("location", record.Location),
				slog.String("position", string(record.Position)),
			)
			continue
		}

		severity := ParseSeverity(record.Severity)
		zones = append(zones, &models.WaterZone{
			ID:               record.ID,
			Location:         record.Location,
			SubCity:          record.SubCity,
			State:            record.State,
			Position:         position,
			Severity:         string(severity),
			MarkerColor:      severity.Color(),
			WaterLevel:       record.WaterLevel,
			RainfallData:     record.RainfallData,
			GroundwaterLevel: record.GroundwaterLevel,
			LastUpdated:      record.LastUpdated,
		})
	}
	return zones
}
