package geo

import (
	"strings"
	"time"

	"github.com/mdobak/go-xerrors"
)

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// DefaultCenter is where the map opens: the geographic centre of India.
var DefaultCenter = Position{20.5937, 78.9629}

// ParseSeverity lower-cases s; anything unrecognised is treated as low.
func ParseSeverity(s string) Severity {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case SeverityHigh:
		return SeverityHigh
	case SeverityMedium:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

func (s Severity) Color() string {
	switch s {
	case SeverityHigh:
		return "#ef4444"
	case SeverityMedium:
		return "#f59e0b"
	default:
		return "#10b981"
	}
}

var ErrUnknownTimeRange = xerrors.Message("unknown time range")

// TimeRange limits zones by last_updated.
type TimeRange string

const (
	Last7Days  TimeRange = "7days"
	Last30Days TimeRange = "30days"
	Last90Days TimeRange = "90days"
	AllTime    TimeRange = "all"

	DefaultTimeRange = Last7Days
)

func ParseTimeRange(s string) (TimeRange, error) {
	if s == "" {
		return DefaultTimeRange, nil
	}
	switch r := TimeRange(s); r {
	case Last7Days, Last30Days, Last90Days, AllTime:
		return r, nil
	default:
		return "", xerrors.New(ErrUnknownTimeRange)
	}
}

// Since returns the oldest last_updated to include, or the zero time for AllTime.
func (r TimeRange) Since(now time.Time) time.Time {
	days := map[TimeRange]int{Last7Days: 7, Last30Days: 30, Last90Days: 90}[r]
	if days == 0 {
		return time.Time{}
	}
	return now.AddDate(0, 0, -days)
}
