// Package weather fetches current conditions from an OpenWeatherMap-compatible API.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mdobak/go-xerrors"
)

var (
	ErrNotConfigured = xerrors.Message("weather API key is not configured")
	ErrUpstream      = xerrors.Message("weather provider returned an error")
)

type Conditions struct {
	Latitude     float64   `json:"lat"`
	Longitude    float64   `json:"lon"`
	City         string    `json:"city"`
	Summary      string    `json:"summary"`
	Description  string    `json:"description"`
	Temperature  float64   `json:"temperature"`
	FeelsLike    float64   `json:"feels_like"`
	Humidity     int       `json:"humidity"`
	RainLastHour float64   `json:"rain_1h"`
	ObservedAt   time.Time `json:"observed_at"`
	Cached       bool      `json:"cached"`
}

type Options struct {
	BaseURL    string
	APIKey     string
	CacheTTL   time.Duration
	HTTPClient *http.Client
}

type Client struct {
	baseURL    string
	apiKey     string
	cacheTTL   time.Duration
	httpClient *http.Client
	cache      Cache
	logger     *slog.Logger
}

func NewClient(opts Options, cache Cache, logger *slog.Logger) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if cache == nil {
		cache = NoCache{}
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		cacheTTL:   opts.CacheTTL,
		httpClient: httpClient,
		cache:      cache,
		logger:     logger,
	}
}

// Close releases the cache connection.
func (c *Client) Close() error {
	return c.cache.Close()
}

// Current returns the conditions at lat/lon in metric units.
func (c *Client) Current(ctx context.Context, lat, lon float64) (*Conditions, error) {
	if c.apiKey == "" {
		return nil, xerrors.New(ErrNotConfigured)
	}

	key := cacheKey(lat, lon)
	if cached, ok, err := c.cache.Get(ctx, key); err != nil {
		c.logger.Warn("weather cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	} else if ok {
		var conditions Conditions
		if err := json.Unmarshal(cached, &conditions); err == nil {
			conditions.Cached = true
			return &conditions, nil
		}
	}

	conditions, err := c.fetch(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(conditions); err == nil {
		if err := c.cache.Set(ctx, key, encoded, c.cacheTTL); err != nil {
			c.logger.Warn("weather cache write failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}
	return conditions, nil
}

type apiResponse struct {
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Rain struct {
		OneHour float64 `json:"1h"`
	} `json:"rain"`
	Name string `json:"name"`
	Dt   int64  `json:"dt"`
}

func (c *Client) fetch(ctx context.Context, lat, lon float64) (*Conditions, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/data/2.5/weather?"+query.Encode(), nil)
	if err != nil {
		return nil, xerrors.New(err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, xerrors.New(err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, xerrors.Newf("%w: unexpected status %d", ErrUpstream, res.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, xerrors.Newf("%w: decoding response: %v", ErrUpstream, err)
	}

	conditions := &Conditions{
		Latitude:     payload.Coord.Lat,
		Longitude:    payload.Coord.Lon,
		City:         payload.Name,
		Temperature:  payload.Main.Temp,
		FeelsLike:    payload.Main.FeelsLike,
		Humidity:     payload.Main.Humidity,
		RainLastHour: payload.Rain.OneHour,
	}
	if payload.Dt > 0 {
		conditions.ObservedAt = time.Unix(payload.Dt, 0).UTC()
	}
	if len(payload.Weather) > 0 {
		conditions.Summary = payload.Weather[0].Main
		conditions.Description = payload.Weather[0].Description
	}
	return conditions, nil
}

// cacheKey rounds to two decimals (about a kilometre) so nearby lookups share an entry.
func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("weather:%.2f:%.2f", lat, lon)
}
