package seed

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/Revanthsudeeep/waterconservation/internal/geo"
	"github.com/Revanthsudeeep/waterconservation/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogYAML = `
articles:
  - title: Rainwater Harvesting 101
    content: "<p>Collect what falls.</p>"
    category: harvesting
    author: Priya
    date: "2024-02-10"
    tags: [rain, roof]
videos:
  - title: Build a Rain Barrel
    video_url: https://www.youtube.com/watch?v=abc123
    category: diy
zones:
  - location: Chennai
    sub_city: Adyar
    state: Tamil Nadu
    position: [13.0012, 80.2565]
    severity: high
    water_level: 12.5
`

type memoryStore struct {
	articles []*models.Article
	videos   []*models.VideoTutorial
	zones    []*models.ZoneRecord
	failOn   string
}

func (m *memoryStore) CreateArticle(_ context.Context, a *models.Article) (*models.Article, error) {
	m.articles = append(m.articles, a)
	return a, nil
}

func (m *memoryStore) CreateVideo(_ context.Context, v *models.VideoTutorial) (*models.VideoTutorial, error) {
	if m.failOn == v.Title {
		return nil, errors.New("insert failed")
	}
	m.videos = append(m.videos, v)
	return v, nil
}

func (m *memoryStore) CreateZone(_ context.Context, z *models.ZoneRecord) (*models.ZoneRecord, error) {
	m.zones = append(m.zones, z)
	return z, nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseAndApply(t *testing.T) {
	catalog, err := Parse(strings.NewReader(catalogYAML))
	require.NoError(t, err)

	store := &memoryStore{}
	counts, err := Apply(context.Background(), store, catalog, discard())
	require.NoError(t, err)
	assert.Equal(t, Counts{Articles: 1, Videos: 1, Zones: 1}, counts)

	assert.Equal(t, []string{"rain", "roof"}, store.articles[0].Tags)
	assert.Equal(t, "2024-02-10", store.articles[0].Date)

	zone := store.zones[0]
	assert.JSONEq(t, `[13.0012, 80.2565]`, string(zone.Position))
	position, err := geo.NormalizePosition(zone.Position)
	require.NoError(t, err)
	assert.Equal(t, geo.Position{13.0012, 80.2565}, position)
}

func TestParseDefaultsSeverity(t *testing.T) {
	catalog, err := Parse(strings.NewReader("zones:\n  - location: Pune\n    state: Maharashtra\n    position: [18.5, 73.8]\n"))
	require.NoError(t, err)

	store := &memoryStore{}
	_, err = Apply(context.Background(), store, catalog, discard())
	require.NoError(t, err)
	assert.Equal(t, "low", store.zones[0].Severity)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader("articles:\n  - title: x\n    colour: blue\n"))
	assert.Error(t, err)
}

func TestParseRequiresFields(t *testing.T) {
	_, err := Parse(strings.NewReader("videos:\n  - title: No URL\n"))
	assert.ErrorContains(t, err, "video_url")
}

func TestParseEmpty(t *testing.T) {
	catalog, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, catalog.Articles)
}

func TestApplyStopsAtFirstFailure(t *testing.T) {
	catalog, err := Parse(strings.NewReader(catalogYAML))
	require.NoError(t, err)

	store := &memoryStore{failOn: "Build a Rain Barrel"}
	counts, err := Apply(context.Background(), store, catalog, discard())
	assert.ErrorContains(t, err, "Build a Rain Barrel")
	assert.Equal(t, Counts{Articles: 1}, counts)
	assert.Empty(t, store.zones)
}
