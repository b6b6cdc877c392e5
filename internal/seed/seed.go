package seed

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Revanthsudeeep/waterconservation/models"
	"github.com/mdobak/go-xerrors"
	"gopkg.in/yaml.v3"
)

// Catalog is the content of a seed file.
type Catalog struct {
	Articles []Article `yaml:"articles"`
	Videos   []Video   `yaml:"videos"`
	Zones    []Zone    `yaml:"zones"`
}

type Article struct {
	Title    string   `yaml:"title"`
	Content  string   `yaml:"content"`
	Category string   `yaml:"category"`
	ImageURL string   `yaml:"image_url"`
	Author   string   `yaml:"author"`
	Date     string   `yaml:"date"`
	Tags     []string `yaml:"tags"`
}

type Video struct {
	Title        string `yaml:"title"`
	Description  string `yaml:"description"`
	ThumbnailURL string `yaml:"thumbnail_url"`
	VideoURL     string `yaml:"video_url"`
	Category     string `yaml:"category"`
	Duration     string `yaml:"duration"`
	Instructor   string `yaml:"instructor"`
	Date         string `yaml:"date"`
}

type Zone struct {
	Location         string     `yaml:"location"`
	SubCity          string     `yaml:"sub_city"`
	State            string     `yaml:"state"`
	Position         [2]float64 `yaml:"position"`
	Severity         string     `yaml:"severity"`
	WaterLevel       float64    `yaml:"water_level"`
	RainfallData     float64    `yaml:"rainfall_data"`
	GroundwaterLevel float64    `yaml:"groundwater_level"`
	LastUpdated      time.Time  `yaml:"last_updated"`
}

// Store is the subset of core.Core the loader writes through.
type Store interface {
	CreateArticle(ctx context.Context, article *models.Article) (*models.Article, error)
	CreateVideo(ctx context.Context, video *models.VideoTutorial) (*models.VideoTutorial, error)
	CreateZone(ctx context.Context, zone *models.ZoneRecord) (*models.ZoneRecord, error)
}

type Counts struct {
	Articles int
	Videos   int
	Zones    int
}

func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.New(err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes a catalog, rejecting unknown keys and entries missing required fields.
func Parse(r io.Reader) (*Catalog, error) {
	var catalog Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&catalog); err != nil && !errors.Is(err, io.EOF) {
		return nil, xerrors.Newf("parsing seed catalog: %w", err)
	}

	for i, a := range catalog.Articles {
		if a.Title == "" {
			return nil, xerrors.Newf("article %d: title is required", i)
		}
	}
	for i, v := range catalog.Videos {
		if v.Title == "" || v.VideoURL == "" {
			return nil, xerrors.Newf("video %d: title and video_url are required", i)
		}
	}
	for i, z := range catalog.Zones {
		if z.Location == "" || z.State == "" {
			return nil, xerrors.Newf("zone %d: location and state are required", i)
		}
	}

	return &catalog, nil
}

// Apply inserts every catalog entry and stops at the first failure.
func Apply(ctx context.Context, store Store, catalog *Catalog, log *slog.Logger) (Counts, error) {
	var counts Counts

	for _, a := range catalog.Articles {
		article := &models.Article{
			Title:    a.Title,
			Content:  a.Content,
			Category: a.Category,
			ImageURL: a.ImageURL,
			Author:   a.Author,
			Date:     a.Date,
			Tags:     a.Tags,
		}
		if _, err := store.CreateArticle(ctx, article); err != nil {
			return counts, xerrors.Newf("seeding article %q: %w", a.Title, err)
		}
		counts.Articles++
	}

	for _, v := range catalog.Videos {
		video := &models.VideoTutorial{
			Title:        v.Title,
			Description:  v.Description,
			ThumbnailURL: v.ThumbnailURL,
			VideoURL:     v.VideoURL,
			Category:     v.Category,
			Duration:     v.Duration,
			Instructor:   v.Instructor,
			Date:         v.Date,
		}
		if _, err := store.CreateVideo(ctx, video); err != nil {
			return counts, xerrors.Newf("seeding video %q: %w", v.Title, err)
		}
		counts.Videos++
	}

	for _, z := range catalog.Zones {
		position, err := json.Marshal(z.Position)
		if err != nil {
			return counts, xerrors.New(err)
		}
		zone := &models.ZoneRecord{
			Location:         z.Location,
			SubCity:          z.SubCity,
			State:            z.State,
			Position:         position,
			Severity:         z.Severity,
			WaterLevel:       z.WaterLevel,
			RainfallData:     z.RainfallData,
			GroundwaterLevel: z.GroundwaterLevel,
			LastUpdated:      z.LastUpdated,
		}
		if zone.Severity == "" {
			zone.Severity = "low"
		}
		if _, err := store.CreateZone(ctx, zone); err != nil {
			return counts, xerrors.Newf("seeding zone %q: %w", z.Location, err)
		}
		counts.Zones++
	}

	log.Info("seed applied",
		slog.Int("articles", counts.Articles),
		slog.Int("videos", counts.Videos),
		slog.Int("zones", counts.Zones))

	return counts, nil
}
