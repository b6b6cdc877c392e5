package core

import (
	"context"
	"database/sql"

	"github.com/Revanthsudeeep/waterconservation/internal/utils/databaseutils"
	"github.com/Revanthsudeeep/waterconservation/models"
	"github.com/google/uuid"
	"github.com/mdobak/go-xerrors"
)

const videoColumns = `id, title, description, thumbnail_url, video_url, category, duration, instructor, to_char(date, 'YYYY-MM-DD'), views`

func scanVideo(rows *sql.Rows) (*models.VideoTutorial, error) {
	video := &models.VideoTutorial{}
	if err := rows.Scan(
		&video.ID,
		&video.Title,
		&video.Description,
		&video.ThumbnailURL,
		&video.VideoURL,
		&video.Category,
		&video.Duration,
		&video.Instructor,
		&video.Date,
		&video.Views,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return video, nil
}

func (c *Core) ListVideos(ctx context.Context) ([]*models.VideoTutorial, error) {
	query := `SELECT ` + videoColumns + ` FROM video_tutorials ORDER BY date DESC, title`

	videos, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanVideo)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return videos, nil
}

func (c *Core) GetVideo(ctx context.Context, id uuid.UUID) (*models.VideoTutorial, error) {
	query := `SELECT ` + videoColumns + ` FROM video_tutorials WHERE id = $1`

	video, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanVideo, id)
	if err != nil {
		return nil, notFoundOr(err)
	}

	return video, nil
}

func (c *Core) CreateVideo(ctx context.Context, video *models.VideoTutorial) (*models.VideoTutorial, error) {
	if video.ID == uuid.Nil {
		video.ID = uuid.New()
	}

	query := `
		INSERT INTO video_tutorials (id, title, description, thumbnail_url, video_url, category, duration, instructor, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE(NULLIF($9, '')::date, CURRENT_DATE))
		RETURNING ` + videoColumns

	created, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanVideo,
		video.ID, video.Title, video.Description, video.ThumbnailURL, video.VideoURL, video.Category,
		video.Duration, video.Instructor, video.Date)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return created, nil
}

func (c *Core) IncrementVideoViews(ctx context.Context, id uuid.UUID) error {
	affected, err := databaseutils.Execute(c.sqlTemplate, ctx, `UPDATE video_tutorials SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return xerrors.New(err)
	}
	if affected == 0 {
		return xerrors.New(NoRecordFound)
	}
	return nil
}
