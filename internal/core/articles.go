package core

import (
	"context"
	"database/sql"

	"github.com/Revanthsudeeep/waterconservation/internal/utils/databaseutils"
	"github.com/Revanthsudeeep/waterconservation/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mdobak/go-xerrors"
)

const articleColumns = `id, title, content, category, image_url, author, to_char(date, 'YYYY-MM-DD'), tags`

func scanArticle(rows *sql.Rows) (*models.Article, error) {
	article := &models.Article{}
	if err := rows.Scan(
		&article.ID,
		&article.Title,
		&article.Content,
		&article.Category,
		&article.ImageURL,
		&article.Author,
		&article.Date,
		pq.Array(&article.Tags),
	); err != nil {
		return nil, xerrors.New(err)
	}
	return article, nil
}

func (c *Core) ListArticles(ctx context.Context) ([]*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles ORDER BY date DESC, title`

	articles, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanArticle)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return articles, nil
}

func (c *Core) GetArticle(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`

	article, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanArticle, id)
	if err != nil {
		return nil, notFoundOr(err)
	}

	return article, nil
}

// CreateArticle inserts an article; a nil ID gets a fresh one and an empty date means today.
func (c *Core) CreateArticle(ctx context.Context, article *models.Article) (*models.Article, error) {
	if article.ID == uuid.Nil {
		article.ID = uuid.New()
	}
	if article.Tags == nil {
		article.Tags = []string{}
	}

	query := `
		INSERT INTO articles (id, title, content, category, image_url, author, date, tags)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE(NULLIF($7, '')::date, CURRENT_DATE), $8)
		RETURNING ` + articleColumns

	created, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanArticle,
		article.ID, article.Title, article.Content, article.Category, article.ImageURL, article.Author,
		article.Date, pq.Array(article.Tags))
	if err != nil {
		return nil, xerrors.New(err)
	}

	return created, nil
}
