package core

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var articleCols = []string{"id", "title", "content", "category", "image_url", "author", "date", "tags"}

func TestListArticles(t *testing.T) {
	c, mock := newTestCore(t)
	id := uuid.New()

	mock.ExpectQuery(`FROM articles ORDER BY date DESC`).
		WillReturnRows(sqlmock.NewRows(articleCols).
			AddRow(id.String(), "Drip Irrigation Basics", "<p>Save water</p>", "irrigation", "", "Priya", "2024-02-10", "{drip,garden}"))

	articles, err := c.ListArticles(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, id, articles[0].ID)
	assert.Equal(t, "2024-02-10", articles[0].Date)
	assert.Equal(t, []string{"drip", "garden"}, articles[0].Tags)
}

func TestListArticlesEmpty(t *testing.T) {
	c, mock := newTestCore(t)

	mock.ExpectQuery(`FROM articles`).WillReturnRows(sqlmock.NewRows(articleCols))

	articles, err := c.ListArticles(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, articles)
	assert.Empty(t, articles)
}

func TestGetArticleNotFound(t *testing.T) {
	c, mock := newTestCore(t)
	id := uuid.New()

	mock.ExpectQuery(`FROM articles WHERE id = \$1`).WithArgs(id).WillReturnRows(sqlmock.NewRows(articleCols))

	_, err := c.GetArticle(context.Background(), id)
	assert.ErrorIs(t, err, NoRecordFound)
}

func TestGetArticleDatabaseError(t *testing.T) {
	c, mock := newTestCore(t)

	mock.ExpectQuery(`FROM articles WHERE id`).WillReturnError(sql.ErrConnDone)

	_, err := c.GetArticle(context.Background(), uuid.New())
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NotErrorIs(t, err, NoRecordFound)
}

func TestIncrementVideoViews(t *testing.T) {
	c, mock := newTestCore(t)
	id := uuid.New()

	mock.ExpectExec(`UPDATE video_tutorials SET views = views \+ 1`).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, c.IncrementVideoViews(context.Background(), id))

	mock.ExpectExec(`UPDATE video_tutorials`).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, c.IncrementVideoViews(context.Background(), id), NoRecordFound)
}
