package core

import (
	"context"
	"database/sql"

	"github.com/Revanthsudeeep/waterconservation/internal/community"
	"github.com/Revanthsudeeep/waterconservation/internal/utils/collectionutils"
	"github.com/Revanthsudeeep/waterconservation/internal/utils/databaseutils"
	"github.com/Revanthsudeeep/waterconservation/internal/utils/functional"
	"github.com/Revanthsudeeep/waterconservation/internal/utils/stringutils"
	"github.com/Revanthsudeeep/waterconservation/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mdobak/go-xerrors"
	"golang.org/x/sync/errgroup"
)

const (
	postColumns      = `id, user_id, content, image_url, likes, shares, tags, created_at`
	DefaultPostLimit = 50
)

func scanPost(rows *sql.Rows) (*models.Post, error) {
	post := &models.Post{}
	var likes pq.StringArray
	if err := rows.Scan(
		&post.ID,
		&post.UserID,
		&post.Content,
		&post.ImageURL,
		&likes,
		&post.Shares,
		pq.Array(&post.Tags),
		&post.CreatedAt,
	); err != nil {
		return nil, xerrors.New(err)
	}

	parsed, err := parseUUIDs(likes)
	if err != nil {
		return nil, err
	}
	post.Likes = parsed
	if post.Tags == nil {
		post.Tags = []string{}
	}
	post.Comments = []*models.Comment{}
	return post, nil
}

func parseUUIDs(values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, xerrors.Newf("malformed id %q in likes: %w", v, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func likesArray(likes []uuid.UUID) pq.StringArray {
	arr := make(pq.StringArray, len(likes))
	for i, id := range likes {
		arr[i] = id.String()
	}
	return arr
}

// ListPosts returns the newest posts with their authors and comments attached.
func (c *Core) ListPosts(ctx context.Context, limit int) ([]*models.Post, error) {
	if limit <= 0 {
		limit = DefaultPostLimit
	}

	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC, id DESC LIMIT $1`

	posts, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanPost, limit)
	if err != nil {
		return nil, xerrors.New(err)
	}
	if len(posts) == 0 {
		return []*models.Post{}, nil
	}

	var (
		authors  map[uuid.UUID]models.AuthorSummary
		comments []*models.Comment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		userIDs := functional.Unique(functional.Map(posts, func(p *models.Post) uuid.UUID { return p.UserID }))
		var err error
		authors, err = c.getAuthorSummaries(gctx, userIDs)
		return err
	})
	g.Go(func() error {
		postIDs := functional.Map(posts, func(p *models.Post) int64 { return p.ID })
		var err error
		comments, err = c.ListCommentsByPostIDs(gctx, postIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	commentsByPost := collectionutils.GroupBy(comments, func(cm *models.Comment) int64 { return cm.PostID })
	for _, post := range posts {
		post.Profiles = collectionutils.GetOrDefault(authors, post.UserID, models.AuthorSummary{})
		post.Comments = collectionutils.GetOrDefault(commentsByPost, post.ID, []*models.Comment{})
	}

	return posts, nil
}

func (c *Core) getAuthorSummaries(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]models.AuthorSummary, error) {
	if len(userIDs) == 0 {
		return map[uuid.UUID]models.AuthorSummary{}, nil
	}

	type row struct {
		id      uuid.UUID
		summary models.AuthorSummary
	}

	placeholders, args := stringutils.Placeholders(userIDs, 0)
	query := `SELECT id, username, full_name, avatar_url FROM profiles WHERE id IN (` + placeholders + `)`

	rows, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, func(rows *sql.Rows) (row, error) {
		var r row
		if err := rows.Scan(&r.id, &r.summary.Username, &r.summary.FullName, &r.summary.AvatarURL); err != nil {
			return r, xerrors.New(err)
		}
		return r, nil
	}, args...)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return collectionutils.Associate(rows, func(r row) (uuid.UUID, models.AuthorSummary) {
		return r.id, r.summary
	}), nil
}

func (c *Core) CreatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	if post.Tags == nil {
		post.Tags = []string{}
	}

	query := `
		INSERT INTO posts (user_id, content, image_url, tags)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + postColumns

	created, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanPost,
		post.UserID, post.Content, post.ImageURL, pq.Array(post.Tags))
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return nil, xerrors.New(NoRecordFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	authors, err := c.getAuthorSummaries(ctx, []uuid.UUID{created.UserID})
	if err != nil {
		return nil, err
	}
	created.Profiles = authors[created.UserID]

	return created, nil
}

func (c *Core) GetPostLikes(ctx context.Context, postID int64) ([]uuid.UUID, error) {
	likes, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, `SELECT likes FROM posts WHERE id = $1`,
		func(rows *sql.Rows) ([]uuid.UUID, error) {
			var raw pq.StringArray
			if err := rows.Scan(&raw); err != nil {
				return nil, xerrors.New(err)
			}
			return parseUUIDs(raw)
		}, postID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	return likes, nil
}

func (c *Core) SetPostLikes(ctx context.Context, postID int64, likes []uuid.UUID) error {
	affected, err := databaseutils.Execute(c.sqlTemplate, ctx, `UPDATE posts SET likes = $2 WHERE id = $1`, postID, likesArray(likes))
	if err != nil {
		return xerrors.New(err)
	}
	if affected == 0 {
		return xerrors.New(NoRecordFound)
	}
	return nil
}

// ToggleLike adds userID to the post's likes or removes it when already present.
// Read and write are separate statements, so concurrent toggles may lose an update.
func (c *Core) ToggleLike(ctx context.Context, postID int64, userID uuid.UUID) ([]uuid.UUID, bool, error) {
	likes, err := c.GetPostLikes(ctx, postID)
	if err != nil {
		return nil, false, err
	}

	updated, liked := community.ToggleLike(likes, userID)
	if err := c.SetPostLikes(ctx, postID, updated); err != nil {
		return nil, false, err
	}

	return updated, liked, nil
}

func (c *Core) IncrementShares(ctx context.Context, postID int64) (int64, error) {
	shares, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx,
		`UPDATE posts SET shares = shares + 1 WHERE id = $1 RETURNING shares`,
		func(rows *sql.Rows) (int64, error) {
			var n int64
			if err := rows.Scan(&n); err != nil {
				return 0, xerrors.New(err)
			}
			return n, nil
		}, postID)
	if err != nil {
		return 0, notFoundOr(err)
	}

	return shares, nil
}
