package core

import (
	"context"
	"database/sql"

	"github.com/Revanthsudeeep/waterconservation/internal/utils/databaseutils"
	"github.com/Revanthsudeeep/waterconservation/internal/utils/stringutils"
	"github.com/Revanthsudeeep/waterconservation/models"
	"github.com/mdobak/go-xerrors"
)

func scanComment(rows *sql.Rows) (*models.Comment, error) {
	comment := &models.Comment{}
	if err := rows.Scan(
		&comment.ID,
		&comment.PostID,
		&comment.UserID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.Profiles.Username,
		&comment.Profiles.FullName,
		&comment.Profiles.AvatarURL,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return comment, nil
}

// CreateComment inserts the comment and returns it with its author summary.
func (c *Core) CreateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	query := `
		WITH inserted AS (
			INSERT INTO comments (post_id, user_id, content)
			VALUES ($1, $2, $3)
			RETURNING id, post_id, user_id, content, created_at
		)
		SELECT i.id, i.post_id, i.user_id, i.content, i.created_at, p.username, p.full_name, p.avatar_url
		FROM inserted i
		LEFT JOIN profiles p ON p.id = i.user_id
	`

	created, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanComment,
		comment.PostID, comment.UserID, comment.Content)
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return nil, xerrors.New(NoRecordFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return created, nil
}

// ListCommentsByPostIDs returns the comments of the given posts, oldest first.
func (c *Core) ListCommentsByPostIDs(ctx context.Context, postIDs []int64) ([]*models.Comment, error) {
	if len(postIDs) == 0 {
		return []*models.Comment{}, nil
	}

	placeholders, args := stringutils.Placeholders(postIDs, 0)
	query := `
		SELECT c.id, c.post_id, c.user_id, c.content, c.created_at, p.username, p.full_name, p.avatar_url
		FROM comments c
		LEFT JOIN profiles p ON p.id = c.user_id
		WHERE c.post_id IN (` + placeholders + `)
		ORDER BY c.created_at, c.id
	`

	comments, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanComment, args...)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return comments, nil
}
