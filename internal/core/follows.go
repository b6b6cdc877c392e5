package core

import (
	"context"
	"database/sql"

	"github.com/Revanthsudeeep/waterconservation/internal/utils/databaseutils"
	"github.com/Revanthsudeeep/waterconservation/models"
	"github.com/google/uuid"
	"github.com/mdobak/go-xerrors"
)

// FollowUser records that followerID follows targetID and returns the target's updated profile.
func (c *Core) FollowUser(ctx context.Context, followerID, targetID uuid.UUID) (*models.Profile, error) {
	if followerID == targetID {
		return nil, xerrors.New(ErrSelfFollow)
	}

	return databaseutils.DoTransactionally(ctx, c.session, func(txCtx context.Context) (*models.Profile, error) {
		_, err := databaseutils.Execute(c.sqlTemplate, txCtx,
			`INSERT INTO user_follows (follower_id, following_id) VALUES ($1, $2)`, followerID, targetID)
		if err != nil {
			switch {
			case isUniqueViolation(err, ""):
				return nil, xerrors.New(ErrAlreadyFollowing)
			case isForeignKeyViolation(err):
				return nil, xerrors.New(NoRecordFound)
			default:
				return nil, xerrors.New(err)
			}
		}

		if err := c.adjustFollowCounters(txCtx, followerID, targetID, 1); err != nil {
			return nil, err
		}

		return c.GetProfile(txCtx, targetID)
	})
}

func (c *Core) UnfollowUser(ctx context.Context, followerID, targetID uuid.UUID) (*models.Profile, error) {
	return databaseutils.DoTransactionally(ctx, c.session, func(txCtx context.Context) (*models.Profile, error) {
		affected, err := databaseutils.Execute(c.sqlTemplate, txCtx,
			`DELETE FROM user_follows WHERE follower_id = $1 AND following_id = $2`, followerID, targetID)
		if err != nil {
			return nil, xerrors.New(err)
		}
		if affected == 0 {
			return nil, xerrors.New(ErrNotFollowing)
		}

		if err := c.adjustFollowCounters(txCtx, followerID, targetID, -1); err != nil {
			return nil, err
		}

		return c.GetProfile(txCtx, targetID)
	})
}

func (c *Core) adjustFollowCounters(ctx context.Context, followerID, targetID uuid.UUID, delta int) error {
	if _, err := databaseutils.Execute(c.sqlTemplate, ctx,
		`UPDATE profiles SET following_count = GREATEST(following_count + $2, 0) WHERE id = $1`, followerID, delta); err != nil {
		return xerrors.New(err)
	}
	if _, err := databaseutils.Execute(c.sqlTemplate, ctx,
		`UPDATE profiles SET followers_count = GREATEST(followers_count + $2, 0) WHERE id = $1`, targetID, delta); err != nil {
		return xerrors.New(err)
	}
	return nil
}

func (c *Core) IsFollowing(ctx context.Context, followerID, targetID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM user_follows WHERE follower_id = $1 AND following_id = $2)`

	following, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, func(rows *sql.Rows) (bool, error) {
		var exists bool
		if err := rows.Scan(&exists); err != nil {
			return false, xerrors.New(err)
		}
		return exists, nil
	}, followerID, targetID)
	if err != nil {
		return false, xerrors.New(err)
	}

	return following, nil
}
