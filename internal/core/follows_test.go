package core

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowUserSelf(t *testing.T) {
	c, _ := newTestCore(t)
	id := uuid.New()

	_, err := c.FollowUser(context.Background(), id, id)
	assert.ErrorIs(t, err, ErrSelfFollow)
}

func TestFollowUserUpdatesCounters(t *testing.T) {
	c, mock := newTestCore(t)
	follower, target := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO user_follows`).WithArgs(follower, target).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`SET following_count`).WithArgs(follower, 1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`SET followers_count`).WithArgs(target, 1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM profiles WHERE id = \$1`).WithArgs(target).WillReturnRows(profileRows(target, "rain_saver"))
	mock.ExpectCommit()

	profile, err := c.FollowUser(context.Background(), follower, target)
	require.NoError(t, err)
	assert.Equal(t, target, profile.ID)
}

func TestFollowUserAlreadyFollowing(t *testing.T) {
	c, mock := newTestCore(t)
	follower, target := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO user_follows`).
		WillReturnError(&pq.Error{Code: pqUniqueViolation, Constraint: "user_follows_pkey"})
	mock.ExpectRollback()

	_, err := c.FollowUser(context.Background(), follower, target)
	assert.ErrorIs(t, err, ErrAlreadyFollowing)
}

func TestFollowUserUnknownTarget(t *testing.T) {
	c, mock := newTestCore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO user_follows`).WillReturnError(&pq.Error{Code: pqForeignKeyViolation})
	mock.ExpectRollback()

	_, err := c.FollowUser(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, NoRecordFound)
}

func TestUnfollowUser(t *testing.T) {
	c, mock := newTestCore(t)
	follower, target := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM user_follows`).WithArgs(follower, target).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`SET following_count`).WithArgs(follower, -1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`SET followers_count`).WithArgs(target, -1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM profiles WHERE id`).WithArgs(target).WillReturnRows(profileRows(target, "rain_saver"))
	mock.ExpectCommit()

	_, err := c.UnfollowUser(context.Background(), follower, target)
	require.NoError(t, err)
}

func TestUnfollowUserNotFollowing(t *testing.T) {
	c, mock := newTestCore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM user_follows`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := c.UnfollowUser(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFollowing)
}

func TestIsFollowing(t *testing.T) {
	c, mock := newTestCore(t)

	mock.ExpectQuery(`SELECT EXISTS`).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	following, err := c.IsFollowing(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.True(t, following)
}
