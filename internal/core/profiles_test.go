package core

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Revanthsudeeep/waterconservation/internal/auth"
	"github.com/Revanthsudeeep/waterconservation/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureProfileReturnsExisting(t *testing.T) {
	c, mock := newTestCore(t)
	id := uuid.New()

	mock.ExpectQuery(`FROM profiles WHERE id = \$1`).WithArgs(id).WillReturnRows(profileRows(id, "asha"))

	profile, err := c.EnsureProfile(context.Background(), &auth.User{ID: id, Email: "asha@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "asha", *profile.Username)
}

func TestEnsureProfileProvisionsFromEmail(t *testing.T) {
	c, mock := newTestCore(t)
	id := uuid.New()

	mock.ExpectQuery(`FROM profiles WHERE id = \$1`).WithArgs(id).WillReturnRows(sqlmock.NewRows(profileCols))
	mock.ExpectQuery(`INSERT INTO profiles`).
		WithArgs(id, "asha", "asha", nil, "", models.RoleMember, 1).
		WillReturnRows(profileRows(id, "asha"))

	profile, err := c.EnsureProfile(context.Background(), &auth.User{ID: id, Email: "asha@example.com"})
	require.NoError(t, err)
	assert.Equal(t, id, profile.ID)
	assert.Equal(t, models.RoleMember, profile.Role)
	assert.Equal(t, 1, profile.Level)
}

func TestEnsureProfilePrefersMetadataFullName(t *testing.T) {
	c, mock := newTestCore(t)
	id := uuid.New()
	fullName := "Asha Rao"
	avatar := "https://cdn.example.com/a.png"

	mock.ExpectQuery(`FROM profiles WHERE id`).WillReturnRows(sqlmock.NewRows(profileCols))
	mock.ExpectQuery(`INSERT INTO profiles`).
		WithArgs(id, "asha", fullName, avatar, "", models.RoleMember, 1).
		WillReturnRows(profileRows(id, "asha"))

	_, err := c.EnsureProfile(context.Background(), &auth.User{ID: id, Email: "asha@example.com", FullName: &fullName, AvatarURL: &avatar})
	require.NoError(t, err)
}

func TestEnsureProfileSuffixesTakenUsername(t *testing.T) {
	c, mock := newTestCore(t)
	id := uuid.New()
	suffixed := "asha_" + id.String()[:8]

	mock.ExpectQuery(`FROM profiles WHERE id`).WillReturnRows(sqlmock.NewRows(profileCols))
	mock.ExpectQuery(`INSERT INTO profiles`).
		WillReturnError(&pq.Error{Code: pqUniqueViolation, Constraint: "profiles_username_key"})
	mock.ExpectQuery(`INSERT INTO profiles`).
		WithArgs(id, suffixed, "asha", nil, "", models.RoleMember, 1).
		WillReturnRows(profileRows(id, suffixed))

	profile, err := c.EnsureProfile(context.Background(), &auth.User{ID: id, Email: "asha@example.com"})
	require.NoError(t, err)
	assert.Equal(t, suffixed, *profile.Username)
}

func TestEnsureProfileConcurrentProvision(t *testing.T) {
	c, mock := newTestCore(t)
	id := uuid.New()

	mock.ExpectQuery(`FROM profiles WHERE id`).WillReturnRows(sqlmock.NewRows(profileCols))
	mock.ExpectQuery(`INSERT INTO profiles`).
		WillReturnError(&pq.Error{Code: pqUniqueViolation, Constraint: "profiles_pkey"})
	mock.ExpectQuery(`FROM profiles WHERE id`).WillReturnRows(profileRows(id, "asha"))

	profile, err := c.EnsureProfile(context.Background(), &auth.User{ID: id, Email: "asha@example.com"})
	require.NoError(t, err)
	assert.Equal(t, id, profile.ID)
}

func TestUpdateProfile(t *testing.T) {
	c, mock := newTestCore(t)
	id := uuid.New()
	username := "rain_saver"

	mock.ExpectQuery(`UPDATE profiles`).
		WithArgs(id, username, nil, nil, nil).
		WillReturnRows(profileRows(id, username))

	profile, err := c.UpdateProfile(context.Background(), id, models.ProfileUpdate{Username: &username})
	require.NoError(t, err)
	assert.Equal(t, username, *profile.Username)
}

func TestUpdateProfileDuplicateUsername(t *testing.T) {
	c, mock := newTestCore(t)

	mock.ExpectQuery(`UPDATE profiles`).
		WillReturnError(&pq.Error{Code: pqUniqueViolation, Constraint: "profiles_username_key"})

	username := "taken"
	_, err := c.UpdateProfile(context.Background(), uuid.New(), models.ProfileUpdate{Username: &username})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestUpdateProfileMissing(t *testing.T) {
	c, mock := newTestCore(t)

	mock.ExpectQuery(`UPDATE profiles`).WillReturnRows(sqlmock.NewRows(profileCols))

	_, err := c.UpdateProfile(context.Background(), uuid.New(), models.ProfileUpdate{})
	assert.ErrorIs(t, err, NoRecordFound)
}
