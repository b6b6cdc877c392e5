package core

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Revanthsudeeep/waterconservation/internal/auth"
	"github.com/Revanthsudeeep/waterconservation/internal/utils/databaseutils"
	"github.com/Revanthsudeeep/waterconservation/internal/utils/stringutils"
	"github.com/Revanthsudeeep/waterconservation/models"
	"github.com/google/uuid"
	"github.com/mdobak/go-xerrors"
)

const profileColumns = `id, username, full_name, avatar_url, bio, role, level, following_count, followers_count, created_at, updated_at`

func scanProfile(rows *sql.Rows) (*models.Profile, error) {
	profile := &models.Profile{}
	if err := rows.Scan(
		&profile.ID,
		&profile.Username,
		&profile.FullName,
		&profile.AvatarURL,
		&profile.Bio,
		&profile.Role,
		&profile.Level,
		&profile.FollowingCount,
		&profile.FollowersCount,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return profile, nil
}

func (c *Core) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	profile, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanProfile, id)
	if err != nil {
		return nil, notFoundOr(err)
	}

	return profile, nil
}

func (c *Core) GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE username = $1`

	profile, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanProfile, username)
	if err != nil {
		return nil, notFoundOr(err)
	}

	return profile, nil
}

func (c *Core) CreateProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if profile.Role == "" {
		profile.Role = models.RoleMember
	}
	if profile.Level == 0 {
		profile.Level = 1
	}

	query := `
		INSERT INTO profiles (id, username, full_name, avatar_url, bio, role, level)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + profileColumns

	created, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanProfile,
		profile.ID, profile.Username, profile.FullName, profile.AvatarURL, profile.Bio, profile.Role, profile.Level)
	if err != nil {
		switch {
		case isUniqueViolation(err, "profiles_username_key"):
			return nil, xerrors.New(ErrDuplicateUsername)
		case isForeignKeyViolation(err):
			return nil, xerrors.New(NoRecordFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return created, nil
}

// EnsureProfile returns the profile of user, creating it from the account details when absent.
// The username is the email local part; on a clash it is suffixed with the start of the user id.
func (c *Core) EnsureProfile(ctx context.Context, user *auth.User) (*models.Profile, error) {
	profile, err := c.GetProfile(ctx, user.ID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, NoRecordFound) {
		return nil, err
	}

	localPart := stringutils.EmailLocalPart(user.Email)
	fullName := localPart
	if user.FullName != nil {
		fullName = stringutils.FirstNonEmpty(*user.FullName, localPart)
	}
	bio := ""

	candidate := &models.Profile{
		ID:        user.ID,
		Username:  &localPart,
		FullName:  &fullName,
		AvatarURL: user.AvatarURL,
		Bio:       &bio,
		Role:      models.RoleMember,
		Level:     1,
	}

	created, err := c.CreateProfile(ctx, candidate)
	if errors.Is(err, ErrDuplicateUsername) {
		suffixed := localPart + "_" + user.ID.String()[:8]
		candidate.Username = &suffixed
		created, err = c.CreateProfile(ctx, candidate)
	}
	if err != nil {
		if isUniqueViolation(err, "profiles_pkey") {
			// provisioned concurrently
			return c.GetProfile(ctx, user.ID)
		}
		return nil, err
	}

	c.log.Info("profile provisioned", "user_id", user.ID, "username", *created.Username)
	return created, nil
}

// UpdateProfile applies the non-nil fields of update and bumps updated_at.
func (c *Core) UpdateProfile(ctx context.Context, id uuid.UUID, update models.ProfileUpdate) (*models.Profile, error) {
	query := `
		UPDATE profiles
		SET username   = COALESCE($2, username),
		    full_name  = COALESCE($3, full_name),
		    bio        = COALESCE($4, bio),
		    avatar_url = COALESCE($5, avatar_url),
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + profileColumns

	profile, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanProfile,
		id, update.Username, update.FullName, update.Bio, update.AvatarURL)
	if err != nil {
		switch {
		case isUniqueViolation(err, "profiles_username_key"):
			return nil, xerrors.New(ErrDuplicateUsername)
		default:
			return nil, notFoundOr(err)
		}
	}

	return profile, nil
}

func (c *Core) SetAvatar(ctx context.Context, id uuid.UUID, avatarURL string) (*models.Profile, error) {
	return c.UpdateProfile(ctx, id, models.ProfileUpdate{AvatarURL: &avatarURL})
}
