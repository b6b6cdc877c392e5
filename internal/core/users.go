package core

import (
	"context"
	"database/sql"

	"github.com/Revanthsudeeep/waterconservation/internal/auth"
	"github.com/Revanthsudeeep/waterconservation/internal/utils/databaseutils"
	"github.com/google/uuid"
	"github.com/mdobak/go-xerrors"
)

const userColumns = `id, email, password, full_name, avatar_url`

func scanUser(rows *sql.Rows) (*auth.User, error) {
	user := &auth.User{}
	if err := rows.Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.FullName,
		&user.AvatarURL,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return user, nil
}

// CreateUser stores the credentials of a new account. user.ID is assigned when nil.
func (c *Core) CreateUser(ctx context.Context, user *auth.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	query := `
		INSERT INTO users (id, email, password, full_name, avatar_url)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := databaseutils.Execute(c.sqlTemplate, ctx, query, user.ID, user.Email, user.Password, user.FullName, user.AvatarURL)
	if err != nil {
		switch {
		case isUniqueViolation(err, "users_email_key"):
			return xerrors.New(ErrDuplicateEmail)
		default:
			return xerrors.New(err)
		}
	}

	return nil
}

func (c *Core) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanUser, email)
	if err != nil {
		return nil, notFoundOr(err)
	}

	return user, nil
}

func (c *Core) GetUserByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanUser, id)
	if err != nil {
		return nil, notFoundOr(err)
	}

	return user, nil
}
