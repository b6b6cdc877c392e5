package core

import (
	"database/sql"
	"errors"
	"log/slog"

	"github.com/Revanthsudeeep/waterconservation/internal/utils/databaseutils"
	"github.com/lib/pq"
	"github.com/mdobak/go-xerrors"
)

var (
	NoRecordFound        = xerrors.Message("No record found")
	ErrDuplicateEmail    = xerrors.Message("Duplicate email")
	ErrDuplicateUsername = xerrors.Message("Duplicate username")
	ErrAlreadyFollowing  = xerrors.Message("User is already followed")
	ErrNotFollowing      = xerrors.Message("User is not followed")
	ErrSelfFollow        = xerrors.Message("Users cannot follow themselves")
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

type Core struct {
	log         *slog.Logger
	db          *sql.DB
	sqlTemplate *databaseutils.SQLTemplate
	session     databaseutils.Session
}

func NewCore(dbConn *sql.DB, log *slog.Logger, sqlTemplate *databaseutils.SQLTemplate) *Core {
	return &Core{
		log:         log,
		db:          dbConn,
		sqlTemplate: sqlTemplate,
		session:     databaseutils.NewSession(dbConn),
	}
}

// pqError returns the driver error behind err, if there is one.
func pqError(err error) (*pq.Error, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr, true
	}
	return nil, false
}

func isUniqueViolation(err error, constraint string) bool {
	pqErr, ok := pqError(err)
	return ok && pqErr.Code == pqUniqueViolation && (constraint == "" || pqErr.Constraint == constraint)
}

func isForeignKeyViolation(err error) bool {
	pqErr, ok := pqError(err)
	return ok && pqErr.Code == pqForeignKeyViolation
}

// notFoundOr maps sql.ErrNoRows to NoRecordFound and wraps anything else.
func notFoundOr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return xerrors.New(NoRecordFound)
	}
	return xerrors.New(err)
}
