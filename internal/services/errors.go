package services

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/charlesng35/kurukshetra/internal/permissions"
	apperrors "github.com/charlesng35/kurukshetra/pkg/errors"
)

var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = apperrors.NewNotFound("User not found")
	// ErrUserExists is returned when the username or email is taken.
	ErrUserExists = apperrors.NewConflict("User already exists")
	// ErrCannotDeleteSelf prevents an admin from removing their own account.
	ErrCannotDeleteSelf = apperrors.NewBadRequest("Cannot delete your own account")
	// ErrCurrentPasswordMismatch is returned by ChangePassword.
	ErrCurrentPasswordMismatch = apperrors.NewBadRequest("Current password is incorrect")

	// ErrSportNotFound also matches permissions.ErrSportNotFound so that the
	// access layer can recognise it.
	ErrSportNotFound = apperrors.NewNotFound("Sport not found").WithInternal(permissions.ErrSportNotFound)
	// ErrSportSlugTaken is returned when a sport slug is already in use.
	ErrSportSlugTaken = apperrors.NewConflict("Sport with this slug already exists")

	// ErrMatchNotFound indicates the requested match does not exist.
	ErrMatchNotFound = apperrors.NewNotFound("Match not found")
	// ErrMatchSlugTaken is returned when a match slug is reused within a sport.
	ErrMatchSlugTaken = apperrors.NewConflict("Match with this slug already exists")
	// ErrMatchSlugTakenForSport is the sport-scoped variant of ErrMatchSlugTaken.
	ErrMatchSlugTakenForSport = apperrors.NewConflict("Match with this slug already exists for this sport")

	// ErrEventNotFound indicates the requested event does not exist.
	ErrEventNotFound = apperrors.NewNotFound("Event not found")
	// ErrImageNotFound indicates the requested gallery image does not exist.
	ErrImageNotFound = apperrors.NewNotFound("Image not found")
	// ErrMessageNotFound indicates the requested contact message does not exist.
	ErrMessageNotFound = apperrors.NewNotFound("Message not found")
)

// isUniqueConstraintError detects database uniqueness constraint violations across vendors.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr != nil {
		return pgErr.Code == "23505"
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr != nil {
		return myErr.Number == 1062
	}

	// sqlite3 reports "UNIQUE constraint failed: <table>.<column>".
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "unique constraint") || strings.Contains(lower, "duplicate")
}
