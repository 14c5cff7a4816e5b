package permissions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charlesng35/kurukshetra/internal/models"
)

var (
	// ErrMainAdminRequired is returned when an action needs the main admin role.
	ErrMainAdminRequired = errors.New("permissions: main admin required")
	// ErrAdminRequired is returned when an action needs any admin role.
	ErrAdminRequired = errors.New("permissions: admin required")
	// ErrSportNotFound is returned when the referenced sport does not exist.
	ErrSportNotFound = errors.New("permissions: sport not found")
	// ErrSportAccessDenied is returned when a sport admin does not own the sport.
	ErrSportAccessDenied = errors.New("permissions: access denied for sport")
)

// SportLookup resolves a sport by id. Implementations return ErrSportNotFound
// (or an error wrapping it) for unknown ids.
type SportLookup interface {
	FindSport(ctx context.Context, id string) (*models.Sport, error)
}

// Checker decides whether an authenticated user may act on admin resources.
// It holds no per-request state and is safe for concurrent use.
type Checker struct {
	sports SportLookup
}

// NewChecker constructs a Checker. sports may be nil when only the role and
// by-name checks are used.
func NewChecker(sports SportLookup) *Checker {
	return &Checker{sports: sports}
}

// RequireMainAdmin allows only main admins.
func (c *Checker) RequireMainAdmin(user *models.User) error {
	if user.IsMainAdmin() {
		return nil
	}
	return ErrMainAdminRequired
}

// RequireAdmin allows any admin role.
func (c *Checker) RequireAdmin(user *models.User) error {
	if user.IsAdmin() {
		return nil
	}
	return ErrAdminRequired
}

// CanManageSport reports whether user may modify the sport identified by
// sportID. Main admins pass without a lookup. Sport admins pass when the
// sport is assigned to them by id or listed by name.
func (c *Checker) CanManageSport(ctx context.Context, user *models.User, sportID string) error {
	if user == nil {
		return ErrAdminRequired
	}
	if user.IsMainAdmin() {
		return nil
	}
	if !user.IsAdmin() {
		return ErrAdminRequired
	}
	if c.sports == nil {
		return errors.New("permissions: sport lookup not configured")
	}

	sportID = strings.TrimSpace(sportID)
	if sportID == "" {
		return ErrSportNotFound
	}

	sport, err := c.sports.FindSport(ctx, sportID)
	if err != nil {
		if errors.Is(err, ErrSportNotFound) {
			return ErrSportNotFound
		}
		return fmt.Errorf("permissions: load sport: %w", err)
	}
	if sport == nil {
		return ErrSportNotFound
	}

	if user.HasSportID(sport.ID) || user.HasSportName(sport.Name) {
		return nil
	}
	return ErrSportAccessDenied
}

// CanManageSportByName reports whether user may modify the sport called
// sportName. Only the name list is consulted.
func (c *Checker) CanManageSportByName(user *models.User, sportName string) error {
	if user == nil {
		return ErrAdminRequired
	}
	if user.IsMainAdmin() {
		return nil
	}
	if !user.IsAdmin() {
		return ErrAdminRequired
	}
	if user.HasSportName(sportName) {
		return nil
	}
	return ErrSportAccessDenied
}
