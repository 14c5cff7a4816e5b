package api

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/charlesng35/kurukshetra/internal/cache"
	"github.com/charlesng35/kurukshetra/internal/monitoring"
	"github.com/charlesng35/kurukshetra/internal/monitoring/checks"
	"github.com/charlesng35/kurukshetra/internal/services"
)

// Services holds the domain services behind the HTTP surface.
type Services struct {
	DB      *gorm.DB
	Users   *services.UserService
	Sports  *services.SportService
	Matches *services.MatchService
	Events  *services.EventService
	Gallery *services.GalleryService
	Contact *services.ContactService
}

// ServiceOptions tunes NewServices.
type ServiceOptions struct {
	// Cache backs the sport listing cache. Nil selects the database store.
	Cache    cache.Store
	SportTTL time.Duration
	Clock    services.Clock
}

// NewServices constructs every domain service on top of db.
func NewServices(db *gorm.DB, opts ServiceOptions) (*Services, error) {
	if db == nil {
		return nil, errors.New("database handle must be provided")
	}

	store := opts.Cache
	if store == nil {
		store = cache.NewDatabaseStore(db)
	}

	var (
		out = &Services{DB: db}
		err error
	)
	if out.Users, err = services.NewUserService(db, opts.Clock); err != nil {
		return nil, fmt.Errorf("user service: %w", err)
	}
	if out.Sports, err = services.NewSportService(db, store, opts.SportTTL, opts.Clock); err != nil {
		return nil, fmt.Errorf("sport service: %w", err)
	}
	if out.Matches, err = services.NewMatchService(db); err != nil {
		return nil, fmt.Errorf("match service: %w", err)
	}
	if out.Events, err = services.NewEventService(db, opts.Clock); err != nil {
		return nil, fmt.Errorf("event service: %w", err)
	}
	if out.Gallery, err = services.NewGalleryService(db); err != nil {
		return nil, fmt.Errorf("gallery service: %w", err)
	}
	if out.Contact, err = services.NewContactService(db); err != nil {
		return nil, fmt.Errorf("contact service: %w", err)
	}
	return out, nil
}

// DefaultHealth returns a health manager probing only the database.
func (s *Services) DefaultHealth(timeout time.Duration) *monitoring.HealthManager {
	manager := monitoring.NewHealthManager()
	manager.RegisterReadiness(checks.Database(s.DB, timeout))
	return manager
}
