package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/charlesng35/kurukshetra/internal/cache"
	"github.com/charlesng35/kurukshetra/internal/models"
	apperrors "github.com/charlesng35/kurukshetra/pkg/errors"
)

const sportListCacheKey = "sports:all"

// SportInput carries sport fields from the admin panel. On create, nil
// fields take their defaults; on update, nil fields are left unchanged.
type SportInput struct {
	Name                 *string  `json:"name"`
	Title                *string  `json:"title"`
	Slug                 *string  `json:"slug"`
	Type                 *string  `json:"type" validate:"omitempty,oneof=join_sport normal_sport event"`
	Category             *string  `json:"category" validate:"omitempty,oneof=Indoor Outdoor"`
	Description          *string  `json:"description"`
	Image                *string  `json:"image"`
	Date                 *string  `json:"date"`
	Venue                *string  `json:"venue"`
	RegisterLink         *string  `json:"registerLink"`
	MoreDetailsLink      *string  `json:"moreDetailsLink"`
	MinPlayers           *int     `json:"minPlayers" validate:"omitempty,gte=0"`
	MaxPlayers           *int     `json:"maxPlayers" validate:"omitempty,gte=0"`
	ArrivalTime          *string  `json:"arrivalTime"`
	Fixture              *string  `json:"fixture"`
	GameTiming           *string  `json:"gameTiming"`
	RegistrationDeadline *string  `json:"registrationDeadline"`
	RegistrationFee      *float64 `json:"registrationFee" validate:"omitempty,gte=0"`
	CurrentParticipants  *int     `json:"currentParticipants" validate:"omitempty,gte=0"`
	EventType            *string  `json:"eventType" validate:"omitempty,oneof=tournament exhibition workshop competition other"`
	Organizer            *string  `json:"organizer"`
	ContactInfo          *string  `json:"contactInfo"`
	Status               *string  `json:"status" validate:"omitempty,oneof=upcoming ongoing completed cancelled"`
}

// SportFilter narrows sport listings.
type SportFilter struct {
	Type     string
	Category string
}

// SportService manages sports and answers sport lookups for access control.
type SportService struct {
	db       *gorm.DB
	cache    cache.Store
	cacheTTL time.Duration
	clock    Clock
}

// NewSportService constructs a SportService. store may be nil to disable
// caching of the public listing.
func NewSportService(db *gorm.DB, store cache.Store, cacheTTL time.Duration, clock Clock) (*SportService, error) {
	if db == nil {
		return nil, errors.New("sport service: db is required")
	}
	if cacheTTL <= 0 {
		store = nil
	}
	return &SportService{db: db, cache: store, cacheTTL: cacheTTL, clock: clock}, nil
}

// List returns sports matching filter, newest first.
func (s *SportService) List(ctx context.Context, filter SportFilter) ([]models.Sport, error) {
	ctx = ensureContext(ctx)

	filter.Type = strings.TrimSpace(filter.Type)
	filter.Category = strings.TrimSpace(filter.Category)
	cacheable := filter.Type == "" && filter.Category == ""

	var sports []models.Sport
	if cacheable {
		if hit, _ := cache.GetJSON(ctx, s.cache, sportListCacheKey, &sports); hit {
			return sports, nil
		}
	}

	query := s.db.WithContext(ctx).Model(&models.Sport{})
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if err := query.Order("created_at DESC").Find(&sports).Error; err != nil {
		return nil, fmt.Errorf("sport service: list sports: %w", err)
	}

	if cacheable {
		_ = cache.SetJSON(ctx, s.cache, sportListCacheKey, sports, s.cacheTTL)
	}
	return sports, nil
}

// ListByType returns sports of the given type, newest first.
func (s *SportService) ListByType(ctx context.Context, sportType string) ([]models.Sport, error) {
	return s.List(ctx, SportFilter{Type: sportType})
}

// Upcoming returns sports dated today or later, soonest first. Sports whose
// date cannot be read are left out.
func (s *SportService) Upcoming(ctx context.Context) ([]models.Sport, error) {
	ctx = ensureContext(ctx)

	var sports []models.Sport
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&sports).Error; err != nil {
		return nil, fmt.Errorf("sport service: upcoming sports: %w", err)
	}

	now := s.clock.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	type dated struct {
		sport models.Sport
		at    time.Time
	}
	upcoming := make([]dated, 0, len(sports))
	for _, sport := range sports {
		at, ok := models.ParseDate(sport.Date, now.Location())
		if !ok || at.Before(today) {
			continue
		}
		upcoming = append(upcoming, dated{sport: sport, at: at})
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].at.Before(upcoming[j].at)
	})

	out := make([]models.Sport, len(upcoming))
	for i, item := range upcoming {
		out[i] = item.sport
	}
	return out, nil
}

// GetByID loads a sport by id.
func (s *SportService) GetByID(ctx context.Context, id string) (*models.Sport, error) {
	ctx = ensureContext(ctx)

	if !isValidID(id) {
		return nil, ErrSportNotFound
	}

	var sport models.Sport
	err := s.db.WithContext(ctx).Take(&sport, "id = ?", strings.TrimSpace(id)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sport service: get sport: %w", err)
	}
	return &sport, nil
}

// FindSport satisfies permissions.SportLookup.
func (s *SportService) FindSport(ctx context.Context, id string) (*models.Sport, error) {
	return s.GetByID(ctx, id)
}

// GetBySlug loads a sport by slug.
func (s *SportService) GetBySlug(ctx context.Context, slug string) (*models.Sport, error) {
	ctx = ensureContext(ctx)

	var sport models.Sport
	err := s.db.WithContext(ctx).Take(&sport, "slug = ?", strings.TrimSpace(slug)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sport service: get sport by slug: %w", err)
	}
	return &sport, nil
}

// Create stores a new sport, filling defaults for omitted fields.
func (s *SportService) Create(ctx context.Context, input SportInput) (*models.Sport, error) {
	ctx = ensureContext(ctx)

	name := ""
	if input.Name != nil {
		name = strings.TrimSpace(*input.Name)
	}
	if name == "" {
		return nil, apperrors.NewBadRequest("Name is required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	sport := s.defaultSport(name)
	applySportInput(sport, input)
	if sport.Slug == "" {
		sport.Slug = models.Slugify(name)
	}

	if err := s.db.WithContext(ctx).Create(sport).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrSportSlugTaken
		}
		return nil, fmt.Errorf("sport service: create sport: %w", err)
	}

	s.invalidate(ctx)
	return sport, nil
}

// Update applies the non-nil fields of input to the sport identified by id.
func (s *SportService) Update(ctx context.Context, id string, input SportInput) (*models.Sport, error) {
	ctx = ensureContext(ctx)

	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, apperrors.NewBadRequest("Name is required")
	}

	sport, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applySportInput(sport, input)

	if err := s.db.WithContext(ctx).Save(sport).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrSportSlugTaken
		}
		return nil, fmt.Errorf("sport service: update sport: %w", err)
	}

	s.invalidate(ctx)
	return sport, nil
}

// UpdateStatusByName sets the status of every sport called name.
func (s *SportService) UpdateStatusByName(ctx context.Context, name string, status models.Status) ([]models.Sport, error) {
	ctx = ensureContext(ctx)

	if !status.Valid() {
		return nil, apperrors.NewValidation("status must be one of: upcoming, ongoing, completed, cancelled")
	}
	name = strings.TrimSpace(name)

	var sports []models.Sport
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Sport{}).Where("name = ?", name).Update("status", status)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSportNotFound
		}
		return tx.Where("name = ?", name).Order("created_at DESC").Find(&sports).Error
	})
	if err != nil {
		if errors.Is(err, ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("sport service: update status: %w", err)
	}

	s.invalidate(ctx)
	return sports, nil
}

// Delete removes the sport identified by id and its admin assignments.
func (s *SportService) Delete(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)

	if !isValidID(id) {
		return ErrSportNotFound
	}
	id = strings.TrimSpace(id)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM user_sports WHERE sport_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Sport{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSportNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSportNotFound) {
			return ErrSportNotFound
		}
		return fmt.Errorf("sport service: delete sport: %w", err)
	}

	s.invalidate(ctx)
	return nil
}

// RefreshStatuses moves sports between upcoming, ongoing and completed
// according to their date. Cancelled sports are never touched.
func (s *SportService) RefreshStatuses(ctx context.Context) (int, error) {
	ctx = ensureContext(ctx)

	var sports []models.Sport
	if err := s.db.WithContext(ctx).
		Select("id", "date", "status").
		Where("status <> ?", models.StatusCancelled).
		Find(&sports).Error; err != nil {
		return 0, fmt.Errorf("sport service: load sports: %w", err)
	}

	now := s.clock.now()
	changed := 0
	for _, sport := range sports {
		if _, ok := models.ParseDate(sport.Date, now.Location()); !ok {
			continue
		}
		next := models.StatusForDate(sport.Date, now)
		if next == sport.Status {
			continue
		}
		if err := s.db.WithContext(ctx).
			Model(&models.Sport{}).
			Where("id = ?", sport.ID).
			Update("status", next).Error; err != nil {
			return changed, fmt.Errorf("sport service: refresh status: %w", err)
		}
		changed++
	}

	if changed > 0 {
		s.invalidate(ctx)
	}
	return changed, nil
}

func (s *SportService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, sportListCacheKey)
	}
}

func (s *SportService) defaultSport(name string) *models.Sport {
	return &models.Sport{
		Name:            name,
		Title:           name,
		Type:            models.SportTypeNormal,
		Category:        models.CategoryOutdoor,
		Image:           fmt.Sprintf("https://picsum.photos/seed/%s/600/300", strings.ToLower(name)),
		Date:            s.clock.now().Format(dateLayout),
		Venue:           "TBD",
		RegisterLink:    "#",
		MoreDetailsLink: "#",
		MinPlayers:      1,
		ArrivalTime:     "9:00 AM",
		Fixture:         "TBD",
		GameTiming:      "TBD",
		EventType:       models.EventTypeOther,
		Status:          models.StatusUpcoming,
	}
}

// applySportInput copies the non-empty fields of input onto sport.
func applySportInput(sport *models.Sport, input SportInput) {
	setString := func(dst *string, src *string) {
		if src != nil {
			if value := strings.TrimSpace(*src); value != "" {
				*dst = value
			}
		}
	}

	setString(&sport.Name, input.Name)
	setString(&sport.Title, input.Title)
	setString(&sport.Slug, input.Slug)
	setString(&sport.Description, input.Description)
	setString(&sport.Image, input.Image)
	setString(&sport.Date, input.Date)
	setString(&sport.Venue, input.Venue)
	setString(&sport.RegisterLink, input.RegisterLink)
	setString(&sport.MoreDetailsLink, input.MoreDetailsLink)
	setString(&sport.ArrivalTime, input.ArrivalTime)
	setString(&sport.Fixture, input.Fixture)
	setString(&sport.GameTiming, input.GameTiming)

	if input.Type != nil && *input.Type != "" {
		sport.Type = models.SportType(*input.Type)
	}
	if input.Category != nil && *input.Category != "" {
		sport.Category = models.SportCategory(*input.Category)
	}
	if input.EventType != nil && *input.EventType != "" {
		sport.EventType = models.EventType(*input.EventType)
	}
	if input.Status != nil && *input.Status != "" {
		sport.Status = models.Status(*input.Status)
	}
	if input.MinPlayers != nil && *input.MinPlayers > 0 {
		sport.MinPlayers = *input.MinPlayers
	}
	if input.MaxPlayers != nil {
		sport.MaxPlayers = optionalInt(*input.MaxPlayers)
	}
	if input.RegistrationFee != nil {
		sport.RegistrationFee = *input.RegistrationFee
	}
	if input.CurrentParticipants != nil {
		sport.CurrentParticipants = *input.CurrentParticipants
	}
	if input.RegistrationDeadline != nil {
		sport.RegistrationDeadline = optionalString(*input.RegistrationDeadline)
	}
	if input.Organizer != nil {
		sport.Organizer = optionalString(*input.Organizer)
	}
	if input.ContactInfo != nil {
		sport.ContactInfo = optionalString(*input.ContactInfo)
	}
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func optionalInt(value int) *int {
	if value <= 0 {
		return nil
	}
	return &value
}
