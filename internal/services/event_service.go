package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/charlesng35/kurukshetra/internal/models"
	apperrors "github.com/charlesng35/kurukshetra/pkg/errors"
)

const (
	defaultEventImage = "https://picsum.photos/600/400"
	defaultVenue      = "TBD"
	defaultLink       = "#"
)

// EventInput carries event fields. On update, nil fields are left unchanged.
type EventInput struct {
	Title            *string `json:"title"`
	Date             *string `json:"date"`
	Venue            *string `json:"venue"`
	Description      *string `json:"description"`
	ImageURL         *string `json:"imageUrl"`
	RegistrationLink *string `json:"registrationLink"`
	Category         *string `json:"category" validate:"omitempty,oneof=Cultural Technology Sports Academic"`
	Status           *string `json:"status" validate:"omitempty,oneof=upcoming ongoing completed cancelled"`
}

// EventService manages campus events.
type EventService struct {
	db    *gorm.DB
	clock Clock
}

// NewEventService constructs an EventService.
func NewEventService(db *gorm.DB, clock Clock) (*EventService, error) {
	if db == nil {
		return nil, errors.New("event service: db is required")
	}
	return &EventService{db: db, clock: clock}, nil
}

// Now reports the service clock, used to derive timeline labels.
func (s *EventService) Now() time.Time {
	return s.clock.now()
}

// List returns every event, earliest date first.
func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	ctx = ensureContext(ctx)

	var events []models.Event
	if err := s.db.WithContext(ctx).Order("date ASC").Order("created_at ASC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("event service: list events: %w", err)
	}
	return events, nil
}

// GetByID loads an event by id.
func (s *EventService) GetByID(ctx context.Context, id string) (*models.Event, error) {
	ctx = ensureContext(ctx)

	if !isValidID(id) {
		return nil, ErrEventNotFound
	}

	var event models.Event
	err := s.db.WithContext(ctx).Take(&event, "id = ?", strings.TrimSpace(id)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("event service: get event: %w", err)
	}
	return &event, nil
}

// Create stores a new event. Title and date are required.
func (s *EventService) Create(ctx context.Context, input EventInput) (*models.Event, error) {
	ctx = ensureContext(ctx)

	if trimmed(input.Title) == "" || trimmed(input.Date) == "" {
		return nil, apperrors.NewBadRequest("Title and date are required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	event := &models.Event{
		Venue:            defaultVenue,
		ImageURL:         defaultEventImage,
		RegistrationLink: defaultLink,
		Category:         models.EventCultural,
		Status:           models.StatusUpcoming,
	}
	applyEventInput(event, input)

	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return nil, fmt.Errorf("event service: create event: %w", err)
	}
	return event, nil
}

// Update applies input to the event identified by id.
func (s *EventService) Update(ctx context.Context, id string, input EventInput) (*models.Event, error) {
	ctx = ensureContext(ctx)

	if err := validateInput(input); err != nil {
		return nil, err
	}
	if (input.Title != nil && trimmed(input.Title) == "") || (input.Date != nil && trimmed(input.Date) == "") {
		return nil, apperrors.NewBadRequest("Title and date are required")
	}

	event, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyEventInput(event, input)
	if err := s.db.WithContext(ctx).Save(event).Error; err != nil {
		return nil, fmt.Errorf("event service: update event: %w", err)
	}
	return event, nil
}

// Delete removes the event identified by id.
func (s *EventService) Delete(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)

	if !isValidID(id) {
		return ErrEventNotFound
	}

	result := s.db.WithContext(ctx).Where("id = ?", strings.TrimSpace(id)).Delete(&models.Event{})
	if result.Error != nil {
		return fmt.Errorf("event service: delete event: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// RefreshStatuses moves events between upcoming, ongoing and completed
// according to their date. Cancelled events are never touched.
func (s *EventService) RefreshStatuses(ctx context.Context) (int, error) {
	ctx = ensureContext(ctx)

	var events []models.Event
	if err := s.db.WithContext(ctx).
		Select("id", "date", "status").
		Where("status <> ?", models.StatusCancelled).
		Find(&events).Error; err != nil {
		return 0, fmt.Errorf("event service: load events: %w", err)
	}

	now := s.clock.now()
	changed := 0
	for _, event := range events {
		if _, ok := models.ParseDate(event.Date, now.Location()); !ok {
			continue
		}
		next := models.StatusForDate(event.Date, now)
		if next == event.Status {
			continue
		}
		if err := s.db.WithContext(ctx).
			Model(&models.Event{}).
			Where("id = ?", event.ID).
			Update("status", next).Error; err != nil {
			return changed, fmt.Errorf("event service: refresh status: %w", err)
		}
		changed++
	}
	return changed, nil
}

func applyEventInput(event *models.Event, input EventInput) {
	if value := trimmed(input.Title); value != "" {
		event.Title = value
	}
	if value := trimmed(input.Date); value != "" {
		event.Date = value
	}
	if value := trimmed(input.Venue); value != "" {
		event.Venue = value
	}
	if input.Description != nil {
		event.Description = strings.TrimSpace(*input.Description)
	}
	if value := trimmed(input.ImageURL); value != "" {
		event.ImageURL = value
	}
	if value := trimmed(input.RegistrationLink); value != "" {
		event.RegistrationLink = value
	}
	if value := trimmed(input.Category); value != "" {
		event.Category = models.EventCategory(value)
	}
	if value := trimmed(input.Status); value != "" {
		event.Status = models.Status(value)
	}
}
