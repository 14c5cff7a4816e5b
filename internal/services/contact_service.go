package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/charlesng35/kurukshetra/internal/models"
	apperrors "github.com/charlesng35/kurukshetra/pkg/errors"
)

// ContactInput is a submission of the public contact form.
type ContactInput struct {
	Name    string `json:"name" validate:"max=120"`
	Email   string `json:"email" validate:"email"`
	Message string `json:"message" validate:"max=5000"`
}

// ContactService stores contact form submissions for the admin inbox.
type ContactService struct {
	db *gorm.DB
}

// NewContactService constructs a ContactService.
func NewContactService(db *gorm.DB) (*ContactService, error) {
	if db == nil {
		return nil, errors.New("contact service: db is required")
	}
	return &ContactService{db: db}, nil
}

// Submit stores a new message with status new.
func (s *ContactService) Submit(ctx context.Context, input ContactInput) (*models.ContactMessage, error) {
	ctx = ensureContext(ctx)

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Message = strings.TrimSpace(input.Message)
	if input.Name == "" || input.Email == "" || input.Message == "" {
		return nil, apperrors.NewBadRequest("Name, email, and message are required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	message := &models.ContactMessage{
		Name:    input.Name,
		Email:   input.Email,
		Message: input.Message,
		Status:  models.ContactNew,
	}
	if err := s.db.WithContext(ctx).Create(message).Error; err != nil {
		return nil, fmt.Errorf("contact service: submit message: %w", err)
	}
	return message, nil
}

// List returns every message, newest first.
func (s *ContactService) List(ctx context.Context) ([]models.ContactMessage, error) {
	ctx = ensureContext(ctx)

	var messages []models.ContactMessage
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("contact service: list messages: %w", err)
	}
	return messages, nil
}

// GetByID loads a message by id.
func (s *ContactService) GetByID(ctx context.Context, id string) (*models.ContactMessage, error) {
	ctx = ensureContext(ctx)

	if !isValidID(id) {
		return nil, ErrMessageNotFound
	}

	var message models.ContactMessage
	err := s.db.WithContext(ctx).Take(&message, "id = ?", strings.TrimSpace(id)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("contact service: get message: %w", err)
	}
	return &message, nil
}

// MarkRead flags the message identified by id as read.
func (s *ContactService) MarkRead(ctx context.Context, id string) (*models.ContactMessage, error) {
	message, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if message.Status == models.ContactRead {
		return message, nil
	}

	if err := s.db.WithContext(ensureContext(ctx)).
		Model(message).
		Update("status", models.ContactRead).Error; err != nil {
		return nil, fmt.Errorf("contact service: mark read: %w", err)
	}
	message.Status = models.ContactRead
	return message, nil
}

// Delete removes the message identified by id.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)

	if !isValidID(id) {
		return ErrMessageNotFound
	}

	result := s.db.WithContext(ctx).Where("id = ?", strings.TrimSpace(id)).Delete(&models.ContactMessage{})
	if result.Error != nil {
		return fmt.Errorf("contact service: delete message: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}
