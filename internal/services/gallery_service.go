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

// GalleryInput carries gallery image fields.
type GalleryInput struct {
	URL     *string `json:"url" validate:"omitempty,url"`
	Caption *string `json:"caption"`
}

// GalleryService manages the public photo gallery.
type GalleryService struct {
	db *gorm.DB
}

// NewGalleryService constructs a GalleryService.
func NewGalleryService(db *gorm.DB) (*GalleryService, error) {
	if db == nil {
		return nil, errors.New("gallery service: db is required")
	}
	return &GalleryService{db: db}, nil
}

// List returns every image, newest first.
func (s *GalleryService) List(ctx context.Context) ([]models.GalleryImage, error) {
	ctx = ensureContext(ctx)

	var images []models.GalleryImage
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&images).Error; err != nil {
		return nil, fmt.Errorf("gallery service: list images: %w", err)
	}
	return images, nil
}

// GetByID loads an image by id.
func (s *GalleryService) GetByID(ctx context.Context, id string) (*models.GalleryImage, error) {
	ctx = ensureContext(ctx)

	if !isValidID(id) {
		return nil, ErrImageNotFound
	}

	var image models.GalleryImage
	err := s.db.WithContext(ctx).Take(&image, "id = ?", strings.TrimSpace(id)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrImageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("gallery service: get image: %w", err)
	}
	return &image, nil
}

// Create stores a new image.
func (s *GalleryService) Create(ctx context.Context, input GalleryInput) (*models.GalleryImage, error) {
	ctx = ensureContext(ctx)

	if trimmed(input.URL) == "" {
		return nil, apperrors.NewBadRequest("URL is required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	image := &models.GalleryImage{URL: trimmed(input.URL), Caption: trimmed(input.Caption)}
	if err := s.db.WithContext(ctx).Create(image).Error; err != nil {
		return nil, fmt.Errorf("gallery service: create image: %w", err)
	}
	return image, nil
}

// Update applies input to the image identified by id.
func (s *GalleryService) Update(ctx context.Context, id string, input GalleryInput) (*models.GalleryImage, error) {
	ctx = ensureContext(ctx)

	if input.URL != nil && trimmed(input.URL) == "" {
		return nil, apperrors.NewBadRequest("URL is required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	image, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.URL != nil {
		image.URL = trimmed(input.URL)
	}
	if input.Caption != nil {
		image.Caption = trimmed(input.Caption)
	}

	if err := s.db.WithContext(ctx).Save(image).Error; err != nil {
		return nil, fmt.Errorf("gallery service: update image: %w", err)
	}
	return image, nil
}

// Delete removes the image identified by id.
func (s *GalleryService) Delete(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)

	if !isValidID(id) {
		return ErrImageNotFound
	}

	result := s.db.WithContext(ctx).Where("id = ?", strings.TrimSpace(id)).Delete(&models.GalleryImage{})
	if result.Error != nil {
		return fmt.Errorf("gallery service: delete image: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrImageNotFound
	}
	return nil
}
