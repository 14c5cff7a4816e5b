package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/charlesng35/kurukshetra/internal/models"
	apperrors "github.com/charlesng35/kurukshetra/pkg/errors"
)

// ScoreInput is a home/away pair submitted by the admin panel.
type ScoreInput struct {
	Home int `json:"home" validate:"gte=0"`
	Away int `json:"away" validate:"gte=0"`
}

func (s ScoreInput) model() models.Score {
	return models.Score{Home: s.Home, Away: s.Away}
}

// MatchInput carries match fields. On update, nil fields are left unchanged.
type MatchInput struct {
	Sport    *string              `json:"sport"`
	Match    *string              `json:"match"`
	Slug     *string              `json:"slug"`
	Teams    *models.MatchTeams   `json:"teams"`
	Scores   *ScoreInput          `json:"scores"`
	Quarters *[]ScoreInput        `json:"quarters" validate:"omitempty,dive"`
	Sets     *[]ScoreInput        `json:"sets" validate:"omitempty,dive"`
	Result   *string              `json:"result"`
	Date     *string              `json:"date"`
	Status   *string              `json:"status" validate:"omitempty,oneof=Completed Ongoing Upcoming"`
	Moves    *int                 `json:"moves" validate:"omitempty,gte=0"`
	Players  *[]string            `json:"players"`
	Details  *models.MatchDetails `json:"details"`
}

// ScoreDelta is added to the running score of a match. Each side moves by at
// most MaxScoreStep per request.
type ScoreDelta struct {
	Home int `json:"home" validate:"gte=-1000,lte=1000"`
	Away int `json:"away" validate:"gte=-1000,lte=1000"`
}

// MaxScoreStep bounds a single score adjustment.
const MaxScoreStep = 1000

// MatchService manages fixtures and their scores.
type MatchService struct {
	db *gorm.DB
}

// NewMatchService constructs a MatchService.
func NewMatchService(db *gorm.DB) (*MatchService, error) {
	if db == nil {
		return nil, errors.New("match service: db is required")
	}
	return &MatchService{db: db}, nil
}

// List returns every match, latest date first.
func (s *MatchService) List(ctx context.Context) ([]models.Match, error) {
	return s.list(ctx, "")
}

// ListBySport returns the matches of sport, latest date first.
func (s *MatchService) ListBySport(ctx context.Context, sport string) ([]models.Match, error) {
	sport = strings.TrimSpace(sport)
	if sport == "" {
		return []models.Match{}, nil
	}
	return s.list(ctx, sport)
}

func (s *MatchService) list(ctx context.Context, sport string) ([]models.Match, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).Model(&models.Match{})
	if sport != "" {
		query = query.Where("sport = ?", sport)
	}

	var matches []models.Match
	if err := query.Order("date DESC").Order("created_at DESC").Find(&matches).Error; err != nil {
		return nil, fmt.Errorf("match service: list matches: %w", err)
	}
	return matches, nil
}

// GetByID loads a match by id.
func (s *MatchService) GetByID(ctx context.Context, id string) (*models.Match, error) {
	ctx = ensureContext(ctx)

	if !isValidID(id) {
		return nil, ErrMatchNotFound
	}
	return s.take(ctx, "id = ?", strings.TrimSpace(id))
}

// GetBySlug loads the match identified by slug within sport.
func (s *MatchService) GetBySlug(ctx context.Context, sport, slug string) (*models.Match, error) {
	ctx = ensureContext(ctx)
	return s.take(ctx, "sport = ? AND slug = ?", strings.TrimSpace(sport), strings.TrimSpace(slug))
}

func (s *MatchService) take(ctx context.Context, query string, args ...any) (*models.Match, error) {
	var match models.Match
	err := s.db.WithContext(ctx).Where(query, args...).Take(&match).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("match service: get match: %w", err)
	}
	return &match, nil
}

// Create stores a new match. Sport, name and date are required; the slug is
// derived from the name when omitted.
func (s *MatchService) Create(ctx context.Context, input MatchInput) (*models.Match, error) {
	return s.create(ctx, input, ErrMatchSlugTaken)
}

// CreateForSport stores a new match under sport, ignoring any sport in input.
func (s *MatchService) CreateForSport(ctx context.Context, sport string, input MatchInput) (*models.Match, error) {
	input.Sport = &sport
	return s.create(ctx, input, ErrMatchSlugTakenForSport)
}

func (s *MatchService) create(ctx context.Context, input MatchInput, conflict error) (*models.Match, error) {
	ctx = ensureContext(ctx)

	switch {
	case trimmed(input.Sport) == "":
		return nil, apperrors.NewBadRequest("Sport is required")
	case trimmed(input.Match) == "":
		return nil, apperrors.NewBadRequest("Match name is required")
	case trimmed(input.Date) == "":
		return nil, apperrors.NewBadRequest("Date is required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	match := &models.Match{
		Status: models.MatchUpcoming,
		Scores: datatypes.NewJSONType(models.Score{}),
		Teams:  datatypes.NewJSONType(models.MatchTeams{}),
	}
	applyMatchInput(match, input)
	if match.Slug == "" {
		match.Slug = models.Slugify(match.Name)
	}

	if err := s.db.WithContext(ctx).Create(match).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, conflict
		}
		return nil, fmt.Errorf("match service: create match: %w", err)
	}
	return match, nil
}

// Update applies input to the match identified by id.
func (s *MatchService) Update(ctx context.Context, id string, input MatchInput) (*models.Match, error) {
	match, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, match, input)
}

// UpdateBySlug applies input to the match identified by sport and slug.
func (s *MatchService) UpdateBySlug(ctx context.Context, sport, slug string, input MatchInput) (*models.Match, error) {
	match, err := s.GetBySlug(ctx, sport, slug)
	if err != nil {
		return nil, err
	}
	// The sport of a match is fixed by its route.
	input.Sport = nil
	return s.save(ctx, match, input)
}

func (s *MatchService) save(ctx context.Context, match *models.Match, input MatchInput) (*models.Match, error) {
	ctx = ensureContext(ctx)

	if err := validateInput(input); err != nil {
		return nil, err
	}
	for field, value := range map[string]*string{"Sport": input.Sport, "Match name": input.Match, "Date": input.Date} {
		if value != nil && strings.TrimSpace(*value) == "" {
			return nil, apperrors.NewBadRequest(field + " is required")
		}
	}

	applyMatchInput(match, input)
	if err := s.db.WithContext(ctx).Save(match).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrMatchSlugTaken
		}
		return nil, fmt.Errorf("match service: update match: %w", err)
	}
	return match, nil
}

// ApplyScore adds delta to the running score of the match identified by id.
// Neither side drops below zero.
func (s *MatchService) ApplyScore(ctx context.Context, id string, delta ScoreDelta) (*models.Match, error) {
	ctx = ensureContext(ctx)

	if !isValidID(id) {
		return nil, ErrMatchNotFound
	}
	if err := validateInput(delta); err != nil {
		return nil, err
	}

	var match models.Match
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Take(&match, "id = ?", strings.TrimSpace(id)).Error; err != nil {
			return err
		}
		match.ApplyScoreDelta(models.Score{Home: delta.Home, Away: delta.Away})
		return tx.Model(&match).Update("scores", match.Scores).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("match service: apply score: %w", err)
	}
	return &match, nil
}

// Delete removes the match identified by id.
func (s *MatchService) Delete(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)

	if !isValidID(id) {
		return ErrMatchNotFound
	}
	return s.delete(ctx, "id = ?", strings.TrimSpace(id))
}

// DeleteBySlug removes the match identified by sport and slug.
func (s *MatchService) DeleteBySlug(ctx context.Context, sport, slug string) error {
	ctx = ensureContext(ctx)
	return s.delete(ctx, "sport = ? AND slug = ?", strings.TrimSpace(sport), strings.TrimSpace(slug))
}

func (s *MatchService) delete(ctx context.Context, query string, args ...any) error {
	result := s.db.WithContext(ctx).Where(query, args...).Delete(&models.Match{})
	if result.Error != nil {
		return fmt.Errorf("match service: delete match: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrMatchNotFound
	}
	return nil
}

func applyMatchInput(match *models.Match, input MatchInput) {
	if value := trimmed(input.Sport); value != "" {
		match.Sport = value
	}
	if value := trimmed(input.Match); value != "" {
		match.Name = value
	}
	if value := trimmed(input.Slug); value != "" {
		match.Slug = value
	}
	if value := trimmed(input.Date); value != "" {
		match.Date = value
	}
	if value := trimmed(input.Status); value != "" {
		match.Status = models.MatchStatus(value)
	}
	if input.Result != nil {
		match.Result = strings.TrimSpace(*input.Result)
	}
	if input.Teams != nil {
		match.Teams = datatypes.NewJSONType(*input.Teams)
	}
	if input.Scores != nil {
		match.Scores = datatypes.NewJSONType(input.Scores.model())
	}
	if input.Quarters != nil {
		match.Quarters = toScores(*input.Quarters)
	}
	if input.Sets != nil {
		match.Sets = toScores(*input.Sets)
	}
	if input.Moves != nil {
		moves := *input.Moves
		match.Moves = &moves
	}
	if input.Players != nil {
		match.Players = datatypes.JSONSlice[string](normaliseNames(*input.Players))
	}
	if input.Details != nil {
		match.Details = datatypes.NewJSONType(*input.Details)
	}
}

func toScores(values []ScoreInput) datatypes.JSONSlice[models.Score] {
	out := make(datatypes.JSONSlice[models.Score], len(values))
	for i, value := range values {
		out[i] = value.model()
	}
	return out
}

func trimmed(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}
