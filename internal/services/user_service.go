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
	"github.com/charlesng35/kurukshetra/pkg/validator"
)

// CreateUserInput describes the fields accepted when creating an admin account.
type CreateUserInput struct {
	Username       string   `json:"username" validate:"required,min=3"`
	Email          string   `json:"email" validate:"required,email"`
	Password       string   `json:"password" validate:"required,min=6"`
	Role           string   `json:"role" validate:"omitempty,oneof=main_admin sport_admin"`
	AssignedSports []string `json:"assignedSports"`
	SportNames     []string `json:"sportNames"`
	IsActive       *bool    `json:"isActive"`
}

// UpdateUserInput enumerates mutable user attributes. Nil fields are left as is.
type UpdateUserInput struct {
	Username       *string   `json:"username" validate:"omitempty,min=3"`
	Email          *string   `json:"email" validate:"omitempty,email"`
	Role           *string   `json:"role" validate:"omitempty,oneof=main_admin sport_admin"`
	AssignedSports *[]string `json:"assignedSports"`
	SportNames     *[]string `json:"sportNames"`
	IsActive       *bool     `json:"isActive"`
}

type changePasswordInput struct {
	Password string `json:"newPassword" validate:"required,min=6"`
}

// UserService is the credential store for admin accounts.
type UserService struct {
	db    *gorm.DB
	clock Clock
}

// NewUserService constructs a UserService instance.
func NewUserService(db *gorm.DB, clock Clock) (*UserService, error) {
	if db == nil {
		return nil, errors.New("user service: db is required")
	}
	return &UserService{db: db, clock: clock}, nil
}

// Create stores a new account. The password is hashed before it is written.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	ctx = ensureContext(ctx)

	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Role = strings.TrimSpace(input.Role)
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, apperrors.NewBadRequest("Username, email, and password are required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	role, err := models.ParseRole(input.Role)
	if err != nil {
		return nil, apperrors.NewBadRequest(err.Error())
	}

	user := &models.User{
		Username:   input.Username,
		Email:      input.Email,
		Role:       role,
		SportNames: datatypes.JSONSlice[string](normaliseNames(input.SportNames)),
		IsActive:   true,
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	user.SetPassword(input.Password)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.User{}).
			Where("email = ? OR username = ?", user.Email, user.Username).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrUserExists
		}

		sports, err := loadSports(tx, input.AssignedSports)
		if err != nil {
			return err
		}
		user.AssignedSports = sports

		return tx.Omit("AssignedSports.*").Create(user).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrUserExists
		}
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, fmt.Errorf("user service: create user: %w", err)
	}

	return user, nil
}

// FindByEmail loads a user by email address, case-insensitively.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx = ensureContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrUserNotFound
	}

	var user models.User
	err := s.db.WithContext(ctx).
		Preload("AssignedSports").
		Take(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user service: find by email: %w", err)
	}
	return &user, nil
}

// GetByID loads a user with their assigned sports.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx = ensureContext(ctx)

	if !isValidID(id) {
		return nil, ErrUserNotFound
	}

	var user models.User
	err := s.db.WithContext(ctx).
		Preload("AssignedSports").
		Take(&user, "id = ?", strings.TrimSpace(id)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user service: get user: %w", err)
	}
	return &user, nil
}

// VerifyPassword reports whether candidate matches the stored secret of user.
// It has no side effects.
func (s *UserService) VerifyPassword(user *models.User, candidate string) bool {
	return user.CheckPassword(candidate)
}

// List returns every account, newest first.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	ctx = ensureContext(ctx)

	var users []models.User
	if err := s.db.WithContext(ctx).
		Preload("AssignedSports").
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("user service: list users: %w", err)
	}
	return users, nil
}

// Update applies a partial update to the account identified by id.
func (s *UserService) Update(ctx context.Context, id string, input UpdateUserInput) (*models.User, error) {
	ctx = ensureContext(ctx)

	input.Username = normalisedPtr(input.Username, strings.TrimSpace)
	input.Email = normalisedPtr(input.Email, func(v string) string { return strings.ToLower(strings.TrimSpace(v)) })
	input.Role = normalisedPtr(input.Role, strings.TrimSpace)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Username != nil && *input.Username != "" {
		user.Username = *input.Username
	}
	if input.Email != nil && *input.Email != "" {
		user.Email = *input.Email
	}
	if input.Role != nil && *input.Role != "" {
		role, err := models.ParseRole(*input.Role)
		if err != nil {
			return nil, apperrors.NewBadRequest(err.Error())
		}
		user.Role = role
	}
	if input.SportNames != nil {
		user.SportNames = datatypes.JSONSlice[string](normaliseNames(*input.SportNames))
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("AssignedSports").Save(user).Error; err != nil {
			return err
		}
		if input.AssignedSports == nil {
			return nil
		}
		sports, err := loadSports(tx, *input.AssignedSports)
		if err != nil {
			return err
		}
		assoc := tx.Model(user).Association("AssignedSports")
		if len(sports) == 0 {
			err = assoc.Clear()
		} else {
			err = assoc.Replace(sports)
		}
		if err != nil {
			return err
		}
		user.AssignedSports = sports
		return nil
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrUserExists
		}
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, fmt.Errorf("user service: update user: %w", err)
	}

	return user, nil
}

// Delete removes the account identified by id. actorID is the caller, who may
// not delete themselves.
func (s *UserService) Delete(ctx context.Context, actorID, id string) error {
	ctx = ensureContext(ctx)

	if strings.TrimSpace(id) == strings.TrimSpace(actorID) {
		return ErrCannotDeleteSelf
	}
	if !isValidID(id) {
		return ErrUserNotFound
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user := &models.User{BaseModel: models.BaseModel{ID: strings.TrimSpace(id)}}
		if err := tx.Model(user).Association("AssignedSports").Clear(); err != nil {
			return fmt.Errorf("user service: clear sports: %w", err)
		}
		result := tx.Delete(user)
		if result.Error != nil {
			return fmt.Errorf("user service: delete user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}

// RecordLogin stamps the last login time on user.
func (s *UserService) RecordLogin(ctx context.Context, user *models.User) error {
	ctx = ensureContext(ctx)

	now := s.clock.now().UTC()
	if err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("last_login", now).Error; err != nil {
		return fmt.Errorf("user service: record login: %w", err)
	}
	user.LastLogin = &now
	return nil
}

// ChangePassword replaces the secret of the account identified by id after
// checking the current one.
func (s *UserService) ChangePassword(ctx context.Context, id, current, next string) error {
	ctx = ensureContext(ctx)

	if current == "" || next == "" {
		return apperrors.NewBadRequest("Current and new password are required")
	}
	if err := validateInput(changePasswordInput{Password: next}); err != nil {
		return err
	}

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !user.CheckPassword(current) {
		return ErrCurrentPasswordMismatch
	}

	user.SetPassword(next)
	if err := s.db.WithContext(ctx).Omit("AssignedSports").Save(user).Error; err != nil {
		return fmt.Errorf("user service: change password: %w", err)
	}
	return nil
}

// EnsureMainAdmin creates a main admin from input unless one already exists.
// It returns the account and whether it was created.
func (s *UserService) EnsureMainAdmin(ctx context.Context, input CreateUserInput) (*models.User, bool, error) {
	ctx = ensureContext(ctx)

	var existing models.User
	err := s.db.WithContext(ctx).
		Where("role = ?", models.RoleMainAdmin).
		Order("created_at ASC").
		Take(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("user service: find main admin: %w", err)
	}

	input.Role = string(models.RoleMainAdmin)
	active := true
	input.IsActive = &active
	user, err := s.Create(ctx, input)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// normalisedPtr returns a copy of *value passed through fn, leaving the
// caller's string untouched. nil stays nil.
func normalisedPtr(value *string, fn func(string) string) *string {
	if value == nil {
		return nil
	}
	out := fn(*value)
	return &out
}

// loadSports resolves sport ids to records. Unknown ids are rejected.
func loadSports(tx *gorm.DB, ids []string) ([]models.Sport, error) {
	ids = normaliseIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	for _, id := range ids {
		if !isValidID(id) {
			return nil, apperrors.NewBadRequest("Assigned sport not found: " + id)
		}
	}

	var sports []models.Sport
	if err := tx.Where("id IN ?", ids).Find(&sports).Error; err != nil {
		return nil, err
	}
	if len(sports) != len(ids) {
		found := make(map[string]struct{}, len(sports))
		for _, sport := range sports {
			found[sport.ID] = struct{}{}
		}
		for _, id := range ids {
			if _, ok := found[id]; !ok {
				return nil, apperrors.NewBadRequest("Assigned sport not found: " + id)
			}
		}
	}
	return sports, nil
}

// validateInput runs struct validation and reports failures as a 400 with one
// message per field.
func validateInput(input any) error {
	err := validator.ValidateStruct(input)
	if err == nil {
		return nil
	}
	var failures validator.ValidationErrors
	if errors.As(err, &failures) {
		return apperrors.NewValidation(failures.Messages()...)
	}
	return apperrors.NewBadRequest(err.Error())
}
