package validator

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

type registerPayload struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=main_admin sport_admin"`
}

func TestValidateStructSuccess(t *testing.T) {
	payload := registerPayload{
		Username: "cricket-admin",
		Email:    "cricket@example.com",
		Password: "secret1",
	}

	if err := ValidateStruct(payload); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateStructFailures(t *testing.T) {
	payload := registerPayload{
		Username: "ab",
		Email:    "invalid",
		Password: "123",
		Role:     "coach",
	}

	err := ValidateStruct(payload)
	if err == nil {
		t.Fatal("expected validation error")
	}

	vErrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if len(vErrs) != 4 {
		t.Fatalf("expected 4 validation errors, got %d", len(vErrs))
	}

	messages := strings.Join(vErrs.Messages(), "\n")
	for _, want := range []string{
		"username must be at least 3 characters",
		"email must be a valid email address",
		"password must be at least 6 characters",
		"role must be one of: main_admin, sport_admin",
	} {
		if !strings.Contains(messages, want) {
			t.Fatalf("expected %q in %q", want, messages)
		}
	}
}

func TestRegisterValidation(t *testing.T) {
	err := RegisterValidation("kebab", func(fl validator.FieldLevel) bool {
		return !strings.Contains(fl.Field().String(), " ")
	})
	if err != nil {
		t.Fatalf("register validation: %v", err)
	}

	type custom struct {
		Slug string `validate:"kebab"`
	}

	if err := ValidateStruct(custom{Slug: "table-tennis"}); err != nil {
		t.Fatalf("expected validation to pass, got %v", err)
	}
	if err := ValidateStruct(custom{Slug: "table tennis"}); err == nil {
		t.Fatal("expected validation to fail for value with spaces")
	}
}

func TestValidateStructRangeMessages(t *testing.T) {
	type step struct {
		Home int `json:"home" validate:"gte=-10,lte=10"`
		Away int `json:"away" validate:"gte=-10,lte=10"`
	}

	err := ValidateStruct(step{Home: 11, Away: -11})
	vErrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}

	messages := strings.Join(vErrs.Messages(), "\n")
	for _, want := range []string{
		"home must be less than or equal to 10",
		"away must be greater than or equal to -10",
	} {
		if !strings.Contains(messages, want) {
			t.Fatalf("expected %q in %q", want, messages)
		}
	}
}
