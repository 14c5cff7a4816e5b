package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorIncludesInternal(t *testing.T) {
	internal := stdErrors.New("connection refused")
	err := Wrap(internal, "Server error")

	if err.Error() != "Server error: connection refused" {
		t.Fatalf("unexpected error string: %s", err.Error())
	}
	if !stdErrors.Is(err, internal) {
		t.Fatal("expected wrapped error to unwrap to internal")
	}
}

func TestWithDetailsCopies(t *testing.T) {
	base := NewValidation()
	with := base.WithDetails("username is too short")

	if with == base {
		t.Fatal("expected WithDetails to return a copy")
	}
	if len(base.Details) != 0 {
		t.Fatal("expected original error to remain unchanged")
	}
	if len(with.Details) != 1 || with.Details[0] != "username is too short" {
		t.Fatalf("unexpected details: %v", with.Details)
	}
}

func TestFromError(t *testing.T) {
	if out := FromError(ErrInvalidToken); out != ErrInvalidToken {
		t.Fatal("expected FromError to return the same AppError instance")
	}

	wrapped := fmt.Errorf("middleware: %w", ErrSportAccessDenied)
	if out := FromError(wrapped); out != ErrSportAccessDenied {
		t.Fatal("expected FromError to find wrapped AppError")
	}

	out := FromError(stdErrors.New("raw"))
	if out.StatusCode != http.StatusInternalServerError || out.Message != "Server error" {
		t.Fatalf("expected generic server error, got %d %q", out.StatusCode, out.Message)
	}
	if out.Internal == nil {
		t.Fatal("expected internal error to be attached")
	}
}

func TestTaxonomyStatusCodes(t *testing.T) {
	cases := map[*AppError]int{
		ErrTokenRequired:                   http.StatusUnauthorized,
		ErrInvalidToken:                    http.StatusForbidden,
		ErrInactiveUser:                    http.StatusUnauthorized,
		ErrMainAdminRequired:               http.StatusForbidden,
		ErrSportAccessDenied:               http.StatusForbidden,
		NewConflict("User already exists"): http.StatusBadRequest,
		NewNotFound("Sport not found"):     http.StatusNotFound,
	}
	for err, status := range cases {
		if err.StatusCode != status {
			t.Fatalf("%q: expected %d, got %d", err.Message, status, err.StatusCode)
		}
	}
}

func TestIsMatchesCopies(t *testing.T) {
	copyErr := ErrInvalidToken.WithInternal(stdErrors.New("expired"))
	if !stdErrors.Is(copyErr, ErrInvalidToken) {
		t.Fatal("expected copy to match sentinel")
	}
	if stdErrors.Is(copyErr, ErrTokenRequired) {
		t.Fatal("expected different sentinel not to match")
	}
	if !IsStatus(copyErr, http.StatusForbidden) {
		t.Fatal("expected IsStatus to report 403")
	}
}
