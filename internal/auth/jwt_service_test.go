package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time { return c.current }

func (c *fakeClock) Advance(d time.Duration) { c.current = c.current.Add(d) }

func newTestService(t *testing.T, clock *fakeClock) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret: "super-secret",
		Issuer: "kurukshetra",
		Clock:  clock.Now,
	})
	require.NoError(t, err)
	return svc
}

func TestNewJWTServiceRequiresSecret(t *testing.T) {
	_, err := NewJWTService(JWTConfig{})
	require.EqualError(t, err, "jwt: secret must be provided")

	_, err = NewJWTService(JWTConfig{Secret: "   "})
	require.Error(t, err)
}

func TestNewJWTServiceDefaultsTTL(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{Secret: "s"})
	require.NoError(t, err)
	require.Equal(t, 24*time.Hour, svc.TTL())
}

func TestIssueAndVerify(t *testing.T) {
	clock := &fakeClock{current: time.Date(2025, 10, 5, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(t, clock)

	token, err := svc.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", userID)

	claims, err := svc.ParseClaims(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.Subject)
	require.Equal(t, "kurukshetra", claims.Issuer)
	require.True(t, claims.IssuedAt.Time.Equal(clock.current))
	require.True(t, claims.ExpiresAt.Time.Equal(clock.current.Add(24*time.Hour)))
}

func TestIssueRequiresUserID(t *testing.T) {
	svc := newTestService(t, &fakeClock{current: time.Now()})
	_, err := svc.Issue("")
	require.Error(t, err)
}

func TestVerifyExpiryBoundary(t *testing.T) {
	clock := &fakeClock{current: time.Date(2025, 10, 5, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(t, clock)

	token, err := svc.Issue("user-123")
	require.NoError(t, err)

	clock.Advance(24*time.Hour - time.Second)
	_, err = svc.Verify(token)
	require.NoError(t, err, "token must still be valid one second before expiry")

	clock.Advance(time.Second)
	_, err = svc.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken, "token is expired at the exact expiry instant")
	require.ErrorIs(t, err, jwt.ErrTokenExpired)

	clock.Advance(time.Second)
	_, err = svc.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsOtherSecret(t *testing.T) {
	clock := &fakeClock{current: time.Date(2025, 10, 5, 12, 0, 0, 0, time.UTC)}
	issuer := newTestService(t, clock)

	verifier, err := NewJWTService(JWTConfig{Secret: "other-secret", Issuer: "kurukshetra", Clock: clock.Now})
	require.NoError(t, err)

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
	require.True(t, errors.Is(err, jwt.ErrTokenSignatureInvalid))
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	clock := &fakeClock{current: time.Date(2025, 10, 5, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(t, clock)

	token, err := svc.Issue("user-123")
	require.NoError(t, err)

	other, err := svc.Issue("user-456")
	require.NoError(t, err)

	// Splice the second payload onto the first signature.
	parts := strings.Split(token, ".")
	otherParts := strings.Split(other, ".")
	forged := strings.Join([]string{parts[0], otherParts[1], parts[2]}, ".")

	_, err = svc.Verify(forged)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsMalformedAndUnsigned(t *testing.T) {
	clock := &fakeClock{current: time.Date(2025, 10, 5, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(t, clock)

	for _, token := range []string{"", "  ", "not-a-jwt", "a.b.c"} {
		_, err := svc.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		UserID: "user-123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(clock.current.Add(time.Hour)),
		},
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRequiresExpiryAndUserID(t *testing.T) {
	clock := &fakeClock{current: time.Date(2025, 10, 5, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(t, clock)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: "user-123"}).SignedString([]byte("super-secret"))
	require.NoError(t, err)
	_, err = svc.Verify(noExpiry)
	require.ErrorIs(t, err, ErrInvalidToken)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(clock.current.Add(time.Hour))},
	}).SignedString([]byte("super-secret"))
	require.NoError(t, err)
	_, err = svc.Verify(noUser)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	clock := &fakeClock{current: time.Date(2025, 10, 5, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(t, clock)

	foreign, err := NewJWTService(JWTConfig{Secret: "super-secret", Issuer: "someone-else", Clock: clock.Now})
	require.NoError(t, err)
	token, err := foreign.Issue("user-123")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
