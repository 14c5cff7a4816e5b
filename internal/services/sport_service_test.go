package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/charlesng35/kurukshetra/internal/cache"
	"github.com/charlesng35/kurukshetra/internal/models"
	"github.com/charlesng35/kurukshetra/internal/permissions"
)

func newSportService(t *testing.T, db *gorm.DB, now time.Time) *SportService {
	t.Helper()
	svc, err := NewSportService(db, cache.NewDatabaseStore(db), time.Minute, fixedClock(now))
	require.NoError(t, err)
	return svc
}

func strPtr(value string) *string { return &value }

func TestSportServiceCreateDefaults(t *testing.T) {
	db := openServiceTestDB(t)
	now := time.Date(2025, 10, 5, 9, 0, 0, 0, time.UTC)
	svc := newSportService(t, db, now)

	sport, err := svc.Create(context.Background(), SportInput{Name: strPtr("Table Tennis")})
	require.NoError(t, err)
	require.Equal(t, "Table Tennis", sport.Title)
	require.Equal(t, "table-tennis", sport.Slug)
	require.Equal(t, models.SportTypeNormal, sport.Type)
	require.Equal(t, models.CategoryOutdoor, sport.Category)
	require.Equal(t, "2025-10-05", sport.Date)
	require.Equal(t, "TBD", sport.Venue)
	require.Equal(t, 1, sport.MinPlayers)
	require.Equal(t, models.StatusUpcoming, sport.Status)

	_, err = svc.Create(context.Background(), SportInput{Name: strPtr("table tennis")})
	require.ErrorIs(t, err, ErrSportSlugTaken)

	_, err = svc.Create(context.Background(), SportInput{Name: strPtr("  ")})
	require.EqualError(t, err, "Name is required")

	_, err = svc.Create(context.Background(), SportInput{Name: strPtr("Polo"), Category: strPtr("Underwater")})
	require.EqualError(t, err, "Validation error")
}

func TestSportServiceListCacheInvalidation(t *testing.T) {
	db := openServiceTestDB(t)
	svc := newSportService(t, db, time.Date(2025, 10, 5, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := svc.Create(ctx, SportInput{Name: strPtr("Football")})
	require.NoError(t, err)

	sports, err := svc.List(ctx, SportFilter{})
	require.NoError(t, err)
	require.Len(t, sports, 1)

	// Rows written behind the service are hidden by the cached listing.
	createSport(t, db, "Hockey")
	sports, err = svc.List(ctx, SportFilter{})
	require.NoError(t, err)
	require.Len(t, sports, 1)

	// Filtered listings bypass the cache.
	sports, err = svc.List(ctx, SportFilter{Type: string(models.SportTypeNormal)})
	require.NoError(t, err)
	require.Len(t, sports, 2)

	_, err = svc.Create(ctx, SportInput{Name: strPtr("Chess"), Category: strPtr("Indoor")})
	require.NoError(t, err)
	sports, err = svc.List(ctx, SportFilter{})
	require.NoError(t, err)
	require.Len(t, sports, 3)

	indoor, err := svc.List(ctx, SportFilter{Category: "Indoor"})
	require.NoError(t, err)
	require.Len(t, indoor, 1)
	require.Equal(t, "Chess", indoor[0].Name)
}

func TestSportServiceUpcoming(t *testing.T) {
	db := openServiceTestDB(t)
	svc := newSportService(t, db, time.Date(2025, 10, 5, 15, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for name, date := range map[string]string{
		"Past":     "2025-10-04",
		"Today":    "October 5, 2025",
		"Later":    "2025-11-01",
		"Soon":     "2025-10-06",
		"Unparsed": "sometime soon",
	} {
		_, err := svc.Create(ctx, SportInput{Name: strPtr(name), Date: strPtr(date)})
		require.NoError(t, err)
	}

	upcoming, err := svc.Upcoming(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(upcoming))
	for _, sport := range upcoming {
		names = append(names, sport.Name)
	}
	require.Equal(t, []string{"Today", "Soon", "Later"}, names)
}

func TestSportServiceLookups(t *testing.T) {
	db := openServiceTestDB(t)
	svc := newSportService(t, db, time.Now())
	ctx := context.Background()

	sport, err := svc.Create(ctx, SportInput{Name: strPtr("Kabaddi"), Type: strPtr("join_sport")})
	require.NoError(t, err)

	got, err := svc.GetBySlug(ctx, "kabaddi")
	require.NoError(t, err)
	require.Equal(t, sport.ID, got.ID)

	joinable, err := svc.ListByType(ctx, "join_sport")
	require.NoError(t, err)
	require.Len(t, joinable, 1)

	_, err = svc.GetByID(ctx, "not-a-uuid")
	require.ErrorIs(t, err, ErrSportNotFound)

	// FindSport errors are recognised by the access layer.
	_, err = svc.FindSport(ctx, "00000000-0000-0000-0000-000000000000")
	require.ErrorIs(t, err, permissions.ErrSportNotFound)
}

func TestSportServiceUpdateAndStatusByName(t *testing.T) {
	db := openServiceTestDB(t)
	svc := newSportService(t, db, time.Now())
	ctx := context.Background()

	sport, err := svc.Create(ctx, SportInput{Name: strPtr("Chess")})
	require.NoError(t, err)

	venue := "Sports Hall 1"
	updated, err := svc.Update(ctx, sport.ID, SportInput{Venue: &venue, Name: nil})
	require.NoError(t, err)
	require.Equal(t, venue, updated.Venue)
	require.Equal(t, "Chess", updated.Name)

	_, err = svc.Update(ctx, sport.ID, SportInput{Name: strPtr("")})
	require.EqualError(t, err, "Name is required")

	sports, err := svc.UpdateStatusByName(ctx, "Chess", models.StatusOngoing)
	require.NoError(t, err)
	require.Len(t, sports, 1)
	require.Equal(t, models.StatusOngoing, sports[0].Status)

	_, err = svc.UpdateStatusByName(ctx, "Chess", models.Status("paused"))
	require.Error(t, err)

	_, err = svc.UpdateStatusByName(ctx, "Croquet", models.StatusOngoing)
	require.ErrorIs(t, err, ErrSportNotFound)
}

func TestSportServiceDeleteClearsAssignments(t *testing.T) {
	db := openServiceTestDB(t)
	sports := newSportService(t, db, time.Now())
	users := newUserService(t, db)
	ctx := context.Background()

	sport, err := sports.Create(ctx, SportInput{Name: strPtr("Football")})
	require.NoError(t, err)
	user, err := users.Create(ctx, CreateUserInput{
		Username:       "coach",
		Email:          "coach@example.com",
		Password:       "secret1",
		AssignedSports: []string{sport.ID},
	})
	require.NoError(t, err)

	require.NoError(t, sports.Delete(ctx, sport.ID))
	require.ErrorIs(t, sports.Delete(ctx, sport.ID), ErrSportNotFound)

	loaded, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, loaded.AssignedSports)
}

func TestSportServiceRefreshStatuses(t *testing.T) {
	db := openServiceTestDB(t)
	svc := newSportService(t, db, time.Date(2025, 10, 5, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	past, err := svc.Create(ctx, SportInput{Name: strPtr("Past"), Date: strPtr("2025-10-01")})
	require.NoError(t, err)
	today, err := svc.Create(ctx, SportInput{Name: strPtr("Today"), Date: strPtr("2025-10-05")})
	require.NoError(t, err)
	cancelled, err := svc.Create(ctx, SportInput{Name: strPtr("Cancelled"), Date: strPtr("2025-10-01"), Status: strPtr("cancelled")})
	require.NoError(t, err)
	_, err = svc.Create(ctx, SportInput{Name: strPtr("Future"), Date: strPtr("2025-12-01")})
	require.NoError(t, err)

	changed, err := svc.RefreshStatuses(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, changed)

	for id, want := range map[string]models.Status{
		past.ID:      models.StatusCompleted,
		today.ID:     models.StatusOngoing,
		cancelled.ID: models.StatusCancelled,
	} {
		got, err := svc.GetByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, want, got.Status)
	}

	changed, err = svc.RefreshStatuses(ctx)
	require.NoError(t, err)
	require.Zero(t, changed)
}
