package permissions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/charlesng35/kurukshetra/internal/models"
)

type stubSports struct {
	sports map[string]*models.Sport
	err    error
	calls  int
}

func (s *stubSports) FindSport(_ context.Context, id string) (*models.Sport, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	sport, ok := s.sports[id]
	if !ok {
		return nil, ErrSportNotFound
	}
	return sport, nil
}

func newStubSports() *stubSports {
	return &stubSports{sports: map[string]*models.Sport{
		"s-football": {BaseModel: models.BaseModel{ID: "s-football"}, Name: "Football"},
		"s-chess":    {BaseModel: models.BaseModel{ID: "s-chess"}, Name: "Chess"},
		"s-kabaddi":  {BaseModel: models.BaseModel{ID: "s-kabaddi"}, Name: "Kabaddi"},
	}}
}

func sportAdmin(ids []string, names ...string) *models.User {
	user := &models.User{Role: models.RoleSportAdmin, IsActive: true, SportNames: datatypes.JSONSlice[string](names)}
	for _, id := range ids {
		user.AssignedSports = append(user.AssignedSports, models.Sport{BaseModel: models.BaseModel{ID: id}})
	}
	return user
}

func TestRoleChecks(t *testing.T) {
	checker := NewChecker(nil)
	mainAdmin := &models.User{Role: models.RoleMainAdmin}
	sport := sportAdmin(nil)

	require.NoError(t, checker.RequireMainAdmin(mainAdmin))
	require.ErrorIs(t, checker.RequireMainAdmin(sport), ErrMainAdminRequired)
	require.ErrorIs(t, checker.RequireMainAdmin(nil), ErrMainAdminRequired)

	require.NoError(t, checker.RequireAdmin(mainAdmin))
	require.NoError(t, checker.RequireAdmin(sport))
	require.ErrorIs(t, checker.RequireAdmin(&models.User{Role: "viewer"}), ErrAdminRequired)
}

func TestCanManageSportMainAdminSkipsLookup(t *testing.T) {
	sports := newStubSports()
	checker := NewChecker(sports)

	mainAdmin := &models.User{Role: models.RoleMainAdmin}
	require.NoError(t, checker.CanManageSport(context.Background(), mainAdmin, "does-not-exist"))
	require.Zero(t, sports.calls, "main admin must not trigger a sport lookup")
}

func TestCanManageSportOwnership(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		user    *models.User
		sportID string
		want    error
	}{
		{"assigned by id", sportAdmin([]string{"s-football"}), "s-football", nil},
		{"listed by name", sportAdmin(nil, "Chess"), "s-chess", nil},
		{"either key suffices", sportAdmin([]string{"s-football"}, "Chess"), "s-chess", nil},
		{"not owned", sportAdmin([]string{"s-football"}, "Chess"), "s-kabaddi", ErrSportAccessDenied},
		{"name match is case sensitive", sportAdmin(nil, "chess"), "s-chess", ErrSportAccessDenied},
		{"missing sport", sportAdmin([]string{"s-football"}), "s-unknown", ErrSportNotFound},
		{"blank id", sportAdmin([]string{"s-football"}), " ", ErrSportNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			checker := NewChecker(newStubSports())
			err := checker.CanManageSport(ctx, tc.user, tc.sportID)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCanManageSportLookupFailure(t *testing.T) {
	boom := errors.New("database down")
	checker := NewChecker(&stubSports{err: boom})

	err := checker.CanManageSport(context.Background(), sportAdmin(nil, "Chess"), "s-chess")
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, ErrSportNotFound)
	require.NotErrorIs(t, err, ErrSportAccessDenied)
}

func TestCanManageSportByName(t *testing.T) {
	checker := NewChecker(nil)

	require.NoError(t, checker.CanManageSportByName(&models.User{Role: models.RoleMainAdmin}, "Anything"))
	require.NoError(t, checker.CanManageSportByName(sportAdmin(nil, "Chess"), "Chess"))
	require.ErrorIs(t, checker.CanManageSportByName(sportAdmin([]string{"s-chess"}), "Chess"), ErrSportAccessDenied)
	require.ErrorIs(t, checker.CanManageSportByName(nil, "Chess"), ErrAdminRequired)
}
