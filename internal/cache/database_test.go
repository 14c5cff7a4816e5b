package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/kurukshetra/internal/database/testutil"
)

func newTestDatabaseStore(t *testing.T) (*DatabaseStore, *time.Time) {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	store := NewDatabaseStore(db)
	now := time.Date(2025, 10, 5, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	return store, &now
}

func TestDatabaseStoreIncrementWithinWindow(t *testing.T) {
	store, now := newTestDatabaseStore(t)
	ctx := context.Background()

	count, ttl, err := store.IncrementWithTTL(ctx, "login:1.2.3.4", time.Minute)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
	require.Equal(t, time.Minute, ttl)

	*now = now.Add(20 * time.Second)
	count, ttl, err = store.IncrementWithTTL(ctx, "login:1.2.3.4", time.Minute)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
	require.Equal(t, 40*time.Second, ttl)

	*now = now.Add(time.Minute)
	count, _, err = store.IncrementWithTTL(ctx, "login:1.2.3.4", time.Minute)
	require.NoError(t, err)
	require.EqualValues(t, 1, count, "expired window restarts the counter")
}

func TestDatabaseStoreSetGetDelete(t *testing.T) {
	store, now := newTestDatabaseStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "sports:list", []byte(`[1]`), time.Minute))
	value, ok, err := store.Get(ctx, "sports:list")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte(`[1]`), value)

	require.NoError(t, store.Set(ctx, "sports:list", []byte(`[2]`), time.Minute))
	value, _, err = store.Get(ctx, "sports:list")
	require.NoError(t, err)
	require.Equal(t, []byte(`[2]`), value)

	*now = now.Add(2 * time.Minute)
	_, ok, err = store.Get(ctx, "sports:list")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Set(ctx, "pinned", []byte("x"), 0))
	require.NoError(t, store.Delete(ctx, "pinned"))
	_, ok, err = store.Get(ctx, "pinned")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDatabaseStorePurgeExpired(t *testing.T) {
	store, now := newTestDatabaseStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "short", []byte("a"), time.Second))
	require.NoError(t, store.Set(ctx, "long", []byte("b"), time.Hour))
	require.NoError(t, store.Set(ctx, "forever", []byte("c"), 0))

	*now = now.Add(time.Minute)
	removed, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, removed)

	_, ok, err := store.Get(ctx, "long")
	require.NoError(t, err)
	require.True(t, ok)
	_, ok, err = store.Get(ctx, "forever")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestJSONHelpers(t *testing.T) {
	store, _ := newTestDatabaseStore(t)
	ctx := context.Background()

	type payload struct {
		Name string `json:"name"`
	}

	var out payload
	hit, err := GetJSON(ctx, store, "missing", &out)
	require.NoError(t, err)
	require.False(t, hit)

	require.NoError(t, SetJSON(ctx, store, "item", payload{Name: "Chess"}, time.Minute))
	hit, err = GetJSON(ctx, store, "item", &out)
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, "Chess", out.Name)

	require.NoError(t, store.Set(ctx, "broken", []byte("{"), time.Minute))
	hit, err = GetJSON(ctx, store, "broken", &out)
	require.NoError(t, err)
	require.False(t, hit)

	hit, err = GetJSON(ctx, nil, "item", &out)
	require.NoError(t, err)
	require.False(t, hit)
}
