package memory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyager/internal/domain/profile"
	"voyager/internal/repository/memory"
	"voyager/pkg/errors"
)

func newProfile(userID string, createdAt time.Time) *profile.UserProfile {
	return &profile.UserProfile{
		UserID: userID,
		Basic: profile.BasicInfo{
			Name:  "User " + userID,
			Email: userID + "@example.com",
		},
		CreatedAt: createdAt,
	}
}

func TestProfileStore_CreateGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := memory.NewProfileStore()

	p := newProfile("u-1", time.Now().UTC())
	p.Accessibility.MobilityNeeds = []string{"wheelchair"}
	require.NoError(t, store.Create(ctx, p))

	got, err := store.Get(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "User u-1", got.Basic.Name)
	assert.Equal(t, []string{"wheelchair"}, got.Accessibility.MobilityNeeds)

	// The store holds its own copy
	got.Basic.Name = "mutated"
	again, err := store.Get(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "User u-1", again.Basic.Name)
}

func TestProfileStore_CreateRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	store := memory.NewProfileStore()

	require.NoError(t, store.Create(ctx, newProfile("u-1", time.Now())))
	err := store.Create(ctx, newProfile("u-1", time.Now()))
	assert.True(t, errors.Is(err, errors.ErrAlreadyExists))
}

func TestProfileStore_GetMissing(t *testing.T) {
	store := memory.NewProfileStore()

	_, err := store.Get(context.Background(), "nope")
	assert.True(t, errors.Is(err, errors.ErrProfileNotFound))
}

func TestProfileStore_UpdateMissing(t *testing.T) {
	store := memory.NewProfileStore()

	err := store.Update(context.Background(), newProfile("nope", time.Now()))
	assert.True(t, errors.Is(err, errors.ErrProfileNotFound))
}

func TestProfileStore_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewProfileStore()
	require.NoError(t, store.Create(ctx, newProfile("u-1", time.Now())))

	deleted, err := store.Delete(ctx, "u-1")
	require.NoError(t, err)
	assert.True(t, deleted)

	// Second delete succeeds but reports nothing removed
	deleted, err = store.Delete(ctx, "u-1")
	require.NoError(t, err)
	assert.False(t, deleted)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestProfileStore_ListPaginationWindow(t *testing.T) {
	ctx := context.Background()
	store := memory.NewProfileStore()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("u-%d", i)
		require.NoError(t, store.Create(ctx, newProfile(id, base.Add(time.Duration(i)*time.Minute))))
	}

	page, err := store.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "u-2", page[0].UserID)
	assert.Equal(t, "u-3", page[1].UserID)
}

func TestProfileStore_ListTieBreaksOnUserID(t *testing.T) {
	ctx := context.Background()
	store := memory.NewProfileStore()

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Create(ctx, newProfile("b", at)))
	require.NoError(t, store.Create(ctx, newProfile("a", at)))
	require.NoError(t, store.Create(ctx, newProfile("c", at)))

	page, err := store.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, "a", page[0].UserID)
	assert.Equal(t, "b", page[1].UserID)
	assert.Equal(t, "c", page[2].UserID)
}

func TestProfileStore_ListOffsetPastEnd(t *testing.T) {
	ctx := context.Background()
	store := memory.NewProfileStore()
	require.NoError(t, store.Create(ctx, newProfile("u-1", time.Now())))

	page, err := store.List(ctx, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, page)
}
