package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unimarket/internal/domain/entity"
	"unimarket/pkg/errors"
)

func newFavoriteFixture(t *testing.T) (*FavoriteUseCase, *fakeFavoriteRepo, *fakeItemRepo) {
	t.Helper()
	favoriteRepo := newFakeFavoriteRepo()
	itemRepo := newFakeItemRepo()
	return NewFavoriteUseCase(favoriteRepo, itemRepo), favoriteRepo, itemRepo
}

// assertMirrorInvariant verifies the id array and snapshots describe the
// same set.
func assertMirrorInvariant(t *testing.T, repo *fakeFavoriteRepo, userID string) {
	t.Helper()
	ctx := context.Background()

	ids, err := repo.IDs(ctx, userID)
	require.NoError(t, err)
	snapshots, err := repo.List(ctx, userID)
	require.NoError(t, err)

	require.Len(t, snapshots, len(ids))
	snapshotSet := map[string]bool{}
	for _, s := range snapshots {
		snapshotSet[s.ID] = true
	}
	for _, id := range ids {
		assert.True(t, snapshotSet[id], "id %s has no snapshot", id)
	}
}

func TestToggleRoundTrip(t *testing.T) {
	uc, favoriteRepo, itemRepo := newFavoriteFixture(t)
	ctx := context.Background()
	seedItem(t, itemRepo, "42", "U1")

	favorited, err := uc.Toggle(ctx, "U2", "42")
	require.NoError(t, err)
	assert.True(t, favorited)
	assertMirrorInvariant(t, favoriteRepo, "U2")

	favorites, err := uc.List(ctx, "U2")
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "42", favorites[0].ID)
	assert.Equal(t, "Calculus Textbook", favorites[0].Title)

	favorited, err = uc.Toggle(ctx, "U2", "42")
	require.NoError(t, err)
	assert.False(t, favorited)
	assertMirrorInvariant(t, favoriteRepo, "U2")

	favorites, err = uc.List(ctx, "U2")
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestToggleMissingItem(t *testing.T) {
	uc, _, _ := newFavoriteFixture(t)

	_, err := uc.Toggle(context.Background(), "U2", "missing")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestToggleUnfavoriteWorksAfterItemDeleted(t *testing.T) {
	uc, favoriteRepo, itemRepo := newFavoriteFixture(t)
	ctx := context.Background()
	seedItem(t, itemRepo, "42", "U1")

	_, err := uc.Toggle(ctx, "U2", "42")
	require.NoError(t, err)

	require.NoError(t, itemRepo.Delete(ctx, "42"))

	favorited, err := uc.Toggle(ctx, "U2", "42")
	require.NoError(t, err)
	assert.False(t, favorited)
	assertMirrorInvariant(t, favoriteRepo, "U2")
}

func TestReconcileDropsDeletedListings(t *testing.T) {
	uc, favoriteRepo, itemRepo := newFavoriteFixture(t)
	ctx := context.Background()
	seedItem(t, itemRepo, "42", "U1")
	seedItem(t, itemRepo, "43", "U1")

	_, err := uc.Toggle(ctx, "U2", "42")
	require.NoError(t, err)
	_, err = uc.Toggle(ctx, "U2", "43")
	require.NoError(t, err)

	require.NoError(t, itemRepo.Delete(ctx, "43"))

	result, err := uc.Reconcile(ctx, "U2")
	require.NoError(t, err)
	assert.Equal(t, []string{"43"}, result.Removed)
	assert.Empty(t, result.Restored)
	assertMirrorInvariant(t, favoriteRepo, "U2")

	ids, err := favoriteRepo.IDs(ctx, "U2")
	require.NoError(t, err)
	assert.Equal(t, []string{"42"}, ids)
}

func TestReconcileRestoresMissingSnapshot(t *testing.T) {
	uc, favoriteRepo, itemRepo := newFavoriteFixture(t)
	ctx := context.Background()
	seedItem(t, itemRepo, "42", "U1")

	_, err := uc.Toggle(ctx, "U2", "42")
	require.NoError(t, err)

	favoriteRepo.breakMirror("U2", "42")

	result, err := uc.Reconcile(ctx, "U2")
	require.NoError(t, err)
	assert.Equal(t, []string{"42"}, result.Restored)
	assert.Empty(t, result.Removed)
	assertMirrorInvariant(t, favoriteRepo, "U2")
}

func TestReconcileRemovesOrphanSnapshot(t *testing.T) {
	uc, favoriteRepo, itemRepo := newFavoriteFixture(t)
	ctx := context.Background()
	item := seedItem(t, itemRepo, "42", "U1")

	favoriteRepo.orphanSnapshot("U2", &entity.FavoriteItem{ID: item.ID, Title: item.Title})

	result, err := uc.Reconcile(ctx, "U2")
	require.NoError(t, err)
	assert.Equal(t, []string{"42"}, result.Removed)
	assertMirrorInvariant(t, favoriteRepo, "U2")
}

func TestReconcileCleanStateIsNoop(t *testing.T) {
	uc, favoriteRepo, itemRepo := newFavoriteFixture(t)
	ctx := context.Background()
	seedItem(t, itemRepo, "42", "U1")

	_, err := uc.Toggle(ctx, "U2", "42")
	require.NoError(t, err)

	result, err := uc.Reconcile(ctx, "U2")
	require.NoError(t, err)
	assert.Empty(t, result.Removed)
	assert.Empty(t, result.Restored)
	assertMirrorInvariant(t, favoriteRepo, "U2")
}
