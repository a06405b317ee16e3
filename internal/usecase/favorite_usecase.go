package usecase

import (
	"context"
	"log"
	"time"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
	"unimarket/pkg/errors"
)

type FavoriteUseCase struct {
	favoriteRepo repository.FavoriteRepository
	itemRepo     repository.ItemRepository
}

func NewFavoriteUseCase(favoriteRepo repository.FavoriteRepository, itemRepo repository.ItemRepository) *FavoriteUseCase {
	return &FavoriteUseCase{
		favoriteRepo: favoriteRepo,
		itemRepo:     itemRepo,
	}
}

// Toggle flips the favorite state of an item for the user and reports the
// new state. Favoriting a deleted listing fails; unfavoriting always works.
func (uc *FavoriteUseCase) Toggle(ctx context.Context, userID, itemID string) (bool, error) {
	ids, err := uc.favoriteRepo.IDs(ctx, userID)
	if err != nil {
		return false, err
	}

	for _, id := range ids {
		if id == itemID {
			if err := uc.favoriteRepo.Remove(ctx, userID, itemID); err != nil {
				return false, err
			}
			return false, nil
		}
	}

	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return false, errors.NotFound("Item not found", err)
		}
		return false, err
	}

	snapshot := entity.NewFavoriteSnapshot(item, time.Now())
	if err := uc.favoriteRepo.Add(ctx, userID, snapshot); err != nil {
		return false, err
	}

	return true, nil
}

func (uc *FavoriteUseCase) List(ctx context.Context, userID string) ([]*entity.FavoriteItem, error) {
	return uc.favoriteRepo.List(ctx, userID)
}

// ReconcileResult reports what a consistency pass changed.
type ReconcileResult struct {
	Removed  []string `json:"removed"`
	Restored []string `json:"restored"`
}

// Reconcile repairs drift between the id array and the snapshot documents.
// Ids whose listing disappeared are dropped from both views, ids missing a
// snapshot get one rebuilt, and orphaned snapshots are deleted.
func (uc *FavoriteUseCase) Reconcile(ctx context.Context, userID string) (*ReconcileResult, error) {
	ids, err := uc.favoriteRepo.IDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	snapshots, err := uc.favoriteRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	snapshotSet := make(map[string]bool, len(snapshots))
	for _, s := range snapshots {
		snapshotSet[s.ID] = true
	}

	result := &ReconcileResult{Removed: []string{}, Restored: []string{}}
	idSet := make(map[string]bool, len(ids))

	for _, id := range ids {
		idSet[id] = true

		item, err := uc.itemRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, "NOT_FOUND") {
				if err := uc.favoriteRepo.Remove(ctx, userID, id); err != nil {
					return nil, err
				}
				result.Removed = append(result.Removed, id)
				continue
			}
			return nil, err
		}

		if !snapshotSet[id] {
			snapshot := entity.NewFavoriteSnapshot(item, time.Now())
			if err := uc.favoriteRepo.Add(ctx, userID, snapshot); err != nil {
				return nil, err
			}
			result.Restored = append(result.Restored, id)
		}
	}

	for _, s := range snapshots {
		if !idSet[s.ID] {
			if err := uc.favoriteRepo.Remove(ctx, userID, s.ID); err != nil {
				return nil, err
			}
			result.Removed = append(result.Removed, s.ID)
		}
	}

	if len(result.Removed) > 0 || len(result.Restored) > 0 {
		log.Printf("Reconciled favorites for user %s: removed %d, restored %d",
			userID, len(result.Removed), len(result.Restored))
	}

	return result, nil
}
