package repository

import (
	"context"

	"unimarket/internal/domain/entity"
)

// FavoriteRepository keeps two views of a user's favorites in step: the ids
// array on the user document and the denormalized snapshots under
// users/{uid}/favoriteItems. Add and Remove must update both or neither.
type FavoriteRepository interface {
	Add(ctx context.Context, userID string, snapshot *entity.FavoriteItem) error
	Remove(ctx context.Context, userID, itemID string) error
	List(ctx context.Context, userID string) ([]*entity.FavoriteItem, error)
	IDs(ctx context.Context, userID string) ([]string, error)
}
