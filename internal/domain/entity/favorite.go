package entity

import (
	"fmt"
	"time"
)

// FavoriteItem is the denormalized snapshot mirrored under
// users/{uid}/favoriteItems/{itemId}. The item id must be present in the
// user document's favorites array exactly when this document exists.
type FavoriteItem struct {
	ID          string    `json:"id" firestore:"id"`
	Title       string    `json:"title" firestore:"title"`
	Description string    `json:"description" firestore:"description"`
	Image       string    `json:"image,omitempty" firestore:"image,omitempty"`
	AddedAt     time.Time `json:"added_at" firestore:"addedAt"`
}

// NewFavoriteSnapshot builds the mirror document from a listing. The
// description is composed from category and status, matching the summary
// shown in the favorites list.
func NewFavoriteSnapshot(item *Item, now time.Time) *FavoriteItem {
	return &FavoriteItem{
		ID:          item.ID,
		Title:       item.Title,
		Description: fmt.Sprintf("%s / %s", item.Category, item.Status),
		Image:       item.ImageURL,
		AddedAt:     now,
	}
}
