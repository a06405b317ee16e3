package entity

import "time"

const (
	ItemStatusSelling = "selling"
	ItemStatusDone    = "done"
)

// Categories is the fixed set of listing categories.
var Categories = []string{
	"electronics",
	"laptop",
	"computer",
	"phone",
	"textbook",
	"food",
	"drink",
	"meal-ticket",
	"clothing",
	"etc",
}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

type Item struct {
	ID          string    `json:"id" firestore:"id"`
	Title       string    `json:"title" firestore:"title"`
	Description string    `json:"description" firestore:"description"`
	Price       int64     `json:"price" firestore:"price"`
	Category    string    `json:"category" firestore:"category"`
	ImageURL    string    `json:"image_url,omitempty" firestore:"imageUrl,omitempty"`
	AuthorID    string    `json:"author_id" firestore:"authorId"`
	Status      string    `json:"status" firestore:"status"` // "selling", "done"
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}

// Capabilities is the per-viewer capability set for an item. Edit and delete
// belong to the owner; chat requires a signed-in viewer who is not the owner.
type Capabilities struct {
	CanEdit   bool `json:"can_edit"`
	CanDelete bool `json:"can_delete"`
	CanChat   bool `json:"can_chat"`
}

// DeriveCapabilities computes the viewer's capability set for an item.
// An empty viewerID means no authenticated viewer.
func DeriveCapabilities(item *Item, viewerID string) Capabilities {
	isOwner := viewerID != "" && item.AuthorID == viewerID

	return Capabilities{
		CanEdit:   isOwner,
		CanDelete: isOwner,
		CanChat:   viewerID != "" && !isOwner,
	}
}
