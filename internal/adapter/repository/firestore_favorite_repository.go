package repository

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
	"unimarket/pkg/errors"
)

type firestoreFavoriteRepository struct {
	client *firestore.Client
}

func NewFirestoreFavoriteRepository(client *firestore.Client) repository.FavoriteRepository {
	return &firestoreFavoriteRepository{client: client}
}

// Add appends the item id to the user's favorites array and writes the
// snapshot document in one transaction, so a crash between the two writes
// cannot leave the views disagreeing.
func (r *firestoreFavoriteRepository) Add(ctx context.Context, userID string, snapshot *entity.FavoriteItem) error {
	userRef := r.client.Collection("users").Doc(userID)
	mirrorRef := userRef.Collection("favoriteItems").Doc(snapshot.ID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Update(userRef, []firestore.Update{
			{Path: "favorites", Value: firestore.ArrayUnion(snapshot.ID)},
		}); err != nil {
			return err
		}
		return tx.Set(mirrorRef, snapshot)
	})
	if err != nil {
		if IsNotFound(err) {
			return errors.NotFound("User not found", err)
		}
		return errors.Internal("Failed to add favorite", err)
	}

	log.Printf("Added item %s to favorites for user %s", snapshot.ID, userID)
	return nil
}

// Remove is the transactional inverse of Add. Removing an id that is not a
// favorite leaves both views unchanged.
func (r *firestoreFavoriteRepository) Remove(ctx context.Context, userID, itemID string) error {
	userRef := r.client.Collection("users").Doc(userID)
	mirrorRef := userRef.Collection("favoriteItems").Doc(itemID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Update(userRef, []firestore.Update{
			{Path: "favorites", Value: firestore.ArrayRemove(itemID)},
		}); err != nil {
			return err
		}
		return tx.Delete(mirrorRef)
	})
	if err != nil {
		if IsNotFound(err) {
			return errors.NotFound("User not found", err)
		}
		return errors.Internal("Failed to remove favorite", err)
	}

	log.Printf("Removed item %s from favorites for user %s", itemID, userID)
	return nil
}

func (r *firestoreFavoriteRepository) List(ctx context.Context, userID string) ([]*entity.FavoriteItem, error) {
	iter := r.client.Collection("users").Doc(userID).Collection("favoriteItems").
		OrderBy("addedAt", firestore.Desc).
		Documents(ctx)

	favorites := []*entity.FavoriteItem{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list favorites", err)
		}

		var favorite entity.FavoriteItem
		if err := doc.DataTo(&favorite); err != nil {
			log.Printf("Error parsing favorite %s for user %s: %v", doc.Ref.ID, userID, err)
			continue
		}
		favorite.ID = doc.Ref.ID
		favorites = append(favorites, &favorite)
	}

	return favorites, nil
}

func (r *firestoreFavoriteRepository) IDs(ctx context.Context, userID string) ([]string, error) {
	doc, err := r.client.Collection("users").Doc(userID).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.NotFound("User not found", err)
		}
		return nil, errors.Internal("Failed to get user", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}

	if user.Favorites == nil {
		return []string{}, nil
	}
	return user.Favorites, nil
}
