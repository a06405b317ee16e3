package repository

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
	"unimarket/pkg/errors"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{client: client}
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if user.Favorites == nil {
		user.Favorites = []string{}
	}

	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, user)
	if err != nil {
		return errors.Internal("Failed to create user", err)
	}

	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection("users").Doc(id).Get(ctx)
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
	user.ID = doc.Ref.ID

	return &user, nil
}

func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.User) error {
	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, user)
	if err != nil {
		return errors.Internal("Failed to update user", err)
	}
	return nil
}

// SetPushToken merges the token into the user document so a token can be
// registered before the rest of the profile is written.
func (r *firestoreUserRepository) SetPushToken(ctx context.Context, userID, token string) error {
	_, err := r.client.Collection("users").Doc(userID).Set(ctx, map[string]interface{}{
		"expoPushToken": token,
	}, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to save push token", err)
	}

	log.Printf("Registered push token for user %s", userID)
	return nil
}

// Delete removes the user document along with its favoriteItems subcollection.
func (r *firestoreUserRepository) Delete(ctx context.Context, id string) error {
	userRef := r.client.Collection("users").Doc(id)

	iter := userRef.Collection("favoriteItems").Documents(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return errors.Internal("Failed to list favorite items for deletion", err)
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return errors.Internal("Failed to delete favorite item", err)
		}
	}

	if _, err := userRef.Delete(ctx); err != nil {
		return errors.Internal("Failed to delete user", err)
	}

	return nil
}
