package repository

import (
	"context"
	"log"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
	"unimarket/pkg/errors"
)

type firestoreItemRepository struct {
	client *firestore.Client
}

func NewFirestoreItemRepository(client *firestore.Client) repository.ItemRepository {
	return &firestoreItemRepository{client: client}
}

func (r *firestoreItemRepository) Create(ctx context.Context, item *entity.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.CreatedAt = time.Now()
	if item.Status == "" {
		item.Status = entity.ItemStatusSelling
	}

	_, err := r.client.Collection("items").Doc(item.ID).Set(ctx, item)
	if err != nil {
		return errors.Internal("Failed to create item", err)
	}

	return nil
}

func (r *firestoreItemRepository) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	doc, err := r.client.Collection("items").Doc(id).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.NotFound("Item not found", err)
		}
		return nil, errors.Internal("Failed to get item", err)
	}

	var item entity.Item
	if err := doc.DataTo(&item); err != nil {
		return nil, errors.Internal("Failed to parse item data", err)
	}
	item.ID = doc.Ref.ID

	return &item, nil
}

func (r *firestoreItemRepository) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Item, int64, error) {
	query := r.client.Collection("items").Query
	for field, value := range filter {
		query = query.Where(field, "==", value)
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		log.Printf("List Items Error: %v", err)
		return nil, 0, errors.Internal("Failed to list items", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var items []*entity.Item
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate items", err)
		}

		var item entity.Item
		if err := doc.DataTo(&item); err != nil {
			log.Printf("Error parsing item %s: %v", doc.Ref.ID, err)
			continue
		}
		item.ID = doc.Ref.ID
		items = append(items, &item)
	}

	return items, total, nil
}

// Search does a case-insensitive contains match over title and description.
// Firestore has no full-text search, so matching documents are filtered in
// memory after the equality filters run server-side.
func (r *firestoreItemRepository) Search(ctx context.Context, search string, filter map[string]interface{}, limit, offset int) ([]*entity.Item, int64, error) {
	search = strings.ToLower(search)

	query := r.client.Collection("items").Query
	for field, value := range filter {
		query = query.Where(field, "==", value)
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		log.Printf("Search Items Error: %v", err)
		return nil, 0, errors.Internal("Failed to search items", err)
	}

	var matched []*entity.Item
	for _, doc := range docs {
		var item entity.Item
		if err := doc.DataTo(&item); err != nil {
			log.Printf("Error parsing item %s: %v", doc.Ref.ID, err)
			continue
		}
		item.ID = doc.Ref.ID

		if strings.Contains(strings.ToLower(item.Title), search) ||
			strings.Contains(strings.ToLower(item.Description), search) {
			matched = append(matched, &item)
		}
	}

	total := int64(len(matched))

	start := offset
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	return matched[start:end], total, nil
}

func (r *firestoreItemRepository) ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]*entity.Item, int64, error) {
	return r.List(ctx, map[string]interface{}{"authorId": authorID}, limit, offset)
}

func (r *firestoreItemRepository) Update(ctx context.Context, item *entity.Item) error {
	_, err := r.client.Collection("items").Doc(item.ID).Set(ctx, item)
	if err != nil {
		return errors.Internal("Failed to update item", err)
	}
	return nil
}

func (r *firestoreItemRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("items").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete item", err)
	}
	return nil
}

func (r *firestoreItemRepository) Exists(ctx context.Context, id string) (bool, error) {
	doc, err := r.client.Collection("items").Doc(id).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, errors.Internal("Failed to check item", err)
	}
	return doc.Exists(), nil
}

func IsNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
