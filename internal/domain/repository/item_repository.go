package repository

import (
	"context"

	"unimarket/internal/domain/entity"
)

type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Item, int64, error)
	Search(ctx context.Context, query string, filter map[string]interface{}, limit, offset int) ([]*entity.Item, int64, error)
	ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]*entity.Item, int64, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}
