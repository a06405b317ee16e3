package repository

import (
	"context"

	"unimarket/internal/domain/entity"
)

type NoticeRepository interface {
	Create(ctx context.Context, notice *entity.Notice) error
	GetByID(ctx context.Context, id string) (*entity.Notice, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Notice, int64, error)
	Update(ctx context.Context, notice *entity.Notice) error
	Delete(ctx context.Context, id string) error
}
