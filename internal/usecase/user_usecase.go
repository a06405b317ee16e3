package usecase

import (
	"context"
	"strings"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
	"unimarket/pkg/errors"
)

type UserUseCase struct {
	userRepo repository.UserRepository
	itemRepo repository.ItemRepository
}

func NewUserUseCase(userRepo repository.UserRepository, itemRepo repository.ItemRepository) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		itemRepo: itemRepo,
	}
}

func (uc *UserUseCase) GetProfile(ctx context.Context, uid string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, uid)
}

// RegisterPushToken stores the device token delivered by the mobile client.
func (uc *UserUseCase) RegisterPushToken(ctx context.Context, uid, token string) error {
	if !strings.HasPrefix(token, "ExponentPushToken[") {
		return errors.BadRequest("Invalid push token format", nil)
	}
	return uc.userRepo.SetPushToken(ctx, uid, token)
}

func (uc *UserUseCase) MyItems(ctx context.Context, uid string, limit, offset int) ([]*entity.Item, int64, error) {
	return uc.itemRepo.ListByAuthor(ctx, uid, limit, offset)
}
