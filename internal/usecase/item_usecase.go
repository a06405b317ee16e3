package usecase

import (
	"context"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
	"unimarket/pkg/errors"
)

type ItemUseCase struct {
	itemRepo repository.ItemRepository
	uploader ImageUploader
}

func NewItemUseCase(itemRepo repository.ItemRepository, uploader ImageUploader) *ItemUseCase {
	return &ItemUseCase{
		itemRepo: itemRepo,
		uploader: uploader,
	}
}

type CreateItemInput struct {
	Title       string
	Description string
	Price       int64
	Category    string
	ImageBase64 string
	ImageURL    string
}

type UpdateItemInput struct {
	Title       string
	Description string
	Price       int64
	Category    string
	Status      string
	ImageBase64 string
	ImageURL    string
}

type ListItemsInput struct {
	Search   string
	Category string
	Status   string
	AuthorID string
	Limit    int
	Offset   int
}

// ItemView pairs a listing with the capabilities of the requesting viewer.
type ItemView struct {
	Item         *entity.Item        `json:"item"`
	Capabilities entity.Capabilities `json:"capabilities"`
}

func (uc *ItemUseCase) Create(ctx context.Context, authorID string, input CreateItemInput) (*entity.Item, error) {
	if !entity.ValidCategory(input.Category) {
		return nil, errors.BadRequest("Invalid category", nil)
	}

	imageURL := input.ImageURL
	if input.ImageBase64 != "" {
		uploaded, err := uc.uploader.UploadBase64(ctx, input.ImageBase64)
		if err != nil {
			return nil, err
		}
		imageURL = uploaded
	}

	item := &entity.Item{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		ImageURL:    imageURL,
		AuthorID:    authorID,
		Status:      entity.ItemStatusSelling,
	}

	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (uc *ItemUseCase) GetByID(ctx context.Context, id, viewerID string) (*ItemView, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ItemView{
		Item:         item,
		Capabilities: entity.DeriveCapabilities(item, viewerID),
	}, nil
}

func (uc *ItemUseCase) List(ctx context.Context, input ListItemsInput) ([]*entity.Item, int64, error) {
	filter := map[string]interface{}{}
	if input.Category != "" {
		if !entity.ValidCategory(input.Category) {
			return nil, 0, errors.BadRequest("Invalid category", nil)
		}
		filter["category"] = input.Category
	}
	if input.Status != "" {
		if input.Status != entity.ItemStatusSelling && input.Status != entity.ItemStatusDone {
			return nil, 0, errors.BadRequest("Invalid status", nil)
		}
		filter["status"] = input.Status
	}
	if input.AuthorID != "" {
		filter["authorId"] = input.AuthorID
	}

	if input.Search != "" {
		return uc.itemRepo.Search(ctx, input.Search, filter, input.Limit, input.Offset)
	}

	return uc.itemRepo.List(ctx, filter, input.Limit, input.Offset)
}

func (uc *ItemUseCase) Update(ctx context.Context, id, viewerID string, input UpdateItemInput) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if item.AuthorID != viewerID {
		return nil, errors.Forbidden("Only the author can edit this listing", nil)
	}

	if input.Category != "" && !entity.ValidCategory(input.Category) {
		return nil, errors.BadRequest("Invalid category", nil)
	}
	if input.Status != "" && input.Status != entity.ItemStatusSelling && input.Status != entity.ItemStatusDone {
		return nil, errors.BadRequest("Invalid status", nil)
	}

	if input.Title != "" {
		item.Title = input.Title
	}
	if input.Description != "" {
		item.Description = input.Description
	}
	if input.Price > 0 {
		item.Price = input.Price
	}
	if input.Category != "" {
		item.Category = input.Category
	}
	if input.Status != "" {
		item.Status = input.Status
	}
	if input.ImageBase64 != "" {
		uploaded, err := uc.uploader.UploadBase64(ctx, input.ImageBase64)
		if err != nil {
			return nil, err
		}
		item.ImageURL = uploaded
	} else if input.ImageURL != "" {
		item.ImageURL = input.ImageURL
	}

	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (uc *ItemUseCase) Delete(ctx context.Context, id, viewerID string) error {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if item.AuthorID != viewerID {
		return errors.Forbidden("Only the author can delete this listing", nil)
	}

	return uc.itemRepo.Delete(ctx, id)
}
