package usecase

import (
	"context"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
)

// NoticeUseCase manages the announcement board. Writes are restricted to
// administrators at the routing layer; reads are open to everyone.
type NoticeUseCase struct {
	noticeRepo repository.NoticeRepository
}

func NewNoticeUseCase(noticeRepo repository.NoticeRepository) *NoticeUseCase {
	return &NoticeUseCase{noticeRepo: noticeRepo}
}

type NoticeInput struct {
	Title   string
	Content string
}

func (uc *NoticeUseCase) Create(ctx context.Context, authorID string, input NoticeInput) (*entity.Notice, error) {
	notice := &entity.Notice{
		Title:    input.Title,
		Content:  input.Content,
		AuthorID: authorID,
	}

	if err := uc.noticeRepo.Create(ctx, notice); err != nil {
		return nil, err
	}

	return notice, nil
}

func (uc *NoticeUseCase) GetByID(ctx context.Context, id string) (*entity.Notice, error) {
	return uc.noticeRepo.GetByID(ctx, id)
}

func (uc *NoticeUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Notice, int64, error) {
	return uc.noticeRepo.List(ctx, limit, offset)
}

func (uc *NoticeUseCase) Update(ctx context.Context, id string, input NoticeInput) (*entity.Notice, error) {
	notice, err := uc.noticeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		notice.Title = input.Title
	}
	if input.Content != "" {
		notice.Content = input.Content
	}

	if err := uc.noticeRepo.Update(ctx, notice); err != nil {
		return nil, err
	}

	return notice, nil
}

func (uc *NoticeUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.noticeRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.noticeRepo.Delete(ctx, id)
}
