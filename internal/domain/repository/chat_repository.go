package repository

import (
	"context"

	"unimarket/internal/domain/entity"
)

type ChatRepository interface {
	// CreateIfAbsent stores the room only when no document with the same id
	// exists yet. Returns true when this call created the room.
	CreateIfAbsent(ctx context.Context, chat *entity.Chat) (bool, error)
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	ListByParticipant(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error)
	RemoveParticipant(ctx context.Context, chatID, userID string) error

	CreateMessage(ctx context.Context, chatID string, message *entity.Message) error
	ListMessages(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error)
	CountUnread(ctx context.Context, chatID, viewerID string) (int64, error)
	MarkMessagesRead(ctx context.Context, chatID, viewerID string) (int, error)
}
