package usecase

import (
	"context"
	"log"
	"time"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
	"unimarket/internal/infrastructure/websocket"
	"unimarket/pkg/errors"
)

type ChatUseCase struct {
	chatRepo  repository.ChatRepository
	itemRepo  repository.ItemRepository
	userRepo  repository.UserRepository
	wsManager *websocket.Manager
	push      PushSender
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	wsManager *websocket.Manager,
	push PushSender,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:  chatRepo,
		itemRepo:  itemRepo,
		userRepo:  userRepo,
		wsManager: wsManager,
		push:      push,
	}
}

// RoomView is a room decorated with the viewer-dependent state the client
// renders: whether the input field is enabled and why not.
type RoomView struct {
	Chat    *entity.Chat      `json:"chat"`
	Status  entity.RoomStatus `json:"status"`
	CanSend bool              `json:"can_send"`
	Reason  string            `json:"reason,omitempty"`
}

// RoomSummary is one row of the chat list screen.
type RoomSummary struct {
	Chat        *entity.Chat      `json:"chat"`
	Status      entity.RoomStatus `json:"status"`
	UnreadCount int64             `json:"unread_count"`
}

// StartChat resolves the deterministic room for viewer and item, creating it
// on first contact. Both sides always land in the same document, so two
// concurrent first messages cannot fork the conversation.
func (uc *ChatUseCase) StartChat(ctx context.Context, viewerID, itemID string) (*entity.Chat, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.AuthorID == viewerID {
		return nil, errors.BadRequest("You cannot open a chat about your own listing", nil)
	}

	chat := &entity.Chat{
		ID:           entity.ChatRoomID(itemID, viewerID, item.AuthorID),
		PostID:       itemID,
		ItemTitle:    item.Title,
		Participants: []string{viewerID, item.AuthorID},
	}

	created, err := uc.chatRepo.CreateIfAbsent(ctx, chat)
	if err != nil {
		return nil, err
	}
	if created {
		return chat, nil
	}

	return uc.chatRepo.GetByID(ctx, chat.ID)
}

func (uc *ChatUseCase) GetRoom(ctx context.Context, viewerID, chatID string) (*RoomView, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	status, err := uc.classify(ctx, chat, viewerID)
	if err != nil {
		return nil, err
	}
	if status == entity.RoomNotParticipant {
		return nil, errors.Forbidden("You are not a participant in this chat room", nil)
	}

	return &RoomView{
		Chat:    chat,
		Status:  status,
		CanSend: status.CanSend(),
		Reason:  status.Reason(),
	}, nil
}

func (uc *ChatUseCase) ListRooms(ctx context.Context, viewerID string, limit, offset int) ([]*RoomSummary, int64, error) {
	chats, total, err := uc.chatRepo.ListByParticipant(ctx, viewerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]*RoomSummary, 0, len(chats))
	for _, chat := range chats {
		// One broken room must not take down the whole list.
		status, err := uc.classify(ctx, chat, viewerID)
		if err != nil {
			log.Printf("ListRooms Error: classify room %s: %v", chat.ID, err)
			continue
		}

		unread, err := uc.chatRepo.CountUnread(ctx, chat.ID, viewerID)
		if err != nil {
			log.Printf("ListRooms Error: unread count for room %s: %v", chat.ID, err)
			unread = 0
		}

		summaries = append(summaries, &RoomSummary{
			Chat:        chat,
			Status:      status,
			UnreadCount: unread,
		})
	}

	return summaries, total, nil
}

// SendMessage appends a message after re-checking the room state. The live
// event and the push notification are best effort; the stored message is the
// source of truth.
func (uc *ChatUseCase) SendMessage(ctx context.Context, viewerID, chatID, text string) (*entity.Message, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	status, err := uc.classify(ctx, chat, viewerID)
	if err != nil {
		return nil, err
	}
	if status == entity.RoomNotParticipant {
		return nil, errors.Forbidden("You are not a participant in this chat room", nil)
	}
	if !status.CanSend() {
		return nil, errors.BadRequest(status.Reason(), nil)
	}

	message := &entity.Message{
		Text:     text,
		SenderID: viewerID,
		Read:     false,
	}
	if err := uc.chatRepo.CreateMessage(ctx, chatID, message); err != nil {
		return nil, err
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	recipients := otherParticipants(chat.Participants, viewerID)
	uc.wsManager.BroadcastEvent(recipients, websocket.NewEvent(websocket.EventTypeMessage, chatID, message))
	go uc.notifyRecipients(chat, recipients, text)

	return message, nil
}

func (uc *ChatUseCase) ListMessages(ctx context.Context, viewerID, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, 0, err
	}

	if !isParticipant(chat.Participants, viewerID) {
		return nil, 0, errors.Forbidden("You are not a participant in this chat room", nil)
	}

	return uc.chatRepo.ListMessages(ctx, chatID, limit, offset)
}

// MarkRead flags the peer's messages as read and tells the peer about it.
func (uc *ChatUseCase) MarkRead(ctx context.Context, viewerID, chatID string) (int, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return 0, err
	}

	if !isParticipant(chat.Participants, viewerID) {
		return 0, errors.Forbidden("You are not a participant in this chat room", nil)
	}

	updated, err := uc.chatRepo.MarkMessagesRead(ctx, chatID, viewerID)
	if err != nil {
		return 0, err
	}

	if updated > 0 {
		recipients := otherParticipants(chat.Participants, viewerID)
		uc.wsManager.BroadcastEvent(recipients, websocket.NewEvent(websocket.EventTypeRead, chatID, map[string]interface{}{
			"reader_id": viewerID,
			"count":     updated,
		}))
	}

	return updated, nil
}

// LeaveRoom removes the viewer from the room. Leaving twice, or leaving a
// room already reduced to one participant, succeeds without effect.
func (uc *ChatUseCase) LeaveRoom(ctx context.Context, viewerID, chatID string) error {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return err
	}

	if !isParticipant(chat.Participants, viewerID) {
		return nil
	}

	if err := uc.chatRepo.RemoveParticipant(ctx, chatID, viewerID); err != nil {
		return err
	}

	remaining := otherParticipants(chat.Participants, viewerID)
	uc.wsManager.BroadcastEvent(remaining, websocket.NewEvent(websocket.EventTypeRoomUpdate, chatID, map[string]interface{}{
		"status": entity.RoomPeerLeft,
	}))

	return nil
}

func (uc *ChatUseCase) classify(ctx context.Context, chat *entity.Chat, viewerID string) (entity.RoomStatus, error) {
	itemExists, err := uc.itemRepo.Exists(ctx, chat.PostID)
	if err != nil {
		return "", err
	}
	return entity.ClassifyRoom(chat.Participants, itemExists, viewerID), nil
}

// notifyRecipients pushes the message text to recipients without a live
// connection. Anyone currently connected already got the WebSocket event.
func (uc *ChatUseCase) notifyRecipients(chat *entity.Chat, recipients []string, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, uid := range recipients {
		if uc.wsManager.IsOnline(uid) {
			continue
		}

		user, err := uc.userRepo.GetByID(ctx, uid)
		if err != nil {
			log.Printf("notifyRecipients Error: load user %s: %v", uid, err)
			continue
		}
		if user.ExpoPushToken == "" {
			continue
		}

		err = uc.push.SendPush(ctx, user.ExpoPushToken, chat.ItemTitle, text, map[string]string{
			"chatId": chat.ID,
		})
		if err != nil {
			log.Printf("notifyRecipients Error: push to %s: %v", uid, err)
		}
	}
}

func isParticipant(participants []string, userID string) bool {
	for _, p := range participants {
		if p == userID {
			return true
		}
	}
	return false
}

func otherParticipants(participants []string, userID string) []string {
	others := make([]string, 0, len(participants))
	for _, p := range participants {
		if p != userID {
			others = append(others, p)
		}
	}
	return others
}
