package repository

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
	"unimarket/pkg/errors"
)

type firestoreChatRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatRepository {
	return &firestoreChatRepository{client: client}
}

// CreateIfAbsent relies on the Firestore precondition on Create: when two
// clients resolve the same deterministic room id concurrently, exactly one
// write succeeds and the other sees AlreadyExists.
func (r *firestoreChatRepository) CreateIfAbsent(ctx context.Context, chat *entity.Chat) (bool, error) {
	_, err := r.client.Collection("chats").Doc(chat.ID).Create(ctx, chat)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return false, nil
		}
		return false, errors.Internal("Failed to create chat room", err)
	}

	log.Printf("Created chat room %s for item %s", chat.ID, chat.PostID)
	return true, nil
}

func (r *firestoreChatRepository) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	doc, err := r.client.Collection("chats").Doc(id).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.NotFound("Chat room not found", err)
		}
		return nil, errors.Internal("Failed to get chat room", err)
	}

	var chat entity.Chat
	if err := doc.DataTo(&chat); err != nil {
		return nil, errors.Internal("Failed to parse chat room data", err)
	}
	chat.ID = doc.Ref.ID

	return &chat, nil
}

func (r *firestoreChatRepository) ListByParticipant(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error) {
	query := r.client.Collection("chats").
		Where("participants", "array-contains", userID).
		OrderBy("updatedAt", firestore.Desc)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		log.Printf("ListByParticipant Error: %v", err)
		return nil, 0, errors.Internal("Failed to list chat rooms", err)
	}
	total := int64(len(docs))

	if offset > 0 {
		if offset >= len(docs) {
			return []*entity.Chat{}, total, nil
		}
		docs = docs[offset:]
	}
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}

	chats := make([]*entity.Chat, 0, len(docs))
	for _, doc := range docs {
		var chat entity.Chat
		if err := doc.DataTo(&chat); err != nil {
			log.Printf("Error parsing chat room %s: %v", doc.Ref.ID, err)
			continue
		}
		chat.ID = doc.Ref.ID
		chats = append(chats, &chat)
	}

	return chats, total, nil
}

// RemoveParticipant drops the user from the participants array. Repeating the
// call for a user who already left is a no-op, so leave is idempotent.
func (r *firestoreChatRepository) RemoveParticipant(ctx context.Context, chatID, userID string) error {
	_, err := r.client.Collection("chats").Doc(chatID).Update(ctx, []firestore.Update{
		{Path: "participants", Value: firestore.ArrayRemove(userID)},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		if IsNotFound(err) {
			return errors.NotFound("Chat room not found", err)
		}
		return errors.Internal("Failed to leave chat room", err)
	}

	log.Printf("User %s left chat room %s", userID, chatID)
	return nil
}

// CreateMessage writes the message and bumps the room's preview fields. The
// message timestamp is assigned by the server via the serverTimestamp tag.
func (r *firestoreChatRepository) CreateMessage(ctx context.Context, chatID string, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}

	roomRef := r.client.Collection("chats").Doc(chatID)
	_, err := roomRef.Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}

	_, err = roomRef.Update(ctx, []firestore.Update{
		{Path: "lastMessage", Value: message.Text},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		return errors.Internal("Failed to update chat room preview", err)
	}

	return nil
}

func (r *firestoreChatRepository) ListMessages(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	query := r.client.Collection("chats").Doc(chatID).Collection("messages").
		OrderBy("createdAt", firestore.Asc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		log.Printf("ListMessages Error for chat %s: %v", chatID, err)
		return nil, 0, errors.Internal("Failed to list messages", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var messages []*entity.Message
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			log.Printf("Error parsing message %s in chat %s: %v", doc.Ref.ID, chatID, err)
			continue
		}
		message.ID = doc.Ref.ID
		messages = append(messages, &message)
	}

	return messages, total, nil
}

// CountUnread counts messages the viewer has not read yet. Only messages from
// the other participant count; the viewer's own messages never do.
func (r *firestoreChatRepository) CountUnread(ctx context.Context, chatID, viewerID string) (int64, error) {
	docs, err := r.client.Collection("chats").Doc(chatID).Collection("messages").
		Where("read", "==", false).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count unread messages", err)
	}

	var count int64
	for _, doc := range docs {
		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			continue
		}
		if message.SenderID != viewerID {
			count++
		}
	}

	return count, nil
}

// MarkMessagesRead flags every unread message from the other participant as
// read and returns how many were updated.
func (r *firestoreChatRepository) MarkMessagesRead(ctx context.Context, chatID, viewerID string) (int, error) {
	docs, err := r.client.Collection("chats").Doc(chatID).Collection("messages").
		Where("read", "==", false).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to load unread messages", err)
	}

	updated := 0
	bw := r.client.BulkWriter(ctx)
	for _, doc := range docs {
		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			log.Printf("Error parsing message %s in chat %s: %v", doc.Ref.ID, chatID, err)
			continue
		}
		if message.SenderID == viewerID {
			continue
		}
		if _, err := bw.Update(doc.Ref, []firestore.Update{{Path: "read", Value: true}}); err != nil {
			bw.End()
			return 0, errors.Internal("Failed to mark message as read", err)
		}
		updated++
	}
	bw.End()

	return updated, nil
}
