package repository

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
	"unimarket/pkg/errors"
)

type firestoreNoticeRepository struct {
	client *firestore.Client
}

func NewFirestoreNoticeRepository(client *firestore.Client) repository.NoticeRepository {
	return &firestoreNoticeRepository{client: client}
}

func (r *firestoreNoticeRepository) Create(ctx context.Context, notice *entity.Notice) error {
	if notice.ID == "" {
		notice.ID = uuid.New().String()
	}
	notice.CreatedAt = time.Now()

	_, err := r.client.Collection("notices").Doc(notice.ID).Set(ctx, notice)
	if err != nil {
		return errors.Internal("Failed to create notice", err)
	}

	return nil
}

func (r *firestoreNoticeRepository) GetByID(ctx context.Context, id string) (*entity.Notice, error) {
	doc, err := r.client.Collection("notices").Doc(id).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.NotFound("Notice not found", err)
		}
		return nil, errors.Internal("Failed to get notice", err)
	}

	var notice entity.Notice
	if err := doc.DataTo(&notice); err != nil {
		return nil, errors.Internal("Failed to parse notice data", err)
	}
	notice.ID = doc.Ref.ID

	return &notice, nil
}

func (r *firestoreNoticeRepository) List(ctx context.Context, limit, offset int) ([]*entity.Notice, int64, error) {
	query := r.client.Collection("notices").OrderBy("createdAt", firestore.Desc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list notices", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var notices []*entity.Notice
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate notices", err)
		}

		var notice entity.Notice
		if err := doc.DataTo(&notice); err != nil {
			log.Printf("Error parsing notice %s: %v", doc.Ref.ID, err)
			continue
		}
		notice.ID = doc.Ref.ID
		notices = append(notices, &notice)
	}

	return notices, total, nil
}

func (r *firestoreNoticeRepository) Update(ctx context.Context, notice *entity.Notice) error {
	_, err := r.client.Collection("notices").Doc(notice.ID).Set(ctx, notice)
	if err != nil {
		return errors.Internal("Failed to update notice", err)
	}
	return nil
}

func (r *firestoreNoticeRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("notices").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete notice", err)
	}
	return nil
}
