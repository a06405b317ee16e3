package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
	"unimarket/pkg/errors"
)

type firestoreVerificationRepository struct {
	client *firestore.Client
}

func NewFirestoreVerificationRepository(client *firestore.Client) repository.VerificationRepository {
	return &firestoreVerificationRepository{client: client}
}

func (r *firestoreVerificationRepository) Put(ctx context.Context, verification *entity.EmailVerification) error {
	_, err := r.client.Collection("verifications").Doc(verification.Email).Set(ctx, verification)
	if err != nil {
		return errors.Internal("Failed to store verification code", err)
	}
	return nil
}

func (r *firestoreVerificationRepository) Get(ctx context.Context, email string) (*entity.EmailVerification, error) {
	doc, err := r.client.Collection("verifications").Doc(email).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.NotFound("Verification code not found", err)
		}
		return nil, errors.Internal("Failed to get verification code", err)
	}

	var verification entity.EmailVerification
	if err := doc.DataTo(&verification); err != nil {
		return nil, errors.Internal("Failed to parse verification data", err)
	}

	return &verification, nil
}

func (r *firestoreVerificationRepository) Delete(ctx context.Context, email string) error {
	_, err := r.client.Collection("verifications").Doc(email).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete verification code", err)
	}
	return nil
}
