package repository

import (
	"context"

	"unimarket/internal/domain/entity"
)

// VerificationRepository stores pending email verification codes keyed by
// email address. A new Put for the same address replaces the old code.
type VerificationRepository interface {
	Put(ctx context.Context, verification *entity.EmailVerification) error
	Get(ctx context.Context, email string) (*entity.EmailVerification, error)
	Delete(ctx context.Context, email string) error
}
