package usecase

import (
	"context"

	"unimarket/internal/infrastructure/firebase"
)

type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	GetUserEmail(ctx context.Context, uid string) (string, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateUserPassword(ctx context.Context, uid, newPassword string) error
	DeleteUser(ctx context.Context, uid string) error
}

type PasswordAuthenticator interface {
	SignInWithPassword(ctx context.Context, email, password string) (*firebase.SignInResult, error)
}

type Mailer interface {
	SendVerificationCode(ctx context.Context, toEmail, code string) error
}

type ImageUploader interface {
	UploadBase64(ctx context.Context, image string) (string, error)
}

type PushSender interface {
	SendPush(ctx context.Context, token, title, body string, data map[string]string) error
}
