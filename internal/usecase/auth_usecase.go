package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
	"unimarket/pkg/errors"
)

type AuthUseCase struct {
	userRepo     repository.UserRepository
	firebaseAuth FirebaseAuthClient
	passwordAuth PasswordAuthenticator
	verification *VerificationUseCase
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	firebaseAuth FirebaseAuthClient,
	passwordAuth PasswordAuthenticator,
	verification *VerificationUseCase,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		firebaseAuth: firebaseAuth,
		passwordAuth: passwordAuth,
		verification: verification,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Code     string
}

type AuthResult struct {
	User         *entity.User
	IDToken      string
	RefreshToken string
}

// Register creates the account only after the emailed code checks out. The
// code is consumed inside, so replaying the same registration request fails.
func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if err := uc.verification.Consume(ctx, email, input.Code); err != nil {
		return nil, err
	}

	uid, err := uc.firebaseAuth.CreateUser(ctx, email, input.Password)
	if err != nil {
		log.Printf("Register Error: failed to create auth account for %s: %v", email, err)
		return nil, errors.Internal("Failed to create account", err)
	}

	user := &entity.User{
		ID:        uid,
		Email:     email,
		Favorites: []string{},
		CreatedAt: time.Now(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	session, err := uc.passwordAuth.SignInWithPassword(ctx, email, input.Password)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		User:         user,
		IDToken:      session.IDToken,
		RefreshToken: session.RefreshToken,
	}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	session, err := uc.passwordAuth.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, session.UID)
	if err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			return nil, err
		}
		// Profile document missing for an existing auth account; recreate it.
		user = &entity.User{
			ID:        session.UID,
			Email:     email,
			Favorites: []string{},
			CreatedAt: time.Now(),
		}
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	}

	return &AuthResult{
		User:         user,
		IDToken:      session.IDToken,
		RefreshToken: session.RefreshToken,
	}, nil
}

// ChangePassword reauthenticates with the current password before updating.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, uid, currentPassword, newPassword string) error {
	email, err := uc.firebaseAuth.GetUserEmail(ctx, uid)
	if err != nil {
		return errors.Internal("Failed to load account", err)
	}

	if _, err := uc.passwordAuth.SignInWithPassword(ctx, email, currentPassword); err != nil {
		if errors.Is(err, "UNAUTHORIZED") {
			return errors.RequiresRecentLogin("Current password is incorrect", err)
		}
		return err
	}

	if err := uc.firebaseAuth.UpdateUserPassword(ctx, uid, newPassword); err != nil {
		return errors.Internal("Failed to update password", err)
	}

	log.Printf("Password changed for user %s", uid)
	return nil
}

// DeleteAccount removes the profile document, its favorites, and the auth
// account. The password check stands in for the recent-login requirement.
func (uc *AuthUseCase) DeleteAccount(ctx context.Context, uid, password string) error {
	email, err := uc.firebaseAuth.GetUserEmail(ctx, uid)
	if err != nil {
		return errors.Internal("Failed to load account", err)
	}

	if _, err := uc.passwordAuth.SignInWithPassword(ctx, email, password); err != nil {
		if errors.Is(err, "UNAUTHORIZED") {
			return errors.RequiresRecentLogin("Reauthentication required to delete account", err)
		}
		return err
	}

	if err := uc.userRepo.Delete(ctx, uid); err != nil {
		return err
	}

	if err := uc.firebaseAuth.DeleteUser(ctx, uid); err != nil {
		return errors.Internal("Failed to delete account", err)
	}

	log.Printf("Deleted account %s", uid)
	return nil
}

func (uc *AuthUseCase) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}
