package usecase

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
	"unimarket/pkg/errors"
)

const codeTTL = 10 * time.Minute

// VerificationUseCase issues and checks the registration codes sent to
// campus mail addresses. Codes live server-side only: a client never learns
// whether its guess was close, and a consumed or expired code cannot be
// replayed.
type VerificationUseCase struct {
	verificationRepo repository.VerificationRepository
	mailer           Mailer
	firebaseAuth     FirebaseAuthClient
	allowedDomains   []string
}

func NewVerificationUseCase(
	verificationRepo repository.VerificationRepository,
	mailer Mailer,
	firebaseAuth FirebaseAuthClient,
	allowedDomains []string,
) *VerificationUseCase {
	return &VerificationUseCase{
		verificationRepo: verificationRepo,
		mailer:           mailer,
		firebaseAuth:     firebaseAuth,
		allowedDomains:   allowedDomains,
	}
}

// RequestCode generates a fresh 6-digit code for the address and mails it.
// Requesting again before the previous code expires replaces it.
func (uc *VerificationUseCase) RequestCode(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	if !uc.domainAllowed(email) {
		return errors.BadRequest("Only university email addresses can register", nil)
	}

	exists, err := uc.firebaseAuth.EmailExists(ctx, email)
	if err != nil {
		return errors.Internal("Failed to check existing accounts", err)
	}
	if exists {
		return errors.BadRequest("This email is already registered", nil)
	}

	code, err := generateCode()
	if err != nil {
		return errors.Internal("Failed to generate verification code", err)
	}

	now := time.Now()
	verification := &entity.EmailVerification{
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(codeTTL),
		CreatedAt: now,
	}

	if err := uc.verificationRepo.Put(ctx, verification); err != nil {
		return err
	}

	if err := uc.mailer.SendVerificationCode(ctx, email, code); err != nil {
		log.Printf("RequestCode Error: failed to send code to %s: %v", email, err)
		return err
	}

	return nil
}

// Consume checks the submitted code and burns it on success. Every failure
// path returns the same error so a caller cannot probe which part failed.
func (uc *VerificationUseCase) Consume(ctx context.Context, email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	verification, err := uc.verificationRepo.Get(ctx, email)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return errors.BadRequest("Invalid or expired verification code", nil)
		}
		return err
	}

	if verification.Expired(time.Now()) {
		if err := uc.verificationRepo.Delete(ctx, email); err != nil {
			log.Printf("Consume Error: failed to delete expired code for %s: %v", email, err)
		}
		return errors.BadRequest("Invalid or expired verification code", nil)
	}

	if subtle.ConstantTimeCompare([]byte(verification.Code), []byte(code)) != 1 {
		return errors.BadRequest("Invalid or expired verification code", nil)
	}

	if err := uc.verificationRepo.Delete(ctx, email); err != nil {
		return err
	}

	return nil
}

func (uc *VerificationUseCase) domainAllowed(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domain := email[at+1:]

	for _, allowed := range uc.allowedDomains {
		if domain == allowed {
			return true
		}
	}
	return false
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
