package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unimarket/internal/domain/entity"
	"unimarket/pkg/errors"
)

func newAuthFixture(t *testing.T) (*AuthUseCase, *fakeUserRepo, *fakeVerificationRepo, *fakeAuthClient, *fakePasswordAuth) {
	t.Helper()

	userRepo := newFakeUserRepo()
	verificationRepo := newFakeVerificationRepo()
	authClient := newFakeAuthClient()
	passwordAuth := newFakePasswordAuth()

	verification := NewVerificationUseCase(verificationRepo, &fakeMailer{}, authClient, allowedDomains)
	uc := NewAuthUseCase(userRepo, authClient, passwordAuth, verification)
	return uc, userRepo, verificationRepo, authClient, passwordAuth
}

func requestedCode(t *testing.T, repo *fakeVerificationRepo, verification *VerificationUseCase, email string) string {
	t.Helper()
	require.NoError(t, verification.RequestCode(context.Background(), email))
	stored, err := repo.Get(context.Background(), email)
	require.NoError(t, err)
	return stored.Code
}

func TestRegisterWithValidCode(t *testing.T) {
	uc, userRepo, verificationRepo, _, passwordAuth := newAuthFixture(t)
	ctx := context.Background()
	email := "student@stu.jejunu.ac.kr"

	code := requestedCode(t, verificationRepo, uc.verification, email)
	passwordAuth.passwords[email] = "secret123"

	result, err := uc.Register(ctx, RegisterInput{
		Email:    email,
		Password: "secret123",
		Code:     code,
	})
	require.NoError(t, err)
	assert.Equal(t, email, result.User.Email)
	assert.NotEmpty(t, result.IDToken)
	assert.NotEmpty(t, result.RefreshToken)

	stored, err := userRepo.GetByID(ctx, result.User.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Favorites)
}

func TestRegisterWithWrongCode(t *testing.T) {
	uc, _, verificationRepo, authClient, _ := newAuthFixture(t)
	ctx := context.Background()
	email := "student@stu.jejunu.ac.kr"

	requestedCode(t, verificationRepo, uc.verification, email)

	_, err := uc.Register(ctx, RegisterInput{
		Email:    email,
		Password: "secret123",
		Code:     "000000",
	})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	// No auth account was created.
	exists, err := authClient.EmailExists(ctx, email)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRegisterWithoutCode(t *testing.T) {
	uc, _, _, _, _ := newAuthFixture(t)

	_, err := uc.Register(context.Background(), RegisterInput{
		Email:    "student@stu.jejunu.ac.kr",
		Password: "secret123",
		Code:     "123456",
	})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestRegisterCodeCannotBeReplayed(t *testing.T) {
	uc, _, verificationRepo, _, passwordAuth := newAuthFixture(t)
	ctx := context.Background()
	email := "student@stu.jejunu.ac.kr"

	code := requestedCode(t, verificationRepo, uc.verification, email)
	passwordAuth.passwords[email] = "secret123"

	_, err := uc.Register(ctx, RegisterInput{Email: email, Password: "secret123", Code: code})
	require.NoError(t, err)

	_, err = uc.Register(ctx, RegisterInput{Email: email, Password: "secret123", Code: code})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestLoginRebuildsMissingProfile(t *testing.T) {
	uc, userRepo, _, _, passwordAuth := newAuthFixture(t)
	ctx := context.Background()
	email := "student@stu.jejunu.ac.kr"
	passwordAuth.passwords[email] = "secret123"

	result, err := uc.Login(ctx, email, "secret123")
	require.NoError(t, err)
	assert.Equal(t, email, result.User.Email)

	stored, err := userRepo.GetByID(ctx, result.User.ID)
	require.NoError(t, err)
	assert.Equal(t, email, stored.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	uc, _, _, _, passwordAuth := newAuthFixture(t)
	passwordAuth.passwords["student@stu.jejunu.ac.kr"] = "secret123"

	_, err := uc.Login(context.Background(), "student@stu.jejunu.ac.kr", "wrong")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestChangePasswordRequiresCurrentPassword(t *testing.T) {
	uc, _, _, authClient, passwordAuth := newAuthFixture(t)
	ctx := context.Background()
	email := "student@stu.jejunu.ac.kr"

	uid, err := authClient.CreateUser(ctx, email, "secret123")
	require.NoError(t, err)
	passwordAuth.passwords[email] = "secret123"

	err = uc.ChangePassword(ctx, uid, "wrong", "newsecret")
	assert.True(t, errors.Is(err, "REQUIRES_RECENT_LOGIN"))

	require.NoError(t, uc.ChangePassword(ctx, uid, "secret123", "newsecret"))
}

func TestDeleteAccountRequiresReauth(t *testing.T) {
	uc, userRepo, _, authClient, passwordAuth := newAuthFixture(t)
	ctx := context.Background()
	email := "student@stu.jejunu.ac.kr"

	uid, err := authClient.CreateUser(ctx, email, "secret123")
	require.NoError(t, err)
	passwordAuth.passwords[email] = "secret123"
	require.NoError(t, userRepo.Create(ctx, &entity.User{ID: uid, Email: email}))

	err = uc.DeleteAccount(ctx, uid, "wrong")
	assert.True(t, errors.Is(err, "REQUIRES_RECENT_LOGIN"))

	require.NoError(t, uc.DeleteAccount(ctx, uid, "secret123"))

	_, err = userRepo.GetByID(ctx, uid)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
	assert.Contains(t, authClient.deleted, uid)
}
