package usecase

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unimarket/pkg/errors"
)

var allowedDomains = []string{"stu.jejunu.ac.kr", "jejunu.ac.kr"}

func newVerificationFixture(t *testing.T) (*VerificationUseCase, *fakeVerificationRepo, *fakeMailer, *fakeAuthClient) {
	t.Helper()
	repo := newFakeVerificationRepo()
	mailer := &fakeMailer{}
	auth := newFakeAuthClient()
	uc := NewVerificationUseCase(repo, mailer, auth, allowedDomains)
	return uc, repo, mailer, auth
}

func TestRequestCodeStoresSixDigits(t *testing.T) {
	uc, repo, mailer, _ := newVerificationFixture(t)
	ctx := context.Background()

	require.NoError(t, uc.RequestCode(ctx, "student@stu.jejunu.ac.kr"))

	stored, err := repo.Get(ctx, "student@stu.jejunu.ac.kr")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), stored.Code)
	assert.True(t, stored.ExpiresAt.After(time.Now()))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "student@stu.jejunu.ac.kr:"+stored.Code, mailer.sent[0])
}

func TestRequestCodeRejectsForeignDomain(t *testing.T) {
	uc, _, mailer, _ := newVerificationFixture(t)

	err := uc.RequestCode(context.Background(), "someone@gmail.com")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
	assert.Empty(t, mailer.sent)
}

func TestRequestCodeRejectsRegisteredEmail(t *testing.T) {
	uc, _, _, auth := newVerificationFixture(t)
	ctx := context.Background()

	_, err := auth.CreateUser(ctx, "taken@stu.jejunu.ac.kr", "secret123")
	require.NoError(t, err)

	err = uc.RequestCode(ctx, "taken@stu.jejunu.ac.kr")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestConsumeHappyPath(t *testing.T) {
	uc, repo, _, _ := newVerificationFixture(t)
	ctx := context.Background()

	require.NoError(t, uc.RequestCode(ctx, "student@stu.jejunu.ac.kr"))
	stored, err := repo.Get(ctx, "student@stu.jejunu.ac.kr")
	require.NoError(t, err)

	require.NoError(t, uc.Consume(ctx, "student@stu.jejunu.ac.kr", stored.Code))

	// Consumed codes cannot be replayed.
	err = uc.Consume(ctx, "student@stu.jejunu.ac.kr", stored.Code)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestConsumeWrongCode(t *testing.T) {
	uc, repo, _, _ := newVerificationFixture(t)
	ctx := context.Background()

	require.NoError(t, uc.RequestCode(ctx, "student@stu.jejunu.ac.kr"))

	err := uc.Consume(ctx, "student@stu.jejunu.ac.kr", "000000")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	// A wrong guess does not burn the stored code.
	stored, err2 := repo.Get(ctx, "student@stu.jejunu.ac.kr")
	require.NoError(t, err2)
	require.NoError(t, uc.Consume(ctx, "student@stu.jejunu.ac.kr", stored.Code))
}

func TestConsumeExpiredCode(t *testing.T) {
	uc, repo, _, _ := newVerificationFixture(t)
	ctx := context.Background()

	require.NoError(t, uc.RequestCode(ctx, "student@stu.jejunu.ac.kr"))
	stored, err := repo.Get(ctx, "student@stu.jejunu.ac.kr")
	require.NoError(t, err)

	stored.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, repo.Put(ctx, stored))

	err = uc.Consume(ctx, "student@stu.jejunu.ac.kr", stored.Code)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	// Expired codes are purged on first use.
	_, err = repo.Get(ctx, "student@stu.jejunu.ac.kr")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestConsumeWithoutRequest(t *testing.T) {
	uc, _, _, _ := newVerificationFixture(t)

	err := uc.Consume(context.Background(), "student@stu.jejunu.ac.kr", "123456")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestRequestCodeReplacesPrevious(t *testing.T) {
	uc, repo, _, _ := newVerificationFixture(t)
	ctx := context.Background()

	require.NoError(t, uc.RequestCode(ctx, "student@stu.jejunu.ac.kr"))
	first, err := repo.Get(ctx, "student@stu.jejunu.ac.kr")
	require.NoError(t, err)

	require.NoError(t, uc.RequestCode(ctx, "student@stu.jejunu.ac.kr"))
	second, err := repo.Get(ctx, "student@stu.jejunu.ac.kr")
	require.NoError(t, err)

	if first.Code != second.Code {
		err = uc.Consume(ctx, "student@stu.jejunu.ac.kr", first.Code)
		assert.True(t, errors.Is(err, "BAD_REQUEST"))
	}
	require.NoError(t, uc.Consume(ctx, "student@stu.jejunu.ac.kr", second.Code))
}
