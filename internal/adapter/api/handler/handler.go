package handler

import (
	"unimarket/internal/infrastructure/ratelimit"
	"unimarket/internal/usecase"
)

var (
	authHandler     *AuthHandler
	userHandler     *UserHandler
	itemHandler     *ItemHandler
	chatHandler     *ChatHandler
	favoriteHandler *FavoriteHandler
	noticeHandler   *NoticeHandler
	uploadHandler   *UploadHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	verificationUseCase *usecase.VerificationUseCase,
	userUseCase *usecase.UserUseCase,
	itemUseCase *usecase.ItemUseCase,
	chatUseCase *usecase.ChatUseCase,
	favoriteUseCase *usecase.FavoriteUseCase,
	noticeUseCase *usecase.NoticeUseCase,
	uploader usecase.ImageUploader,
	limiter *ratelimit.RateLimiter,
) {
	authHandler = NewAuthHandler(authUseCase, verificationUseCase)
	userHandler = NewUserHandler(userUseCase)
	itemHandler = NewItemHandler(itemUseCase)
	chatHandler = NewChatHandler(chatUseCase, limiter)
	favoriteHandler = NewFavoriteHandler(favoriteUseCase)
	noticeHandler = NewNoticeHandler(noticeUseCase)
	uploadHandler = NewUploadHandler(uploader)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetItemHandler() *ItemHandler {
	return itemHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}

func GetFavoriteHandler() *FavoriteHandler {
	return favoriteHandler
}

func GetNoticeHandler() *NoticeHandler {
	return noticeHandler
}

func GetUploadHandler() *UploadHandler {
	return uploadHandler
}
