package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"unimarket/internal/adapter/api"
	"unimarket/internal/adapter/api/handler"
	apimiddleware "unimarket/internal/adapter/api/middleware"
	"unimarket/internal/adapter/api/router"
	"unimarket/internal/adapter/repository"
	"unimarket/internal/infrastructure/emailjs"
	"unimarket/internal/infrastructure/expo"
	"unimarket/internal/infrastructure/firebase"
	"unimarket/internal/infrastructure/imgur"
	"unimarket/internal/infrastructure/ratelimit"
	"unimarket/internal/infrastructure/websocket"
	"unimarket/internal/usecase"
	"unimarket/pkg/config"
	"unimarket/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption

	// Service account from environment variable (production) or file (local)
	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./serviceAccountKey.json"
		}

		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}

		log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	itemRepo := repository.NewFirestoreItemRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)
	favoriteRepo := repository.NewFirestoreFavoriteRepository(firestoreClient)
	noticeRepo := repository.NewFirestoreNoticeRepository(firestoreClient)
	verificationRepo := repository.NewFirestoreVerificationRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient)
	restAuthClient := firebase.NewRestClient(cfg.FirebaseApiKey)
	imgurClient := imgur.NewClient(cfg.ImgurClientID)
	mailClient := emailjs.NewClient(cfg.EmailServiceID, cfg.EmailTemplateID, cfg.EmailPublicKey)
	pushClient := expo.NewClient(cfg.ExpoPushURL)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	limiter := ratelimit.NewRateLimiter()
	limiter.StartCleanupRoutine()

	verificationUseCase := usecase.NewVerificationUseCase(verificationRepo, mailClient, firebaseAuthClient, cfg.AllowedEmailDomains)
	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient, restAuthClient, verificationUseCase)
	userUseCase := usecase.NewUserUseCase(userRepo, itemRepo)
	itemUseCase := usecase.NewItemUseCase(itemRepo, imgurClient)
	chatUseCase := usecase.NewChatUseCase(chatRepo, itemRepo, userRepo, wsManager, pushClient)
	favoriteUseCase := usecase.NewFavoriteUseCase(favoriteRepo, itemRepo)
	noticeUseCase := usecase.NewNoticeUseCase(noticeRepo)

	handler.Setup(authUseCase, verificationUseCase, userUseCase, itemUseCase, chatUseCase, favoriteUseCase, noticeUseCase, imgurClient, limiter)
	handler.SetupHealthHandler()
	handler.SetupWebSocketHandler(wsManager)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(apimiddleware.GeneralRateLimit())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware(cfg.AdminEmails)

	router.Setup(e, authMiddleware, adminMiddleware)

	logger.Info("Starting server on port %s (environment=%s)", cfg.ServerPort, cfg.Environment)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
