package bootstrap

import (
	"context"
	"log"
	"time"

	"reflect360-be/internal/config"
	"reflect360-be/internal/controller"
	"reflect360-be/internal/handler"
	"reflect360-be/internal/pkg/logger"
	"reflect360-be/internal/pkg/mailer"
	"reflect360-be/internal/repository/unitofwork"
	"reflect360-be/internal/service"
	"reflect360-be/internal/websocket"
	"reflect360-be/pkg/aicall"
	"reflect360-be/pkg/llm/factory"
	"reflect360-be/pkg/statestore"

	pktNats "reflect360-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Topic for in-process fanout of new feedback responses.
const responseSubmittedTopic = "feedback.response.submitted"

type Container struct {
	// Controllers
	AuthController       controller.IAuthController
	ReflectionController controller.IReflectionController
	AiController         controller.IAiController
	FeedbackController   controller.IFeedbackController
	ExportController     controller.IExportController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	// Offline is true when Postgres was unreachable at startup. Account and
	// feedback features answer 503; the reflection tool keeps working.
	Offline bool
}

// NewContainer wires the whole dependency graph. db may be nil, which flips
// the container into cloud-disabled mode.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	offline := db == nil

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis, shared between the reflection state store and the websocket hub
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb = nil
	}

	// Reflection state lives in Redis; without it, in memory for the life of
	// the process.
	var store statestore.Store
	if rdb != nil {
		store = statestore.NewRedisStoreWithClient(rdb)
	} else {
		log.Printf("[WARN] Redis unavailable, reflection state is in-memory only")
		store = statestore.NewMemoryStore()
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.Provider,
		cfg.Ai.Model,
		cfg.Ai.BaseURL,
		cfg.Ai.APIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	orchestrator := aicall.NewOrchestrator()

	// 3. Services
	reflectionService := service.NewReflectionService(store)
	dialogueService := service.NewDialogueService(
		reflectionService,
		llmProvider,
		orchestrator,
		time.Duration(cfg.Ai.DialogueTimeoutSec)*time.Second,
	)
	insightService := service.NewInsightService(
		reflectionService,
		llmProvider,
		orchestrator,
		time.Duration(cfg.Ai.InsightTimeoutSec)*time.Second,
		time.Duration(cfg.Ai.SummaryTimeoutSec)*time.Second,
	)

	authService := service.NewAuthService(uowFactory, emailService, natsPub, cfg.Auth, offline)
	feedbackService := service.NewFeedbackService(
		uowFactory,
		natsPub,
		pubSub,
		responseSubmittedTopic,
		emailService,
		cfg.App.ClientURL,
		offline,
	)
	analysisService := service.NewAnalysisService(
		uowFactory,
		llmProvider,
		orchestrator,
		time.Duration(cfg.Ai.SummaryTimeoutSec)*time.Second,
		offline,
	)
	exportService := service.NewExportService(uowFactory, analysisService, offline)

	consumerService := service.NewConsumerService(pubSub, responseSubmittedTopic, analysisService)

	// 3.5 Notification System
	notifService := service.NewNotificationService(uowFactory, natsSub, wsHub, wsLogger, offline) // Hub implements NotificationDelivery
	if natsSub != nil && !offline {
		go notifService.Start()
	}
	notifHandler := handler.NewNotificationHandler(notifService, wsHub, wsLogger)

	sysLogger.Info("Bootstrap", "Container wired", map[string]interface{}{"offline": offline})

	// 4. Controllers
	return &Container{
		AuthController:       controller.NewAuthController(authService),
		ReflectionController: controller.NewReflectionController(reflectionService),
		AiController:         controller.NewAiController(dialogueService, insightService),
		FeedbackController:   controller.NewFeedbackController(feedbackService, analysisService),
		ExportController:     controller.NewExportController(exportService),

		ConsumerService: consumerService,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,

		Offline: offline,
	}
}
