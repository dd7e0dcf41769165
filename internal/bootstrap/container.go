package bootstrap

import (
	"time"

	"faq-management-be/internal/config"
	"faq-management-be/internal/controller"
	"faq-management-be/internal/pkg/logger"
	"faq-management-be/internal/pkg/serverutils"
	"faq-management-be/internal/repository/memory"
	"faq-management-be/internal/repository/notion"
	"faq-management-be/internal/service"
	"faq-management-be/pkg/gemini"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
)

type Container struct {
	// Controllers
	AuthController       controller.IAuthController
	FaqController        controller.IFaqController
	SuggestionController controller.ISuggestionController

	// Middleware guarding all FAQ/suggestion routes
	SessionMiddleware fiber.Handler

	// Background services (exposed for main.go to run)
	AuditConsumer service.IConsumerService

	// Core facades
	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)

	// 2. Event bus (in-process; the audit consumer is the only subscriber)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Repositories
	sessionRepo := memory.NewSessionRepository(time.Duration(cfg.Auth.SessionTTLMinutes) * time.Minute)
	faqRepo := notion.NewFaqRepository(cfg.Notion)

	// 4. External providers
	geminiClient := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.BaseURL)

	// 5. Services
	authService := service.NewAuthService(cfg.Auth, sessionRepo)
	faqService := service.NewFaqService(faqRepo, sessionRepo, pubSub, sysLogger)
	suggestionService := service.NewSuggestionService(geminiClient, sysLogger)
	auditConsumer := service.NewAuditConsumerService(pubSub, auditLogger)

	// 6. Controllers
	return &Container{
		AuthController:       controller.NewAuthController(authService),
		FaqController:        controller.NewFaqController(faqService),
		SuggestionController: controller.NewSuggestionController(suggestionService),
		SessionMiddleware:    serverutils.SessionMiddleware(cfg.Auth.JWTSecret, sessionRepo),
		AuditConsumer:        auditConsumer,
		Logger:               sysLogger,
	}
}
