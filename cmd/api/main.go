// @title QuizCraft API
// @version 1.0
// @description Study-quiz backend: LLM quiz generation plus session tracking.
// @host localhost:8000
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quizcraft/internal/adapter"
	"quizcraft/internal/adapter/provider"
	"quizcraft/internal/cache"
	"quizcraft/internal/config"
	"quizcraft/internal/database"
	"quizcraft/internal/domain"
	"quizcraft/internal/handler"
	"quizcraft/internal/logger"
	"quizcraft/internal/middleware"
	"quizcraft/internal/repository"
	"quizcraft/internal/service"
	"quizcraft/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// The text-generation backend is chosen once at startup: production runs
	// against OpenAI, every other environment against Google AI.
	var textProvider domain.TextProvider
	if cfg.IsProduction() {
		textProvider, err = provider.NewOpenAIProvider(cfg.LLM, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to create OpenAI provider", zap.Error(err))
		}
	} else {
		textProvider, err = provider.NewGoogleAIProvider(context.Background(), cfg.LLM, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to create Google AI provider", zap.Error(err))
		}
	}
	appLogger.Info("Text provider initialized", zap.String("provider", textProvider.Name()))

	// Connect to database
	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Successfully connected to Postgres")

	// Initialize repositories
	sessionRepository := repository.NewSQLXSessionRepository(db)
	messageRepository := repository.NewSQLXMessageRepository(db)
	quizRepository := repository.NewSQLXQuizRepository(db)
	questionRepository := repository.NewSQLXQuestionRepository(db)
	answerRepository := repository.NewSQLXUserAnswerRepository(db)
	userRepository := repository.NewSQLXUserRepository(db)

	// Initialize Redis. The cache is an optimization: when Redis is down the
	// server still starts and every generation goes to the provider.
	var quizCache domain.Cache
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Warn("Redis unavailable, quiz caching disabled", zap.Error(err))
	} else {
		quizCache = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Successfully connected to Redis")
	}

	// Initialize services
	quizGenService := service.NewQuizGenerationService(textProvider, quizCache, cfg.CacheTTL.GeneratedQuiz)
	classifier := service.NewKeywordIntentClassifier()
	chatService := service.NewChatService(textProvider, classifier, quizGenService)
	sessionService := service.NewSessionService(sessionRepository, messageRepository)
	studyService := service.NewStudyService(quizRepository, questionRepository, answerRepository)

	authService, err := service.NewAuthService(cfg, userRepository)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}

	// Initialize handlers
	validator := validation.NewValidator()
	aiHandler := handler.NewAIHandler(quizGenService, chatService, validator)
	sessionHandler := handler.NewSessionHandler(sessionService, validator)
	studyHandler := handler.NewStudyHandler(studyService, validator)
	userHandler := handler.NewUserHandler(authService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	// AI routes: callable pre-login, so auth is optional.
	aiGroup := app.Group("/ai", middleware.OptionalAuth(authService))
	aiGroup.Post("/generate-quiz", aiHandler.GenerateQuiz)
	aiGroup.Post("/explain", aiHandler.Explain)

	// Persistence routes, all protected.
	apiGroup := app.Group("/api", middleware.Protected(authService))

	apiGroup.Get("/sessions", sessionHandler.ListSessions)
	apiGroup.Post("/sessions", sessionHandler.CreateSession)
	apiGroup.Patch("/sessions/:id", sessionHandler.UpdateSession)
	apiGroup.Delete("/sessions/:id", sessionHandler.DeleteSession)
	apiGroup.Get("/sessions/:id/messages", sessionHandler.ListMessages)
	apiGroup.Post("/messages", sessionHandler.CreateMessage)

	apiGroup.Post("/quizzes", studyHandler.CreateQuiz)
	apiGroup.Get("/quizzes", studyHandler.ListQuizzes)
	apiGroup.Get("/quizzes/:id", studyHandler.GetQuiz)
	apiGroup.Patch("/quizzes/:id", studyHandler.UpdateQuiz)

	apiGroup.Get("/questions", studyHandler.ListQuestions)
	apiGroup.Post("/questions", studyHandler.CreateQuestion)
	apiGroup.Post("/questions/batch", studyHandler.CreateQuestionBatch)
	apiGroup.Post("/answers", studyHandler.CreateAnswer)
	apiGroup.Get("/answers", studyHandler.ListAnswers)

	apiGroup.Get("/progress", studyHandler.GetProgress)
	apiGroup.Get("/users/me", userHandler.GetMyProfile)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
