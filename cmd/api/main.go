// @title EduGen API
// @version 1.0
// @description Thai educational content generation API: quiz generation, summarization, Q&A, notes and quiz export.
// @host localhost:8080
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/Nickzanarak/Edu/internal/adapter"
	"github.com/Nickzanarak/Edu/internal/adapter/pdftext"
	"github.com/Nickzanarak/Edu/internal/adapter/textgen"
	"github.com/Nickzanarak/Edu/internal/cache"
	"github.com/Nickzanarak/Edu/internal/config"
	"github.com/Nickzanarak/Edu/internal/domain"
	"github.com/Nickzanarak/Edu/internal/handler"
	"github.com/Nickzanarak/Edu/internal/logger"
	"github.com/Nickzanarak/Edu/internal/middleware"
	"github.com/Nickzanarak/Edu/internal/render"
	"github.com/Nickzanarak/Edu/internal/repository"
	"github.com/Nickzanarak/Edu/internal/service"
	"github.com/Nickzanarak/Edu/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

const version = "1.0.0"

// requestLogger is a middleware that logs HTTP requests with a
// per-request id so concurrent generation runs can be traced.
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()
		requestID := util.NewULID()
		c.Locals("requestID", requestID)

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Text generation backend
	var generator *textgen.Generator
	switch cfg.LLM.Source {
	case "ollama":
		appLogger.Info("Initializing Ollama generator",
			zap.String("server_url", cfg.LLM.Ollama.ServerURL),
			zap.String("model", cfg.LLM.Ollama.Model),
		)
		generator, err = textgen.NewOllamaGenerator(cfg.LLM.Ollama, cfg.QuizGen, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to create Ollama generator", zap.Error(err))
		}
	case "openai":
		appLogger.Info("Initializing OpenAI generator", zap.String("model", cfg.LLM.OpenAI.Model))
		generator, err = textgen.NewOpenAIGenerator(cfg.LLM.OpenAI, cfg.QuizGen, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to create OpenAI generator", zap.Error(err))
		}
	default:
		appLogger.Fatal(fmt.Sprintf("Unsupported LLM source: %s. Please check LLM_SOURCE in config.", cfg.LLM.Source))
	}

	// Optional response cache
	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		appLogger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
	} else {
		appLogger.Info("Redis address not configured, response caching disabled")
	}

	// Repositories
	noteRepository := repository.NewFileNoteRepository(cfg.Storage.DataDir)
	bankRepository := repository.NewFileBankRepository(cfg.Storage.DataDir)

	// PDF in and out
	extractor := pdftext.NewExtractor()
	renderer, err := render.NewPDFRenderer(cfg.Storage.FontDir)
	if err != nil {
		appLogger.Fatal("Failed to initialize PDF renderer", zap.Error(err))
	}

	// Services
	quizService := service.NewQuizService(generator, cfg.QuizGen)
	contentService := service.NewContentService(generator, cacheAdapter, cfg.Redis.TTL)
	bankService := service.NewBankService(noteRepository, bankRepository)
	exportService := service.NewExportService(bankRepository, renderer)

	// Handlers
	quizHandler := handler.NewQuizHandler(quizService, contentService)
	contentHandler := handler.NewContentHandler(contentService, extractor, version)
	noteHandler := handler.NewNoteHandler(bankService)
	bankHandler := handler.NewBankHandler(bankService, exportService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(recover.New())
	app.Use(cors.New(corsConfig(cfg.CORS)))

	apiGroup := app.Group("/api")
	apiGroup.Get("/health", contentHandler.Health)
	apiGroup.Post("/pdf/extract", contentHandler.ExtractPDF)
	apiGroup.Post("/summarize", contentHandler.Summarize)
	apiGroup.Post("/qa", contentHandler.AnswerQuestion)

	apiGroup.Post("/quiz/topics", quizHandler.ExtractTopics)
	apiGroup.Post("/quiz/mcq", quizHandler.GenerateMCQ)
	apiGroup.Post("/quiz/tf", quizHandler.GenerateTrueFalse)

	// Per-user routes
	noteGroup := apiGroup.Group("/notes", middleware.RequireUserID())
	noteGroup.Get("/:fileId", noteHandler.GetNote)
	noteGroup.Put("/:fileId", noteHandler.PutNote)

	bankGroup := apiGroup.Group("/bank", middleware.RequireUserID())
	bankGroup.Get("/questions", bankHandler.ListQuestions)
	bankGroup.Post("/questions", bankHandler.CreateQuestion)
	bankGroup.Put("/questions/:id", bankHandler.UpdateQuestion)
	bankGroup.Delete("/questions/:id", bankHandler.DeleteQuestion)
	bankGroup.Get("/quizzes", bankHandler.ListQuizzes)
	bankGroup.Post("/quizzes", bankHandler.CreateQuiz)
	bankGroup.Post("/quizzes/create-empty", bankHandler.CreateEmptyQuiz)
	bankGroup.Post("/quizzes/merge", bankHandler.MergeQuizzes)
	bankGroup.Get("/quizzes/:quizId", bankHandler.GetQuiz)
	bankGroup.Put("/quizzes/:quizId", bankHandler.UpdateQuiz)
	bankGroup.Delete("/quizzes/:quizId", bankHandler.DeleteQuiz)
	bankGroup.Post("/quizzes/:quizId/append", bankHandler.AppendQuestion)
	bankGroup.Post("/quizzes/:quizId/remove", bankHandler.RemoveQuestion)

	exportGroup := apiGroup.Group("/export", middleware.RequireUserID())
	exportGroup.Post("/quizzes/:quizId", bankHandler.ExportQuiz)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port))
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

// corsConfig builds the CORS policy. With no configured origins the
// API falls back to local development hosts.
func corsConfig(cfg config.CORSConfig) cors.Config {
	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173"}
	}
	return cors.Config{
		AllowOrigins:  strings.Join(origins, ","),
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept,X-User-Id",
		ExposeHeaders: "Content-Disposition",
		MaxAge:        300,
	}
}
