package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/johnquangdev/speech-evaluator/pkg/validator"

	"github.com/johnquangdev/speech-evaluator/internal/adapter/handler"
	evaluse "github.com/johnquangdev/speech-evaluator/internal/usecase/eval"
	"github.com/johnquangdev/speech-evaluator/internal/usecase/session"
	pkgai "github.com/johnquangdev/speech-evaluator/pkg/ai"
	"github.com/johnquangdev/speech-evaluator/pkg/audio"
	"github.com/johnquangdev/speech-evaluator/pkg/config"
)

func main() {
	// Load configuration. Missing remote credentials abort startup here.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize remote collaborators
	log.Println("🤖 Initializing AI components...")
	dgClient := pkgai.NewDeepgramClient(&cfg.Deepgram)
	gmClient := pkgai.NewGeminiClient(&cfg.Gemini)

	// Initialize evaluation pipeline
	log.Println("⚙️  Initializing evaluation pipeline...")
	transcoder := audio.NewFFmpeg(cfg.Eval.FFmpegPath)
	analyzer := audio.NewAnalyzer()
	judge := evaluse.NewRubricJudge(gmClient, logger)
	evalService := evaluse.NewService(transcoder, dgClient, analyzer, judge, cfg, logger)

	// Initialize question session
	log.Println("📋 Initializing question session...")
	sess := session.Default()

	// Initialize handlers
	questionHandler := handler.NewQuestionHandler(sess, dgClient, logger)
	evaluationHandler := handler.NewEvaluationHandler(evalService, logger)
	ttsHandler := handler.NewTTSHandler(dgClient, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, questionHandler, evaluationHandler, ttsHandler)
	router.Setup(e)

	// Speak the opening prompt in the background, as the frontend expects a
	// spoken question on load.
	questionHandler.SpeakAsync(sess.Current().Text)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
