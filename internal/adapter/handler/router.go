package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/speech-evaluator/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg        *config.Config
	question   *QuestionHandler
	evaluation *EvaluationHandler
	tts        *TTSHandler
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, question *QuestionHandler, evaluation *EvaluationHandler, tts *TTSHandler) *Router {
	return &Router{
		cfg:        cfg,
		question:   question,
		evaluation: evaluation,
		tts:        tts,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	e.GET("/question", rt.question.GetQuestion)
	e.POST("/next_question", rt.question.NextQuestion)
	e.POST("/evaluate", rt.evaluation.Evaluate)
	e.POST("/tts", rt.tts.Speak)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	env := "development"
	if rt.cfg != nil {
		env = rt.cfg.Server.Environment
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": env,
	})
}
