package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/speech-evaluator/errors"
	dto "github.com/johnquangdev/speech-evaluator/internal/adapter/dto/eval"
	"github.com/johnquangdev/speech-evaluator/internal/usecase/session"
)

// Synthesizer turns text into playable audio.
type Synthesizer interface {
	Speak(ctx context.Context, text, voice string) ([]byte, string, error)
}

// QuestionHandler serves the question session endpoints
type QuestionHandler struct {
	session *session.Service
	tts     Synthesizer
	logger  *zap.Logger
}

// NewQuestionHandler creates a new question handler. tts may be nil to
// disable spoken prompts.
func NewQuestionHandler(sess *session.Service, tts Synthesizer, logger *zap.Logger) *QuestionHandler {
	return &QuestionHandler{session: sess, tts: tts, logger: logger}
}

// GetQuestion returns the current question
func (h *QuestionHandler) GetQuestion(c echo.Context) error {
	if h.session == nil {
		return HandleError(h.logger, c, errors.ErrNotFound("question session"))
	}
	q := h.session.Current()
	return c.JSON(http.StatusOK, dto.QuestionResponse{Text: q.Text})
}

// NextQuestion advances the session, wrapping to the first question after
// the last, and speaks the new prompt in the background.
func (h *QuestionHandler) NextQuestion(c echo.Context) error {
	if h.session == nil {
		return HandleError(h.logger, c, errors.ErrNotFound("question session"))
	}
	q := h.session.Advance()
	h.SpeakAsync(q.Text)
	return c.JSON(http.StatusOK, dto.NextQuestionResponse{
		Success:  true,
		Question: dto.QuestionResponse{Text: q.Text},
	})
}

// SpeakAsync synthesizes the prompt in a detached goroutine. There is no
// result channel: synthesis failures never affect the request cycle, they
// are logged and dropped.
func (h *QuestionHandler) SpeakAsync(text string) {
	if h.tts == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if _, _, err := h.tts.Speak(ctx, text, ""); err != nil {
			if h.logger != nil {
				h.logger.Warn("background prompt synthesis failed", zap.Error(err))
			}
		}
	}()
}
