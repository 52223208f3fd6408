package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/speech-evaluator/errors"
	dto "github.com/johnquangdev/speech-evaluator/internal/adapter/dto/eval"
)

// TTSHandler streams synthesized speech back to the client
type TTSHandler struct {
	tts    Synthesizer
	logger *zap.Logger
}

// NewTTSHandler creates a new TTS handler
func NewTTSHandler(tts Synthesizer, logger *zap.Logger) *TTSHandler {
	return &TTSHandler{tts: tts, logger: logger}
}

// Speak synthesizes the given text and returns the audio stream.
func (h *TTSHandler) Speak(c echo.Context) error {
	var req dto.TTSRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrMissingField("Missing text to synthesize."))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrMissingField("Missing text to synthesize."))
	}

	audio, contentType, err := h.tts.Speak(c.Request().Context(), req.Text, req.Voice)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	return c.Blob(http.StatusOK, contentType, audio)
}
