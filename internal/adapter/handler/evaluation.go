package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/speech-evaluator/errors"
	dto "github.com/johnquangdev/speech-evaluator/internal/adapter/dto/eval"
	evaluse "github.com/johnquangdev/speech-evaluator/internal/usecase/eval"
)

// EvaluationHandler handles the answer evaluation endpoint
type EvaluationHandler struct {
	svc    evaluse.Service
	logger *zap.Logger
}

// NewEvaluationHandler creates a new evaluation handler
func NewEvaluationHandler(svc evaluse.Service, logger *zap.Logger) *EvaluationHandler {
	return &EvaluationHandler{svc: svc, logger: logger}
}

// Evaluate accepts a multipart form with fields question, keywords
// (repeated) and audio (webm/ogg file), runs the evaluation pipeline and
// returns transcript, audio metrics, rubric scores and feedback.
func (h *EvaluationHandler) Evaluate(c echo.Context) error {
	question := c.FormValue("question")

	form, err := c.FormParams()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrMissingField("Missing question, keywords, or audio file."))
	}
	keywords := form["keywords"]

	audio, err := readFormFile(c, "audio")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrMissingField("Missing question, keywords, or audio file."))
	}

	result, err := h.svc.Evaluate(c.Request().Context(), question, keywords, audio)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if h.logger != nil {
		h.logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}
	return c.JSON(http.StatusOK, dto.FromResult(result))
}

// readFormFile reads an uploaded file's bytes from the multipart form.
func readFormFile(c echo.Context, name string) ([]byte, error) {
	fh, err := c.FormFile(name)
	if err != nil {
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
