package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/speech-evaluator/errors"
	dto "github.com/johnquangdev/speech-evaluator/internal/adapter/dto/eval"
)

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get("X-Request-ID")
}

// HandleError centralizes error handling and logging. Every failure path
// returns a stable machine-readable error kind plus a human-readable
// message, with the HTTP status chosen by the kind.
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			logger.Error("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.String("app_code", appErr.Code.String()),
				zap.Error(err),
			)
		}

		return c.JSON(appErr.HTTPCode, dto.ErrorResponse{
			Success: false,
			Error:   appErr.Code.String(),
			Message: appErr.Message,
		})
	}

	// Non-AppError => internal server error
	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Success: false,
		Error:   errors.ErrorCode_INTERNAL.String(),
		Message: "Internal server error",
	})
}
