package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode is the machine-readable kind attached to every failure the API
// can return. Codes are stable: clients branch on them to decide between
// "speak again" and "try later".
type ErrorCode int

const (
	ErrorCode_UNKNOWN ErrorCode = iota
	ErrorCode_MISSING_FIELD
	ErrorCode_AUDIO_DECODE
	ErrorCode_AUDIO_ANALYSIS_FAILED
	ErrorCode_TRANSCRIPTION_FAILED
	ErrorCode_NO_SPEECH_DETECTED
	ErrorCode_EVALUATION_FAILED
	ErrorCode_NOT_FOUND
	ErrorCode_INTERNAL
)

// String returns the wire representation of the code.
func (c ErrorCode) String() string {
	switch c {
	case ErrorCode_MISSING_FIELD:
		return "MISSING_FIELD"
	case ErrorCode_AUDIO_DECODE:
		return "AUDIO_DECODE_ERROR"
	case ErrorCode_AUDIO_ANALYSIS_FAILED:
		return "AUDIO_ANALYSIS_FAILED"
	case ErrorCode_TRANSCRIPTION_FAILED:
		return "TRANSCRIPTION_FAILED"
	case ErrorCode_NO_SPEECH_DETECTED:
		return "NO_SPEECH_DETECTED"
	case ErrorCode_EVALUATION_FAILED:
		return "EVALUATION_FAILED"
	case ErrorCode_NOT_FOUND:
		return "NOT_FOUND"
	case ErrorCode_INTERNAL:
		return "INTERNAL_ERROR"
	default:
		return "UNKNOWN"
	}
}

// MarshalText makes the code serialize as its stable string form.
func (c ErrorCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// AppError là custom error type cho application
type AppError struct {
	Raw      error
	HTTPCode int
	Code     ErrorCode
	Message  string
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e AppError) Unwrap() error {
	return e.Raw
}

// ErrMissingField: client input incomplete, rejected before any remote call.
func ErrMissingField(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_MISSING_FIELD,
		Message:  message,
	}
}

// ErrAudioDecode: the uploaded audio could not be converted or parsed.
func ErrAudioDecode(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusUnprocessableEntity,
		Code:     ErrorCode_AUDIO_DECODE,
		Message:  "Audio could not be decoded",
	}
}

// ErrAudioAnalysisFailed: acoustic analysis could not process the audio.
func ErrAudioAnalysisFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusUnprocessableEntity,
		Code:     ErrorCode_AUDIO_ANALYSIS_FAILED,
		Message:  "Audio analysis failed",
	}
}

// ErrTranscriptionFailed: the transcription service is unreachable or erroring.
func ErrTranscriptionFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_TRANSCRIPTION_FAILED,
		Message:  "Speech transcription failed. Please try again later.",
	}
}

// ErrNoSpeechDetected: transcription succeeded but found no speech. Distinct
// from TRANSCRIPTION_FAILED so the client can prompt the user to speak again.
func ErrNoSpeechDetected() AppError {
	return AppError{
		HTTPCode: http.StatusUnprocessableEntity,
		Code:     ErrorCode_NO_SPEECH_DETECTED,
		Message:  "No speech detected in the recording. Please speak again.",
	}
}

// ErrEvaluationFailed: the rubric judge is unreachable or returned an
// unparseable structure.
func ErrEvaluationFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_EVALUATION_FAILED,
		Message:  "AI evaluation failed. Please try again later.",
	}
}

// ErrNotFound reports a missing resource.
func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

// ErrInternal wraps an unanticipated failure anywhere in the pipeline.
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}
