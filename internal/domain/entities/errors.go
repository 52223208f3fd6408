package entities

import "errors"

// Component-level failure conditions. The orchestrator translates these into
// the request-facing error taxonomy.
var (
	// Transcriber errors
	ErrTranscriptionUnavailable = errors.New("transcription service unavailable")
	ErrEmptyTranscript          = errors.New("transcription succeeded but contains no speech")

	// AcousticAnalyzer errors
	ErrAudioDecode = errors.New("audio could not be decoded")

	// RubricJudge errors
	ErrJudgmentUnavailable = errors.New("rubric judgment unavailable")

	// TTS errors
	ErrSpeechSynthesisUnavailable = errors.New("speech synthesis unavailable")
)
