package eval

import (
	"context"
	stdErrors "errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/speech-evaluator/errors"
	"github.com/johnquangdev/speech-evaluator/internal/domain/entities"
	"github.com/johnquangdev/speech-evaluator/pkg/config"
)

// Collaborator interfaces. Each remote stage is an opaque external service
// from the orchestrator's point of view.

// Transcoder converts an uploaded container into canonical decodable WAV.
type Transcoder interface {
	Transcode(ctx context.Context, src, dst string) error
}

// Transcriber submits audio to the remote speech-to-text service.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*entities.TranscriptResult, error)
}

// Analyzer extracts prosodic metrics from the decoded audio.
type Analyzer interface {
	AnalyzeFile(path string) (*entities.AudioMetrics, error)
}

// Judge scores the transcript against the speaking rubric.
type Judge interface {
	Judge(ctx context.Context, question, transcript string, hints *entities.AudioMetrics) (*entities.Verdict, error)
}

// Service defines evaluation orchestration methods
type Service interface {
	Evaluate(ctx context.Context, question string, keywords []string, audio []byte) (*entities.EvaluationResult, error)
}

type evalService struct {
	transcoder   Transcoder
	transcriber  Transcriber
	analyzer     Analyzer
	judge        Judge
	logger       *zap.Logger
	tempDir      string
	stageTimeout time.Duration
}

// NewService constructs the evaluation orchestrator.
func NewService(
	transcoder Transcoder,
	transcriber Transcriber,
	analyzer Analyzer,
	judge Judge,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	tempDir := os.TempDir()
	stageTimeout := 30 * time.Second
	if cfg != nil {
		if cfg.Eval.TempDir != "" {
			tempDir = cfg.Eval.TempDir
		}
		if cfg.Eval.StageTimeout > 0 {
			stageTimeout = cfg.Eval.StageTimeout
		}
	}
	return &evalService{
		transcoder:   transcoder,
		transcriber:  transcriber,
		analyzer:     analyzer,
		judge:        judge,
		logger:       logger,
		tempDir:      tempDir,
		stageTimeout: stageTimeout,
	}
}

// Evaluate runs the fixed sequential pipeline: validate, transcode,
// transcribe, analyze, judge. Order matters: each stage's remote cost is
// only paid once prior, cheaper validation has passed. Errors are tagged
// AppErrors; no stage substitutes defaults.
func (s *evalService) Evaluate(ctx context.Context, question string, keywords []string, audio []byte) (*entities.EvaluationResult, error) {
	// Received -> FormatValidated: fail fast before any remote call.
	if strings.TrimSpace(question) == "" || len(keywords) == 0 || len(audio) == 0 {
		return nil, apperrors.ErrMissingField("Missing question, keywords, or audio file.")
	}

	// Temp artifacts are request-scoped: unique names so concurrent
	// evaluations never share a file.
	id := uuid.NewString()
	srcPath := filepath.Join(s.tempDir, "answer-"+id+".webm")
	wavPath := filepath.Join(s.tempDir, "answer-"+id+".wav")

	if err := os.WriteFile(srcPath, audio, 0o600); err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	defer s.cleanup(srcPath, wavPath)

	// FormatValidated -> Transcribed: convert to canonical WAV, then submit
	// for transcription.
	tctx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	err := s.transcoder.Transcode(tctx, srcPath, wavPath)
	cancel()
	if err != nil {
		return nil, apperrors.ErrAudioDecode(err)
	}

	tctx, cancel = context.WithTimeout(ctx, s.stageTimeout)
	transcript, err := s.transcriber.Transcribe(tctx, wavPath)
	cancel()
	if err != nil {
		if stdErrors.Is(err, entities.ErrEmptyTranscript) {
			return nil, apperrors.ErrNoSpeechDetected()
		}
		return nil, apperrors.ErrTranscriptionFailed(err)
	}

	if s.logger != nil {
		s.logger.Info("transcription completed",
			zap.Int("text_length", len(transcript.Text)),
			zap.Int("word_count", len(transcript.Words)),
			zap.Int("filler_count", len(transcript.FillerWords)),
		)
	}

	// Transcribed -> Analyzed: local decode + metrics on the same audio.
	metrics, err := s.analyzer.AnalyzeFile(wavPath)
	if err != nil {
		return nil, apperrors.ErrAudioAnalysisFailed(err)
	}

	// Analyzed -> Judged: rubric judgment with metrics as an optional hint.
	tctx, cancel = context.WithTimeout(ctx, s.stageTimeout)
	verdict, err := s.judge.Judge(tctx, question, transcript.Text, metrics)
	cancel()
	if err != nil {
		return nil, apperrors.ErrEvaluationFailed(err)
	}

	if s.logger != nil {
		s.logger.Info("evaluation completed",
			zap.Int("score", verdict.Score),
			zap.Float64("duration_seconds", metrics.DurationSeconds),
		)
	}

	// Judged -> Completed.
	return &entities.EvaluationResult{
		Transcript:   transcript,
		AudioMetrics: metrics,
		Verdict:      verdict,
	}, nil
}

// cleanup removes temp artifacts best-effort; failures are logged, never
// escalated. Cleanup is not part of the success/failure contract.
func (s *evalService) cleanup(paths ...string) {
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			if s.logger != nil {
				s.logger.Warn("failed to remove temp audio artifact",
					zap.String("path", path),
					zap.Error(err),
				)
			}
		}
	}
}
