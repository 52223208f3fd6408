package eval

import (
	"context"
	stdErrors "errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/johnquangdev/speech-evaluator/internal/domain/entities"
)

// mockLLM counts calls and returns a canned response.
type mockLLM struct {
	calls      int
	lastPrompt string
	response   string
	err        error
}

func (m *mockLLM) GenerateVerdict(ctx context.Context, prompt string) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func TestJudge_EmptyTranscriptSkipsRemoteCall(t *testing.T) {
	llm := &mockLLM{response: validVerdictJSON}
	judge := NewRubricJudge(llm, zap.NewNop())

	for _, transcript := range []string{"", "   ", "\n\t"} {
		v, err := judge.Judge(context.Background(), "Tell me about yourself.", transcript, nil)
		if err != nil {
			t.Fatalf("transcript %q: unexpected error: %v", transcript, err)
		}
		zero := entities.ZeroVerdict()
		if v.Score != 0 || v.Comment != zero.Comment {
			t.Fatalf("transcript %q: expected zero verdict, got %+v", transcript, v)
		}
	}
	if llm.calls != 0 {
		t.Fatalf("expected no remote calls for empty transcripts, got %d", llm.calls)
	}
}

func TestJudge_PromptIncludesQuestionAnswerAndHints(t *testing.T) {
	llm := &mockLLM{response: validVerdictJSON}
	judge := NewRubricJudge(llm, zap.NewNop())

	hints := &entities.AudioMetrics{DurationSeconds: 12.5, AveragePitchHz: 180.25, EstimatedWordsPerMinute: 150}
	if _, err := judge.Judge(context.Background(), "Describe your hometown.", "I live in Hanoi.", hints); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"Describe your hometown.", "I live in Hanoi.", "180.25", "12.50"} {
		if !strings.Contains(llm.lastPrompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, llm.lastPrompt)
		}
	}
}

func TestJudge_RemoteErrorPropagates(t *testing.T) {
	llm := &mockLLM{err: entities.ErrJudgmentUnavailable}
	judge := NewRubricJudge(llm, zap.NewNop())

	if _, err := judge.Judge(context.Background(), "q", "an answer", nil); !stdErrors.Is(err, entities.ErrJudgmentUnavailable) {
		t.Fatalf("expected ErrJudgmentUnavailable, got %v", err)
	}
}

func TestJudge_UnparseableVerdict(t *testing.T) {
	llm := &mockLLM{response: "seven, I guess"}
	judge := NewRubricJudge(llm, zap.NewNop())

	if _, err := judge.Judge(context.Background(), "q", "an answer", nil); !stdErrors.Is(err, entities.ErrJudgmentUnavailable) {
		t.Fatalf("expected ErrJudgmentUnavailable, got %v", err)
	}
	if llm.calls != 1 {
		t.Fatalf("expected exactly 1 remote call, got %d", llm.calls)
	}
}
