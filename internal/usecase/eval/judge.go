package eval

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/speech-evaluator/internal/domain/entities"
)

// rubricPrompt is the fixed 5-category speaking-assessment instruction set.
const rubricPrompt = `You are an English language speaking examiner following international speaking rubrics (e.g., IELTS, TOEFL, CEFR).

Question: %s
Student's Answer: %s

Evaluate the response using the following 5 categories:

    Task Relevance - Does the response appropriately and fully address the prompt? [IELTS, TOEFL]
    Grammar and Lexis - Is the grammar accurate and vocabulary appropriate? Evaluate range and correctness. [CEFR, IELTS]
    Discourse Management - Is the response well-structured, connected, and cohesive? Are ideas extended and logically organized? [CEFR, TOEFL]
    Pronunciation and Fluency - Is the speech fluent, with minimal unnatural pauses or hesitation? Deduct for filler words like 'uh', 'um', 'like'. [IELTS, CEFR]
    Coherence and Appropriateness - Does the tone fit an academic or formal setting? Is the response socially and culturally appropriate? [CEFR]

Scoring is on a 0-10 scale, with 10 being perfect.
%s
Return a JSON object:
{
  "score": (0-10 overall),
  "category_scores": {
    "task_relevance": x,
    "grammar_lexis": x,
    "discourse_management": x,
    "pronunciation_fluency": x,
    "coherence_appropriateness": x
  },
  "comment": "Give constructive feedback. If present, mention filler words, grammar errors, or disorganization."
}`

// LLMClient is the remote judging collaborator.
type LLMClient interface {
	GenerateVerdict(ctx context.Context, prompt string) (string, error)
}

// RubricJudge scores a transcript against the fixed speaking rubric via a
// remote language-model judge.
type RubricJudge struct {
	llm    LLMClient
	parser *VerdictParser
	logger *zap.Logger
}

// NewRubricJudge constructs a RubricJudge.
func NewRubricJudge(llm LLMClient, logger *zap.Logger) *RubricJudge {
	return &RubricJudge{
		llm:    llm,
		parser: NewVerdictParser(),
		logger: logger,
	}
}

// Judge evaluates an answer. An empty or whitespace-only transcript
// short-circuits locally to the fixed zero-score verdict without spending a
// remote call; that is a business rule, not error suppression. Remote or
// parse failures return entities.ErrJudgmentUnavailable.
func (j *RubricJudge) Judge(ctx context.Context, question, transcript string, hints *entities.AudioMetrics) (*entities.Verdict, error) {
	if strings.TrimSpace(transcript) == "" {
		if j.logger != nil {
			j.logger.Info("empty transcript, returning zero verdict without remote call")
		}
		return entities.ZeroVerdict(), nil
	}

	prompt := fmt.Sprintf(rubricPrompt, question, transcript, formatHints(hints))

	raw, err := j.llm.GenerateVerdict(ctx, prompt)
	if err != nil {
		return nil, err
	}

	verdict, err := j.parser.Parse(raw)
	if err != nil {
		if j.logger != nil {
			j.logger.Error("judge returned unparseable verdict",
				zap.Error(err),
				zap.String("raw_response", truncate(raw, 500)),
			)
		}
		return nil, fmt.Errorf("%w: %v", entities.ErrJudgmentUnavailable, err)
	}
	return verdict, nil
}

// formatHints renders acoustic metrics as an optional reference block for
// the judge prompt.
func formatHints(m *entities.AudioMetrics) string {
	if m == nil {
		return ""
	}
	return fmt.Sprintf(`
System audio metrics (for reference):
- Duration: %.2f seconds
- Average Pitch: %.2f Hz
- Estimated Words Per Minute: %.2f
`, m.DurationSeconds, m.AveragePitchHz, m.EstimatedWordsPerMinute)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
