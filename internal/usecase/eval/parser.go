package eval

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/johnquangdev/speech-evaluator/internal/domain/entities"
)

// VerdictParser handles parsing and validation of judge model responses
type VerdictParser struct{}

// NewVerdictParser creates a new VerdictParser instance
func NewVerdictParser() *VerdictParser {
	return &VerdictParser{}
}

// Parse decodes the model output into a Verdict. The judge boundary is
// strict: any schema mismatch is an error here, never an optimistic field
// access downstream.
func (p *VerdictParser) Parse(raw string) (*entities.Verdict, error) {
	// The model might wrap its JSON in markdown code blocks.
	raw = extractJSON(raw)

	var verdict entities.Verdict
	dec := json.NewDecoder(strings.NewReader(raw))
	if err := dec.Decode(&verdict); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateVerdict(&verdict); err != nil {
		return nil, err
	}
	return &verdict, nil
}

// validateVerdict checks that scores fit the rubric scale. Consistency
// between the overall score and the category scores is deliberately not
// checked: the verdict is an unvalidated external judgment.
func validateVerdict(v *entities.Verdict) error {
	if v.Comment == "" {
		return fmt.Errorf("missing comment in verdict")
	}
	if v.Score < 0 || v.Score > 10 {
		return fmt.Errorf("overall score %d out of range [0,10]", v.Score)
	}
	categories := map[string]int{
		"task_relevance":            v.CategoryScores.TaskRelevance,
		"grammar_lexis":             v.CategoryScores.GrammarLexis,
		"discourse_management":      v.CategoryScores.DiscourseManagement,
		"pronunciation_fluency":     v.CategoryScores.PronunciationFluency,
		"coherence_appropriateness": v.CategoryScores.CoherenceAppropriateness,
	}
	for name, score := range categories {
		if score < 0 || score > 10 {
			return fmt.Errorf("category %s score %d out of range [0,10]", name, score)
		}
	}
	return nil
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
