package eval

import "github.com/johnquangdev/speech-evaluator/internal/domain/entities"

// QuestionResponse is the wire shape of the active question.
type QuestionResponse struct {
	Text string `json:"text"`
}

// NextQuestionResponse is returned by POST /next_question.
type NextQuestionResponse struct {
	Success  bool             `json:"success"`
	Question QuestionResponse `json:"question"`
}

// Evaluation carries the rubric judgment portion of a successful result.
type Evaluation struct {
	Score          int                     `json:"score"`
	CategoryScores entities.CategoryScores `json:"category_scores"`
}

// EvaluateResponse is returned by POST /evaluate on success.
type EvaluateResponse struct {
	Success      bool                   `json:"success"`
	Transcript   string                 `json:"transcript"`
	FillerWords  []entities.FillerWord  `json:"filler_words,omitempty"`
	AudioMetrics *entities.AudioMetrics `json:"audio_metrics"`
	Evaluation   Evaluation             `json:"evaluation"`
	Comment      string                 `json:"comment"`
}

// ErrorResponse is the failure envelope for every endpoint.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// FromResult maps an EvaluationResult to its wire shape.
func FromResult(r *entities.EvaluationResult) *EvaluateResponse {
	return &EvaluateResponse{
		Success:      true,
		Transcript:   r.Transcript.Text,
		FillerWords:  r.Transcript.FillerWords,
		AudioMetrics: r.AudioMetrics,
		Evaluation: Evaluation{
			Score:          r.Verdict.Score,
			CategoryScores: r.Verdict.CategoryScores,
		},
		Comment: r.Verdict.Comment,
	}
}
