package entities

// Question is a speaking prompt together with the keywords an answer is
// expected to touch. Immutable once defined.
type Question struct {
	Text     string   `json:"text"`
	Keywords []string `json:"keywords"`
}

// WordTiming is one word-level timing record from the transcription service.
type WordTiming struct {
	Word       string  `json:"word"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence,omitempty"`
}

// FillerWord is a disfluency token ("um", "uh", "like") flagged by the
// transcription service's own classifier. We never classify fillers
// ourselves; this is a pass-through of the upstream labelling.
type FillerWord struct {
	Token string  `json:"token"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// TranscriptResult holds the transcription of one answer. Text is the empty
// string (never absent) when the service detected no speech.
type TranscriptResult struct {
	Text        string       `json:"text"`
	FillerWords []FillerWord `json:"filler_words"`
	Words       []WordTiming `json:"words"`
}

// AudioMetrics are prosodic measurements derived purely from the raw audio
// signal, independent of the transcript.
type AudioMetrics struct {
	DurationSeconds         float64 `json:"duration"`
	AveragePitchHz          float64 `json:"avg_pitch_hz"`
	EstimatedWordsPerMinute float64 `json:"estimated_wpm"`
}

// CategoryScores are the five rubric category scores, each in [0,10].
type CategoryScores struct {
	TaskRelevance            int `json:"task_relevance"`
	GrammarLexis             int `json:"grammar_lexis"`
	DiscourseManagement      int `json:"discourse_management"`
	PronunciationFluency     int `json:"pronunciation_fluency"`
	CoherenceAppropriateness int `json:"coherence_appropriateness"`
}

// Verdict is the structured output of the rubric judgment step. It is an
// unverified external judgment: no component reconciles Score against
// CategoryScores.
type Verdict struct {
	Score          int            `json:"score"`
	CategoryScores CategoryScores `json:"category_scores"`
	Comment        string         `json:"comment"`
}

// ZeroVerdict is the fixed verdict returned locally for an empty or
// whitespace-only transcript, without spending a remote judge call.
func ZeroVerdict() *Verdict {
	return &Verdict{
		Score:          0,
		CategoryScores: CategoryScores{},
		Comment:        "The transcript was empty or unintelligible. Please ensure the response is clearly audible.",
	}
}

// EvaluationResult aggregates everything one evaluation produced. Each
// request owns its own instance; nothing here outlives the request.
type EvaluationResult struct {
	Transcript   *TranscriptResult `json:"transcript"`
	AudioMetrics *AudioMetrics     `json:"audio_metrics"`
	Verdict      *Verdict          `json:"verdict"`
}
