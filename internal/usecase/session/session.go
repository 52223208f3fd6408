package session

import (
	"fmt"
	"sync"

	"github.com/johnquangdev/speech-evaluator/internal/domain/entities"
)

// defaultQuestions is the fixed ordered prompt set served when no custom set
// is configured.
var defaultQuestions = []entities.Question{
	{
		Text:     "Describe a situation when you had to explain something difficult to someone.",
		Keywords: []string{"explain", "situation", "difficult", "understand", "communication"},
	},
	{
		Text:     "Do you agree or disagree: Students should be required to take public speaking courses in college.",
		Keywords: []string{"public speaking", "students", "college", "required", "communication"},
	},
	{
		Text:     "Talk about a time when you worked as part of a group. What was your role?",
		Keywords: []string{"group", "teamwork", "role", "collaboration", "responsibility"},
	},
	{
		Text:     "If you could make one improvement to your school, what would it be and why?",
		Keywords: []string{"improvement", "school", "problem", "solution", "education"},
	},
	{
		Text:     "Describe a person you admire and explain why.",
		Keywords: []string{"admire", "person", "inspiration", "reason", "qualities"},
	},
}

// Service is the single owner of the question session state: a pointer into
// a fixed ordered question list that advances cyclically. One instance per
// server process, guarded by a mutex. A lost update under concurrent
// advances only misplaces the pointer; the index can never leave bounds.
type Service struct {
	mu        sync.Mutex
	questions []entities.Question
	index     int
}

// New creates a session over the given question list. The list must be
// non-empty and is not copied; callers must not mutate it afterwards.
func New(questions []entities.Question) (*Service, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("question list must not be empty")
	}
	return &Service{questions: questions}, nil
}

// Default creates a session over the built-in question set.
func Default() *Service {
	s, _ := New(defaultQuestions)
	return s
}

// Current returns the active question.
func (s *Service) Current() entities.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.questions[s.index]
}

// Advance moves to the next question, wrapping to the first after the last,
// and returns the new current question.
func (s *Service) Advance() entities.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = (s.index + 1) % len(s.questions)
	return s.questions[s.index]
}

// Len reports the number of questions in the session.
func (s *Service) Len() int {
	return len(s.questions)
}
