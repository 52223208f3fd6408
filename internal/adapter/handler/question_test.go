package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	dto "github.com/johnquangdev/speech-evaluator/internal/adapter/dto/eval"
	"github.com/johnquangdev/speech-evaluator/internal/domain/entities"
	"github.com/johnquangdev/speech-evaluator/internal/usecase/session"
)

// mockSynth signals every synthesis call on a channel.
type mockSynth struct {
	spoken chan string
	err    error
}

func newMockSynth() *mockSynth {
	return &mockSynth{spoken: make(chan string, 8)}
}

func (m *mockSynth) Speak(ctx context.Context, text, voice string) ([]byte, string, error) {
	m.spoken <- text
	if m.err != nil {
		return nil, "", m.err
	}
	return []byte("audio"), "audio/mpeg", nil
}

func newTestSession(t *testing.T) *session.Service {
	t.Helper()
	s, err := session.New([]entities.Question{
		{Text: "first question", Keywords: []string{"a"}},
		{Text: "second question", Keywords: []string{"b"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestGetQuestion(t *testing.T) {
	h := NewQuestionHandler(newTestSession(t), nil, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/question", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	if err := h.GetQuestion(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.QuestionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Text != "first question" {
		t.Fatalf("unexpected question %q", resp.Text)
	}
}

func TestGetQuestion_NoSession(t *testing.T) {
	h := NewQuestionHandler(nil, nil, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/question", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	if err := h.GetQuestion(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestNextQuestion_AdvancesAndSpeaks(t *testing.T) {
	synth := newMockSynth()
	h := NewQuestionHandler(newTestSession(t), synth, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/next_question", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	if err := h.NextQuestion(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.NextQuestionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Question.Text != "second question" {
		t.Fatalf("unexpected response %+v", resp)
	}

	select {
	case text := <-synth.spoken:
		if text != "second question" {
			t.Fatalf("expected new prompt spoken, got %q", text)
		}
	case <-time.After(time.Second):
		t.Fatal("expected background synthesis of the new prompt")
	}
}

func TestSpeakAsync_FailureDoesNotPanic(t *testing.T) {
	synth := newMockSynth()
	synth.err = entities.ErrSpeechSynthesisUnavailable
	h := NewQuestionHandler(newTestSession(t), synth, zap.NewNop())

	h.SpeakAsync("hello")

	select {
	case <-synth.spoken:
	case <-time.After(time.Second):
		t.Fatal("expected synthesis attempt")
	}
}
