package ai

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/johnquangdev/speech-evaluator/internal/domain/entities"
	"github.com/johnquangdev/speech-evaluator/pkg/config"
)

func TestGenerateVerdict_Success(t *testing.T) {
	const verdict = `{"score":7,"comment":"Solid answer."}`

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Fatalf("expected api key header, got %q", got)
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if req.GenerationConfig.ResponseMimeType != "application/json" {
			t.Fatalf("expected JSON response mime type, got %q", req.GenerationConfig.ResponseMimeType)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":` + jsonString(verdict) + `}]}}]}`))
	}))
	defer ts.Close()

	client := NewGeminiClient(&config.GeminiConfig{APIKey: "test-key", BaseURL: ts.URL})
	raw, err := client.GenerateVerdict(context.Background(), "judge this")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw != verdict {
		t.Fatalf("unexpected output %q", raw)
	}
}

// jsonString quotes s for embedding in a handwritten response body.
func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestGenerateVerdict_RemoteError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	client := NewGeminiClient(&config.GeminiConfig{APIKey: "test-key", BaseURL: ts.URL})
	if _, err := client.GenerateVerdict(context.Background(), "judge this"); !stdErrors.Is(err, entities.ErrJudgmentUnavailable) {
		t.Fatalf("expected ErrJudgmentUnavailable, got %v", err)
	}
}

func TestGenerateVerdict_NoCandidates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer ts.Close()

	client := NewGeminiClient(&config.GeminiConfig{APIKey: "test-key", BaseURL: ts.URL})
	if _, err := client.GenerateVerdict(context.Background(), "judge this"); !stdErrors.Is(err, entities.ErrJudgmentUnavailable) {
		t.Fatalf("expected ErrJudgmentUnavailable, got %v", err)
	}
}
