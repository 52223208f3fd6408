package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/johnquangdev/speech-evaluator/internal/domain/entities"
	"github.com/johnquangdev/speech-evaluator/pkg/config"
)

// DeepgramClient is a minimal client for the Deepgram prerecorded
// transcription and Aura speech-synthesis APIs
type DeepgramClient struct {
	apiKey   string
	baseURL  string
	model    string
	ttsVoice string
	client   *http.Client
}

// NewDeepgramClient creates a Deepgram client using the provided config.
// If cfg is nil, falls back to environment variables.
func NewDeepgramClient(cfg *config.DeepgramConfig) *DeepgramClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("DEEPGRAM_API_KEY")
	}

	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = os.Getenv("DEEPGRAM_API_URL")
		if base == "" {
			base = "https://api.deepgram.com"
		}
	}

	model := "nova-2"
	if cfg != nil && cfg.Model != "" {
		model = cfg.Model
	}
	voice := "aura-asteria-en"
	if cfg != nil && cfg.TTSVoice != "" {
		voice = cfg.TTSVoice
	}

	return &DeepgramClient{
		apiKey:   apiKey,
		baseURL:  base,
		model:    model,
		ttsVoice: voice,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// listenWord is one word entry from /v1/listen. Type is "filler" when the
// service's own classifier marks the token as a disfluency.
type listenWord struct {
	Word           string  `json:"word"`
	Start          float64 `json:"start"`
	End            float64 `json:"end"`
	Confidence     float64 `json:"confidence"`
	PunctuatedWord string  `json:"punctuated_word"`
	Type           string  `json:"type,omitempty"`
}

// listenResponse is the minimal response shape for /v1/listen
type listenResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string       `json:"transcript"`
				Confidence float64      `json:"confidence"`
				Words      []listenWord `json:"words"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

// Transcribe submits an audio file for transcription with filler-word
// detection and word-level timing. Transport failures are retried with
// bounded exponential backoff; the error taxonomy is unchanged by retries.
// Returns entities.ErrEmptyTranscript when the service succeeds but hears no
// speech, entities.ErrTranscriptionUnavailable on remote failure.
func (c *DeepgramClient) Transcribe(ctx context.Context, audioPath string) (*entities.TranscriptResult, error) {
	var result *entities.TranscriptResult

	operation := func() error {
		res, retryable, err := c.transcribeOnce(ctx, audioPath)
		if err != nil {
			if !retryable {
				return backoff.Permanent(err)
			}
			return err
		}
		result = res
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = 15 * time.Second

	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}

	if strings.TrimSpace(result.Text) == "" {
		return nil, entities.ErrEmptyTranscript
	}
	return result, nil
}

// transcribeOnce performs a single request. The bool reports whether a
// failure is worth retrying (transport errors and 5xx responses).
func (c *DeepgramClient) transcribeOnce(ctx context.Context, audioPath string) (*entities.TranscriptResult, bool, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, false, fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	q := url.Values{}
	q.Set("model", c.model)
	q.Set("language", "en-US")
	q.Set("smart_format", "true")
	q.Set("filler_words", "true")
	endpoint := c.baseURL + "/v1/listen?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, f)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", "audio/wav")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %v", entities.ErrTranscriptionUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("%w: deepgram returned status %d", entities.ErrTranscriptionUnavailable, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return nil, false, fmt.Errorf("%w: deepgram returned status %d", entities.ErrTranscriptionUnavailable, resp.StatusCode)
	}

	var lr listenResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, false, fmt.Errorf("%w: decode response: %v", entities.ErrTranscriptionUnavailable, err)
	}

	if len(lr.Results.Channels) == 0 || len(lr.Results.Channels[0].Alternatives) == 0 {
		return nil, false, fmt.Errorf("%w: no transcription result returned", entities.ErrTranscriptionUnavailable)
	}

	alt := lr.Results.Channels[0].Alternatives[0]
	result := &entities.TranscriptResult{
		Text:        alt.Transcript,
		FillerWords: make([]entities.FillerWord, 0),
		Words:       make([]entities.WordTiming, 0, len(alt.Words)),
	}
	for _, w := range alt.Words {
		result.Words = append(result.Words, entities.WordTiming{
			Word:       w.Word,
			Start:      w.Start,
			End:        w.End,
			Confidence: w.Confidence,
		})
		// Pass through the upstream filler classification untouched.
		if w.Type == "filler" {
			result.FillerWords = append(result.FillerWords, entities.FillerWord{
				Token: w.Word,
				Start: w.Start,
				End:   w.End,
			})
		}
	}
	return result, false, nil
}

// speakRequest is the payload for /v1/speak
type speakRequest struct {
	Text string `json:"text"`
}

// Speak synthesizes text to audio via the Aura API. Returns the audio bytes
// and their content type.
func (c *DeepgramClient) Speak(ctx context.Context, text, voice string) ([]byte, string, error) {
	if voice == "" {
		voice = c.ttsVoice
	}

	b, err := json.Marshal(speakRequest{Text: text})
	if err != nil {
		return nil, "", err
	}

	endpoint := c.baseURL + "/v1/speak?model=" + url.QueryEscape(voice)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", entities.ErrSpeechSynthesisUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, "", fmt.Errorf("%w: deepgram returned status %d", entities.ErrSpeechSynthesisUnavailable, resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("%w: read audio stream: %v", entities.ErrSpeechSynthesisUnavailable, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	return audio, contentType, nil
}
