package audio

import (
	stdErrors "errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/johnquangdev/speech-evaluator/internal/domain/entities"
)

func TestAnalyze_SilentClip(t *testing.T) {
	// 10 seconds of silence at 16 kHz.
	samples := make([]float64, 16000*10)

	m, err := NewAnalyzer().Analyze(samples, 16000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.DurationSeconds != 10 {
		t.Fatalf("expected duration 10, got %v", m.DurationSeconds)
	}
	if m.AveragePitchHz != 0 {
		t.Fatalf("expected average pitch 0 for silence, got %v", m.AveragePitchHz)
	}
	// The duration/0.4 heuristic reduces to a constant for any clip.
	if m.EstimatedWordsPerMinute != 150 {
		t.Fatalf("expected estimated WPM 150, got %v", m.EstimatedWordsPerMinute)
	}
}

func TestAnalyze_WPMConstantAcrossSampleRates(t *testing.T) {
	for _, rate := range []int{8000, 16000, 44100} {
		samples := make([]float64, rate*3)
		m, err := NewAnalyzer().Analyze(samples, rate)
		if err != nil {
			t.Fatalf("rate %d: unexpected error: %v", rate, err)
		}
		if m.EstimatedWordsPerMinute != 150 {
			t.Fatalf("rate %d: expected WPM 150, got %v", rate, m.EstimatedWordsPerMinute)
		}
	}
}

func TestAnalyze_DetectsSinePitch(t *testing.T) {
	const rate = 16000
	const freq = 220.0
	samples := make([]float64, rate*2)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/rate)
	}

	m, err := NewAnalyzer().Analyze(samples, rate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(m.AveragePitchHz-freq) > 10 {
		t.Fatalf("expected pitch near %v Hz, got %v", freq, m.AveragePitchHz)
	}
}

func TestAnalyze_NoSamples(t *testing.T) {
	if _, err := NewAnalyzer().Analyze(nil, 16000); !stdErrors.Is(err, entities.ErrAudioDecode) {
		t.Fatalf("expected ErrAudioDecode, got %v", err)
	}
	if _, err := NewAnalyzer().Analyze(make([]float64, 100), 0); !stdErrors.Is(err, entities.ErrAudioDecode) {
		t.Fatalf("expected ErrAudioDecode for zero sample rate, got %v", err)
	}
}

func TestAnalyzeFile_RoundTripThroughWAV(t *testing.T) {
	const rate = 16000
	path := filepath.Join(t.TempDir(), "tone.wav")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create wav: %v", err)
	}
	enc := wav.NewEncoder(f, rate, 16, 1, 1)
	data := make([]int, rate*2)
	for i := range data {
		data[i] = int(0.5 * 32767 * math.Sin(2*math.Pi*220*float64(i)/rate))
	}
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode wav: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}
	f.Close()

	m, err := NewAnalyzer().AnalyzeFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.DurationSeconds != 2 {
		t.Fatalf("expected duration 2, got %v", m.DurationSeconds)
	}
	if math.Abs(m.AveragePitchHz-220) > 10 {
		t.Fatalf("expected pitch near 220 Hz, got %v", m.AveragePitchHz)
	}
}

func TestAnalyzeFile_NotAudio(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.wav")
	if err := os.WriteFile(path, []byte("definitely not a riff header"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := NewAnalyzer().AnalyzeFile(path); !stdErrors.Is(err, entities.ErrAudioDecode) {
		t.Fatalf("expected ErrAudioDecode, got %v", err)
	}
}

func TestAnalyzeFile_Missing(t *testing.T) {
	if _, err := NewAnalyzer().AnalyzeFile(filepath.Join(t.TempDir(), "absent.wav")); !stdErrors.Is(err, entities.ErrAudioDecode) {
		t.Fatalf("expected ErrAudioDecode, got %v", err)
	}
}
