package audio

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/wav"

	"github.com/johnquangdev/speech-evaluator/internal/domain/entities"
)

const (
	// secondsPerWord is the fixed speaking-rate heuristic inherited from the
	// original deployment. Word count is estimated from duration alone, so
	// estimated WPM algebraically reduces to 60/secondsPerWord = 150 for any
	// clip. Kept as-is: downstream consumers expect the constant.
	secondsPerWord = 0.4

	// Pitch search range in Hz. Covers typical adult speech.
	minPitchHz = 75.0
	maxPitchHz = 500.0

	frameMillis = 40
	hopMillis   = 10

	// Voicing gates: frames quieter than rmsGate or with a weaker normalized
	// autocorrelation peak than peakGate count as unvoiced.
	rmsGate  = 0.01
	peakGate = 0.30
)

// Analyzer extracts duration, average pitch and estimated speaking rate from
// a decoded audio signal.
type Analyzer struct{}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// AnalyzeFile decodes a WAV file and analyzes it. Returns
// entities.ErrAudioDecode when the file cannot be parsed as valid audio.
func (a *Analyzer) AnalyzeFile(path string) (*entities.AudioMetrics, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrAudioDecode, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrAudioDecode, err)
	}
	if buf == nil || len(buf.Data) == 0 || buf.Format == nil || buf.Format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: empty or malformed wav", entities.ErrAudioDecode)
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := float64(int64(1) << (bitDepth - 1))

	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}

	// Downmix to mono floats in [-1, 1].
	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for ch := 0; ch < channels; ch++ {
			sum += float64(buf.Data[i*channels+ch]) / scale
		}
		samples[i] = sum / float64(channels)
	}

	return a.Analyze(samples, buf.Format.SampleRate)
}

// Analyze computes metrics from raw mono samples. Average pitch is taken
// over voiced frames only and is 0 when no frame is voiced; that guards the
// division, it is not a silence detector.
func (a *Analyzer) Analyze(samples []float64, sampleRate int) (*entities.AudioMetrics, error) {
	if sampleRate <= 0 || len(samples) == 0 {
		return nil, fmt.Errorf("%w: no samples to analyze", entities.ErrAudioDecode)
	}

	duration := float64(len(samples)) / float64(sampleRate)

	frameLen := sampleRate * frameMillis / 1000
	hop := sampleRate * hopMillis / 1000
	if hop < 1 {
		hop = 1
	}

	var pitchSum float64
	var voiced int
	for start := 0; start+frameLen <= len(samples); start += hop {
		f0 := estimatePitch(samples[start:start+frameLen], sampleRate)
		if f0 > 0 {
			pitchSum += f0
			voiced++
		}
	}

	avgPitch := 0.0
	if voiced > 0 {
		avgPitch = pitchSum / float64(voiced)
	}

	wordsEstimate := duration / secondsPerWord
	wordsPerMin := 0.0
	if duration > 0 {
		wordsPerMin = (wordsEstimate / duration) * 60
	}

	return &entities.AudioMetrics{
		DurationSeconds:         round2(duration),
		AveragePitchHz:          round2(avgPitch),
		EstimatedWordsPerMinute: round2(wordsPerMin),
	}, nil
}

// estimatePitch returns the fundamental frequency of one frame via
// normalized autocorrelation, or 0 when the frame is unvoiced.
func estimatePitch(frame []float64, sampleRate int) float64 {
	n := len(frame)
	if n == 0 {
		return 0
	}

	var energy float64
	for _, s := range frame {
		energy += s * s
	}
	if math.Sqrt(energy/float64(n)) < rmsGate {
		return 0
	}

	minLag := int(float64(sampleRate) / maxPitchHz)
	maxLag := int(float64(sampleRate) / minPitchHz)
	if maxLag >= n {
		maxLag = n - 1
	}
	if minLag < 1 || minLag > maxLag {
		return 0
	}

	bestLag := 0
	bestPeak := 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		var cross, e0, e1 float64
		for i := 0; i < n-lag; i++ {
			cross += frame[i] * frame[i+lag]
			e0 += frame[i] * frame[i]
			e1 += frame[i+lag] * frame[i+lag]
		}
		if e0 == 0 || e1 == 0 {
			continue
		}
		peak := cross / math.Sqrt(e0*e1)
		if peak > bestPeak {
			bestPeak = peak
			bestLag = lag
		}
	}

	if bestLag == 0 || bestPeak < peakGate {
		return 0
	}
	return float64(sampleRate) / float64(bestLag)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
