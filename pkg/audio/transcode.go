package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/johnquangdev/speech-evaluator/internal/domain/entities"
)

// FFmpeg converts uploaded browser containers (webm/ogg) into mono 16 kHz
// WAV, the canonical decodable format for the rest of the pipeline.
type FFmpeg struct {
	binPath string
}

// NewFFmpeg creates a transcoder. An empty binPath falls back to "ffmpeg"
// on PATH.
func NewFFmpeg(binPath string) *FFmpeg {
	if binPath == "" {
		binPath = "ffmpeg"
	}
	return &FFmpeg{binPath: binPath}
}

// Transcode converts src into a mono 16 kHz PCM WAV at dst. Failure means
// the upload could not be read as audio.
func (f *FFmpeg) Transcode(ctx context.Context, src, dst string) error {
	cmd := exec.CommandContext(ctx, f.binPath, "-y", "-i", src, "-ac", "1", "-ar", "16000", dst)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: ffmpeg: %v: %s", entities.ErrAudioDecode, err, lastLine(stderr.String()))
	}
	return nil
}

// lastLine keeps the error detail short; ffmpeg writes its diagnosis last.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}
