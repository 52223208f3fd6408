package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/johnquangdev/speech-evaluator/internal/usecase/session"
	pkgai "github.com/johnquangdev/speech-evaluator/pkg/ai"
	"github.com/johnquangdev/speech-evaluator/pkg/config"
)

// Pre-synthesizes the built-in question prompts so a fresh deployment can
// serve spoken questions without paying TTS latency on first load.
// Run with: go run scripts/synthesize_prompts.go
func main() {
	log.Println("🚀 Starting prompt synthesis...")

	// Load configuration from .env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	dg := pkgai.NewDeepgramClient(&cfg.Deepgram)
	sess := session.Default()

	outDir := "prompts"
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	for i := 0; i < sess.Len(); i++ {
		q := sess.Current()
		log.Printf("🗣️  [%d/%d] %s", i+1, sess.Len(), q.Text)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		audio, _, err := dg.Speak(ctx, q.Text, "")
		cancel()
		if err != nil {
			log.Fatalf("Failed to synthesize question %d: %v", i+1, err)
		}

		path := filepath.Join(outDir, fmt.Sprintf("question-%d.mp3", i+1))
		if err := os.WriteFile(path, audio, 0o644); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
		log.Printf("   ✅ %s (%d bytes)", path, len(audio))

		sess.Advance()
	}

	log.Println("🎉 All prompts synthesized")
}
