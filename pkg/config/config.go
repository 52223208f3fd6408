package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Deepgram DeepgramConfig
	Gemini   GeminiConfig
	Eval     EvalConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// DeepgramConfig holds credentials and endpoints for the transcription and
// speech-synthesis service
type DeepgramConfig struct {
	APIKey   string
	BaseURL  string
	Model    string
	TTSVoice string
}

// GeminiConfig holds credentials for the rubric judging service
type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// EvalConfig holds evaluation pipeline settings
type EvalConfig struct {
	// StageTimeout bounds each remote call in the pipeline. A timeout maps
	// to the same error kind as "unavailable" for that stage.
	StageTimeout time.Duration
	TempDir      string
	FFmpegPath   string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  []string{getEnv("ALLOWED_ORIGINS", "http://localhost:3000")},
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Deepgram: DeepgramConfig{
			APIKey:   getEnv("DEEPGRAM_API_KEY", ""),
			BaseURL:  getEnv("DEEPGRAM_API_URL", "https://api.deepgram.com"),
			Model:    getEnv("DEEPGRAM_MODEL", "nova-2"),
			TTSVoice: getEnv("DEEPGRAM_TTS_VOICE", "aura-asteria-en"),
		},
		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			BaseURL: getEnv("GEMINI_API_URL", "https://generativelanguage.googleapis.com"),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Eval: EvalConfig{
			StageTimeout: getEnvAsDuration("EVAL_STAGE_TIMEOUT", "30s"),
			TempDir:      getEnv("EVAL_TEMP_DIR", os.TempDir()),
			FFmpegPath:   getEnv("FFMPEG_PATH", "ffmpeg"),
		},
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration. A missing remote credential is fatal
// at startup rather than a per-request failure.
func (c *Config) Validate() error {
	if c.Deepgram.APIKey == "" {
		return fmt.Errorf("DEEPGRAM_API_KEY is required")
	}
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
