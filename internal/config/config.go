package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/cedar/internal/assistant"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Cedar"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Server struct {
		Timeout         time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
		AllowedOrigins  []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Pretty bool   `envconfig:"LOG_PRETTY" default:"true"`
		File   string `envconfig:"LOG_FILE" default:"cedar-tui.log"`
	}

	Gemini struct {
		APIKey       string `envconfig:"GEMINI_API_KEY"`
		FastModel    string `envconfig:"GEMINI_MODEL_FAST" default:"gemini-flash-lite-latest"`
		SmartModel   string `envconfig:"GEMINI_MODEL_SMART" default:"gemini-3-pro-preview"`
		SearchModel  string `envconfig:"GEMINI_MODEL_SEARCH" default:"gemini-2.5-flash"`
		ReceiptModel string `envconfig:"GEMINI_MODEL_RECEIPT" default:"gemini-3-pro-preview"`
		SpeechModel  string `envconfig:"GEMINI_MODEL_SPEECH" default:"gemini-2.5-flash-preview-tts"`
		Voice        string `envconfig:"GEMINI_VOICE" default:"Kore"`
		ImageModel   string `envconfig:"GEMINI_MODEL_IMAGE" default:"imagen-4.0-generate-001"`
		VideoModel   string `envconfig:"GEMINI_MODEL_VIDEO" default:"veo-3.1-fast-generate-preview"`
	}

	Video struct {
		PollInterval time.Duration `envconfig:"VIDEO_POLL_INTERVAL" default:"10s"`
		MaxAttempts  int           `envconfig:"VIDEO_MAX_ATTEMPTS" default:"60"`
		Timeout      time.Duration `envconfig:"VIDEO_TIMEOUT" default:"10m"`
	}
}

// Assistant maps the Gemini and video settings onto the assistant client config.
func (c *Config) Assistant() assistant.Config {
	return assistant.Config{
		APIKey:       c.Gemini.APIKey,
		FastModel:    c.Gemini.FastModel,
		SmartModel:   c.Gemini.SmartModel,
		SearchModel:  c.Gemini.SearchModel,
		ReceiptModel: c.Gemini.ReceiptModel,
		SpeechModel:  c.Gemini.SpeechModel,
		Voice:        c.Gemini.Voice,
		ImageModel:   c.Gemini.ImageModel,
		VideoModel:   c.Gemini.VideoModel,
		Poller: assistant.Poller{
			Interval:    c.Video.PollInterval,
			MaxAttempts: c.Video.MaxAttempts,
			Timeout:     c.Video.Timeout,
		},
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Video.MaxAttempts <= 0 && cfg.Video.Timeout <= 0 {
		return nil, fmt.Errorf("video polling needs VIDEO_MAX_ATTEMPTS or VIDEO_TIMEOUT")
	}

	return &cfg, nil
}
