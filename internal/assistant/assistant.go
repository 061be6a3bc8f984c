package assistant

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// Models is the part of the Gemini models API the assistant calls.
type Models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateImages(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
	GenerateVideos(ctx context.Context, model, prompt string, image *genai.Image, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error)
}

// Operations polls long-running Gemini operations.
type Operations interface {
	GetVideosOperation(ctx context.Context, op *genai.GenerateVideosOperation, config *genai.GetOperationConfig) (*genai.GenerateVideosOperation, error)
}

type Config struct {
	APIKey       string
	FastModel    string
	SmartModel   string
	SearchModel  string
	ReceiptModel string
	SpeechModel  string
	Voice        string
	ImageModel   string
	VideoModel   string
	Poller       Poller
}

// Client talks to Gemini on behalf of the budget assistant.
type Client struct {
	models Models
	ops    Operations
	http   *http.Client
	cfg    Config
	log    zerolog.Logger
}

type Option func(*Client)

// WithHTTPClient sets the client used to download generated videos.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func New(models Models, ops Operations, cfg Config, log zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		models: models,
		ops:    ops,
		http:   &http.Client{Timeout: 2 * time.Minute},
		cfg:    cfg,
		log:    log.With().Str("component", "assistant").Logger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// NewGemini builds a Client backed by the Gemini Developer API. Without an
// API key the client is still returned and every call fails with
// ErrInvalidAPIKey, so the budget features keep working.
func NewGemini(ctx context.Context, cfg Config, log zerolog.Logger, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set, assistant disabled")

		return New(noKey{}, noKey{}, cfg, log, opts...), nil
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return New(gc.Models, gc.Operations, cfg, log, opts...), nil
}

type noKey struct{}

func (noKey) GenerateContent(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return nil, ErrInvalidAPIKey
}

func (noKey) GenerateImages(context.Context, string, string, *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
	return nil, ErrInvalidAPIKey
}

func (noKey) GenerateVideos(context.Context, string, string, *genai.Image, *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
	return nil, ErrInvalidAPIKey
}

func (noKey) GetVideosOperation(context.Context, *genai.GenerateVideosOperation, *genai.GetOperationConfig) (*genai.GenerateVideosOperation, error) {
	return nil, ErrInvalidAPIKey
}
