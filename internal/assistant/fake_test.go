package assistant_test

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/MrJamesThe3rd/cedar/internal/assistant"
)

type contentCall struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

type fakeModels struct {
	mu sync.Mutex

	content func(call contentCall) (*genai.GenerateContentResponse, error)
	images  func(model, prompt string, cfg *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
	videos  func(model, prompt string, cfg *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error)

	contentCalls []contentCall
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	call := contentCall{model: model, contents: contents, config: config}

	f.mu.Lock()
	f.contentCalls = append(f.contentCalls, call)
	f.mu.Unlock()

	return f.content(call)
}

func (f *fakeModels) GenerateImages(_ context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
	return f.images(model, prompt, config)
}

func (f *fakeModels) GenerateVideos(_ context.Context, model, prompt string, _ *genai.Image, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
	return f.videos(model, prompt, config)
}

func (f *fakeModels) lastCall() contentCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.contentCalls[len(f.contentCalls)-1]
}

type fakeOperations struct {
	mu    sync.Mutex
	calls int
	next  func(call int) (*genai.GenerateVideosOperation, error)
}

func (f *fakeOperations) GetVideosOperation(_ context.Context, _ *genai.GenerateVideosOperation, _ *genai.GetOperationConfig) (*genai.GenerateVideosOperation, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.mu.Unlock()

	return f.next(n)
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: text}}}},
		},
	}
}

func testConfig() assistant.Config {
	return assistant.Config{
		APIKey:       "test-key",
		FastModel:    "fast-model",
		SmartModel:   "smart-model",
		SearchModel:  "search-model",
		ReceiptModel: "receipt-model",
		SpeechModel:  "speech-model",
		Voice:        "Kore",
		ImageModel:   "image-model",
		VideoModel:   "video-model",
		Poller: assistant.Poller{
			Interval:    time.Millisecond,
			MaxAttempts: 5,
			Timeout:     time.Second,
		},
	}
}

func newClient(m *fakeModels, ops *fakeOperations, opts ...assistant.Option) *assistant.Client {
	if ops == nil {
		ops = &fakeOperations{}
	}

	return assistant.New(m, ops, testConfig(), zerolog.Nop(), opts...)
}
