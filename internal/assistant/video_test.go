package assistant_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/MrJamesThe3rd/cedar/internal/assistant"
)

func TestPoller_Wait(t *testing.T) {
	t.Run("DoneOnThirdAttempt", func(t *testing.T) {
		var calls int

		p := assistant.Poller{Interval: time.Millisecond, MaxAttempts: 5}
		err := p.Wait(context.Background(), func(context.Context) (bool, error) {
			calls++
			return calls == 3, nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("MaxAttempts", func(t *testing.T) {
		var calls int

		p := assistant.Poller{Interval: time.Millisecond, MaxAttempts: 4}
		err := p.Wait(context.Background(), func(context.Context) (bool, error) {
			calls++
			return false, nil
		})

		assert.ErrorIs(t, err, assistant.ErrTimeout)
		assert.Equal(t, 4, calls)
	})

	t.Run("ElapsedTime", func(t *testing.T) {
		p := assistant.Poller{Interval: time.Millisecond, Timeout: 20 * time.Millisecond}
		err := p.Wait(context.Background(), func(context.Context) (bool, error) {
			return false, nil
		})

		assert.ErrorIs(t, err, assistant.ErrTimeout)
	})

	t.Run("CallerCancels", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		p := assistant.Poller{Interval: time.Millisecond, MaxAttempts: 1000, Timeout: time.Minute}
		err := p.Wait(ctx, func(context.Context) (bool, error) {
			cancel()
			return false, nil
		})

		assert.ErrorIs(t, err, context.Canceled)
		assert.NotErrorIs(t, err, assistant.ErrTimeout)
	})

	t.Run("CheckErrorStopsPolling", func(t *testing.T) {
		var calls int

		boom := errors.New("boom")
		p := assistant.Poller{Interval: time.Millisecond, MaxAttempts: 10}
		err := p.Wait(context.Background(), func(context.Context) (bool, error) {
			calls++
			return false, boom
		})

		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})
}

func pendingOp() *genai.GenerateVideosOperation {
	return &genai.GenerateVideosOperation{Name: "operations/veo-1"}
}

func TestClient_GenerateVideo(t *testing.T) {
	t.Run("InlineBytes", func(t *testing.T) {
		m := &fakeModels{videos: func(model, prompt string, cfg *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
			assert.Equal(t, "video-model", model)
			assert.Equal(t, int32(1), cfg.NumberOfVideos)
			assert.Equal(t, "720p", cfg.Resolution)
			assert.Equal(t, "9:16", cfg.AspectRatio)

			return pendingOp(), nil
		}}

		ops := &fakeOperations{next: func(call int) (*genai.GenerateVideosOperation, error) {
			if call < 3 {
				return pendingOp(), nil
			}

			return &genai.GenerateVideosOperation{
				Name: "operations/veo-1",
				Done: true,
				Response: &genai.GenerateVideosResponse{GeneratedVideos: []*genai.GeneratedVideo{
					{Video: &genai.Video{VideoBytes: []byte("mp4")}},
				}},
			}, nil
		}}

		got, err := newClient(m, ops).GenerateVideo(context.Background(), "a cedar forest", "9:16")
		require.NoError(t, err)
		assert.Equal(t, []byte("mp4"), got.Data)
		assert.Equal(t, "video/mp4", got.MIMEType)
		assert.Equal(t, 3, ops.calls)
	})

	t.Run("DownloadsFromURI", func(t *testing.T) {
		var gotKey atomic.Value

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotKey.Store(r.URL.Query().Get("key"))
			assert.Equal(t, "download", r.URL.Query().Get("alt"))

			w.Header().Set("Content-Type", "video/mp4")
			_, _ = w.Write([]byte("remote-mp4"))
		}))
		defer srv.Close()

		m := &fakeModels{videos: func(string, string, *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
			return pendingOp(), nil
		}}

		ops := &fakeOperations{next: func(int) (*genai.GenerateVideosOperation, error) {
			return &genai.GenerateVideosOperation{
				Done: true,
				Response: &genai.GenerateVideosResponse{GeneratedVideos: []*genai.GeneratedVideo{
					{Video: &genai.Video{URI: srv.URL + "/files/abc:download?alt=download"}},
				}},
			}, nil
		}}

		got, err := newClient(m, ops, assistant.WithHTTPClient(srv.Client())).
			GenerateVideo(context.Background(), "a cedar forest", "16:9")
		require.NoError(t, err)
		assert.Equal(t, []byte("remote-mp4"), got.Data)
		assert.Equal(t, "test-key", gotKey.Load())
	})

	t.Run("OperationError", func(t *testing.T) {
		m := &fakeModels{videos: func(string, string, *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
			return pendingOp(), nil
		}}

		ops := &fakeOperations{next: func(int) (*genai.GenerateVideosOperation, error) {
			return &genai.GenerateVideosOperation{
				Done:  true,
				Error: map[string]any{"message": "safety filter"},
			}, nil
		}}

		_, err := newClient(m, ops).GenerateVideo(context.Background(), "cedar", "16:9")
		assert.ErrorIs(t, err, assistant.ErrVideoFailed)
		assert.Contains(t, err.Error(), "safety filter")
	})

	t.Run("NeverDone", func(t *testing.T) {
		m := &fakeModels{videos: func(string, string, *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
			return pendingOp(), nil
		}}

		ops := &fakeOperations{next: func(int) (*genai.GenerateVideosOperation, error) {
			return pendingOp(), nil
		}}

		_, err := newClient(m, ops).GenerateVideo(context.Background(), "cedar", "16:9")
		assert.ErrorIs(t, err, assistant.ErrTimeout)
		assert.Equal(t, 5, ops.calls)
	})

	t.Run("StartKeyNotFound", func(t *testing.T) {
		m := &fakeModels{videos: func(string, string, *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
			return nil, errors.New("Error 404: Requested entity was not found.")
		}}

		_, err := newClient(m, &fakeOperations{}).GenerateVideo(context.Background(), "cedar", "16:9")
		assert.ErrorIs(t, err, assistant.ErrInvalidAPIKey)
	})

	t.Run("StatusNotFound", func(t *testing.T) {
		m := &fakeModels{videos: func(string, string, *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
			return pendingOp(), nil
		}}

		ops := &fakeOperations{next: func(int) (*genai.GenerateVideosOperation, error) {
			return nil, errors.New("operation was not found")
		}}

		_, err := newClient(m, ops).GenerateVideo(context.Background(), "cedar", "16:9")
		assert.ErrorIs(t, err, assistant.ErrUpstream)
		assert.NotErrorIs(t, err, assistant.ErrInvalidAPIKey)
	})

	t.Run("BadAspect", func(t *testing.T) {
		_, err := newClient(&fakeModels{}, nil).GenerateVideo(context.Background(), "cedar", "1:1")
		assert.ErrorIs(t, err, assistant.ErrInvalidOption)
	})
}

type fakeGenerator struct {
	video *assistant.Video
	err   error
}

func (f fakeGenerator) GenerateVideo(context.Context, string, assistant.AspectRatio) (*assistant.Video, error) {
	return f.video, f.err
}

func TestVideoJobs(t *testing.T) {
	t.Run("Done", func(t *testing.T) {
		jobs := assistant.NewVideoJobs(context.Background(), fakeGenerator{
			video: &assistant.Video{Data: []byte("mp4"), MIMEType: "video/mp4"},
		}, zerolog.Nop())

		job, err := jobs.Start("cedar", "16:9")
		require.NoError(t, err)
		assert.Equal(t, assistant.JobStatusRunning, job.Status)

		jobs.Wait()

		got, err := jobs.Get(job.ID)
		require.NoError(t, err)
		assert.Equal(t, assistant.JobStatusDone, got.Status)
		assert.NotNil(t, got.CompletedAt)

		v, err := jobs.Content(job.ID)
		require.NoError(t, err)
		assert.Equal(t, []byte("mp4"), v.Data)
	})

	t.Run("TimedOut", func(t *testing.T) {
		jobs := assistant.NewVideoJobs(context.Background(), fakeGenerator{err: assistant.ErrTimeout}, zerolog.Nop())

		job, err := jobs.Start("cedar", "9:16")
		require.NoError(t, err)

		jobs.Wait()

		got, err := jobs.Get(job.ID)
		require.NoError(t, err)
		assert.Equal(t, assistant.JobStatusFailed, got.Status)
		assert.True(t, got.TimedOut)

		_, err = jobs.Content(job.ID)
		assert.ErrorIs(t, err, assistant.ErrJobNotReady)
	})

	t.Run("Validation", func(t *testing.T) {
		jobs := assistant.NewVideoJobs(context.Background(), fakeGenerator{}, zerolog.Nop())

		_, err := jobs.Start("", "16:9")
		assert.ErrorIs(t, err, assistant.ErrEmptyPrompt)

		_, err = jobs.Start("cedar", "4:3")
		assert.ErrorIs(t, err, assistant.ErrInvalidOption)
	})

	t.Run("Unknown", func(t *testing.T) {
		jobs := assistant.NewVideoJobs(context.Background(), fakeGenerator{}, zerolog.Nop())

		_, err := jobs.Get(uuid.New())
		assert.ErrorIs(t, err, assistant.ErrJobNotFound)
	})
}
