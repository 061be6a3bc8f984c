package assistant

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"google.golang.org/genai"
)

const (
	videoResolution = "720p"
	videoMIMEType   = "video/mp4"

	DefaultPollInterval = 10 * time.Second
)

// Poller bounds a repeated status check. A zero MaxAttempts or Timeout
// disables that bound; at least one should be set.
type Poller struct {
	Interval    time.Duration
	MaxAttempts int
	Timeout     time.Duration
}

// Wait calls check every Interval until it reports done or fails. It returns
// ErrTimeout when a bound is exhausted and ctx.Err() when ctx is cancelled.
func (p Poller) Wait(ctx context.Context, check func(ctx context.Context) (bool, error)) error {
	parent := ctx

	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)

		defer cancel()
	}

	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		select {
		case <-ctx.Done():
			return p.stopped(parent, attempt-1)
		case <-ticker.C:
		}

		done, err := check(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return p.stopped(parent, attempt)
			}

			return err
		}

		if done {
			return nil
		}

		if p.MaxAttempts > 0 && attempt >= p.MaxAttempts {
			return fmt.Errorf("%w after %d attempts", ErrTimeout, attempt)
		}
	}
}

func (p Poller) stopped(parent context.Context, attempts int) error {
	if err := parent.Err(); err != nil {
		return err
	}

	return fmt.Errorf("%w after %s (%d attempts)", ErrTimeout, p.Timeout, attempts)
}

// Video is a downloaded clip.
type Video struct {
	Data     []byte
	MIMEType string
}

// GenerateVideo starts a generation, waits for it within the poller bounds
// and downloads the result.
func (c *Client) GenerateVideo(ctx context.Context, prompt string, aspect AspectRatio) (*Video, error) {
	op, err := c.StartVideo(ctx, prompt, aspect)
	if err != nil {
		return nil, err
	}

	op, err = c.WaitVideo(ctx, op)
	if err != nil {
		return nil, err
	}

	return c.downloadVideo(ctx, op)
}

// StartVideo submits a generation request and returns the pending operation.
func (c *Client) StartVideo(ctx context.Context, prompt string, aspect AspectRatio) (*genai.GenerateVideosOperation, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	if !slices.Contains(VideoAspectRatios, aspect) {
		return nil, fmt.Errorf("%w: video aspect ratio %q", ErrInvalidOption, aspect)
	}

	c.log.Debug().Str("model", c.cfg.VideoModel).Str("aspect", string(aspect)).Msg("video request")

	op, err := c.models.GenerateVideos(ctx, c.cfg.VideoModel, prompt, nil, &genai.GenerateVideosConfig{
		NumberOfVideos: 1,
		Resolution:     videoResolution,
		AspectRatio:    string(aspect),
	})
	if err != nil {
		return nil, videoStartError(err)
	}

	return op, nil
}

// WaitVideo polls op until it is done, failed, or out of bounds.
func (c *Client) WaitVideo(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	if op.Done {
		return op, operationError(op)
	}

	current := op

	err := c.cfg.Poller.Wait(ctx, func(ctx context.Context) (bool, error) {
		next, err := c.ops.GetVideosOperation(ctx, current, nil)
		if err != nil {
			return false, upstream("check video status", err)
		}

		current = next
		c.log.Debug().Str("operation", next.Name).Bool("done", next.Done).Msg("video status")

		if !next.Done {
			return false, nil
		}

		return true, operationError(next)
	})
	if err != nil {
		return nil, err
	}

	return current, nil
}

func operationError(op *genai.GenerateVideosOperation) error {
	if len(op.Error) > 0 {
		return fmt.Errorf("%w: %v", ErrVideoFailed, op.Error["message"])
	}

	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 || op.Response.GeneratedVideos[0].Video == nil {
		return fmt.Errorf("%w: no video in response", ErrVideoFailed)
	}

	return nil
}

func (c *Client) downloadVideo(ctx context.Context, op *genai.GenerateVideosOperation) (*Video, error) {
	v := op.Response.GeneratedVideos[0].Video

	mime := v.MIMEType
	if mime == "" {
		mime = videoMIMEType
	}

	if len(v.VideoBytes) > 0 {
		return &Video{Data: v.VideoBytes, MIMEType: mime}, nil
	}

	if v.URI == "" {
		return nil, fmt.Errorf("%w: video has neither bytes nor uri", ErrVideoFailed)
	}

	u, err := url.Parse(v.URI)
	if err != nil {
		return nil, fmt.Errorf("parsing video uri: %w", err)
	}

	q := u.Query()
	q.Set("key", c.cfg.APIKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading video: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code %d downloading video", ErrVideoFailed, resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/octet-stream") {
		mime = ct
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading video: %w", err)
	}

	return &Video{Data: data, MIMEType: mime}, nil
}
