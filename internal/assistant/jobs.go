package assistant

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type JobStatus string

const (
	JobStatusRunning JobStatus = "running"
	JobStatusDone    JobStatus = "done"
	JobStatusFailed  JobStatus = "failed"
)

var (
	ErrJobNotFound = errors.New("video job not found")
	ErrJobNotReady = errors.New("video job has not finished")
)

// VideoGenerator produces a finished video for a prompt.
type VideoGenerator interface {
	GenerateVideo(ctx context.Context, prompt string, aspect AspectRatio) (*Video, error)
}

// VideoJob is a snapshot of a background generation.
type VideoJob struct {
	ID          uuid.UUID
	Prompt      string
	Aspect      AspectRatio
	Status      JobStatus
	Error       string
	TimedOut    bool
	CreatedAt   time.Time
	CompletedAt *time.Time
}

type videoEntry struct {
	job   VideoJob
	video *Video
}

// VideoJobs runs video generations in the background and keeps their results
// in memory until the process exits.
type VideoJobs struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]*videoEntry

	gen VideoGenerator
	ctx context.Context
	wg  sync.WaitGroup
	log zerolog.Logger
}

// NewVideoJobs ties every job to ctx; cancelling it stops running generations.
func NewVideoJobs(ctx context.Context, gen VideoGenerator, log zerolog.Logger) *VideoJobs {
	return &VideoJobs{
		jobs: make(map[uuid.UUID]*videoEntry),
		gen:  gen,
		ctx:  ctx,
		log:  log.With().Str("component", "video_jobs").Logger(),
	}
}

// Start validates the request and launches the generation.
func (j *VideoJobs) Start(prompt string, aspect AspectRatio) (VideoJob, error) {
	if strings.TrimSpace(prompt) == "" {
		return VideoJob{}, ErrEmptyPrompt
	}

	if !slices.Contains(VideoAspectRatios, aspect) {
		return VideoJob{}, fmt.Errorf("%w: video aspect ratio %q", ErrInvalidOption, aspect)
	}

	e := &videoEntry{job: VideoJob{
		ID:        uuid.New(),
		Prompt:    prompt,
		Aspect:    aspect,
		Status:    JobStatusRunning,
		CreatedAt: time.Now(),
	}}

	j.mu.Lock()
	j.jobs[e.job.ID] = e
	j.mu.Unlock()

	j.wg.Add(1)

	go j.run(e.job.ID, prompt, aspect)

	return e.job, nil
}

func (j *VideoJobs) run(id uuid.UUID, prompt string, aspect AspectRatio) {
	defer j.wg.Done()

	video, err := j.gen.GenerateVideo(j.ctx, prompt, aspect)

	j.mu.Lock()
	defer j.mu.Unlock()

	e := j.jobs[id]
	now := time.Now()
	e.job.CompletedAt = &now

	if err != nil {
		e.job.Status = JobStatusFailed
		e.job.Error = err.Error()
		e.job.TimedOut = errors.Is(err, ErrTimeout)

		j.log.Error().Err(err).Str("job_id", id.String()).Msg("video generation failed")

		return
	}

	e.job.Status = JobStatusDone
	e.video = video

	j.log.Info().Str("job_id", id.String()).Int("bytes", len(video.Data)).Msg("video generation finished")
}

func (j *VideoJobs) Get(id uuid.UUID) (VideoJob, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	e, ok := j.jobs[id]
	if !ok {
		return VideoJob{}, ErrJobNotFound
	}

	return e.job, nil
}

// Content returns the finished video for a done job.
func (j *VideoJobs) Content(id uuid.UUID) (*Video, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	e, ok := j.jobs[id]
	if !ok {
		return nil, ErrJobNotFound
	}

	if e.job.Status != JobStatusDone {
		return nil, fmt.Errorf("%w: status %s", ErrJobNotReady, e.job.Status)
	}

	return e.video, nil
}

// Wait blocks until every started job has finished.
func (j *VideoJobs) Wait() {
	j.wg.Wait()
}
