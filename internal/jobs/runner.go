package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/fpang/prompt-gallery/internal/gemini"
	"github.com/rs/zerolog/log"
)

// VideoService is the remote surface a video job needs.
type VideoService interface {
	StatusFetcher
	GenerateVideo(ctx context.Context, req gemini.VideoRequest) (gemini.Operation, error)
	FetchArtifact(ctx context.Context, uri string) (gemini.Artifact, error)
}

// Result is a finished, downloaded video.
type Result struct {
	JobID     string
	Operation string
	URI       string
	Video     gemini.Artifact
	Elapsed   time.Duration
}

// Runner executes a whole video job: submit, poll to completion, download.
type Runner struct {
	service  VideoService
	poller   *Poller
	narrator *Narrator
}

// NewRunner creates a Runner. Poller options apply to the polling phase.
func NewRunner(service VideoService, narrator *Narrator, opts ...PollerOption) *Runner {
	if narrator == nil {
		narrator = NewNarrator()
	}
	return &Runner{
		service:  service,
		poller:   NewPoller(service, opts...),
		narrator: narrator,
	}
}

// Run submits req and blocks until the video is downloaded or the job fails.
// progress, when non-nil, receives rotating status messages while the job runs.
// A failed job returns its Failed state as the error.
func (r *Runner) Run(ctx context.Context, req gemini.VideoRequest, progress func(string)) (Result, error) {
	jobID := NewID()
	start := time.Now()

	if progress != nil {
		stop := r.narrator.Narrate(ctx, progress)
		defer stop()
	}

	op, err := r.service.GenerateVideo(ctx, req)
	if err != nil {
		return Result{}, err
	}
	log.Info().Str("job_id", jobID).Str("operation", op.Name).Msg("Video job submitted")

	state := r.poller.Await(ctx, op)
	done, ok := state.(Succeeded)
	if !ok {
		failed := state.(Failed)
		log.Warn().Str("job_id", jobID).Str("reason", failed.Reason).Msg("Video job failed")
		return Result{}, failed
	}

	video, err := r.service.FetchArtifact(ctx, done.URI)
	if err != nil {
		return Result{}, fmt.Errorf("failed to download video: %w", err)
	}

	res := Result{
		JobID:     jobID,
		Operation: done.Operation,
		URI:       done.URI,
		Video:     video,
		Elapsed:   time.Since(start),
	}
	log.Info().
		Str("job_id", jobID).
		Int("bytes", len(video.Data)).
		Dur("elapsed", res.Elapsed).
		Msg("Video job complete")
	return res, nil
}
