package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/fpang/prompt-gallery/internal/gemini"
	"github.com/fpang/prompt-gallery/internal/metrics"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultInterval is the wait between status fetches.
	DefaultInterval = 10 * time.Second

	// DefaultTimeout bounds the whole polling phase.
	DefaultTimeout = 15 * time.Minute
)

var (
	// ErrPollTimeout is the cause recorded when polling exceeds its time budget.
	ErrPollTimeout = errors.New("video generation timed out")

	// ErrTooManyAttempts is the cause recorded when the attempt cap is reached.
	ErrTooManyAttempts = errors.New("video generation did not finish within the allowed status checks")

	// ErrNoDownloadLink is the cause when a job finishes without a video.
	ErrNoDownloadLink = errors.New("no download link found")
)

// StatusFetcher re-fetches the snapshot of a remote video job.
type StatusFetcher interface {
	RefreshVideo(ctx context.Context, op gemini.Operation) (gemini.Operation, error)
}

// Poller drives a submitted operation to a terminal state. Status fetches are
// strictly sequential: the next wait starts only after the previous fetch returned.
type Poller struct {
	fetcher     StatusFetcher
	interval    time.Duration
	timeout     time.Duration
	maxAttempts int
	observe     func(State)

	after func(time.Duration) <-chan time.Time
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithInterval sets the wait between status fetches.
func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithTimeout bounds the polling phase. Zero disables the bound.
func WithTimeout(d time.Duration) PollerOption {
	return func(p *Poller) { p.timeout = d }
}

// WithMaxAttempts caps the number of status fetches. Zero means no cap.
func WithMaxAttempts(n int) PollerOption {
	return func(p *Poller) { p.maxAttempts = n }
}

// WithObserver registers a callback invoked on every state transition.
func WithObserver(fn func(State)) PollerOption {
	return func(p *Poller) { p.observe = fn }
}

// withAfter replaces the timer source in tests.
func withAfter(after func(time.Duration) <-chan time.Time) PollerOption {
	return func(p *Poller) { p.after = after }
}

// NewPoller creates a Poller that fetches status through f.
func NewPoller(f StatusFetcher, opts ...PollerOption) *Poller {
	p := &Poller{
		fetcher:  f,
		interval: DefaultInterval,
		timeout:  DefaultTimeout,
		after:    time.After,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Await polls op until it finishes and returns the terminal state, either
// Succeeded or Failed. Cancelling ctx stops polling at the next wait or fetch.
func (p *Poller) Await(ctx context.Context, op gemini.Operation) State {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, p.timeout, ErrPollTimeout)
		defer cancel()
	}

	start := time.Now()
	attempt := 0
	p.emit(Submitted{Operation: op.Name})

	final := func(s State) State {
		p.emit(s)
		outcome := "succeeded"
		if _, failed := s.(Failed); failed {
			outcome = "failed"
		}
		metrics.New("pollVideo").
			Dimension("Outcome", outcome).
			Latency("VideoPollDurationMs", time.Since(start)).
			Metric("VideoPollAttempts", float64(attempt), metrics.UnitCount).
			Flush()
		return s
	}

	for !op.Done {
		if p.maxAttempts > 0 && attempt >= p.maxAttempts {
			return final(Failed{Operation: op.Name, Reason: ErrTooManyAttempts.Error(), Err: ErrTooManyAttempts})
		}

		select {
		case <-ctx.Done():
			return final(p.cancelled(op, ctx))
		case <-p.after(p.interval):
		}

		next, err := p.fetcher.RefreshVideo(ctx, op)
		attempt++
		if err != nil {
			if ctx.Err() != nil {
				return final(p.cancelled(op, ctx))
			}
			log.Error().Err(err).Str("operation", op.Name).Int("attempt", attempt).Msg("Video status check failed")
			return final(Failed{Operation: op.Name, Reason: err.Error(), Err: err})
		}
		if next.Name == "" {
			next.Name = op.Name
		}
		op = next

		log.Debug().
			Str("operation", op.Name).
			Int("attempt", attempt).
			Bool("done", op.Done).
			Msg("Video status checked")
		if !op.Done {
			p.emit(Polling{Operation: op.Name, Attempt: attempt})
		}
	}

	switch {
	case op.Error != "":
		return final(Failed{Operation: op.Name, Reason: op.Error})
	case op.VideoURI == "":
		return final(Failed{Operation: op.Name, Reason: ErrNoDownloadLink.Error(), Err: ErrNoDownloadLink})
	default:
		log.Info().Str("operation", op.Name).Int("attempts", attempt).Msg("Video generation finished")
		return final(Succeeded{Operation: op.Name, URI: op.VideoURI})
	}
}

func (p *Poller) cancelled(op gemini.Operation, ctx context.Context) Failed {
	cause := context.Cause(ctx)
	log.Warn().Err(cause).Str("operation", op.Name).Msg("Video polling stopped")
	return Failed{Operation: op.Name, Reason: cause.Error(), Err: cause}
}

func (p *Poller) emit(s State) {
	if p.observe != nil {
		p.observe(s)
	}
}
