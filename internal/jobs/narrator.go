package jobs

import (
	"context"
	"time"
)

// ProgressInterval is how often the narrator advances to the next message.
const ProgressInterval = 5 * time.Second

// ProgressMessages are shown in rotation while a video renders.
var ProgressMessages = []string{
	"Kicking off the generation process...",
	"Warming up the AI engines...",
	"Composing the digital scenes...",
	"Rendering frames, this may take a few minutes...",
	"The AI is hard at work on your video...",
	"Applying the finishing touches...",
	"Almost there, preparing your masterpiece...",
}

// Narrator emits rotating progress messages until its context ends.
type Narrator struct {
	Messages []string
	Interval time.Duration
}

// NewNarrator returns a narrator with the default messages and interval.
func NewNarrator() *Narrator {
	return &Narrator{Messages: ProgressMessages, Interval: ProgressInterval}
}

// Run calls emit with the first message immediately, then with the next one
// (wrapping around) on every tick. It returns when ctx is done.
func (n *Narrator) Run(ctx context.Context, emit func(string)) {
	if len(n.Messages) == 0 || emit == nil {
		<-ctx.Done()
		return
	}
	interval := n.Interval
	if interval <= 0 {
		interval = ProgressInterval
	}

	i := 0
	emit(n.Messages[i])

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			i = (i + 1) % len(n.Messages)
			emit(n.Messages[i])
		}
	}
}

// Narrate starts Run in a goroutine and returns a function that stops it and
// waits for the goroutine to exit.
func (n *Narrator) Narrate(ctx context.Context, emit func(string)) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		n.Run(ctx, emit)
	}()
	return func() {
		cancel()
		<-done
	}
}
