package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fpang/prompt-gallery/internal/attachment"
	"github.com/fpang/prompt-gallery/internal/metrics"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// AspectRatio is the frame shape of a generated video.
type AspectRatio string

const (
	AspectLandscape AspectRatio = "16:9"
	AspectPortrait  AspectRatio = "9:16"
)

// Resolution is the output resolution of a generated video.
type Resolution string

const (
	Resolution720p  Resolution = "720p"
	Resolution1080p Resolution = "1080p"
)

// VideoRequest describes one video generation submission. StartImage and
// EndImage are optional data URLs.
type VideoRequest struct {
	Prompt      string      `json:"prompt"`
	AspectRatio AspectRatio `json:"aspectRatio"`
	Resolution  Resolution  `json:"resolution"`
	StartImage  string      `json:"startImage,omitempty"`
	EndImage    string      `json:"endImage,omitempty"`
}

// Validate fills in defaults (16:9, 720p) and rejects unsupported values.
func (r *VideoRequest) Validate() error {
	if r.AspectRatio == "" {
		r.AspectRatio = AspectLandscape
	}
	if r.Resolution == "" {
		r.Resolution = Resolution720p
	}
	switch {
	case r.AspectRatio != AspectLandscape && r.AspectRatio != AspectPortrait:
		return &ValidationError{Reason: fmt.Sprintf("unsupported aspect ratio %q", r.AspectRatio)}
	case r.Resolution != Resolution720p && r.Resolution != Resolution1080p:
		return &ValidationError{Reason: fmt.Sprintf("unsupported resolution %q", r.Resolution)}
	case strings.TrimSpace(r.Prompt) == "" && r.StartImage == "":
		return &ValidationError{Reason: "Please enter a prompt or provide a starting image."}
	}
	return nil
}

// Operation is a snapshot of a remote video generation job. Done flips to
// true once; VideoURI or Error is then set.
type Operation struct {
	Name     string `json:"name"`
	Done     bool   `json:"done"`
	VideoURI string `json:"videoUri,omitempty"`
	Error    string `json:"error,omitempty"`
}

func operationFrom(op *genai.GenerateVideosOperation) Operation {
	if op == nil {
		return Operation{}
	}
	out := Operation{Name: op.Name, Done: op.Done}
	if len(op.Error) > 0 {
		out.Error = operationError(op.Error)
	}
	if op.Response != nil && len(op.Response.GeneratedVideos) > 0 {
		if v := op.Response.GeneratedVideos[0]; v != nil && v.Video != nil {
			out.VideoURI = v.Video.URI
		}
	}
	return out
}

// operationError extracts the message from a google.rpc.Status payload.
func operationError(status map[string]any) string {
	if msg, ok := status["message"].(string); ok && msg != "" {
		return msg
	}
	return fmt.Sprint(status)
}

// GenerateVideo submits a video generation job and returns its first
// snapshot without waiting for completion.
func (c *Client) GenerateVideo(ctx context.Context, req VideoRequest) (Operation, error) {
	if !c.Available() {
		return Operation{}, ErrNotConfigured
	}
	if err := req.Validate(); err != nil {
		return Operation{}, err
	}

	config := &genai.GenerateVideosConfig{
		NumberOfVideos: 1,
		AspectRatio:    string(req.AspectRatio),
		Resolution:     string(req.Resolution),
	}

	var image *genai.Image
	if req.StartImage != "" {
		mimeType, data, err := attachment.Decode(req.StartImage)
		if err != nil {
			return Operation{}, fmt.Errorf("start image: %w", err)
		}
		image = &genai.Image{ImageBytes: data, MIMEType: mimeType}
	}
	if req.EndImage != "" {
		mimeType, data, err := attachment.Decode(req.EndImage)
		if err != nil {
			return Operation{}, fmt.Errorf("end image: %w", err)
		}
		config.LastFrame = &genai.Image{ImageBytes: data, MIMEType: mimeType}
	}

	log.Info().
		Str("model", c.videoModel).
		Str("aspect_ratio", string(req.AspectRatio)).
		Str("resolution", string(req.Resolution)).
		Bool("start_image", image != nil).
		Bool("end_image", config.LastFrame != nil).
		Msg("Submitting video generation to Gemini")

	start := time.Now()
	op, err := c.models.GenerateVideos(ctx, c.videoModel, req.Prompt, image, config)
	elapsed := time.Since(start)

	m := metrics.New("generateVideo").
		Dimension("Model", c.videoModel).
		Latency("GeminiApiLatencyMs", elapsed).
		Count("GeminiApiCalls")
	if err != nil {
		m.Count("GeminiApiErrors").Flush()
		log.Error().Err(err).Msg("Gemini video submission failed")
		return Operation{}, &RemoteError{Op: "generate video", Err: err}
	}
	m.Flush()

	out := operationFrom(op)
	log.Info().Str("operation", out.Name).Bool("done", out.Done).Msg("Video generation submitted")
	return out, nil
}

// RefreshVideo re-fetches the status of a submitted video job.
func (c *Client) RefreshVideo(ctx context.Context, op Operation) (Operation, error) {
	if !c.Available() {
		return Operation{}, ErrNotConfigured
	}
	next, err := c.operations.GetVideosOperation(ctx, &genai.GenerateVideosOperation{Name: op.Name}, nil)
	if err != nil {
		return Operation{}, &RemoteError{Op: "check video status", Err: err}
	}
	return operationFrom(next), nil
}
