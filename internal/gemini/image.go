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

// MaxPromptLength caps the text of an image generation request.
const MaxPromptLength = 1000

// GenerateImage sends the prompt and its reference images to the image model
// and returns the first generated image as a data URL. Attachments are
// data URLs; they are sent in order ahead of the text part.
func (c *Client) GenerateImage(ctx context.Context, prompt string, attachments []string) (string, error) {
	if !c.Available() {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(prompt) == "" {
		return "", &ValidationError{Reason: "Please enter a prompt."}
	}
	if len([]rune(prompt)) > MaxPromptLength {
		return "", &ValidationError{Reason: fmt.Sprintf("Prompt exceeds %d characters.", MaxPromptLength)}
	}

	parts := make([]*genai.Part, 0, len(attachments)+1)
	for i, inline := range attachments {
		mimeType, data, err := attachment.Decode(inline)
		if err != nil {
			return "", fmt.Errorf("attachment %d: %w", i+1, err)
		}
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: mimeType, Data: data},
		})
	}
	parts = append(parts, &genai.Part{Text: prompt})

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityImage)},
	}

	log.Info().
		Str("model", c.imageModel).
		Int("attachments", len(attachments)).
		Int("prompt_length", len(prompt)).
		Msg("Sending image generation request to Gemini")

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.imageModel, []*genai.Content{{Role: "user", Parts: parts}}, config)
	elapsed := time.Since(start)

	m := metrics.New("generateImage").
		Dimension("Model", c.imageModel).
		Latency("GeminiApiLatencyMs", elapsed).
		Count("GeminiApiCalls").
		Property("attachments", len(attachments))
	if err != nil {
		m.Count("GeminiApiErrors").Flush()
		log.Error().Err(err).Dur("duration", elapsed).Msg("Gemini image generation failed")
		return "", &RemoteError{Op: "generate image", Err: err}
	}

	mimeType, data, ok := firstImage(resp)
	if !ok {
		m.Count("GeminiNoImage").Flush()
		log.Warn().Dur("duration", elapsed).Msg("Gemini returned no image part")
		return "", &RemoteError{Op: "generate image", Err: ErrNoImageReturned}
	}
	m.Metric("GeneratedImageBytes", float64(len(data)), metrics.UnitBytes).Flush()

	log.Info().
		Int("output_bytes", len(data)).
		Str("output_mime", mimeType).
		Dur("duration", elapsed).
		Msg("Gemini image generation complete")

	return attachment.Format(mimeType, data), nil
}

// firstImage scans the response parts in order for the first inline image.
func firstImage(resp *genai.GenerateContentResponse) (string, []byte, bool) {
	if resp == nil {
		return "", nil, false
	}
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.MIMEType, part.InlineData.Data, true
			}
		}
	}
	return "", nil, false
}
