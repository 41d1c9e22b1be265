package gemini

import (
	"context"
	"strings"
	"time"

	"github.com/fpang/prompt-gallery/internal/assets"
	"github.com/fpang/prompt-gallery/internal/metrics"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// SuggestPrompt asks the text model to write a text-to-image prompt for a
// catalog entry from its title and description.
func (c *Client) SuggestPrompt(ctx context.Context, title, description string) (string, error) {
	if !c.Available() {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return "", &ValidationError{Reason: "Please provide a title and description to generate a prompt."}
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.8),
		TopK:        genai.Ptr[float32](40),
		TopP:        genai.Ptr[float32](0.95),
	}

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.textModel, genai.Text(assets.RenderSuggestPrompt(title, description)), config)
	elapsed := time.Since(start)

	m := metrics.New("suggestPrompt").
		Dimension("Model", c.textModel).
		Latency("GeminiApiLatencyMs", elapsed).
		Count("GeminiApiCalls")
	if err != nil {
		m.Count("GeminiApiErrors").Flush()
		log.Error().Err(err).Msg("Gemini prompt suggestion failed")
		return "", &RemoteError{Op: "generate prompt", Err: err}
	}
	m.Flush()

	if resp == nil {
		return "", &RemoteError{Op: "generate prompt", Err: ErrEmptyResponse}
	}
	text := cleanSuggestion(resp.Text())
	if text == "" {
		return "", &RemoteError{Op: "generate prompt", Err: ErrEmptyResponse}
	}

	log.Debug().
		Int("response_length", len(text)).
		Dur("duration", elapsed).
		Msg("Gemini prompt suggestion received")
	return text, nil
}

// cleanSuggestion strips markdown backticks and an echoed "Generated Prompt:" label.
func cleanSuggestion(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "`", "")
	text = strings.Replace(text, "Generated Prompt:", "", 1)
	return strings.TrimSpace(text)
}
