// Package gemini wraps the remote Gemini capabilities the gallery uses:
// single round-trip image generation, asynchronous Veo video generation,
// artifact download, and prompt-text suggestion.
//
// The client holds no per-request state; each generation request owns the
// Operation values it receives.
package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// modelsAPI is the subset of genai.Models the client calls.
type modelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateVideos(ctx context.Context, model string, prompt string, image *genai.Image, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error)
}

// operationsAPI is the subset of genai.Operations the client calls.
type operationsAPI interface {
	GetVideosOperation(ctx context.Context, operation *genai.GenerateVideosOperation, config *genai.GetOperationConfig) (*genai.GenerateVideosOperation, error)
}

// Client calls the Gemini API for images, videos, and prompt text.
type Client struct {
	models     modelsAPI
	operations operationsAPI
	apiKey     string
	httpClient *http.Client

	imageModel string
	videoModel string
	textModel  string
}

// Option configures a Client.
type Option func(*Client)

// WithImageModel overrides the image generation model.
func WithImageModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.imageModel = model
		}
	}
}

// WithVideoModel overrides the video generation model.
func WithVideoModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.videoModel = model
		}
	}
}

// WithTextModel overrides the prompt suggestion model.
func WithTextModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.textModel = model
		}
	}
}

// WithHTTPClient overrides the HTTP client used for artifact downloads.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a Gemini API client. An empty apiKey returns ErrNotConfigured.
func NewClient(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	log.Debug().Msg("Gemini client initialized")
	return newClient(gc.Models, gc.Operations, apiKey, opts...), nil
}

func newClient(models modelsAPI, operations operationsAPI, apiKey string, opts ...Option) *Client {
	c := &Client{
		models:     models,
		operations: operations,
		apiKey:     apiKey,
		httpClient: &http.Client{
			Timeout: 5 * time.Minute, // video artifacts can be tens of MB
		},
		imageModel: ModelImage,
		videoModel: ModelVideo,
		textModel:  ModelText,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Available reports whether the client can make requests.
func (c *Client) Available() bool {
	return c != nil && c.apiKey != ""
}

// Ping makes a minimal text request to confirm the API key works.
func (c *Client) Ping(ctx context.Context) error {
	if !c.Available() {
		return ErrNotConfigured
	}
	resp, err := c.models.GenerateContent(ctx, c.textModel, genai.Text("hi"), nil)
	if err != nil {
		return err
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return ErrEmptyResponse
	}
	return nil
}
