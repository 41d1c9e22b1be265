package gemini

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fpang/prompt-gallery/internal/metrics"
	"github.com/rs/zerolog/log"
)

// Artifact is a downloaded generation result.
type Artifact struct {
	Data     []byte
	MIMEType string
}

// FetchArtifact downloads a finished artifact, authenticating with the API key.
func (c *Client) FetchArtifact(ctx context.Context, uri string) (Artifact, error) {
	if !c.Available() {
		return Artifact{}, ErrNotConfigured
	}
	u, err := url.Parse(uri)
	if err != nil {
		return Artifact{}, fmt.Errorf("invalid artifact uri: %w", err)
	}
	q := u.Query()
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Artifact{}, &RemoteError{Op: "fetch artifact", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Artifact{}, &RemoteError{Op: "fetch artifact", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error().
			Int("status", resp.StatusCode).
			Str("body", truncateString(string(body), 500)).
			Msg("Artifact download returned error")
		return Artifact{}, &FetchError{Status: resp.StatusCode, Body: truncateString(string(body), 500)}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}

	metrics.New("fetchArtifact").
		Latency("ArtifactFetchMs", time.Since(start)).
		Metric("ArtifactBytes", float64(len(body)), metrics.UnitBytes).
		Flush()

	log.Info().
		Int("bytes", len(body)).
		Str("content_type", contentType).
		Dur("duration", time.Since(start)).
		Msg("Artifact downloaded")
	return Artifact{Data: body, MIMEType: contentType}, nil
}
