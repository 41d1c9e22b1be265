package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fpang/prompt-gallery/internal/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVideoService struct {
	scriptedFetcher
	submitErr error
	fetchErr  error
	requests  []gemini.VideoRequest
	fetched   []string
}

func (f *fakeVideoService) GenerateVideo(_ context.Context, req gemini.VideoRequest) (gemini.Operation, error) {
	f.requests = append(f.requests, req)
	if f.submitErr != nil {
		return gemini.Operation{}, f.submitErr
	}
	return gemini.Operation{Name: "operations/v1"}, nil
}

func (f *fakeVideoService) FetchArtifact(_ context.Context, uri string) (gemini.Artifact, error) {
	f.fetched = append(f.fetched, uri)
	if f.fetchErr != nil {
		return gemini.Artifact{}, f.fetchErr
	}
	return gemini.Artifact{Data: []byte("mp4"), MIMEType: "video/mp4"}, nil
}

func TestRunner_Run(t *testing.T) {
	svc := &fakeVideoService{scriptedFetcher: scriptedFetcher{snapshots: []gemini.Operation{
		{Name: "operations/v1"},
		{Name: "operations/v1", Done: true, VideoURI: "https://example.test/v.mp4"},
	}}}
	r := NewRunner(svc, &Narrator{Messages: []string{"working"}, Interval: time.Hour},
		withAfter((&instantTimer{}).after))

	var progress []string
	res, err := r.Run(context.Background(), gemini.VideoRequest{Prompt: "cat"}, func(m string) { progress = append(progress, m) })
	require.NoError(t, err)
	assert.Equal(t, "operations/v1", res.Operation)
	assert.Equal(t, []byte("mp4"), res.Video.Data)
	assert.Equal(t, []string{"https://example.test/v.mp4"}, svc.fetched)
	assert.Equal(t, 2, svc.calls)
	assert.Contains(t, progress, "working")
}

func TestRunner_FailedJob(t *testing.T) {
	svc := &fakeVideoService{scriptedFetcher: scriptedFetcher{snapshots: []gemini.Operation{
		{Name: "operations/v1", Done: true},
	}}}
	r := NewRunner(svc, nil, withAfter((&instantTimer{}).after))

	_, err := r.Run(context.Background(), gemini.VideoRequest{Prompt: "cat"}, nil)
	assert.ErrorIs(t, err, ErrNoDownloadLink)
	var failed Failed
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, "no download link found", failed.Reason)
	assert.Empty(t, svc.fetched)
}

func TestRunner_SubmitError(t *testing.T) {
	svc := &fakeVideoService{submitErr: gemini.ErrNotConfigured}
	r := NewRunner(svc, nil)
	_, err := r.Run(context.Background(), gemini.VideoRequest{Prompt: "cat"}, nil)
	assert.ErrorIs(t, err, gemini.ErrNotConfigured)
	assert.Zero(t, svc.calls)
}

func TestRunner_DownloadError(t *testing.T) {
	svc := &fakeVideoService{
		scriptedFetcher: scriptedFetcher{snapshots: []gemini.Operation{{Name: "operations/v1", Done: true, VideoURI: "u"}}},
		fetchErr:        errors.New("403"),
	}
	r := NewRunner(svc, nil, withAfter((&instantTimer{}).after))
	_, err := r.Run(context.Background(), gemini.VideoRequest{Prompt: "cat"}, nil)
	assert.ErrorContains(t, err, "failed to download video")
}
