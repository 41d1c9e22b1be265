package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/fpang/prompt-gallery/internal/attachment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGenerateVideo_SubmitsConfig(t *testing.T) {
	models := &fakeModels{videoOp: &genai.GenerateVideosOperation{Name: "operations/abc"}}
	c := newClient(models, &fakeOperations{}, "key", WithVideoModel("veo-test"))

	start := attachment.Format("image/png", []byte("start"))
	end := attachment.Format("image/jpeg", []byte("end"))
	op, err := c.GenerateVideo(context.Background(), VideoRequest{
		Prompt:      "a drone shot",
		AspectRatio: AspectPortrait,
		Resolution:  Resolution1080p,
		StartImage:  start,
		EndImage:    end,
	})
	require.NoError(t, err)
	assert.Equal(t, Operation{Name: "operations/abc"}, op)

	require.Len(t, models.videos, 1)
	call := models.videos[0]
	assert.Equal(t, "veo-test", call.model)
	assert.Equal(t, "a drone shot", call.prompt)
	assert.Equal(t, &genai.Image{ImageBytes: []byte("start"), MIMEType: "image/png"}, call.image)
	assert.Equal(t, int32(1), call.config.NumberOfVideos)
	assert.Equal(t, "9:16", call.config.AspectRatio)
	assert.Equal(t, "1080p", call.config.Resolution)
	assert.Equal(t, &genai.Image{ImageBytes: []byte("end"), MIMEType: "image/jpeg"}, call.config.LastFrame)
}

func TestGenerateVideo_Defaults(t *testing.T) {
	models := &fakeModels{videoOp: &genai.GenerateVideosOperation{Name: "operations/x"}}
	c := newClient(models, &fakeOperations{}, "key")

	_, err := c.GenerateVideo(context.Background(), VideoRequest{Prompt: "waves"})
	require.NoError(t, err)
	call := models.videos[0]
	assert.Equal(t, "16:9", call.config.AspectRatio)
	assert.Equal(t, "720p", call.config.Resolution)
	assert.Nil(t, call.image)
	assert.Nil(t, call.config.LastFrame)
}

func TestGenerateVideo_Validation(t *testing.T) {
	models := &fakeModels{}
	c := newClient(models, &fakeOperations{}, "key")

	var verr *ValidationError
	_, err := c.GenerateVideo(context.Background(), VideoRequest{})
	assert.ErrorAs(t, err, &verr)

	_, err = c.GenerateVideo(context.Background(), VideoRequest{Prompt: "x", AspectRatio: "4:3"})
	assert.ErrorAs(t, err, &verr)

	_, err = c.GenerateVideo(context.Background(), VideoRequest{Prompt: "x", Resolution: "4k"})
	assert.ErrorAs(t, err, &verr)

	_, err = c.GenerateVideo(context.Background(), VideoRequest{StartImage: "data:broken"})
	assert.ErrorIs(t, err, attachment.ErrMalformedAttachment)

	assert.Empty(t, models.videos)
}

func TestGenerateVideo_StartImageOnly(t *testing.T) {
	req := VideoRequest{StartImage: attachment.Format("image/png", []byte{1})}
	assert.NoError(t, req.Validate())
}

func TestGenerateVideo_NotConfigured(t *testing.T) {
	models := &fakeModels{}
	c := newClient(models, &fakeOperations{}, "")
	_, err := c.GenerateVideo(context.Background(), VideoRequest{Prompt: "x"})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Empty(t, models.videos)
}

func TestGenerateVideo_RemoteFailure(t *testing.T) {
	models := &fakeModels{videoErr: errors.New("model overloaded")}
	c := newClient(models, &fakeOperations{}, "key")
	_, err := c.GenerateVideo(context.Background(), VideoRequest{Prompt: "x"})
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "generate video", remote.Op)
}

func TestRefreshVideo(t *testing.T) {
	ops := &fakeOperations{op: &genai.GenerateVideosOperation{
		Name: "operations/abc",
		Done: true,
		Response: &genai.GenerateVideosResponse{
			GeneratedVideos: []*genai.GeneratedVideo{{Video: &genai.Video{URI: "https://example.test/v.mp4"}}},
		},
	}}
	c := newClient(&fakeModels{}, ops, "key")

	op, err := c.RefreshVideo(context.Background(), Operation{Name: "operations/abc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"operations/abc"}, ops.names)
	assert.Equal(t, Operation{Name: "operations/abc", Done: true, VideoURI: "https://example.test/v.mp4"}, op)
}

func TestRefreshVideo_OperationError(t *testing.T) {
	ops := &fakeOperations{op: &genai.GenerateVideosOperation{
		Name:  "operations/abc",
		Done:  true,
		Error: map[string]any{"code": 3, "message": "prompt blocked by safety filters"},
	}}
	c := newClient(&fakeModels{}, ops, "key")

	op, err := c.RefreshVideo(context.Background(), Operation{Name: "operations/abc"})
	require.NoError(t, err)
	assert.True(t, op.Done)
	assert.Equal(t, "prompt blocked by safety filters", op.Error)
	assert.Empty(t, op.VideoURI)
}

func TestRefreshVideo_RemoteFailure(t *testing.T) {
	c := newClient(&fakeModels{}, &fakeOperations{err: errors.New("unavailable")}, "key")
	_, err := c.RefreshVideo(context.Background(), Operation{Name: "operations/abc"})
	var remote *RemoteError
	assert.ErrorAs(t, err, &remote)
}

func TestOperationFrom_Nil(t *testing.T) {
	assert.Equal(t, Operation{}, operationFrom(nil))
}
