package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fpang/prompt-gallery/internal/attachment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGenerateImage_TextOnly(t *testing.T) {
	models := &fakeModels{contentResp: imageResponse(&genai.Part{
		InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("png-bytes")},
	})}
	c := newClient(models, &fakeOperations{}, "key")

	got, err := c.GenerateImage(context.Background(), "a red fox", nil)
	require.NoError(t, err)
	assert.Equal(t, attachment.Format("image/png", []byte("png-bytes")), got)

	require.Len(t, models.contents, 1)
	call := models.contents[0]
	assert.Equal(t, ModelImage, call.model)
	require.Len(t, call.contents, 1)
	require.Len(t, call.contents[0].Parts, 1)
	assert.Equal(t, "a red fox", call.contents[0].Parts[0].Text)
	assert.Equal(t, []string{"IMAGE"}, call.config.ResponseModalities)
}

func TestGenerateImage_AttachmentsPrecedeText(t *testing.T) {
	models := &fakeModels{contentResp: imageResponse(&genai.Part{
		InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte{1}},
	})}
	c := newClient(models, &fakeOperations{}, "key")

	logo := attachment.Format("image/png", []byte("logo"))
	product := attachment.Format("image/jpeg", []byte("product"))
	_, err := c.GenerateImage(context.Background(), "compose", []string{logo, product})
	require.NoError(t, err)

	parts := models.contents[0].contents[0].Parts
	require.Len(t, parts, 3)
	assert.Equal(t, &genai.Blob{MIMEType: "image/png", Data: []byte("logo")}, parts[0].InlineData)
	assert.Equal(t, &genai.Blob{MIMEType: "image/jpeg", Data: []byte("product")}, parts[1].InlineData)
	assert.Equal(t, "compose", parts[2].Text)
}

func TestGenerateImage_FirstImageWins(t *testing.T) {
	models := &fakeModels{contentResp: imageResponse(
		&genai.Part{Text: "here you go"},
		&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("first")}},
		&genai.Part{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: []byte("second")}},
	)}
	c := newClient(models, &fakeOperations{}, "key")

	got, err := c.GenerateImage(context.Background(), "two images", nil)
	require.NoError(t, err)
	assert.Equal(t, attachment.Format("image/png", []byte("first")), got)
}

func TestGenerateImage_NoImagePart(t *testing.T) {
	models := &fakeModels{contentResp: imageResponse(&genai.Part{Text: "sorry"})}
	c := newClient(models, &fakeOperations{}, "key")

	_, err := c.GenerateImage(context.Background(), "anything", nil)
	assert.ErrorIs(t, err, ErrNoImageReturned)
}

func TestGenerateImage_RemoteFailure(t *testing.T) {
	models := &fakeModels{contentErr: errors.New("quota exhausted")}
	c := newClient(models, &fakeOperations{}, "key")

	_, err := c.GenerateImage(context.Background(), "anything", nil)
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "generate image", remote.Op)
	assert.Contains(t, err.Error(), "quota exhausted")
}

func TestGenerateImage_Validation(t *testing.T) {
	models := &fakeModels{}
	c := newClient(models, &fakeOperations{}, "key")

	var verr *ValidationError
	_, err := c.GenerateImage(context.Background(), "  ", nil)
	assert.ErrorAs(t, err, &verr)

	_, err = c.GenerateImage(context.Background(), strings.Repeat("x", MaxPromptLength+1), nil)
	assert.ErrorAs(t, err, &verr)

	_, err = c.GenerateImage(context.Background(), "ok", []string{"not-a-data-url"})
	assert.ErrorIs(t, err, attachment.ErrMalformedAttachment)

	assert.Empty(t, models.contents, "nothing may be sent for an invalid request")
}

func TestGenerateImage_NotConfigured(t *testing.T) {
	models := &fakeModels{}
	c := newClient(models, &fakeOperations{}, "")

	_, err := c.GenerateImage(context.Background(), "a fox", nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Empty(t, models.contents)

	var nilClient *Client
	assert.False(t, nilClient.Available())
}

func TestNewClient_EmptyKey(t *testing.T) {
	_, err := NewClient(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
