package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestSuggestPrompt(t *testing.T) {
	models := &fakeModels{contentResp: imageResponse(&genai.Part{
		Text: "```Generated Prompt: a fox in soft morning light```",
	})}
	c := newClient(models, &fakeOperations{}, "key")

	got, err := c.SuggestPrompt(context.Background(), "Fox", "A fox at dawn")
	require.NoError(t, err)
	assert.Equal(t, "a fox in soft morning light", got)

	call := models.contents[0]
	assert.Equal(t, ModelText, call.model)
	assert.Equal(t, float32(0.8), *call.config.Temperature)
	assert.Equal(t, float32(40), *call.config.TopK)
	assert.Equal(t, float32(0.95), *call.config.TopP)
	assert.Contains(t, call.contents[0].Parts[0].Text, "A fox at dawn")
}

func TestSuggestPrompt_EmptyResponse(t *testing.T) {
	models := &fakeModels{contentResp: imageResponse(&genai.Part{Text: "  "})}
	c := newClient(models, &fakeOperations{}, "key")
	_, err := c.SuggestPrompt(context.Background(), "Fox", "A fox")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestSuggestPrompt_Validation(t *testing.T) {
	c := newClient(&fakeModels{}, &fakeOperations{}, "key")
	_, err := c.SuggestPrompt(context.Background(), "", "desc")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}
