package gemini

import (
	"context"
	"sync"

	"google.golang.org/genai"
)

type contentCall struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

type videoCall struct {
	model  string
	prompt string
	image  *genai.Image
	config *genai.GenerateVideosConfig
}

type fakeModels struct {
	mu sync.Mutex

	contentResp *genai.GenerateContentResponse
	contentErr  error
	contents    []contentCall

	videoOp  *genai.GenerateVideosOperation
	videoErr error
	videos   []videoCall
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contents = append(f.contents, contentCall{model: model, contents: contents, config: config})
	return f.contentResp, f.contentErr
}

func (f *fakeModels) GenerateVideos(_ context.Context, model string, prompt string, image *genai.Image, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.videos = append(f.videos, videoCall{model: model, prompt: prompt, image: image, config: config})
	return f.videoOp, f.videoErr
}

type fakeOperations struct {
	op    *genai.GenerateVideosOperation
	err   error
	names []string
}

func (f *fakeOperations) GetVideosOperation(_ context.Context, op *genai.GenerateVideosOperation, _ *genai.GetOperationConfig) (*genai.GenerateVideosOperation, error) {
	f.names = append(f.names, op.Name)
	return f.op, f.err
}

func imageResponse(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Role: "model", Parts: parts}}},
	}
}
