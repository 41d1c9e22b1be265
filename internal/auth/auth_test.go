package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeSSM struct {
	value string
	err   error
	input *ssm.GetParameterInput
}

func (f *fakeSSM) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: aws.String(f.value)}}, nil
}

func TestGetAPIKeyFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-api-key-12345")
	t.Setenv("API_KEY", "fallback")

	key, err := GetAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "test-api-key-12345", key)
}

func TestGetAPIKeyFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", " fallback ")

	key, err := GetAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "fallback", key)
}

func TestGetAPIKeyNoSource(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")

	_, err := GetAPIKey()
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestLoadKeyFromSSM(t *testing.T) {
	client := &fakeSSM{value: "ssm-key\n"}
	key, err := LoadKeyFromSSM(context.Background(), client, "/prompt-gallery/prod/gemini-api-key")
	require.NoError(t, err)
	assert.Equal(t, "ssm-key", key)
	assert.Equal(t, "/prompt-gallery/prod/gemini-api-key", aws.ToString(client.input.Name))
	assert.True(t, aws.ToBool(client.input.WithDecryption))
}

func TestLoadKeyFromSSM_Errors(t *testing.T) {
	_, err := LoadKeyFromSSM(context.Background(), &fakeSSM{err: errors.New("access denied")}, "/p")
	assert.ErrorContains(t, err, "access denied")

	_, err = LoadKeyFromSSM(context.Background(), &fakeSSM{value: ""}, "/p")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestResolveAPIKey_PrefersEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	client := &fakeSSM{value: "ssm-key"}
	key, err := ResolveAPIKey(context.Background(), client, "/p")
	require.NoError(t, err)
	assert.Equal(t, "env-key", key)
	assert.Nil(t, client.input)
}

func TestResolveAPIKey_FallsBackToSSM(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	key, err := ResolveAPIKey(context.Background(), &fakeSSM{value: "ssm-key"}, "/p")
	require.NoError(t, err)
	assert.Equal(t, "ssm-key", key)

	_, err = ResolveAPIKey(context.Background(), nil, "")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want KeyErrorType
	}{
		{"entity not found", errors.New("failed to generate video: Requested entity was not found."), ErrTypeInvalidKey},
		{"api 403", &genai.APIError{Code: 403, Message: "forbidden"}, ErrTypeInvalidKey},
		{"api 404 entity", &genai.APIError{Code: 404, Message: "Requested entity was not found."}, ErrTypeInvalidKey},
		{"api 429", &genai.APIError{Code: 429, Message: "slow down"}, ErrTypeQuotaExceeded},
		{"api 503", &genai.APIError{Code: 503, Message: "unavailable"}, ErrTypeNetworkError},
		{"dial", errors.New("dial tcp: no such host"), ErrTypeNetworkError},
		{"quota", errors.New("Quota exceeded for metric"), ErrTypeQuotaExceeded},
		{"no key", ErrNoAPIKey, ErrTypeNoKey},
		{"other", errors.New("something odd"), ErrTypeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err).Type)
		})
	}
	assert.Nil(t, Classify(nil))
	assert.False(t, IsInvalidKey(nil))
	assert.True(t, IsInvalidKey(errors.New("Requested entity was not found")))
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestValidateAPIKey(t *testing.T) {
	assert.NoError(t, ValidateAPIKey(context.Background(), fakePinger{}))

	err := ValidateAPIKey(context.Background(), fakePinger{err: &genai.APIError{Code: 401, Message: "bad key"}})
	var keyErr *KeyError
	require.ErrorAs(t, err, &keyErr)
	assert.Equal(t, ErrTypeInvalidKey, keyErr.Type)
}

func TestCredentialsMatch(t *testing.T) {
	c := Credentials{User: "admin", Password: "admin24"}
	assert.True(t, c.Match("admin", "admin24"))
	assert.False(t, c.Match("admin", "wrong"))
	assert.False(t, c.Match("root", "admin24"))
	assert.False(t, Credentials{}.Match("", ""))
	assert.Equal(t, map[string]string{"admin": "admin24"}, c.Map())
}
