// Package auth resolves the Gemini API key, classifies key failures, and
// checks admin credentials.
package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// ErrNoAPIKey is returned when no key source yields a value.
var ErrNoAPIKey = errors.New("API key not found. Set GEMINI_API_KEY or configure SSM_API_KEY_PARAM")

// envKeys are checked in order.
var envKeys = []string{"GEMINI_API_KEY", "API_KEY"}

// GetAPIKey retrieves the Gemini API key from the environment.
// Priority order:
//  1. GEMINI_API_KEY
//  2. API_KEY
func GetAPIKey() (string, error) {
	for _, name := range envKeys {
		if key := strings.TrimSpace(os.Getenv(name)); key != "" {
			log.Debug().Str("source", name).Msg("Using API key from environment variable")
			return key, nil
		}
	}
	return "", ErrNoAPIKey
}

// ParameterGetter is the subset of the SSM client used to read the key.
type ParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// LoadKeyFromSSM reads a SecureString parameter holding the API key.
func LoadKeyFromSSM(ctx context.Context, client ParameterGetter, param string) (string, error) {
	if param == "" {
		return "", ErrNoAPIKey
	}
	start := time.Now()
	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(param),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to read API key from SSM %s: %w", param, err)
	}
	if out.Parameter == nil || strings.TrimSpace(aws.ToString(out.Parameter.Value)) == "" {
		return "", fmt.Errorf("SSM parameter %s is empty: %w", param, ErrNoAPIKey)
	}
	log.Debug().Str("param", param).Dur("elapsed", time.Since(start)).Msg("Gemini API key loaded from SSM")
	return strings.TrimSpace(aws.ToString(out.Parameter.Value)), nil
}

// ResolveAPIKey returns the key from the environment, falling back to SSM
// when a parameter name is configured. client may be nil when param is empty.
func ResolveAPIKey(ctx context.Context, client ParameterGetter, param string) (string, error) {
	if key, err := GetAPIKey(); err == nil {
		return key, nil
	}
	if param == "" || client == nil {
		return "", ErrNoAPIKey
	}
	return LoadKeyFromSSM(ctx, client, param)
}
