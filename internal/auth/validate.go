package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fpang/prompt-gallery/internal/metrics"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// KeyError represents a specific type of API key failure.
type KeyError struct {
	Type    KeyErrorType
	Message string
	Err     error
}

// KeyErrorType categorizes API key failures.
type KeyErrorType int

const (
	// ErrTypeNoKey indicates no API key was found.
	ErrTypeNoKey KeyErrorType = iota
	// ErrTypeInvalidKey indicates the API key is invalid or revoked.
	ErrTypeInvalidKey
	// ErrTypeNetworkError indicates a network connectivity issue.
	ErrTypeNetworkError
	// ErrTypeQuotaExceeded indicates the API quota has been exceeded.
	ErrTypeQuotaExceeded
	// ErrTypeUnknown indicates an unknown error occurred.
	ErrTypeUnknown
)

func (t KeyErrorType) String() string {
	switch t {
	case ErrTypeNoKey:
		return "no_key"
	case ErrTypeInvalidKey:
		return "invalid"
	case ErrTypeNetworkError:
		return "network_error"
	case ErrTypeQuotaExceeded:
		return "quota"
	default:
		return "unknown"
	}
}

func (e *KeyError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *KeyError) Unwrap() error {
	return e.Err
}

// InvalidKeyMessage is shown when the remote API rejects the key.
const InvalidKeyMessage = "Your API Key is invalid or missing permissions. Please select a valid key."

// Pinger makes a minimal authenticated request.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ValidateAPIKey verifies the key with a minimal API call. It returns nil if
// the key works, or a KeyError describing the failure.
func ValidateAPIKey(ctx context.Context, p Pinger) error {
	log.Debug().Msg("Validating API key with Gemini API")

	start := time.Now()
	err := p.Ping(ctx)
	elapsed := time.Since(start)

	result := "success"
	var keyErr *KeyError
	if err != nil {
		keyErr = Classify(err)
		result = keyErr.Type.String()
	}

	metrics.New("validateApiKey").
		Dimension("Result", result).
		Latency("ApiKeyValidationMs", elapsed).
		Count("ApiKeyValidationResult").
		Flush()

	log.Debug().Str("result", result).Dur("duration", elapsed).Msg("API key validation result")
	if keyErr != nil {
		return keyErr
	}
	log.Info().Msg("API key validated successfully")
	return nil
}

// IsInvalidKey reports whether err means the remote API rejected the key.
func IsInvalidKey(err error) bool {
	if err == nil {
		return false
	}
	return Classify(err).Type == ErrTypeInvalidKey
}

// Classify analyzes an error and returns a KeyError with the matching type.
// A nil error returns nil.
func Classify(err error) *KeyError {
	if err == nil {
		return nil
	}

	var keyErr *KeyError
	if errors.As(err, &keyErr) {
		return keyErr
	}
	if errors.Is(err, ErrNoAPIKey) {
		return &KeyError{Type: ErrTypeNoKey, Message: "API key is not configured", Err: err}
	}

	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		return classifyAPIError(apiErr)
	}
	var apiErrValue genai.APIError
	if errors.As(err, &apiErrValue) {
		return classifyAPIError(&apiErrValue)
	}

	errLower := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errLower, "requested entity was not found") ||
		strings.Contains(errLower, "api key not valid") ||
		strings.Contains(errLower, "invalid api key") ||
		strings.Contains(errLower, "api_key_invalid") ||
		strings.Contains(errLower, "permission denied"):
		return &KeyError{Type: ErrTypeInvalidKey, Message: InvalidKeyMessage, Err: err}

	case strings.Contains(errLower, "quota") ||
		strings.Contains(errLower, "resource exhausted") ||
		strings.Contains(errLower, "rate limit"):
		return &KeyError{Type: ErrTypeQuotaExceeded, Message: "API quota exceeded or rate limited", Err: err}

	case strings.Contains(errLower, "connection") ||
		strings.Contains(errLower, "network") ||
		strings.Contains(errLower, "timeout") ||
		strings.Contains(errLower, "dial") ||
		strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "unreachable"):
		return &KeyError{Type: ErrTypeNetworkError, Message: "Network error - check your internet connection", Err: err}

	default:
		return &KeyError{Type: ErrTypeUnknown, Message: "Gemini API request failed", Err: err}
	}
}

func classifyAPIError(err *genai.APIError) *KeyError {
	if strings.Contains(strings.ToLower(err.Message), "requested entity was not found") {
		return &KeyError{Type: ErrTypeInvalidKey, Message: InvalidKeyMessage, Err: err}
	}
	switch err.Code {
	case 400:
		if strings.Contains(strings.ToLower(err.Message), "api key") {
			return &KeyError{Type: ErrTypeInvalidKey, Message: "Bad request - API key may be malformed", Err: err}
		}
		return &KeyError{Type: ErrTypeUnknown, Message: err.Message, Err: err}
	case 401, 403:
		return &KeyError{Type: ErrTypeInvalidKey, Message: InvalidKeyMessage, Err: err}
	case 429:
		return &KeyError{Type: ErrTypeQuotaExceeded, Message: "API rate limit exceeded - try again later", Err: err}
	case 500, 502, 503, 504:
		return &KeyError{Type: ErrTypeNetworkError, Message: "Gemini API server error - try again later", Err: err}
	default:
		return &KeyError{Type: ErrTypeUnknown, Message: err.Message, Err: err}
	}
}
