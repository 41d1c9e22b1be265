package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/fpang/prompt-gallery/internal/archive"
	"github.com/fpang/prompt-gallery/internal/attachment"
	"github.com/fpang/prompt-gallery/internal/auth"
	"github.com/fpang/prompt-gallery/internal/catalog"
	"github.com/fpang/prompt-gallery/internal/gemini"
	"github.com/fpang/prompt-gallery/internal/jobs"
)

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Warn().Err(err).Msg("Failed to write JSON response")
	}
}

// httpError sends a JSON error response. Optional internalDetails are logged
// server-side but never sent to the client.
func httpError(w http.ResponseWriter, status int, clientMsg string, internalDetails ...string) {
	if len(internalDetails) > 0 {
		log.Error().
			Int("status", status).
			Str("clientMsg", clientMsg).
			Strs("internalDetails", internalDetails).
			Msg("HTTP error with internal details")
	}
	respondJSON(w, status, map[string]string{"error": clientMsg})
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return &badRequest{msg: fmt.Sprintf("invalid request body: %v", err)}
	}
	return nil
}

type badRequest struct{ msg string }

func (e *badRequest) Error() string { return e.msg }

// respondError maps a service error to its status code and message.
func respondError(w http.ResponseWriter, err error) {
	status, msg := classify(err)
	if status >= 500 {
		httpError(w, status, msg, err.Error())
		return
	}
	httpError(w, status, msg)
}

func classify(err error) (int, string) {
	var (
		bad       *badRequest
		catErr    *catalog.ValidationError
		attErr    *attachment.ValidationError
		genErr    *gemini.ValidationError
		fetchErr  *gemini.FetchError
		remoteErr *gemini.RemoteError
		failed    jobs.Failed
	)
	switch {
	case errors.As(err, &bad), errors.As(err, &catErr), errors.As(err, &attErr), errors.As(err, &genErr),
		errors.Is(err, attachment.ErrMalformedAttachment):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, catalog.ErrCategoryInUse), errors.Is(err, catalog.ErrDuplicateCategory):
		return http.StatusConflict, err.Error()
	case errors.Is(err, gemini.ErrNotConfigured), errors.Is(err, archive.ErrDisabled):
		return http.StatusServiceUnavailable, err.Error()
	case errors.Is(err, jobs.ErrPollTimeout):
		return http.StatusGatewayTimeout, err.Error()
	case errors.As(err, &fetchErr), errors.As(err, &remoteErr), errors.As(err, &failed):
		if auth.IsInvalidKey(err) {
			return http.StatusUnauthorized, auth.InvalidKeyMessage
		}
		return http.StatusBadGateway, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
