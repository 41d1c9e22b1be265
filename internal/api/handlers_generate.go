package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/fpang/prompt-gallery/internal/archive"
	"github.com/fpang/prompt-gallery/internal/attachment"
	"github.com/fpang/prompt-gallery/internal/gemini"
)

// maxAttachments is the number of reference image slots a prompt offers.
const maxAttachments = 5

type imageRequest struct {
	Prompt      string   `json:"prompt"`
	Attachments []string `json:"attachments"`
}

func (s *Server) handleGenerateImage(w http.ResponseWriter, r *http.Request) {
	if !s.aiAvailable() {
		respondError(w, gemini.ErrNotConfigured)
		return
	}
	var req imageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}

	// Empty slots are skipped; order is kept.
	attachments := make([]string, 0, len(req.Attachments))
	for _, a := range req.Attachments {
		if a != "" {
			attachments = append(attachments, a)
		}
	}
	if len(attachments) > maxAttachments {
		httpError(w, http.StatusBadRequest, fmt.Sprintf("at most %d attachments are allowed", maxAttachments))
		return
	}

	image, err := s.gen.GenerateImage(r.Context(), req.Prompt, attachments)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"image": image})
}

// handleGenerateVideo blocks while the job is polled and streams the finished
// video back. A client disconnect cancels polling.
func (s *Server) handleGenerateVideo(w http.ResponseWriter, r *http.Request) {
	if !s.aiAvailable() || s.videos == nil {
		respondError(w, gemini.ErrNotConfigured)
		return
	}
	var req gemini.VideoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}

	res, err := s.videos.Run(r.Context(), req, func(msg string) {
		log.Debug().Str("progress", msg).Msg("Video job progress")
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Info().Msg("Video request cancelled by client")
			return
		}
		respondError(w, err)
		return
	}

	mimeType := res.Video.MIMEType
	if mimeType == "" {
		mimeType = "video/mp4"
	}
	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Video.Data)))
	w.Header().Set("X-Job-Id", res.JobID)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Video.Data); err != nil {
		log.Warn().Err(err).Str("job_id", res.JobID).Msg("Failed to write video response")
	}
}

type attachmentResponse struct {
	DataURL  string `json:"dataUrl"`
	MIMEType string `json:"mimeType"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// handleUploadAttachment turns a multipart file upload into a data URL.
func (s *Server) handleUploadAttachment(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, attachment.MaxSize+1<<20)
	file, header, err := r.FormFile("file")
	if err != nil {
		httpError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, attachment.MaxSize+1))
	if err != nil {
		respondError(w, &badRequest{msg: "failed to read upload"})
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = attachment.DetectType(data)
	}
	inline, err := attachment.Encode(data, mimeType)
	if err != nil {
		respondError(w, err)
		return
	}

	resp := attachmentResponse{DataURL: inline}
	resp.MIMEType, _, _ = attachment.Decode(inline)
	if info, err := attachment.Inspect(data); err == nil {
		resp.Width, resp.Height = info.Width, info.Height
	}
	respondJSON(w, http.StatusOK, resp)
}

type archiveRequest struct {
	Kind    archive.Kind `json:"kind"`
	DataURL string       `json:"dataUrl"`
}

func (s *Server) handleArchive(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil || !s.archive.Enabled() {
		respondError(w, archive.ErrDisabled)
		return
	}
	var req archiveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Kind == "" {
		req.Kind = archive.KindImage
	}
	if req.Kind != archive.KindImage && req.Kind != archive.KindVideo {
		httpError(w, http.StatusBadRequest, fmt.Sprintf("unknown archive kind %q", req.Kind))
		return
	}
	mimeType, data, err := attachment.Decode(req.DataURL)
	if err != nil {
		respondError(w, err)
		return
	}
	saved, err := s.archive.Save(r.Context(), req.Kind, data, mimeType)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, saved)
}
