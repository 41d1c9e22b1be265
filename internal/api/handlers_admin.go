package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/fpang/prompt-gallery/internal/catalog"
	"github.com/fpang/prompt-gallery/internal/gemini"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleAdminLogin checks the admin pair so a client can decide whether to
// show the dashboard. Admin requests still carry basic auth on every call.
func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}
	if !s.admin.Match(req.Username, req.Password) {
		log.Warn().Str("user", req.Username).Msg("Admin login rejected")
		httpError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"authenticated": true})
}

func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.catalog.Stats())
}

func (s *Server) handleCreatePrompt(w http.ResponseWriter, r *http.Request) {
	var in catalog.PromptInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, err)
		return
	}
	p, err := s.catalog.AddPrompt(in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

func (s *Server) handleUpdatePrompt(w http.ResponseWriter, r *http.Request) {
	var p catalog.Prompt
	if err := decodeJSON(w, r, &p); err != nil {
		respondError(w, err)
		return
	}
	p.ID = chi.URLParam(r, "id")
	updated, err := s.catalog.UpdatePrompt(p)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeletePrompt(w http.ResponseWriter, r *http.Request) {
	s.catalog.DeletePrompt(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

type suggestRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *Server) handleSuggestPrompt(w http.ResponseWriter, r *http.Request) {
	if !s.aiAvailable() {
		respondError(w, gemini.ErrNotConfigured)
		return
	}
	var req suggestRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}
	text, err := s.gen.SuggestPrompt(r.Context(), req.Title, req.Description)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"promptText": text})
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}
	c, err := s.catalog.AddCategory(req.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.DeleteCategory(chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
